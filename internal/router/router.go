package router

import (
	"time"

	_ "cashdrawer/docs" // swagger spec
	"cashdrawer/internal/config"
	"cashdrawer/internal/handler"
	"cashdrawer/internal/infra"
	"cashdrawer/internal/middleware"
	"cashdrawer/internal/repository"
	"cashdrawer/internal/service"
	"cashdrawer/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb may be nil: the price cache and closing report jobs are then disabled.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Env, cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	employeeRepo := repository.NewEmployeeRepository(db)
	productRepo := repository.NewProductRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	var dispatcher service.ReportDispatcher
	if rdb != nil {
		dispatcher = worker.NewDispatcher(rdb)
	}

	employeeSvc := service.NewEmployeeService(employeeRepo, cfg)
	catalogSvc := service.NewCatalogService(productRepo, rdb)
	reportSvc := service.NewReportService(sessionRepo, saleRepo)
	sessionSvc := service.NewSessionService(sessionRepo, employeeRepo, reportSvc, dispatcher)
	saleSvc := service.NewSaleService(saleRepo, productRepo, sessionRepo, employeeRepo, cfg.TaxRate)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(employeeSvc)
	productsH := handler.NewProductsHandler(catalogSvc)
	sessionsH := handler.NewSessionsHandler(sessionSvc, reportSvc)
	salesH := handler.NewSalesHandler(saleSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/v1/auth")
	{
		loginLimiter := middleware.LoginRateLimiter()
		auth.POST("/register", loginLimiter, authH.Register)
		auth.POST("/login", loginLimiter, authH.Login)
	}

	// Protected routes: every employee may use every endpoint.
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		v1.GET("/auth/me", authH.Me)

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.GET("/:id/price", productsH.Price)
			products.PATCH("/:id/price", productsH.UpdatePrice)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("/open", sessionsH.Open)
			sessions.GET("/current", sessionsH.Current)
			sessions.POST("/:id/close", sessionsH.Close)
			sessions.GET("/:id/report", sessionsH.Report)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.Create)
			sales.GET("/:id", salesH.Get)
		}
	}

	// Swagger UI: only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
