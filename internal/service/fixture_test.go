package service

import (
	"context"
	"sync"
	"testing"

	"cashdrawer/internal/config"
	"cashdrawer/internal/dto"
	"cashdrawer/internal/model"
	"cashdrawer/internal/repository"
	"cashdrawer/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Fixture ──────────────────────────────────────────────────────────────────

type fakeDispatcher struct {
	mu       sync.Mutex
	sessions []uint
	err      error
}

func (d *fakeDispatcher) EnqueueReport(_ context.Context, sessionID uint) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return "", d.err
	}
	d.sessions = append(d.sessions, sessionID)
	return "job-1", nil
}

type fixture struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	employees   EmployeeService
	catalog     CatalogService
	reports     ReportService
	sessions    SessionService
	sales       SaleService
	dispatcher  *fakeDispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		BcryptCost:         bcrypt.MinCost,
		TaxRate:            config.DefaultTaxRate,
	}

	employeeRepo := repository.NewEmployeeRepository(db)
	productRepo := repository.NewProductRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	reports := NewReportService(sessionRepo, saleRepo)
	dispatcher := &fakeDispatcher{}
	return &fixture{
		db:          db,
		productRepo: productRepo,
		employees:   NewEmployeeService(employeeRepo, cfg),
		catalog:     NewCatalogService(productRepo, nil),
		reports:     reports,
		sessions:    NewSessionService(sessionRepo, employeeRepo, reports, dispatcher),
		sales:       NewSaleService(saleRepo, productRepo, sessionRepo, employeeRepo, cfg.TaxRate),
		dispatcher:  dispatcher,
	}
}

func (f *fixture) employee(t *testing.T, name, document string) *dto.EmployeeResponse {
	t.Helper()
	e, err := f.employees.Register(context.Background(), dto.RegisterEmployeeRequest{
		Name: name, Document: document, Secret: "s3cret",
	})
	require.NoError(t, err)
	return e
}

func (f *fixture) product(t *testing.T, name, price string, stock int) *dto.ProductResponse {
	t.Helper()
	p, err := f.catalog.Register(context.Background(), dto.CreateProductRequest{
		Name: name, UnitPrice: decimal.RequireFromString(price), StockQuantity: stock,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) open(t *testing.T, employeeID uint) *dto.SessionResponse {
	t.Helper()
	s, err := f.sessions.Open(context.Background(), employeeID)
	require.NoError(t, err)
	return s
}

func (f *fixture) stock(t *testing.T, productID uint) int {
	t.Helper()
	p, err := f.productRepo.FindByID(context.Background(), productID)
	require.NoError(t, err)
	return p.StockQuantity
}

func (f *fixture) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func (f *fixture) saleCount(t *testing.T) int64     { return f.count(t, &model.Sale{}) }
func (f *fixture) saleItemCount(t *testing.T) int64 { return f.count(t, &model.SaleItem{}) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
