// cmd/terminal/main.go: interactive register menu for one store terminal.
// Usage: DB_DRIVER=sqlite DATABASE_URL=loja.db go run ./cmd/terminal
package main

import (
	"context"
	"fmt"
	"os"

	"cashdrawer/internal/config"
	"cashdrawer/internal/infra"
	"cashdrawer/internal/repository"
	"cashdrawer/internal/service"
	"cashdrawer/internal/terminal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	infra.SetupLogger(cfg.Env)
	// service logs would interleave with the menu
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to open database")
	}

	employeeRepo := repository.NewEmployeeRepository(db)
	productRepo := repository.NewProductRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reports := service.NewReportService(sessionRepo, saleRepo)

	svc := terminal.Services{
		Employees: service.NewEmployeeService(employeeRepo, cfg),
		Catalog:   service.NewCatalogService(productRepo, nil),
		Sessions:  service.NewSessionService(sessionRepo, employeeRepo, reports, nil),
		Sales:     service.NewSaleService(saleRepo, productRepo, sessionRepo, employeeRepo, cfg.TaxRate),
	}

	var readSecret terminal.SecretReader
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		readSecret = func(prompt string) (string, error) {
			fmt.Print(prompt)
			b, err := term.ReadPassword(fd)
			fmt.Println()
			return string(b), err
		}
	}

	app := terminal.New(svc, os.Stdin, os.Stdout, readSecret)
	if err := app.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("terminal stopped")
	}
}
