// cmd/seed/main.go: creates a demo employee and a small catalog.
// Usage: go run ./cmd/seed
// Running it twice keeps the existing employee and skips products that are
// already in the catalog.
package main

import (
	"context"
	"errors"
	"fmt"

	"cashdrawer/internal/config"
	"cashdrawer/internal/dto"
	"cashdrawer/internal/infra"
	"cashdrawer/internal/repository"
	"cashdrawer/internal/service"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	demoDocument = "00000000000"
	demoSecret   = "1234"
)

var demoProducts = []struct {
	name  string
	price string
	stock int
}{
	{"Água mineral 500ml", "2.00", 48},
	{"Pão francês", "0.75", 120},
	{"Café 250g", "12.90", 20},
	{"Leite integral 1L", "5.49", 36},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	infra.SetupLogger(cfg.Env)

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	ctx := context.Background()

	employees := service.NewEmployeeService(repository.NewEmployeeRepository(db), cfg)
	catalog := service.NewCatalogService(repository.NewProductRepository(db), nil)

	_, err = employees.Register(ctx, dto.RegisterEmployeeRequest{
		Name: "Demo Operator", Document: demoDocument, Secret: demoSecret,
	})
	switch {
	case errors.Is(err, service.ErrDuplicateDocument):
		log.Info().Str("document", demoDocument).Msg("demo employee already exists")
	case err != nil:
		log.Fatal().Err(err).Msg("failed to create demo employee")
	default:
		fmt.Printf("employee document=%s secret=%s\n", demoDocument, demoSecret)
	}

	existing, err := catalog.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list products")
	}
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[p.Name] = true
	}

	for _, p := range demoProducts {
		if known[p.name] {
			continue
		}
		created, err := catalog.Register(ctx, dto.CreateProductRequest{
			Name:          p.name,
			UnitPrice:     decimal.RequireFromString(p.price),
			StockQuantity: p.stock,
		})
		if err != nil {
			log.Fatal().Err(err).Str("product", p.name).Msg("failed to create product")
		}
		fmt.Printf("product #%d %s %s (stock %d)\n", created.ID, created.Name, created.UnitPrice.StringFixed(2), created.StockQuantity)
	}
}
