package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"cashdrawer/internal/config"
	"cashdrawer/internal/repository"
	"cashdrawer/internal/service"
	"cashdrawer/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestApp(t *testing.T, script ...string) (*App, *bytes.Buffer) {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := &config.Config{JWTSecret: "x", BcryptCost: bcrypt.MinCost, TaxRate: config.DefaultTaxRate}

	employeeRepo := repository.NewEmployeeRepository(db)
	productRepo := repository.NewProductRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reports := service.NewReportService(sessionRepo, saleRepo)

	svc := Services{
		Employees: service.NewEmployeeService(employeeRepo, cfg),
		Catalog:   service.NewCatalogService(productRepo, nil),
		Sessions:  service.NewSessionService(sessionRepo, employeeRepo, reports, nil),
		Sales:     service.NewSaleService(saleRepo, productRepo, sessionRepo, employeeRepo, cfg.TaxRate),
	}
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	return New(svc, in, out, nil), out
}

func TestRun_FullShift(t *testing.T) {
	app, out := newTestApp(t,
		"1", "Ana", "111", "pw12",
		"2", "111", "pw12",
		"3", "Água", "2.00", "10",
		"5",
		"6", "1", "3", "",
		"4",
		"7",
		"8",
	)

	require.NoError(t, app.Run(context.Background()))
	text := out.String()

	assert.Contains(t, text, "Employee #1 registered.")
	assert.Contains(t, text, "Welcome, Ana!")
	assert.Contains(t, text, "Product #1 registered.")
	assert.Contains(t, text, "Drawer opened (id 1)")
	assert.Contains(t, text, "Sale recorded (id 1) - Total $ 6.00 (tax $ 0.64)")
	assert.Contains(t, text, "ID: 1 --- Água --- $ 2.00 --- Stock: 7")
	assert.Contains(t, text, "Gross total: $6.00")
	assert.Contains(t, text, "Net of tax: $5.36")
	assert.Contains(t, text, "- Ana: 1 sales -- total $6.00")
	assert.Contains(t, text, "Leaving...")
}

func TestRun_RequiresLogin(t *testing.T) {
	app, out := newTestApp(t, "5", "6", "7", "8")

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, 3, strings.Count(out.String(), "Log in as an employee first."))
}

func TestRun_ReportsDomainErrors(t *testing.T) {
	app, out := newTestApp(t,
		"1", "Ana", "111", "pw12",
		"1", "Bia", "111", "pw34",
		"2", "111", "wrong",
		"2", "111", "pw12",
		"5",
		"5",
		"6", "",
		"9",
	)

	require.NoError(t, app.Run(context.Background()))
	text := out.String()

	assert.Contains(t, text, "Document already registered. Try another.")
	assert.Contains(t, text, "Wrong document or secret.")
	assert.Contains(t, text, "A drawer is already open (id 1). Close it before opening another.")
	assert.Contains(t, text, "Sale cancelled (no items).")
	assert.Contains(t, text, "Invalid option, try again.")
}

func TestRun_SellRejectsBadPicks(t *testing.T) {
	app, out := newTestApp(t,
		"1", "Ana", "111", "pw12",
		"2", "111", "pw12",
		"3", "Pão", "0.50", "2",
		"6",
		"5",
		"6", "42", "abc", "1", "0", "1", "5", "1", "2", "x",
		"4",
	)

	require.NoError(t, app.Run(context.Background()))
	text := out.String()

	assert.Contains(t, text, "Open the drawer before selling.")
	assert.Contains(t, text, "Product not found.")
	assert.Contains(t, text, "Invalid ID.")
	assert.Contains(t, text, "Quantity must be greater than zero.")
	assert.Contains(t, text, "quantity exceeds available stock")
	assert.Contains(t, text, "Cart total: $1.00")
	assert.Contains(t, text, "Sale cancelled.")
	assert.Contains(t, text, "Stock: 2")
}
