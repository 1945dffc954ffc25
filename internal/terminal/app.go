// Package terminal is the interactive register menu: register employees and
// products, log in, open the drawer, sell and close with a printed report.
// It drives the services in-process.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cashdrawer/internal/cart"
	"cashdrawer/internal/dto"
	"cashdrawer/internal/model"
	"cashdrawer/internal/service"

	"github.com/shopspring/decimal"
)

// SecretReader reads a secret without echoing it.
type SecretReader func(prompt string) (string, error)

type Services struct {
	Employees service.EmployeeService
	Catalog   service.CatalogService
	Sessions  service.SessionService
	Sales     service.SaleService
}

type App struct {
	svc        Services
	in         *bufio.Reader
	out        io.Writer
	readSecret SecretReader
	employee   *model.Employee
}

// New builds the menu. When readSecret is nil secrets are read as plain lines.
func New(svc Services, in io.Reader, out io.Writer, readSecret SecretReader) *App {
	a := &App{svc: svc, in: bufio.NewReader(in), out: out}
	if readSecret == nil {
		readSecret = a.prompt
	}
	a.readSecret = readSecret
	return a
}

var errQuit = errors.New("quit")

// Run shows the menu until the operator exits or input ends.
func (a *App) Run(ctx context.Context) error {
	for {
		a.printf("%s\n", strings.Repeat("-", 30))
		a.printf("=== Store - Cash Register ===\n")
		a.printf("1- Register employee\n")
		a.printf("2- Login\n")
		a.printf("3- Register product\n")
		a.printf("4- List products\n")
		a.printf("5- Open drawer\n")
		a.printf("6- Sell\n")
		a.printf("7- Close drawer\n")
		a.printf("8- Exit\n")

		choice, err := a.prompt("Choose: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			err = a.registerEmployee(ctx)
		case "2":
			err = a.login(ctx)
		case "3":
			err = a.requireLogin(func() error { return a.registerProduct(ctx) })
		case "4":
			err = a.listProducts(ctx)
		case "5":
			err = a.requireLogin(func() error { return a.openDrawer(ctx) })
		case "6":
			err = a.requireLogin(func() error { return a.sell(ctx) })
		case "7":
			err = a.requireLogin(func() error { return a.closeDrawer(ctx) })
		case "8":
			err = errQuit
		default:
			a.printf("Invalid option, try again.\n")
		}

		switch {
		case errors.Is(err, errQuit):
			a.printf("Leaving...\n")
			return nil
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, service.ErrStorage):
			return err
		case err != nil:
			a.printf("%s\n\n", describe(err))
		}
	}
}

func (a *App) requireLogin(fn func() error) error {
	if a.employee == nil {
		a.printf("Log in as an employee first.\n\n")
		return nil
	}
	return fn()
}

// ── Employees ─────────────────────────────────────────────────────────────────

func (a *App) registerEmployee(ctx context.Context) error {
	a.printf("\n=== Register employee ===\n")
	name, err := a.prompt("Name: ")
	if err != nil {
		return err
	}
	document, err := a.prompt("Document (digits only): ")
	if err != nil {
		return err
	}
	secret, err := a.readSecret("Secret: ")
	if err != nil {
		return err
	}
	e, err := a.svc.Employees.Register(ctx, dto.RegisterEmployeeRequest{Name: name, Document: document, Secret: secret})
	if err != nil {
		return err
	}
	a.printf("Employee #%d registered.\n\n", e.ID)
	return nil
}

func (a *App) login(ctx context.Context) error {
	a.printf("\n== Login ==\n")
	document, err := a.prompt("Document: ")
	if err != nil {
		return err
	}
	secret, err := a.readSecret("Secret: ")
	if err != nil {
		return err
	}
	e, err := a.svc.Employees.Authenticate(ctx, document, secret)
	if err != nil {
		return err
	}
	a.employee = e
	a.printf("Welcome, %s!\n\n", e.Name)
	return nil
}

// ── Catalog ───────────────────────────────────────────────────────────────────

func (a *App) registerProduct(ctx context.Context) error {
	a.printf("\n=== Register product ===\n")
	name, err := a.prompt("Product name: ")
	if err != nil {
		return err
	}
	rawPrice, err := a.prompt("Price (use . for decimals): ")
	if err != nil {
		return err
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		a.printf("Invalid price.\n\n")
		return nil
	}
	rawStock, err := a.prompt("Stock quantity: ")
	if err != nil {
		return err
	}
	stock, err := strconv.Atoi(rawStock)
	if err != nil {
		a.printf("Invalid quantity.\n\n")
		return nil
	}
	p, err := a.svc.Catalog.Register(ctx, dto.CreateProductRequest{Name: name, UnitPrice: price, StockQuantity: stock})
	if err != nil {
		return err
	}
	a.printf("Product #%d registered.\n\n", p.ID)
	return nil
}

func (a *App) listProducts(ctx context.Context) error {
	products, err := a.svc.Catalog.List(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		a.printf("No products registered.\n\n")
		return nil
	}
	a.printf("\n== Products ==\n")
	for _, p := range products {
		a.printf("ID: %d --- %s --- $ %s --- Stock: %d\n", p.ID, p.Name, p.UnitPrice.StringFixed(2), p.StockQuantity)
	}
	a.printf("\n")
	return nil
}

// ── Drawer ────────────────────────────────────────────────────────────────────

func (a *App) openDrawer(ctx context.Context) error {
	s, err := a.svc.Sessions.Open(ctx, a.employee.ID)
	if err != nil {
		return err
	}
	a.printf("Drawer opened (id %d) at %s\n\n", s.ID, s.OpenedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) closeDrawer(ctx context.Context) error {
	cur, err := a.svc.Sessions.CurrentOpen(ctx)
	if err != nil {
		return err
	}
	if cur == nil {
		a.printf("No open drawer to close.\n\n")
		return nil
	}
	resp, err := a.svc.Sessions.Close(ctx, cur.ID)
	if err != nil {
		return err
	}
	a.printf("Drawer %d closed at %s\n\n", resp.Session.ID, resp.Session.ClosedAt.Local().Format("2006-01-02 15:04:05"))
	if resp.Report == nil {
		a.printf("Report unavailable right now; the drawer is closed.\n\n")
		return nil
	}
	a.printReport(resp.Report)
	return nil
}

func (a *App) printReport(r *dto.SessionReport) {
	closed := "-"
	if r.ClosedAt != nil {
		closed = r.ClosedAt.Local().Format("2006-01-02 15:04:05")
	}
	a.printf("=== DRAWER REPORT ===\n")
	a.printf("Drawer id: %d\n", r.SessionID)
	a.printf("Opened by: %s\n", r.OpenedByName)
	a.printf("Opened at: %s\n", r.OpenedAt.Local().Format("2006-01-02 15:04:05"))
	a.printf("Closed at: %s\n", closed)
	a.printf("Sales: %d\n", r.SaleCount)
	a.printf("Gross total: $%s\n", r.GrossTotal.StringFixed(2))
	a.printf("Net of tax: $%s\n", r.NetOfTaxTotal.StringFixed(2))
	a.printf("Tax: $%s\n", r.TaxTotal.StringFixed(2))
	a.printf("\nSales per employee:\n")
	for _, e := range r.PerEmployee {
		a.printf("- %s: %d sales -- total $%s\n", e.EmployeeName, e.SaleCount, e.GrossSubtotal.StringFixed(2))
	}
	a.printf("%s\n", strings.Repeat("=", 30))
}

// ── Sell ──────────────────────────────────────────────────────────────────────

func (a *App) sell(ctx context.Context) error {
	cur, err := a.svc.Sessions.CurrentOpen(ctx)
	if err != nil {
		return err
	}
	if cur == nil {
		a.printf("Open the drawer before selling.\n\n")
		return nil
	}

	c := cart.New(catalogLookup{a.svc.Catalog})
	for c.State() == cart.Building {
		line, err := a.prompt("Product ID (ENTER to finish, r ID to remove, x to cancel): ")
		if err != nil {
			return err
		}
		switch {
		case line == "":
			picks, err := c.Done()
			if errors.Is(err, cart.ErrEmptyCart) {
				a.printf("Sale cancelled (no items).\n\n")
				return nil
			}
			if err != nil {
				return err
			}
			return a.commit(ctx, cur.ID, picks)
		case line == "x":
			_ = c.Cancel()
			a.printf("Sale cancelled.\n\n")
			return nil
		case strings.HasPrefix(line, "r "):
			id, ok := parseUint(strings.TrimSpace(line[2:]))
			if !ok {
				a.printf("Invalid ID.\n")
				continue
			}
			if err := c.Remove(id); err != nil {
				a.printf("%s\n", describe(err))
			}
		default:
			id, ok := parseUint(line)
			if !ok {
				a.printf("Invalid ID.\n")
				continue
			}
			p, err := a.svc.Catalog.Get(ctx, id)
			if err != nil {
				a.printf("%s\n", describe(err))
				continue
			}
			a.printf("Selected: %s\n", p.Name)
			rawQty, err := a.prompt(fmt.Sprintf("Quantity (stock %d): ", p.StockQuantity))
			if err != nil {
				return err
			}
			qty, convErr := strconv.Atoi(rawQty)
			if convErr != nil {
				a.printf("Invalid quantity. Type a number.\n")
				continue
			}
			if err := c.Add(ctx, id, qty); err != nil {
				a.printf("%s\n", describe(err))
				continue
			}
			a.printf("Cart total: $%s\n", c.Total().StringFixed(2))
		}
	}
	return nil
}

func (a *App) commit(ctx context.Context, sessionID uint, picks []dto.Pick) error {
	sale, err := a.svc.Sales.Sell(ctx, a.employee.ID, dto.SellRequest{SessionID: sessionID, Picks: picks})
	if err != nil {
		return err
	}
	a.printf("Sale recorded (id %d) - Total $ %s (tax $ %s)\n\n",
		sale.ID, sale.GrossTotal.StringFixed(2), sale.TaxTotal.StringFixed(2))
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

type catalogLookup struct{ catalog service.CatalogService }

func (l catalogLookup) Product(ctx context.Context, id uint) (cart.Product, error) {
	p, err := l.catalog.Get(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		return cart.Product{}, cart.ErrUnknownProduct
	}
	if err != nil {
		return cart.Product{}, err
	}
	return cart.Product{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice, Stock: p.StockQuantity}, nil
}

func (a *App) prompt(label string) (string, error) {
	a.printf("%s", label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func parseUint(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// describe renders an operator-facing message for a service error.
func describe(err error) string {
	var already *service.AlreadyOpenError
	var short *service.InsufficientStockError
	switch {
	case errors.As(err, &already):
		return fmt.Sprintf("A drawer is already open (id %d). Close it before opening another.", already.SessionID)
	case errors.As(err, &short):
		return fmt.Sprintf("Not enough stock for %s: requested %d, available %d.", short.Name, short.Requested, short.Available)
	case errors.Is(err, service.ErrDuplicateDocument):
		return "Document already registered. Try another."
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Wrong document or secret."
	case errors.Is(err, service.ErrNoOpenSession):
		return "Open the drawer before selling."
	case errors.Is(err, service.ErrNotOpen):
		return "No open drawer to close."
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, cart.ErrUnknownProduct):
		return "Product not found."
	case errors.Is(err, cart.ErrInvalidQuantity):
		return "Quantity must be greater than zero."
	default:
		return err.Error()
	}
}
