package service

import (
	"context"
	"time"

	"cashdrawer/internal/dto"
	"cashdrawer/internal/metrics"
	"cashdrawer/internal/model"
	"cashdrawer/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	// Sell records one checkout in the given session for the employee.
	Sell(ctx context.Context, employeeID uint, req dto.SellRequest) (*dto.SaleResponse, error)
	Get(ctx context.Context, id uint) (*dto.SaleResponse, error)
}

type saleService struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	sessions  repository.SessionRepository
	employees repository.EmployeeRepository
	taxRate   decimal.Decimal
	now       func() time.Time
}

func NewSaleService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	sessions repository.SessionRepository,
	employees repository.EmployeeRepository,
	taxRate decimal.Decimal,
) SaleService {
	return &saleService{
		sales:     sales,
		products:  products,
		sessions:  sessions,
		employees: employees,
		taxRate:   taxRate,
		now:       time.Now,
	}
}

// runTx executes fn inside a GORM transaction. Domain errors and
// StorageErrors returned by fn pass through untouched; anything else (a
// failed BEGIN or COMMIT) becomes a StorageError.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if err == nil || isClassified(err) {
		return err
	}
	return storageErr("transaction", err)
}

// SplitTax backs the flat tax out of a tax-inclusive gross amount:
// net = gross / (1 + rate), tax = gross - net.
func SplitTax(gross, rate decimal.Decimal) (net, tax decimal.Decimal) {
	net = gross.Div(decimal.NewFromInt(1).Add(rate)).Round(10)
	return net, gross.Sub(net)
}

// ── Sell ──────────────────────────────────────────────────────────────────────
// 1. session must exist and be open
// 2. cart must be non-empty, every quantity > 0
// 3. TX: re-check session, resolve products and snapshot prices,
//    check merged demand against stock, insert sale + items,
//    conditional stock decrements
// Any failure inside the TX rolls back every write.

func (s *saleService) Sell(ctx context.Context, employeeID uint, req dto.SellRequest) (*dto.SaleResponse, error) {
	resp, err := s.sell(ctx, employeeID, req)
	if err != nil {
		metrics.ObserveSaleRejected(resultLabel(err))
		return nil, err
	}
	units := 0
	for _, it := range resp.Items {
		units += it.Quantity
	}
	metrics.ObserveSale(units, resp.GrossTotal)
	return resp, nil
}

func (s *saleService) sell(ctx context.Context, employeeID uint, req dto.SellRequest) (*dto.SaleResponse, error) {
	session, err := s.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return nil, notFoundOr("find session", err, ErrNoOpenSession)
	}
	if !session.IsOpen() {
		return nil, ErrNoOpenSession
	}

	if len(req.Picks) == 0 {
		return nil, ErrEmptyCart
	}
	for _, p := range req.Picks {
		if p.Quantity <= 0 {
			return nil, invalid("quantity for product %d must be positive, got %d", p.ProductID, p.Quantity)
		}
	}

	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		return nil, notFoundOr("find employee", err, ErrNotFound)
	}

	var sale model.Sale
	products := make(map[uint]*model.Product, len(req.Picks))

	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		if _, err := s.sessions.FindOpenByIDTx(tx, req.SessionID); err != nil {
			return notFoundOr("recheck session", err, ErrNoOpenSession)
		}

		// Resolve products and merge demand per product, keeping pick order
		// for the line items.
		demand := make(map[uint]int, len(req.Picks))
		order := make([]uint, 0, len(req.Picks))
		items := make([]model.SaleItem, 0, len(req.Picks))
		gross := decimal.Zero

		for _, pick := range req.Picks {
			p, ok := products[pick.ProductID]
			if !ok {
				found, err := s.products.FindByIDTx(tx, pick.ProductID)
				if err != nil {
					return notFoundOr("find product", err, ErrProductNotFound)
				}
				p = found
				products[pick.ProductID] = p
				order = append(order, pick.ProductID)
			}
			demand[pick.ProductID] += pick.Quantity

			item := model.SaleItem{
				ProductID: p.ID,
				Quantity:  pick.Quantity,
				UnitPrice: p.UnitPrice,
			}
			items = append(items, item)
			gross = gross.Add(item.Subtotal())
		}

		for _, id := range order {
			p := products[id]
			if demand[id] > p.StockQuantity {
				return &InsufficientStockError{
					ProductID: id,
					Name:      p.Name,
					Requested: demand[id],
					Available: p.StockQuantity,
				}
			}
		}

		net, tax := SplitTax(gross, s.taxRate)
		sale = model.Sale{
			SessionID:  req.SessionID,
			EmployeeID: employeeID,
			GrossTotal: gross,
			NetTotal:   net,
			TaxTotal:   tax,
			SoldAt:     timestamp(s.now),
			Items:      items,
		}
		if err := s.sales.CreateTx(tx, &sale); err != nil {
			return storageErr("create sale", err)
		}

		for _, id := range order {
			n, err := s.products.DecrementStockTx(tx, id, demand[id])
			if err != nil {
				return storageErr("decrement stock", err)
			}
			if n == 0 {
				// stock changed since it was read
				available := 0
				if cur, err := s.products.FindByIDTx(tx, id); err == nil {
					available = cur.StockQuantity
				}
				return &InsufficientStockError{
					ProductID: id,
					Name:      products[id].Name,
					Requested: demand[id],
					Available: available,
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	for i := range sale.Items {
		sale.Items[i].Product = products[sale.Items[i].ProductID]
	}
	log.Info().
		Uint("sale_id", sale.ID).
		Uint("session_id", sale.SessionID).
		Uint("employee_id", employeeID).
		Str("gross_total", sale.GrossTotal.StringFixed(2)).
		Msg("sale committed")
	return saleToResponse(&sale), nil
}

// ── Get ───────────────────────────────────────────────────────────────────────

func (s *saleService) Get(ctx context.Context, id uint) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("find sale", err, ErrNotFound)
	}
	return saleToResponse(sale), nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		name := ""
		if it.Product != nil {
			name = it.Product.Name
		}
		items[i] = dto.SaleItemResponse{
			ProductID: it.ProductID,
			Product:   name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		}
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		SessionID:     s.SessionID,
		EmployeeID:    s.EmployeeID,
		Items:         items,
		GrossTotal:    s.GrossTotal,
		NetOfTaxTotal: s.NetTotal,
		TaxTotal:      s.TaxTotal,
		SoldAt:        s.SoldAt,
	}
}
