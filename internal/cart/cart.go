// Package cart accumulates the picks of one checkout before they are handed
// to the sale engine. A Cart is driven by explicit events (Add, Remove, Done,
// Cancel) and only reads product data through a Lookup.
package cart

import (
	"context"
	"errors"
	"fmt"

	"cashdrawer/internal/dto"

	"github.com/shopspring/decimal"
)

// State of a cart. Building is the only state that accepts events.
type State int

const (
	Building State = iota
	Submitted
	Cancelled
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Submitted:
		return "submitted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNotBuilding     = errors.New("cart is no longer accepting changes")
	ErrUnknownProduct  = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrExceedsStock    = errors.New("quantity exceeds available stock")
	ErrNotInCart       = errors.New("product is not in the cart")
)

// Product is the catalog data a cart needs to validate and price a pick.
type Product struct {
	ID        uint
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
}

// Lookup resolves products for the cart. It returns ErrUnknownProduct (or an
// error wrapping it) for ids that do not exist.
type Lookup interface {
	Product(ctx context.Context, id uint) (Product, error)
}

// Line is the merged quantity of one product.
type Line struct {
	Product  Product
	Quantity int
}

// Subtotal is Quantity × UnitPrice at the time the line was last touched.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is not safe for concurrent use; it belongs to one terminal.
type Cart struct {
	lookup Lookup
	state  State
	lines  []Line
}

func New(lookup Lookup) *Cart {
	return &Cart{lookup: lookup, state: Building}
}

func (c *Cart) State() State { return c.state }

// Add puts qty units of a product in the cart. The total quantity of the
// product in the cart may not exceed its current stock.
func (c *Cart) Add(ctx context.Context, productID uint, qty int) error {
	if c.state != Building {
		return ErrNotBuilding
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	p, err := c.lookup.Product(ctx, productID)
	if err != nil {
		return err
	}

	i := c.index(productID)
	inCart := 0
	if i >= 0 {
		inCart = c.lines[i].Quantity
	}
	if inCart+qty > p.Stock {
		return fmt.Errorf("%w: %q has %d in stock, %d already in cart", ErrExceedsStock, p.Name, p.Stock, inCart)
	}

	if i >= 0 {
		c.lines[i].Product = p
		c.lines[i].Quantity += qty
		return nil
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: qty})
	return nil
}

// Remove drops a product from the cart entirely.
func (c *Cart) Remove(productID uint) error {
	if c.state != Building {
		return ErrNotBuilding
	}
	i := c.index(productID)
	if i < 0 {
		return ErrNotInCart
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

// Lines returns a copy of the cart content in first-added order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total is the tax-inclusive sum of all lines at the prices last looked up.
// The sale engine re-reads prices, so this is a preview only.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Done submits the cart and returns its picks. An empty cart stays in
// Building so the caller can keep adding.
func (c *Cart) Done() ([]dto.Pick, error) {
	if c.state != Building {
		return nil, ErrNotBuilding
	}
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}
	picks := make([]dto.Pick, len(c.lines))
	for i, l := range c.lines {
		picks[i] = dto.Pick{ProductID: l.Product.ID, Quantity: l.Quantity}
	}
	c.state = Submitted
	return picks, nil
}

// Cancel abandons the cart. Cancelling twice is a no-op; cancelling a
// submitted cart is not allowed.
func (c *Cart) Cancel() error {
	switch c.state {
	case Cancelled:
		return nil
	case Submitted:
		return ErrNotBuilding
	}
	c.state = Cancelled
	c.lines = nil
	return nil
}

func (c *Cart) index(productID uint) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}
