package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Pick is one (product, quantity) request from the cart.
type Pick struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// SellRequest carries no validate tags: a missing session, an empty cart and
// a bad quantity are domain failures the sale engine reports itself.
type SellRequest struct {
	SessionID uint   `json:"session_id"`
	Picks     []Pick `json:"picks"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID uint            `json:"product_id"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID            uint               `json:"id"`
	SessionID     uint               `json:"session_id"`
	EmployeeID    uint               `json:"employee_id"`
	Items         []SaleItemResponse `json:"items"`
	GrossTotal    decimal.Decimal    `json:"gross_total"`
	NetOfTaxTotal decimal.Decimal    `json:"net_of_tax_total"`
	TaxTotal      decimal.Decimal    `json:"tax_total"`
	SoldAt        time.Time          `json:"sold_at"`
}
