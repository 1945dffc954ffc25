package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string          `json:"name"           validate:"required,min=1,max=120"`
	UnitPrice     decimal.Decimal `json:"unit_price"     validate:"min=0"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
}

type UpdatePriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
}

// PriceLookupResponse is the cached name/price view used by the price check
// endpoint. Stock is deliberately absent: it changes on every sale.
type PriceLookupResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
