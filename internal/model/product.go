package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. StockQuantity is only decremented by the sale
// engine inside its transaction and never goes below zero.
type Product struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"index;not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
