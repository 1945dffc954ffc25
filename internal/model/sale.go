package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one completed checkout. GrossTotal is tax-inclusive; NetTotal and
// TaxTotal are derived from it with the configured flat rate.
// Sales are immutable once committed.
type Sale struct {
	ID         uint            `gorm:"primaryKey"`
	SessionID  uint            `gorm:"not null;index"`
	EmployeeID uint            `gorm:"not null;index"`
	GrossTotal decimal.Decimal `gorm:"type:decimal(20,10);not null"`
	NetTotal   decimal.Decimal `gorm:"type:decimal(20,10);not null"`
	TaxTotal   decimal.Decimal `gorm:"type:decimal(20,10);not null"`
	SoldAt     time.Time       `gorm:"not null"`

	Items    []SaleItem     `gorm:"foreignKey:SaleID"`
	Session  *DrawerSession `gorm:"foreignKey:SessionID"`
	Employee *Employee      `gorm:"foreignKey:EmployeeID"`
}

// SaleItem is a line of a Sale. UnitPrice is the price captured when the
// sale was made, so later catalog price changes never alter it.
type SaleItem struct {
	ID        uint            `gorm:"primaryKey"`
	SaleID    uint            `gorm:"not null;index"`
	ProductID uint            `gorm:"not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

// Subtotal is Quantity × UnitPrice.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AllModels lists every persisted type, in dependency order, for AutoMigrate.
func AllModels() []any {
	return []any{
		&Employee{},
		&Product{},
		&DrawerSession{},
		&Sale{},
		&SaleItem{},
	}
}
