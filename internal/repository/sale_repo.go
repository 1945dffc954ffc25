package repository

import (
	"context"

	"cashdrawer/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionTotals is the aggregate of every sale recorded in a drawer session.
type SessionTotals struct {
	SaleCount  int64
	GrossTotal decimal.Decimal
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
}

// EmployeeTotals is one row of the per-employee breakdown.
type EmployeeTotals struct {
	EmployeeID    uint
	EmployeeName  string
	SaleCount     int64
	GrossSubtotal decimal.Decimal
}

type SaleRepository interface {
	// CreateTx inserts the sale row and then all of its items.
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uint) (*model.Sale, error)
	TotalsBySession(ctx context.Context, sessionID uint) (*SessionTotals, error)
	// TotalsByEmployee groups the session's sales by seller, ascending employee id.
	TotalsByEmployee(ctx context.Context, sessionID uint) ([]EmployeeTotals, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	if err := tx.Omit(clause.Associations).Create(s).Error; err != nil {
		return err
	}
	for i := range s.Items {
		s.Items[i].SaleID = s.ID
	}
	if len(s.Items) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&s.Items).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Preload("Employee").
		First(&s, id).Error
	return &s, err
}

func (r *saleRepo) TotalsBySession(ctx context.Context, sessionID uint) (*SessionTotals, error) {
	var t SessionTotals
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select(`COUNT(id) AS sale_count,
			COALESCE(SUM(gross_total), 0) AS gross_total,
			COALESCE(SUM(net_total), 0) AS net_total,
			COALESCE(SUM(tax_total), 0) AS tax_total`).
		Where("session_id = ?", sessionID).
		Scan(&t).Error
	return &t, err
}

func (r *saleRepo) TotalsByEmployee(ctx context.Context, sessionID uint) ([]EmployeeTotals, error) {
	var rows []EmployeeTotals
	err := r.db.WithContext(ctx).Table("sales AS s").
		Select(`e.id AS employee_id, e.name AS employee_name,
			COUNT(s.id) AS sale_count, COALESCE(SUM(s.gross_total), 0) AS gross_subtotal`).
		Joins("JOIN employees e ON e.id = s.employee_id").
		Where("s.session_id = ?", sessionID).
		Group("e.id, e.name").
		Order("e.id ASC").
		Scan(&rows).Error
	return rows, err
}
