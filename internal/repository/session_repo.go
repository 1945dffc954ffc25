package repository

import (
	"context"
	"time"

	"cashdrawer/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository interface {
	FindByID(ctx context.Context, id uint) (*model.DrawerSession, error)
	FindOpen(ctx context.Context) (*model.DrawerSession, error)
	// CloseIfOpen stamps closed_at only when the session is still open and
	// returns the number of rows changed.
	CloseIfOpen(ctx context.Context, id uint, closedAt time.Time) (int64, error)

	// Used inside transactions: callers must pass the tx instance
	CreateTx(tx *gorm.DB, s *model.DrawerSession) error
	FindOpenTx(tx *gorm.DB) (*model.DrawerSession, error)
	// FindOpenByIDTx loads the session only if it is open, holding a shared
	// row lock (PostgreSQL) so a concurrent close waits for the caller's tx.
	FindOpenByIDTx(tx *gorm.DB, id uint) (*model.DrawerSession, error)

	DB() *gorm.DB
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &sessionRepo{db: db} }

func (r *sessionRepo) FindByID(ctx context.Context, id uint) (*model.DrawerSession, error) {
	var s model.DrawerSession
	err := r.db.WithContext(ctx).Preload("Opener").First(&s, id).Error
	return &s, err
}

func (r *sessionRepo) FindOpen(ctx context.Context) (*model.DrawerSession, error) {
	return r.FindOpenTx(r.db.WithContext(ctx))
}

func (r *sessionRepo) CloseIfOpen(ctx context.Context, id uint, closedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.DrawerSession{}).
		Where("id = ? AND closed_at IS NULL", id).
		Update("closed_at", closedAt)
	return res.RowsAffected, res.Error
}

func (r *sessionRepo) CreateTx(tx *gorm.DB, s *model.DrawerSession) error {
	return tx.Omit(clause.Associations).Create(s).Error
}

func (r *sessionRepo) FindOpenTx(tx *gorm.DB) (*model.DrawerSession, error) {
	var s model.DrawerSession
	err := tx.Where("closed_at IS NULL").Order("id ASC").First(&s).Error
	return &s, err
}

func (r *sessionRepo) FindOpenByIDTx(tx *gorm.DB, id uint) (*model.DrawerSession, error) {
	q := tx.Where("id = ? AND closed_at IS NULL", id)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "SHARE"})
	}
	var s model.DrawerSession
	err := q.First(&s).Error
	return &s, err
}

func (r *sessionRepo) DB() *gorm.DB { return r.db }
