package repository

import (
	"context"

	"cashdrawer/internal/model"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(ctx context.Context, e *model.Employee) error
	FindByDocument(ctx context.Context, document string) (*model.Employee, error)
	FindByID(ctx context.Context, id uint) (*model.Employee, error)
}

type employeeRepo struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository { return &employeeRepo{db: db} }

func (r *employeeRepo) Create(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *employeeRepo) FindByDocument(ctx context.Context, document string) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).Where("document = ?", document).First(&e).Error
	return &e, err
}

func (r *employeeRepo) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}
