package repository

import (
	"context"

	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error)
	ListAll(ctx context.Context) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	Archive(ctx context.Context, id uuid.UUID) error

	// Used inside the sale transaction for loyalty accrual.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Customer, error)
	UpdateTx(tx *gorm.DB, c *model.Customer) error

	ReplaceAllTx(tx *gorm.DB, customers []model.Customer) error
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("active = true").First(&c, id).Error
	return &c, err
}

func (r *customerRepo) List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Customer{}).Where("active = true")
	if filter.Search != "" {
		q = q.Where("name ILIKE ? OR phone LIKE ?", "%"+filter.Search+"%", filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&customers).Error
	return customers, total, err
}

// ListAll includes archived customers; it feeds the backup exporter.
func (r *customerRepo) ListAll(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) Archive(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", id).Update("active", false).Error
}

func (r *customerRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := tx.Where("active = true").First(&c, id).Error
	return &c, err
}

func (r *customerRepo) UpdateTx(tx *gorm.DB, c *model.Customer) error {
	return tx.Save(c).Error
}

func (r *customerRepo) ReplaceAllTx(tx *gorm.DB, customers []model.Customer) error {
	if err := tx.Where("1 = 1").Delete(&model.Customer{}).Error; err != nil {
		return err
	}
	if len(customers) == 0 {
		return nil
	}
	return tx.Create(&customers).Error
}
