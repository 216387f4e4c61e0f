package repository

import (
	"context"
	"time"

	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailyRevenue is one aggregation row for the revenue-by-day report.
type DailyRevenue struct {
	Day     time.Time
	Revenue decimal.Decimal
}

// SaleRepository is append-only by design: there is no update or delete —
// the sales table is the ledger.
type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	ListRecent(ctx context.Context, limit int) ([]model.Sale, error)
	ListAll(ctx context.Context) ([]model.Sale, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	Count(ctx context.Context) (int64, error)
	RevenueByDay(ctx context.Context, since time.Time) ([]DailyRevenue, error)

	ReplaceAllTx(tx *gorm.DB, sales []model.Sale) error

	// DB exposes the underlying *gorm.DB so the sale service can open the
	// single transaction that commits all four collections together.
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").Preload("Customer").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	}
	if filter.PaymentMethod != "" {
		q = q.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) ListRecent(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").Limit(limit).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListAll(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at ASC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("SUM(final_amount)").Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *saleRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Count(&count).Error
	return count, err
}

func (r *saleRepo) RevenueByDay(ctx context.Context, since time.Time) ([]DailyRevenue, error) {
	var rows []DailyRevenue
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("DATE(created_at) AS day, SUM(final_amount) AS revenue").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) ReplaceAllTx(tx *gorm.DB, sales []model.Sale) error {
	if err := tx.Where("1 = 1").Delete(&model.SaleItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("1 = 1").Delete(&model.Sale{}).Error; err != nil {
		return err
	}
	if len(sales) == 0 {
		return nil
	}
	return tx.Create(&sales).Error
}
