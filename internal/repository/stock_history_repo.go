package repository

import (
	"context"

	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/model"

	"gorm.io/gorm"
)

type StockHistoryRepository interface {
	Create(ctx context.Context, h *model.StockHistory) error
	CreateTx(tx *gorm.DB, h *model.StockHistory) error
	List(ctx context.Context, filter dto.StockHistoryFilter) ([]model.StockHistory, int64, error)
	ListAll(ctx context.Context) ([]model.StockHistory, error)
	ReplaceAllTx(tx *gorm.DB, entries []model.StockHistory) error
}

type stockHistoryRepo struct{ db *gorm.DB }

func NewStockHistoryRepository(db *gorm.DB) StockHistoryRepository {
	return &stockHistoryRepo{db: db}
}

func (r *stockHistoryRepo) Create(ctx context.Context, h *model.StockHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *stockHistoryRepo) CreateTx(tx *gorm.DB, h *model.StockHistory) error {
	return tx.Create(h).Error
}

func (r *stockHistoryRepo) List(ctx context.Context, filter dto.StockHistoryFilter) ([]model.StockHistory, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockHistory{})
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var entries []model.StockHistory
	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&entries).Error
	return entries, total, err
}

func (r *stockHistoryRepo) ListAll(ctx context.Context) ([]model.StockHistory, error) {
	var entries []model.StockHistory
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *stockHistoryRepo) ReplaceAllTx(tx *gorm.DB, entries []model.StockHistory) error {
	if err := tx.Where("1 = 1").Delete(&model.StockHistory{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return tx.Create(&entries).Error
}
