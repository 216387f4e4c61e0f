package repository

import (
	"context"
	"errors"

	"github.com/paridu/pos-backend/internal/model"

	"gorm.io/gorm"
)

type SettingRepository interface {
	// Get returns the stored value or fallback when the key is absent.
	Get(ctx context.Context, key, fallback string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type settingRepo struct{ db *gorm.DB }

func NewSettingRepository(db *gorm.DB) SettingRepository { return &settingRepo{db: db} }

func (r *settingRepo) Get(ctx context.Context, key, fallback string) (string, error) {
	var s model.Setting
	err := r.db.WithContext(ctx).First(&s, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	return s.Value, nil
}

func (r *settingRepo) Set(ctx context.Context, key, value string) error {
	s := model.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).Save(&s).Error
}
