package service

import (
	"context"
	"strconv"

	"github.com/paridu/pos-backend/internal/apperr"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/model"
	"github.com/paridu/pos-backend/internal/repository"
)

type SettingsService interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	repo repository.SettingRepository
}

func NewSettingsService(repo repository.SettingRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	storeName, err := s.repo.Get(ctx, model.SettingStoreName, "My Store")
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	webhookURL, err := s.repo.Get(ctx, model.SettingSheetWebhookURL, "")
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	autoSync, err := s.repo.Get(ctx, model.SettingAutoSync, "false")
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return &dto.SettingsResponse{
		StoreName:       storeName,
		SheetWebhookURL: webhookURL,
		AutoSync:        autoSync == "true",
	}, nil
}

func (s *settingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if req.AutoSync != nil && *req.AutoSync {
		// Auto-sync without a webhook would silently drop every sale export.
		current, err := s.repo.Get(ctx, model.SettingSheetWebhookURL, "")
		if err != nil {
			return nil, apperr.Persistence(err)
		}
		pending := current
		if req.SheetWebhookURL != nil {
			pending = *req.SheetWebhookURL
		}
		if pending == "" {
			return nil, apperr.Validationf("auto_sync requires a sheet webhook URL")
		}
	}

	if req.StoreName != nil {
		if err := s.repo.Set(ctx, model.SettingStoreName, *req.StoreName); err != nil {
			return nil, apperr.Persistence(err)
		}
	}
	if req.SheetWebhookURL != nil {
		if err := s.repo.Set(ctx, model.SettingSheetWebhookURL, *req.SheetWebhookURL); err != nil {
			return nil, apperr.Persistence(err)
		}
	}
	if req.AutoSync != nil {
		if err := s.repo.Set(ctx, model.SettingAutoSync, strconv.FormatBool(*req.AutoSync)); err != nil {
			return nil, apperr.Persistence(err)
		}
	}
	return s.Get(ctx)
}
