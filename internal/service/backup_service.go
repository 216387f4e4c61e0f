package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/paridu/pos-backend/internal/apperr"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/repository"

	"gorm.io/gorm"
)

type BackupService interface {
	Export(ctx context.Context) (*dto.BackupDocument, error)
	Restore(ctx context.Context, raw []byte) error
}

type backupService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	historyRepo  repository.StockHistoryRepository
}

func NewBackupService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	historyRepo repository.StockHistoryRepository,
) BackupService {
	return &backupService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		historyRepo:  historyRepo,
	}
}

// Export snapshots the four collections into one document. Reads are not
// wrapped in a transaction; the store is single-terminal and the dump is
// advisory, not a consistency point.
func (s *backupService) Export(ctx context.Context) (*dto.BackupDocument, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	customers, err := s.customerRepo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	sales, err := s.saleRepo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	history, err := s.historyRepo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return &dto.BackupDocument{
		Products:     products,
		Customers:    customers,
		Sales:        sales,
		StockHistory: history,
	}, nil
}

// Restore replaces the entire store state with the uploaded document.
// The document is shape-checked before anything is touched, and the swap
// itself is one transaction: a failure mid-restore leaves the previous
// state fully intact.
func (s *backupService) Restore(ctx context.Context, raw []byte) error {
	doc, err := parseBackup(raw)
	if err != nil {
		return err
	}

	// Wipe child tables first, then load parent-to-child so foreign keys
	// hold at every step.
	txErr := runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		if err := s.historyRepo.ReplaceAllTx(tx, nil); err != nil {
			return err
		}
		if err := s.saleRepo.ReplaceAllTx(tx, nil); err != nil {
			return err
		}
		if err := s.productRepo.ReplaceAllTx(tx, doc.Products); err != nil {
			return err
		}
		if err := s.customerRepo.ReplaceAllTx(tx, doc.Customers); err != nil {
			return err
		}
		if err := s.saleRepo.ReplaceAllTx(tx, doc.Sales); err != nil {
			return err
		}
		return s.historyRepo.ReplaceAllTx(tx, doc.StockHistory)
	})
	if txErr != nil {
		return apperr.Persistence(txErr)
	}
	return nil
}

// parseBackup rejects anything that is not a JSON object carrying all four
// collections as arrays. A dump from a different app, or a truncated file,
// must never wipe the store.
func parseBackup(raw []byte) (*dto.BackupDocument, error) {
	var shape dto.RawBackupDocument
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, apperr.Validationf("backup is not valid JSON: %v", err)
	}
	for name, section := range map[string]json.RawMessage{
		"products":      shape.Products,
		"customers":     shape.Customers,
		"sales":         shape.Sales,
		"stock_history": shape.StockHistory,
	} {
		if err := requireArray(name, section); err != nil {
			return nil, err
		}
	}

	var doc dto.BackupDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperr.Validationf("backup records are malformed: %v", err)
	}
	return &doc, nil
}

func requireArray(name string, section json.RawMessage) error {
	if len(section) == 0 {
		return apperr.Validationf("backup is missing the %q collection", name)
	}
	trimmed := bytes.TrimSpace(section)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("%w: backup collection %q must be an array", apperr.ErrValidation, name)
	}
	return nil
}
