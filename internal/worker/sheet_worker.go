package worker

// sheet_worker.go
// Processes spreadsheet export jobs from QueueSheetSync.
// Flattens the committed sale into one row per item and posts the batch to
// the store's sheet webhook with exponential backoff (max 3 retries).
// Failures never touch the sale itself.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/paridu/pos-backend/internal/infra"
	"github.com/paridu/pos-backend/internal/model"
	"github.com/paridu/pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SheetSyncPayload is the job envelope sent to QueueSheetSync.
type SheetSyncPayload struct {
	SaleID string `json:"sale_id"`
}

// SheetSyncWorker exports committed sales to the configured sheet webhook.
// Whether to sync at all is a store setting read at processing time, so
// flipping auto-sync off takes effect without draining the queue.
type SheetSyncWorker struct {
	sheetClient *infra.SheetClient
	saleRepo    repository.SaleRepository
	settingRepo repository.SettingRepository
	rdb         *redis.Client
}

func NewSheetSyncWorker(
	sheetClient *infra.SheetClient,
	saleRepo repository.SaleRepository,
	settingRepo repository.SettingRepository,
	rdb *redis.Client,
) *SheetSyncWorker {
	return &SheetSyncWorker{
		sheetClient: sheetClient,
		saleRepo:    saleRepo,
		settingRepo: settingRepo,
		rdb:         rdb,
	}
}

// Process handles a single sheet-sync job:
//  1. Parse SheetSyncPayload from the job envelope
//  2. Check the auto_sync setting and webhook URL — skip silently if off
//  3. Fetch the sale with its items
//  4. POST one row per item to the webhook with exponential backoff (max 3 retries)
//  5. On final failure, move the job to the DLQ
func (w *SheetSyncWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload SheetSyncPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("sheet_worker: invalid payload")
		return
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("sheet_worker: invalid sale_id")
		return
	}

	autoSync, err := w.settingRepo.Get(ctx, model.SettingAutoSync, "false")
	if err != nil {
		log.Error().Err(err).Msg("sheet_worker: failed to read auto_sync setting")
		return
	}
	webhookURL, err := w.settingRepo.Get(ctx, model.SettingSheetWebhookURL, "")
	if err != nil {
		log.Error().Err(err).Msg("sheet_worker: failed to read webhook setting")
		return
	}
	if autoSync != "true" || webhookURL == "" {
		log.Debug().Str("sale_id", payload.SaleID).Msg("sheet_worker: auto-sync disabled, skipping")
		return
	}

	sale, err := w.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("sheet_worker: sale not found")
		return
	}

	customerName := "General Customer"
	if sale.Customer != nil {
		customerName = sale.Customer.Name
	}
	rows := make([]infra.SheetRow, 0, len(sale.Items))
	for _, item := range sale.Items {
		rows = append(rows, infra.SheetRow{
			SaleID:        sale.ID.String(),
			Date:          sale.CreatedAt.Format("2006-01-02"),
			Time:          sale.CreatedAt.Format("15:04:05"),
			CustomerName:  customerName,
			PaymentMethod: sale.PaymentMethod,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice.StringFixed(2),
			Subtotal:      item.Subtotal.StringFixed(2),
			Discount:      sale.Discount.StringFixed(2),
			FinalAmount:   sale.FinalAmount.StringFixed(2),
		})
	}

	syncErr := withRetry(ctx, 3, func(attempt int) error {
		if err := w.sheetClient.AppendRows(ctx, webhookURL, rows); err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("sale_id", payload.SaleID).
				Msg("sheet_worker: webhook attempt failed, retrying")
			return err
		}
		return nil
	})
	if syncErr != nil {
		log.Error().Err(syncErr).Str("sale_id", payload.SaleID).Msg("sheet_worker: webhook failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueSheetSync, "sheet_sync", raw,
			fmt.Sprintf("webhook failed after 3 retries: %v", syncErr), 3)
		return
	}

	log.Info().Str("sale_id", payload.SaleID).Msg("sheet_worker: sale exported")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
