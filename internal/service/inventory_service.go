package service

import (
	"context"
	"errors"
	"time"

	"github.com/paridu/pos-backend/internal/apperr"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/model"
	"github.com/paridu/pos-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	AdjustStock(ctx context.Context, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
	ListHistory(ctx context.Context, filter dto.StockHistoryFilter) (*dto.StockHistoryListResponse, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	historyRepo repository.StockHistoryRepository
}

func NewInventoryService(
	productRepo repository.ProductRepository,
	historyRepo repository.StockHistoryRepository,
) InventoryService {
	return &inventoryService{productRepo: productRepo, historyRepo: historyRepo}
}

// AdjustStock applies a signed delta outside of a sale and records the
// movement in the same transaction. Sale decrements never come through
// here; those are written by the sale processor with type "sale".
func (s *inventoryService) AdjustStock(ctx context.Context, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.Validationf("invalid product_id %q", req.ProductID)
	}
	if req.Delta == 0 {
		return nil, apperr.Validationf("delta cannot be zero")
	}

	p, err := s.productRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, apperr.NotFoundf("product %s", req.ProductID)
	}
	if p.Stock+req.Delta < 0 {
		return nil, apperr.Validationf("adjustment would leave %q with negative stock (%d%+d)",
			p.Name, p.Stock, req.Delta)
	}

	txErr := runTx(ctx, s.productRepo.DB(), func(tx *gorm.DB) error {
		if err := s.productRepo.UpdateStockTx(tx, pid, req.Delta); err != nil {
			return err
		}
		entry := &model.StockHistory{
			ProductID: pid,
			Type:      req.Type,
			Quantity:  req.Delta,
			Note:      req.Note,
		}
		return s.historyRepo.CreateTx(tx, entry)
	})
	if txErr != nil {
		if errors.Is(txErr, repository.ErrInsufficientStock) {
			return nil, apperr.Validationf("adjustment would leave %q with negative stock", p.Name)
		}
		return nil, apperr.Persistence(txErr)
	}

	p.Stock += req.Delta
	return productToResponse(p), nil
}

func (s *inventoryService) ListHistory(ctx context.Context, filter dto.StockHistoryFilter) (*dto.StockHistoryListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	entries, total, err := s.historyRepo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	items := make([]dto.StockHistoryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, *historyToResponse(&entries[i]))
	}
	return &dto.StockHistoryListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func historyToResponse(h *model.StockHistory) *dto.StockHistoryResponse {
	var saleID *string
	if h.SaleID != nil {
		sid := h.SaleID.String()
		saleID = &sid
	}
	return &dto.StockHistoryResponse{
		ID:        h.ID.String(),
		ProductID: h.ProductID.String(),
		Type:      h.Type,
		Quantity:  h.Quantity,
		Note:      h.Note,
		SaleID:    saleID,
		CreatedAt: h.CreatedAt.UTC().Format(time.RFC3339),
	}
}
