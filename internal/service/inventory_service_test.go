package service_test

import (
	"context"
	"testing"

	"github.com/paridu/pos-backend/internal/apperr"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/model"
	"github.com/paridu/pos-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInventorySvc() (service.InventoryService, *stubProductRepo, *stubHistoryRepo) {
	productRepo := newStubProductRepo()
	historyRepo := &stubHistoryRepo{}
	return service.NewInventoryService(productRepo, historyRepo), productRepo, historyRepo
}

func TestAdjustStock_Restock(t *testing.T) {
	svc, productRepo, historyRepo := buildInventorySvc()
	p := seedProduct(productRepo, "Butter Croissant", "885003", 45, 12, 10)

	resp, err := svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Delta:     24,
		Type:      model.StockMoveImport,
		Note:      "weekly delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, 36, resp.Stock)
	assert.Equal(t, 36, productRepo.products[p.ID].Stock)

	require.Len(t, historyRepo.entries, 1)
	assert.Equal(t, model.StockMoveImport, historyRepo.entries[0].Type)
	assert.Equal(t, 24, historyRepo.entries[0].Quantity)
	assert.Equal(t, "weekly delivery", historyRepo.entries[0].Note)
	assert.Nil(t, historyRepo.entries[0].SaleID)
}

func TestAdjustStock_NegativeCorrection(t *testing.T) {
	svc, productRepo, _ := buildInventorySvc()
	p := seedProduct(productRepo, "Chocolate Cake", "885004", 85, 8, 10)

	resp, err := svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Delta:     -2,
		Type:      model.StockMoveAdjustment,
		Note:      "spoilage",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Stock)
}

func TestAdjustStock_WouldGoNegative(t *testing.T) {
	svc, productRepo, historyRepo := buildInventorySvc()
	p := seedProduct(productRepo, "Matcha Green Tea", "885002", 65, 3, 10)

	_, err := svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Delta:     -5,
		Type:      model.StockMoveAdjustment,
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, 3, productRepo.products[p.ID].Stock)
	assert.Empty(t, historyRepo.entries)
}

func TestAdjustStock_ZeroDelta(t *testing.T) {
	svc, productRepo, _ := buildInventorySvc()
	p := seedProduct(productRepo, "Drinking Water", "885005", 15, 100, 10)

	_, err := svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Delta:     0,
		Type:      model.StockMoveAdjustment,
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAdjustStock_UnknownProduct(t *testing.T) {
	svc, _, _ := buildInventorySvc()
	_, err := svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: uuid.NewString(),
		Delta:     5,
		Type:      model.StockMoveImport,
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListHistory_FiltersByType(t *testing.T) {
	svc, productRepo, historyRepo := buildInventorySvc()
	p := seedProduct(productRepo, "Iced Coffee", "885001", 55, 50, 10)

	historyRepo.entries = []model.StockHistory{
		{ID: uuid.New(), ProductID: p.ID, Type: model.StockMoveSale, Quantity: -2},
		{ID: uuid.New(), ProductID: p.ID, Type: model.StockMoveImport, Quantity: 30},
	}

	resp, err := svc.ListHistory(context.Background(), dto.StockHistoryFilter{Type: model.StockMoveImport})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 30, resp.Data[0].Quantity)
}
