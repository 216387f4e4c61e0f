package service_test

import (
	"context"
	"testing"

	"github.com/paridu/pos-backend/internal/apperr"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func TestCreateProduct_DefaultsMinStock(t *testing.T) {
	repo := newStubProductRepo()
	history := &stubHistoryRepo{}
	svc := service.NewProductService(repo, history)

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Iced Coffee",
		Category: "Drinks",
		Price:    decimal.NewFromInt(55),
		Cost:     decimal.NewFromInt(20),
		Stock:    50,
		Barcode:  "885001",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.MinStock)
	assert.True(t, resp.Active)

	// Opening stock shows up in the movement ledger
	require.Len(t, history.entries, 1)
	assert.Equal(t, "import", history.entries[0].Type)
	assert.Equal(t, 50, history.entries[0].Quantity)
	assert.Equal(t, "Initial stock", history.entries[0].Note)
}

func TestCreateProduct_DuplicateBarcode(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "Iced Coffee", "885001", 55, 50, 10)
	svc := service.NewProductService(repo, &stubHistoryRepo{})

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Other Coffee",
		Category: "Drinks",
		Price:    decimal.NewFromInt(60),
		Barcode:  "885001",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUpdateProduct_StockUntouchable(t *testing.T) {
	repo := newStubProductRepo()
	p := seedProduct(repo, "Iced Coffee", "885001", 55, 50, 10)
	svc := service.NewProductService(repo, &stubHistoryRepo{})

	newPrice := decimal.NewFromInt(60)
	resp, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "60", resp.Price.String())
	// Catalog edits never touch stock
	assert.Equal(t, 50, resp.Stock)
}

func TestArchiveProduct_LeavesBarcodeFree(t *testing.T) {
	repo := newStubProductRepo()
	p := seedProduct(repo, "Seasonal Blend", "885099", 60, 10, 5)
	svc := service.NewProductService(repo, &stubHistoryRepo{})

	require.NoError(t, svc.Archive(context.Background(), p.ID))
	assert.False(t, repo.products[p.ID].Active)

	// Archived products no longer resolve by barcode
	_, err := svc.GetByBarcode(context.Background(), "885099")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCustomerLifecycle(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := service.NewCustomerService(repo)

	created, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "Somchai Jaidee",
		Phone: "0812345678",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created.Points)
	assert.True(t, created.TotalSpent.IsZero())

	newName := "Somchai J."
	updated, err := svc.Update(context.Background(), mustUUID(t, created.ID), dto.UpdateCustomerRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Somchai J.", updated.Name)

	require.NoError(t, svc.Archive(context.Background(), mustUUID(t, created.ID)))
	_, err = svc.Get(context.Background(), mustUUID(t, created.ID))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
