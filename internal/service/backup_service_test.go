package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/paridu/pos-backend/internal/apperr"
	"github.com/paridu/pos-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBackupSvc() (service.BackupService, *stubProductRepo, *stubCustomerRepo, *stubSaleRepo, *stubHistoryRepo) {
	productRepo := newStubProductRepo()
	customerRepo := newStubCustomerRepo()
	saleRepo := newStubSaleRepo()
	historyRepo := &stubHistoryRepo{}
	svc := service.NewBackupService(productRepo, customerRepo, saleRepo, historyRepo)
	return svc, productRepo, customerRepo, saleRepo, historyRepo
}

func TestBackupRoundTrip(t *testing.T) {
	svc, productRepo, customerRepo, _, _ := buildBackupSvc()
	seedProduct(productRepo, "Iced Coffee", "885001", 55, 50, 10)
	seedCustomer(customerRepo, "Somchai Jaidee", "0812345678", 150, 1500)

	doc, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Products, 1)
	assert.Len(t, doc.Customers, 1)
	assert.NotNil(t, doc.Sales)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	// Restore into a fresh store
	fresh, freshProducts, freshCustomers, _, _ := buildBackupSvc()
	require.NoError(t, fresh.Restore(context.Background(), raw))
	assert.Len(t, freshProducts.products, 1)
	assert.Len(t, freshCustomers.customers, 1)
}

func TestRestore_MissingCollectionLeavesDataIntact(t *testing.T) {
	svc, productRepo, _, _, _ := buildBackupSvc()
	seedProduct(productRepo, "Iced Coffee", "885001", 55, 50, 10)

	// No "sales" key — not a valid store dump
	raw := []byte(`{"products": [], "customers": [], "stock_history": []}`)
	err := svc.Restore(context.Background(), raw)
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.ErrorContains(t, err, "sales")

	// Existing data untouched
	assert.Len(t, productRepo.products, 1)
}

func TestRestore_NonArrayCollection(t *testing.T) {
	svc, _, _, _, _ := buildBackupSvc()
	raw := []byte(`{"products": {}, "customers": [], "sales": [], "stock_history": []}`)
	err := svc.Restore(context.Background(), raw)
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.ErrorContains(t, err, "products")
}

func TestRestore_MalformedJSON(t *testing.T) {
	svc, _, _, _, _ := buildBackupSvc()
	err := svc.Restore(context.Background(), []byte(`{"products": [`))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRestore_EmptyCollectionsAccepted(t *testing.T) {
	svc, productRepo, _, _, _ := buildBackupSvc()
	seedProduct(productRepo, "Iced Coffee", "885001", 55, 50, 10)

	// A valid dump with all-empty arrays wipes the store.
	raw := []byte(`{"products": [], "customers": [], "sales": [], "stock_history": []}`)
	require.NoError(t, svc.Restore(context.Background(), raw))
	assert.Empty(t, productRepo.products)
}
