package service_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/paridu/pos-backend/internal/model"
	"github.com/paridu/pos-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildReportSvc() (service.ReportService, *stubSaleRepo, *stubProductRepo) {
	saleRepo := newStubSaleRepo()
	productRepo := newStubProductRepo()
	return service.NewReportService(saleRepo, productRepo), saleRepo, productRepo
}

func addSale(r *stubSaleRepo, amount float64, method string, at time.Time, items ...model.SaleItem) *model.Sale {
	s := &model.Sale{
		ID:            uuid.New(),
		TotalAmount:   decimal.NewFromFloat(amount),
		FinalAmount:   decimal.NewFromFloat(amount),
		PaymentMethod: method,
		CreatedAt:     at,
		Items:         items,
	}
	r.sales[s.ID] = s
	return s
}

func TestSummary(t *testing.T) {
	svc, saleRepo, productRepo := buildReportSvc()
	addSale(saleRepo, 110, "cash", time.Now())
	addSale(saleRepo, 45, "qrcode", time.Now())
	seedProduct(productRepo, "Chocolate Cake", "885004", 85, 8, 10) // 8 ≤ 10 → low

	resp, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "155", resp.TotalRevenue.String())
	assert.Equal(t, int64(2), resp.SaleCount)
	assert.Equal(t, int64(1), resp.LowStockCount)
}

func TestRevenueSeries_ZeroFillsQuietDays(t *testing.T) {
	svc, saleRepo, _ := buildReportSvc()
	addSale(saleRepo, 200, "cash", time.Now())

	series, err := svc.RevenueSeries(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, series, 7)

	// Today (last point) carries the revenue, earlier days are zero
	last := series[len(series)-1]
	assert.Equal(t, time.Now().Format("2006-01-02"), last.Date)
	assert.Equal(t, "200", last.Revenue.String())
	for _, point := range series[:len(series)-1] {
		assert.True(t, point.Revenue.IsZero(), "day %s should be zero", point.Date)
	}
}

func TestExportSalesCSV(t *testing.T) {
	svc, saleRepo, _ := buildReportSvc()
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	s := addSale(saleRepo, 110, "cash", at,
		model.SaleItem{ProductID: uuid.New(), ProductName: "Iced Coffee", Quantity: 2},
	)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportSalesCSV(context.Background(), &buf))
	out := buf.String()

	// UTF-8 BOM first so spreadsheet apps detect the encoding
	assert.True(t, strings.HasPrefix(out, "\uFEFF"))

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\uFEFF")), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,date,time,final_amount,payment_method,item_count", lines[0])
	assert.Equal(t, s.ID.String()+",2026-03-14,09:30:00,110.00,cash,1", lines[1])
}
