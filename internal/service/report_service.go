package service

import (
	"context"
	"io"
	"time"

	"github.com/paridu/pos-backend/internal/apperr"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/export"
	"github.com/paridu/pos-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportService interface {
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
	RevenueSeries(ctx context.Context, days int) ([]dto.RevenuePoint, error)
	ExportSalesCSV(ctx context.Context, w io.Writer) error
}

type reportService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

func NewReportService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) ReportService {
	return &reportService{saleRepo: saleRepo, productRepo: productRepo}
}

func (s *reportService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	revenue, err := s.saleRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	count, err := s.saleRepo.Count(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	lowStock, err := s.productRepo.CountLowStock(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return &dto.SummaryResponse{
		TotalRevenue:  revenue,
		SaleCount:     count,
		LowStockCount: lowStock,
	}, nil
}

// RevenueSeries returns one point per calendar day for the last `days` days,
// zero-filling days without sales so the chart axis stays continuous.
func (s *reportService) RevenueSeries(ctx context.Context, days int) ([]dto.RevenuePoint, error) {
	if days < 1 {
		days = 7
	}
	if days > 365 {
		days = 365
	}

	since := time.Now().AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)
	rows, err := s.saleRepo.RevenueByDay(ctx, since)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	byDay := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		byDay[r.Day.Format("2006-01-02")] = r.Revenue
	}

	series := make([]dto.RevenuePoint, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		revenue, ok := byDay[day]
		if !ok {
			revenue = decimal.Zero
		}
		series = append(series, dto.RevenuePoint{Date: day, Revenue: revenue})
	}
	return series, nil
}

func (s *reportService) ExportSalesCSV(ctx context.Context, w io.Writer) error {
	sales, err := s.saleRepo.ListAll(ctx)
	if err != nil {
		return apperr.Persistence(err)
	}
	if err := export.WriteSalesCSV(w, sales); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}
