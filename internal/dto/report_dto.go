package dto

import "github.com/shopspring/decimal"

// SummaryResponse carries the dashboard KPI cards.
type SummaryResponse struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	SaleCount     int64           `json:"sale_count"`
	LowStockCount int64           `json:"low_stock_count"`
}

// RevenuePoint is one day of the revenue chart series.
type RevenuePoint struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
}
