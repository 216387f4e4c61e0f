package dto

// AdjustStockRequest applies a signed stock delta outside of a sale:
// restocks (type=import) and manual corrections (type=adjustment).
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Delta     int    `json:"delta"      validate:"required"`
	Type      string `json:"type"       validate:"required,oneof=import adjustment"`
	Note      string `json:"note"       validate:"max=200"`
}

type StockHistoryFilter struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Type      string `form:"type"       validate:"omitempty,oneof=sale import adjustment"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type StockHistoryResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Type      string  `json:"type"`
	Quantity  int     `json:"quantity"`
	Note      string  `json:"note,omitempty"`
	SaleID    *string `json:"sale_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type StockHistoryListResponse struct {
	Data  []StockHistoryResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}
