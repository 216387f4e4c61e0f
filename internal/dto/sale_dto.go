package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CartItemRequest is one line of an in-progress sale. The cart is transient:
// it only ever exists as this request payload, never in the store.
type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type ProcessSaleRequest struct {
	Items         []CartItemRequest `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash qrcode credit"`
	// Discount defaults to zero; kept independently settable for cash-tender
	// reconciliation flows.
	Discount   decimal.Decimal `json:"discount"    validate:"min=0"`
	CustomerID *string         `json:"customer_id" validate:"omitempty,uuid"`
	// CashReceived, when present on cash payments, yields Change in the
	// response. It is never stored.
	CashReceived *decimal.Decimal `json:"cash_received"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

type SaleFilter struct {
	Date          string `form:"date"` // YYYY-MM-DD; empty = all
	PaymentMethod string `form:"payment_method" validate:"omitempty,oneof=cash qrcode credit"`
	CustomerID    string `form:"customer_id"    validate:"omitempty,uuid"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	Items         []SaleItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Discount      decimal.Decimal    `json:"discount"`
	FinalAmount   decimal.Decimal    `json:"final_amount"`
	PaymentMethod string             `json:"payment_method"`
	CustomerID    *string            `json:"customer_id,omitempty"`
	// Change is only set when cash_received was sent; computed, never stored.
	Change    *decimal.Decimal `json:"change,omitempty"`
	CreatedAt string           `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
