package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name     string          `json:"name"      validate:"required,min=1,max=120"`
	Category string          `json:"category"  validate:"required"`
	Price    decimal.Decimal `json:"price"     validate:"required"`
	Cost     decimal.Decimal `json:"cost"      validate:"min=0"`
	Stock    int             `json:"stock"     validate:"min=0"`
	MinStock *int            `json:"min_stock" validate:"omitempty,min=0"`
	ImageURL string          `json:"image_url"`
	Barcode  string          `json:"barcode"   validate:"required,min=4,max=18"`
}

type UpdateProductRequest struct {
	Name     *string          `json:"name"      validate:"omitempty,min=1,max=120"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	Cost     *decimal.Decimal `json:"cost"`
	MinStock *int             `json:"min_stock" validate:"omitempty,min=0"`
	ImageURL *string          `json:"image_url"`
	Barcode  *string          `json:"barcode"   validate:"omitempty,min=4,max=18"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Search   string `form:"search"` // matches name or barcode
	Category string `form:"category"`
	Active   string `form:"active"` // "false" = archived, "all" = everything, default active
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"min_stock"`
	ImageURL string          `json:"image_url"`
	Barcode  string          `json:"barcode"`
	Active   bool            `json:"active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
