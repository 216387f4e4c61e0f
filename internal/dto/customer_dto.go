package dto

import "github.com/shopspring/decimal"

type CreateCustomerRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=120"`
	Phone string `json:"phone" validate:"required,min=6,max=20"`
	// Points may be seeded when migrating members from a paper ledger.
	Points int `json:"points" validate:"min=0"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=1,max=120"`
	Phone *string `json:"phone" validate:"omitempty,min=6,max=20"`
	// Manual point corrections are an admin-only escape hatch; normal accrual
	// happens exclusively in the sale processor.
	Points *int `json:"points" validate:"omitempty,min=0"`
}

type CustomerFilter struct {
	Search string `form:"search"` // matches name or phone
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type CustomerResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Points     int             `json:"points"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
