package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is one completed checkout. Rows are immutable once created — the
// sales table is an append-only ledger, sales are never updated or deleted.
// PaymentMethod: "cash" | "qrcode" | "credit"
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FinalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt     time.Time       `gorm:"index"`

	Items    []SaleItem `gorm:"foreignKey:SaleID"`
	Customer *Customer  `gorm:"foreignKey:CustomerID"`
}

// SaleItem snapshots the product name and price at sale time. Later catalog
// edits must not change historical sales, so nothing here is read back from
// the products table.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName string          `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
