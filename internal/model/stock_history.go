package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement types.
const (
	StockMoveSale       = "sale"
	StockMoveImport     = "import"
	StockMoveAdjustment = "adjustment"
)

// StockHistory records every stock change on a product. One entry is created
// per sale line, restock or manual correction. Entries are never modified or
// deleted.
type StockHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(20);not null"` // sale | import | adjustment
	Quantity  int       `gorm:"not null"`                  // positive = in, negative = out
	Note      string
	// SaleID links "sale" entries back to the sale that caused them.
	SaleID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's pluralization (stock_histories → stock_history).
func (StockHistory) TableName() string { return "stock_history" }
