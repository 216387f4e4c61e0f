package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. Stock is only mutated through the sale
// processor or an inventory adjustment, never by plain catalog edits.
type Product struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string          `gorm:"index;not null"`
	Category string          `gorm:"index;not null"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Cost     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock    int             `gorm:"not null;default:0"`
	// MinStock is the low-stock alert threshold shown on the dashboard.
	MinStock  int `gorm:"not null;default:10"`
	ImageURL  string
	Barcode   string `gorm:"uniqueIndex;not null"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
