package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a loyalty-program member. Points and TotalSpent only grow
// through sales; manual corrections go through the admin update endpoint.
type Customer struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string          `gorm:"index;not null"`
	Phone      string          `gorm:"not null"`
	Points     int             `gorm:"not null;default:0"`
	TotalSpent decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Active     bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
