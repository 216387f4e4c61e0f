package dto

import (
	"encoding/json"

	"github.com/paridu/pos-backend/internal/model"
)

// BackupDocument serializes the four collections into one JSON document.
// Restore validates RawBackupDocument first, then unmarshals into this shape.
type BackupDocument struct {
	Products     []model.Product      `json:"products"`
	Customers    []model.Customer     `json:"customers"`
	Sales        []model.Sale         `json:"sales"`
	StockHistory []model.StockHistory `json:"stock_history"`
}

// RawBackupDocument is the shape-check stage of restore: every top-level key
// must be present and must be a JSON array, otherwise the document is
// rejected before anything is touched.
type RawBackupDocument struct {
	Products     json.RawMessage `json:"products"`
	Customers    json.RawMessage `json:"customers"`
	Sales        json.RawMessage `json:"sales"`
	StockHistory json.RawMessage `json:"stock_history"`
}
