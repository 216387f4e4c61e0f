package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SheetRow mirrors the column layout of the spreadsheet export: one row per
// sale item, so the sheet side can pivot by product. Sale-level columns
// (discount, final amount) repeat on every row of the same sale.
type SheetRow struct {
	SaleID        string `json:"sale_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	CustomerName  string `json:"customer_name"`
	PaymentMethod string `json:"payment_method"`
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	Subtotal      string `json:"subtotal"`
	Discount      string `json:"discount"`
	FinalAmount   string `json:"final_amount"`
}

// SheetClient posts committed sales to the store's spreadsheet webhook.
// The webhook URL is store configuration, so it is passed per call rather
// than held by the client.
type SheetClient struct {
	httpClient *http.Client
}

func NewSheetClient() *SheetClient {
	return &SheetClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// AppendRows sends rows to the webhook. Any non-2xx status is an error so
// the worker's retry policy can kick in.
func (c *SheetClient) AppendRows(ctx context.Context, webhookURL string, rows []SheetRow) error {
	body, err := json.Marshal(map[string]any{"rows": rows})
	if err != nil {
		return fmt.Errorf("sheets: marshal rows: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sheets: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets: webhook unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sheets: webhook returned %d", resp.StatusCode)
	}
	return nil
}
