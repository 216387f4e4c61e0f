package model

import "time"

// Well-known setting keys.
const (
	SettingStoreName       = "store_name"
	SettingSheetWebhookURL = "sheet_webhook_url"
	SettingAutoSync        = "auto_sync"
)

// Setting is one store-configuration row (store name, sheet webhook, …).
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
