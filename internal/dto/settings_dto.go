package dto

type SettingsResponse struct {
	StoreName       string `json:"store_name"`
	SheetWebhookURL string `json:"sheet_webhook_url"`
	AutoSync        bool   `json:"auto_sync"`
}

type UpdateSettingsRequest struct {
	StoreName       *string `json:"store_name"        validate:"omitempty,min=1,max=120"`
	SheetWebhookURL *string `json:"sheet_webhook_url" validate:"omitempty,url|eq="`
	AutoSync        *bool   `json:"auto_sync"`
}
