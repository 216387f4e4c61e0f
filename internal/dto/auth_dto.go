package dto

// CreateSessionRequest is the role selector: no password exists in this
// system, the shop terminal just picks who is operating it.
type CreateSessionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=60"`
	Role string `json:"role" validate:"required,oneof=admin cashier"`
}

type SessionResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"` // seconds
	Name      string `json:"name"`
	Role      string `json:"role"`
}
