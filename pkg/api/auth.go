package api

// Customer is a logged-in household account.
type Customer struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

type LoginRequest struct {
	CustomerID string `json:"customerId"`
	AppToken   string `json:"appToken"`
}

type LoginResponse struct {
	Customer  Customer `json:"customer"`
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	Customer Customer `json:"customer"`
}
