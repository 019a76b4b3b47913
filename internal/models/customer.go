package models

import "time"

// Customer represents a household account.
//
// Customers log in with their ID and an application token. Only the bcrypt
// hash of the token is stored.
type Customer struct {
	// ID is the customer identifier chosen by the household (e.g., "famille-tremblay").
	// It doubles as the owner id of the customer's items and summaries.
	ID string

	// TokenHash is the bcrypt hash of the application token.
	TokenHash string

	// CreatedAt is the Unix timestamp when the customer was registered.
	CreatedAt int64
}

// NewCustomer creates a customer with the given ID and token hash.
func NewCustomer(id, tokenHash string) *Customer {
	return &Customer{
		ID:        id,
		TokenHash: tokenHash,
		CreatedAt: time.Now().Unix(),
	}
}
