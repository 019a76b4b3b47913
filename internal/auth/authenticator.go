package auth

import (
	"context"

	"github.com/mmynk/groceries/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping the customer directory login for another
// method without changing the service layer code.
type Authenticator interface {
	// Register creates the customer, or rotates its credential if it exists.
	Register(ctx context.Context, customerID, credential string) (*models.Customer, error)

	// Authenticate verifies the customer's credential and returns the customer.
	// Returns ErrInvalidCredentials if authentication fails.
	Authenticate(ctx context.Context, customerID, credential string) (*models.Customer, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
