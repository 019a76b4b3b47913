package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/groceries/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid customer id or app token")
	ErrEmptyToken         = errors.New("app token must not be empty")
	ErrEmptyCustomerID    = errors.New("customer id must not be empty")
)

// CustomerStorage defines the customer persistence operations the
// authenticator needs.
type CustomerStorage interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	UpdateCustomerToken(ctx context.Context, id, tokenHash string) error
	GetCustomerByID(ctx context.Context, id string) (*models.Customer, error)
}

// TokenAuthenticator authenticates customers by id and application token.
// Tokens are stored as bcrypt hashes.
type TokenAuthenticator struct {
	storage CustomerStorage
	cost    int
	hash    func(password []byte, cost int) ([]byte, error)
}

var _ Authenticator = (*TokenAuthenticator)(nil)

// NewTokenAuthenticator creates a token authenticator backed by storage.
func NewTokenAuthenticator(storage CustomerStorage) *TokenAuthenticator {
	return &TokenAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
		hash:    bcrypt.GenerateFromPassword,
	}
}

// ValidateCredential rejects blank tokens.
func (a *TokenAuthenticator) ValidateCredential(credential string) error {
	if strings.TrimSpace(credential) == "" {
		return ErrEmptyToken
	}
	return nil
}

// Register stores the hash of credential for customerID, creating the
// customer on first use.
func (a *TokenAuthenticator) Register(ctx context.Context, customerID, credential string) (*models.Customer, error) {
	if customerID == "" {
		return nil, ErrEmptyCustomerID
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	existing, err := a.storage.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	// Keep the stored hash when the token did not change.
	if existing != nil && bcrypt.CompareHashAndPassword([]byte(existing.TokenHash), []byte(credential)) == nil {
		return existing, nil
	}

	hash, err := a.hash([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash app token: %w", err)
	}

	if existing != nil {
		if err := a.storage.UpdateCustomerToken(ctx, customerID, string(hash)); err != nil {
			return nil, err
		}
		existing.TokenHash = string(hash)
		return existing, nil
	}

	customer := models.NewCustomer(customerID, string(hash))
	if err := a.storage.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Authenticate verifies the customer id and app token.
func (a *TokenAuthenticator) Authenticate(ctx context.Context, customerID, credential string) (*models.Customer, error) {
	customer, err := a.storage.GetCustomerByID(ctx, customerID)
	if err != nil || customer == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.TokenHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return customer, nil
}

// Customer returns the registered customer with id, or nil if there is none.
func (a *TokenAuthenticator) Customer(ctx context.Context, id string) (*models.Customer, error) {
	return a.storage.GetCustomerByID(ctx, id)
}
