package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/groceries/internal/models"
)

// CreateCustomer inserts a new customer into the database.
func (s *SQLiteStore) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (id, token_hash, created_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		customer.ID,
		customer.TokenHash,
		customer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// UpdateCustomerToken replaces the token hash of an existing customer.
func (s *SQLiteStore) UpdateCustomerToken(ctx context.Context, id, tokenHash string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE customers SET token_hash = ? WHERE id = ?",
		tokenHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer token: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("customer not found: %s", id)
	}

	return nil
}

// GetCustomerByID retrieves a customer by ID.
func (s *SQLiteStore) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	query := `
		SELECT id, token_hash, created_at
		FROM customers
		WHERE id = ?
	`

	customer := &models.Customer{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.TokenHash,
		&customer.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Customer not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer by ID: %w", err)
	}

	return customer, nil
}
