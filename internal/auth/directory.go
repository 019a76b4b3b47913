package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// DirectoryEntry is one record of a customers.json directory file.
type DirectoryEntry struct {
	CustomerID string `json:"customer_id"`
	AppToken   string `json:"apptoken"`
}

// LoadDirectory reads a customers.json file: a JSON array of entries.
func LoadDirectory(path string) ([]DirectoryEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read customer directory: %w", err)
	}

	var entries []DirectoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse customer directory %s: %w", path, err)
	}
	return entries, nil
}

// SeedDirectory registers every entry with a. Entries without an id or a
// token are skipped. Returns the number of customers registered.
func SeedDirectory(ctx context.Context, a Authenticator, entries []DirectoryEntry) (int, error) {
	n := 0
	for _, e := range entries {
		if e.CustomerID == "" || a.ValidateCredential(e.AppToken) != nil {
			slog.Warn("Skipping incomplete customer entry", "customer_id", e.CustomerID)
			continue
		}
		if _, err := a.Register(ctx, e.CustomerID, e.AppToken); err != nil {
			return n, fmt.Errorf("failed to register customer %s: %w", e.CustomerID, err)
		}
		n++
	}
	return n, nil
}
