package grocery

import (
	"context"
	"fmt"

	"github.com/mmynk/groceries/internal/models"
	"github.com/mmynk/groceries/internal/storage"
)

// Persistence reads and writes an owner's items and summaries through a
// storage.Store, decoding with the tolerant record decoder.
type Persistence struct {
	store storage.Store
}

// NewPersistence wraps store.
func NewPersistence(store storage.Store) *Persistence {
	return &Persistence{store: store}
}

// Store returns the wrapped store.
func (p *Persistence) Store() storage.Store {
	return p.store
}

// LoadItems returns the saved items of ownerID.
// storage.ErrNotFound is passed through when nothing was saved yet.
func (p *Persistence) LoadItems(ctx context.Context, ownerID string) ([]models.GroceryItem, error) {
	data, err := p.store.Load(ctx, ownerID, storage.ItemsDocument)
	if err != nil {
		return nil, err
	}
	items, err := DecodeItems(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", storage.ItemsDocument, err)
	}
	return items, nil
}

// LoadSummaries returns the saved summaries of ownerID.
func (p *Persistence) LoadSummaries(ctx context.Context, ownerID string) ([]models.GrocerySummary, error) {
	data, err := p.store.Load(ctx, ownerID, storage.SummariesDocument)
	if err != nil {
		return nil, err
	}
	summaries, err := DecodeSummaries(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", storage.SummariesDocument, err)
	}
	return summaries, nil
}

// SaveItems writes the items of ownerID.
func (p *Persistence) SaveItems(ctx context.Context, ownerID string, items []models.GroceryItem) error {
	data, err := EncodeItems(items)
	if err != nil {
		return err
	}
	return p.store.Save(ctx, ownerID, storage.ItemsDocument, data)
}

// SaveSummaries writes the summaries of ownerID.
func (p *Persistence) SaveSummaries(ctx context.Context, ownerID string, summaries []models.GrocerySummary) error {
	data, err := EncodeSummaries(summaries)
	if err != nil {
		return err
	}
	return p.store.Save(ctx, ownerID, storage.SummariesDocument, data)
}

// Execute carries out the persist commands for list. Notify commands are
// left to the caller.
func (p *Persistence) Execute(ctx context.Context, list *List, cmds []Command) error {
	for _, cmd := range cmds {
		if cmd.Kind != CommandPersist {
			continue
		}
		var err error
		switch cmd.Document {
		case storage.ItemsDocument:
			err = p.SaveItems(ctx, list.OwnerID(), list.Items())
		case storage.SummariesDocument:
			err = p.SaveSummaries(ctx, list.OwnerID(), list.Summaries())
		default:
			err = fmt.Errorf("unknown document %q", cmd.Document)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
