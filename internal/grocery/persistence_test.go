package grocery

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mmynk/groceries/internal/models"
	"github.com/mmynk/groceries/internal/storage"
)

type memStore struct {
	mu   sync.Mutex
	docs map[string][]byte
	err  error
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string][]byte)}
}

func (m *memStore) key(ownerID string, doc storage.Document) string {
	return ownerID + "/" + string(doc)
}

func (m *memStore) Load(_ context.Context, ownerID string, doc storage.Document) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[m.key(ownerID, doc)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (m *memStore) Save(_ context.Context, ownerID string, doc storage.Document, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.docs[m.key(ownerID, doc)] = data
	return nil
}

func (m *memStore) Close() error { return nil }

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewPersistence(newMemStore())

	if _, err := p.LoadItems(ctx, "alice"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	items := []models.GroceryItem{{ID: "a", ProductName: "Lait", Quantity: 2, OwnerID: "alice"}}
	if err := p.SaveItems(ctx, "alice", items); err != nil {
		t.Fatalf("SaveItems failed: %v", err)
	}
	got, err := p.LoadItems(ctx, "alice")
	if err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if len(got) != 1 || got[0] != items[0] {
		t.Errorf("LoadItems = %+v, want %+v", got, items)
	}

	summaries := []models.GrocerySummary{{Date: "2024-03-01", Store: "IGA", ActualCost: 10}}
	if err := p.SaveSummaries(ctx, "alice", summaries); err != nil {
		t.Fatalf("SaveSummaries failed: %v", err)
	}
	gotSummaries, err := p.LoadSummaries(ctx, "alice")
	if err != nil {
		t.Fatalf("LoadSummaries failed: %v", err)
	}
	if len(gotSummaries) != 1 || gotSummaries[0] != summaries[0] {
		t.Errorf("LoadSummaries = %+v, want %+v", gotSummaries, summaries)
	}
}

func TestPersistence_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.Save(ctx, "alice", storage.ItemsDocument, []byte(`{"oops":true}`))

	_, err := NewPersistence(store).LoadItems(ctx, "alice")
	if !errors.Is(err, ErrImportFormat) {
		t.Errorf("expected ErrImportFormat, got %v", err)
	}
}

func TestPersistence_Execute(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	p := NewPersistence(store)

	l := NewList("alice", 10)
	l.Add()
	_, cmds := l.SaveSummary("2024-03-01", 12, "Metro")
	cmds = append(cmds, l.Save()...)

	if err := p.Execute(ctx, l, cmds); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	items, err := p.LoadItems(ctx, "alice")
	if err != nil || len(items) != 1 {
		t.Errorf("expected 1 saved item, got %d (%v)", len(items), err)
	}
	summaries, err := p.LoadSummaries(ctx, "alice")
	if err != nil || len(summaries) != 1 || summaries[0].Store != "Metro" {
		t.Errorf("unexpected saved summaries %+v (%v)", summaries, err)
	}

	store.err = errors.New("disk full")
	if err := p.Execute(ctx, l, l.Save()); err == nil {
		t.Error("expected error from failing store")
	}

	store.err = nil
	if err := p.Execute(ctx, l, []Command{{Kind: CommandPersist, Document: "bogus"}}); err == nil {
		t.Error("expected error for unknown document")
	}
}
