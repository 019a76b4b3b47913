package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/groceries/internal/storage"
)

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	t.Run("missing document", func(t *testing.T) {
		if _, err := store.Load(ctx, "alice", storage.ItemsDocument); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("owner documents live in owner directory", func(t *testing.T) {
		if err := store.Save(ctx, "alice", storage.ItemsDocument, []byte(`[]`)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "alice", "grocery-data.json")); err != nil {
			t.Errorf("expected owner file on disk: %v", err)
		}
	})

	t.Run("empty owner writes to base directory", func(t *testing.T) {
		if err := store.Save(ctx, "", storage.SummariesDocument, []byte(`[{"store":"Metro"}]`)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(dir, "grocery-summaries.json"))
		if err != nil {
			t.Fatalf("expected base file on disk: %v", err)
		}
		if string(data) != `[{"store":"Metro"}]` {
			t.Errorf("unexpected content %s", data)
		}
	})

	t.Run("save overwrites and load returns latest", func(t *testing.T) {
		store.Save(ctx, "bob", storage.ItemsDocument, []byte(`["v1"]`))
		store.Save(ctx, "bob", storage.ItemsDocument, []byte(`["v2"]`))

		got, err := store.Load(ctx, "bob", storage.ItemsDocument)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if string(got) != `["v2"]` {
			t.Errorf("got %s, want [\"v2\"]", got)
		}

		leftovers, _ := filepath.Glob(filepath.Join(dir, "bob", "*.tmp"))
		if len(leftovers) != 0 {
			t.Errorf("expected no temp files, found %v", leftovers)
		}
	})

	t.Run("owner ids cannot escape base directory", func(t *testing.T) {
		if err := store.Save(ctx, "../evil", storage.ItemsDocument, []byte(`[]`)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "evil")); err == nil {
			t.Error("owner directory escaped base path")
		}
	})
}
