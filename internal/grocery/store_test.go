package grocery

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/mmynk/groceries/internal/models"
)

// newTestStore returns a store with predictable ids.
func newTestStore() *ItemStore {
	s := NewItemStore()
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func TestItemStore_Load(t *testing.T) {
	records := []models.GroceryItem{
		{ID: "a", ProductName: "Lait", OwnerID: "alice"},
		{ID: "b", ProductName: "Pain", OwnerID: "bob"},
		{ProductName: "Beurre"},
		{ID: "a", ProductName: "Lait en double", OwnerID: "alice"},
	}

	t.Run("filters to owner and stamps it", func(t *testing.T) {
		s := newTestStore()
		s.Load(records, "alice")

		got := s.Items()
		if len(got) != 3 {
			t.Fatalf("expected 3 items, got %d", len(got))
		}
		for _, item := range got {
			if item.OwnerID != "alice" {
				t.Errorf("item %s has owner %q, want alice", item.ID, item.OwnerID)
			}
			if item.ProductName == "Pain" {
				t.Error("item of another owner was loaded")
			}
		}
	})

	t.Run("assigns missing and duplicate ids", func(t *testing.T) {
		s := newTestStore()
		s.Load(records, "alice")

		seen := map[string]bool{}
		for _, item := range s.Items() {
			if item.ID == "" {
				t.Error("item without id")
			}
			if seen[item.ID] {
				t.Errorf("duplicate id %s", item.ID)
			}
			seen[item.ID] = true
		}
	})

	t.Run("no owner loads everything unchanged", func(t *testing.T) {
		s := newTestStore()
		s.Load(records, "")
		if s.Len() != 4 {
			t.Fatalf("expected 4 items, got %d", s.Len())
		}
		if s.Items()[1].OwnerID != "bob" {
			t.Error("owner should be kept in bootstrap mode")
		}
	})
}

func TestItemStore_Add(t *testing.T) {
	s := newTestStore()
	s.Load([]models.GroceryItem{{ID: "x", ProductName: "Lait"}}, "alice")

	id := s.Add("alice")
	if id == "" {
		t.Fatal("expected id")
	}

	head := s.Items()[0]
	want := models.GroceryItem{ID: id, Category: models.DefaultCategory, Quantity: 1, OwnerID: "alice"}
	if head != want {
		t.Errorf("head = %+v, want %+v", head, want)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 items, got %d", s.Len())
	}
}

func TestItemStore_Mutations(t *testing.T) {
	s := newTestStore()
	s.Load([]models.GroceryItem{
		{ID: "a", ProductName: "Lait"},
		{ID: "b", ProductName: "Pain"},
		{ID: "c", ProductName: "Oeufs"},
	}, "")

	t.Run("toggle", func(t *testing.T) {
		v := s.Version()
		if !s.TogglePicked("b") {
			t.Fatal("TogglePicked returned false")
		}
		if item, _ := s.Item("b"); !item.PickedUp {
			t.Error("expected b picked up")
		}
		s.TogglePicked("b")
		if item, _ := s.Item("b"); item.PickedUp {
			t.Error("expected b no longer picked up")
		}
		if s.Version() == v {
			t.Error("version did not change")
		}
	})

	t.Run("toggle unknown id", func(t *testing.T) {
		before := s.Items()
		if s.TogglePicked("zzz") {
			t.Error("TogglePicked of unknown id returned true")
		}
		if !reflect.DeepEqual(before, s.Items()) {
			t.Error("items changed")
		}
	})

	t.Run("update", func(t *testing.T) {
		name := "Pain complet"
		price := 3.99
		if !s.Update("b", ItemPatch{ProductName: &name, PriceCAD: &price}) {
			t.Fatal("Update returned false")
		}
		item, _ := s.Item("b")
		if item.ProductName != name || item.PriceCAD != price {
			t.Errorf("update not applied: %+v", item)
		}
		if s.Update("zzz", ItemPatch{ProductName: &name}) {
			t.Error("Update of unknown id returned true")
		}
	})

	t.Run("delete removes exactly one", func(t *testing.T) {
		if !s.Delete("a") {
			t.Fatal("Delete returned false")
		}
		if got := ids(s.Items()); !reflect.DeepEqual(got, []string{"b", "c"}) {
			t.Errorf("items = %v, want [b c]", got)
		}
	})

	t.Run("duplicate delete is a no-op", func(t *testing.T) {
		before := s.Items()
		if s.Delete("a") {
			t.Error("second Delete returned true")
		}
		if !reflect.DeepEqual(before, s.Items()) {
			t.Error("items changed on duplicate delete")
		}
	})
}

func TestItemStore_ReplaceAll(t *testing.T) {
	s := newTestStore()
	s.Load([]models.GroceryItem{{ID: "a"}}, "alice")

	incoming := []models.GroceryItem{
		{ID: "x", OwnerID: "alice"},
		{ID: "y", OwnerID: "bob"},
		{},
	}
	s.ReplaceAll(incoming)

	got := s.Items()
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	if got[1].OwnerID != "bob" {
		t.Error("imports are trusted wholesale; other owners must be kept")
	}
	if got[2].ID == "" {
		t.Error("expected id for imported item without one")
	}
	if incoming[2].ID != "" {
		t.Error("ReplaceAll modified the caller's slice")
	}
}

func TestItemStore_Summaries(t *testing.T) {
	s := newTestStore()
	s.LoadSummaries([]models.GrocerySummary{
		{Store: "Metro", OwnerID: "alice"},
		{Store: "IGA", OwnerID: "bob"},
		{Store: "Maxi"},
	}, "alice")

	got := s.Summaries()
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[1].OwnerID != "alice" {
		t.Errorf("expected adopted summary to be stamped, got %q", got[1].OwnerID)
	}

	s.AppendSummary(models.GrocerySummary{Store: "Provigo", OwnerID: "alice"})
	if len(s.Summaries()) != 3 {
		t.Error("AppendSummary did not append")
	}
}
