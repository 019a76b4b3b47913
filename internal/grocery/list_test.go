package grocery

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/mmynk/groceries/internal/models"
	"github.com/mmynk/groceries/internal/storage"
)

func newTestList(ownerID string, pageSize int) *List {
	l := NewList(ownerID, pageSize)
	n := 0
	l.store.newID = func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
	return l
}

// checkView asserts the displayed page equals a fresh filter+paginate of the
// current items.
func checkView(t *testing.T, l *List) {
	t.Helper()

	filtered := Apply(l.Items(), l.Filter())
	page := Paginate(filtered, l.CurrentPage(), l.PageSize())

	if got := l.DisplayedItems(); !reflect.DeepEqual(ids(got), ids(page.Items)) {
		t.Errorf("displayed %v, want %v", ids(got), ids(page.Items))
	}
	if l.TotalPages() != page.TotalPages {
		t.Errorf("TotalPages = %d, want %d", l.TotalPages(), page.TotalPages)
	}
	if l.FilteredCount() != len(filtered) {
		t.Errorf("FilteredCount = %d, want %d", l.FilteredCount(), len(filtered))
	}
}

func TestList_EmptyView(t *testing.T) {
	l := newTestList("alice", 10)

	if l.TotalPages() != 1 || l.CurrentPage() != 1 {
		t.Errorf("empty list on page %d of %d, want 1 of 1", l.CurrentPage(), l.TotalPages())
	}
	if len(l.DisplayedItems()) != 0 {
		t.Error("expected no displayed items")
	}
	if l.EstimatedCost() != 0 {
		t.Errorf("EstimatedCost = %v, want 0", l.EstimatedCost())
	}
}

func TestList_ViewStaysCurrent(t *testing.T) {
	l := newTestList("alice", 2)
	l.Load(fixtureItems(), nil)
	checkView(t, l)

	steps := []struct {
		name string
		do   func()
	}{
		{"next page", func() { l.NextPage() }},
		{"toggle", func() { l.TogglePicked("3") }},
		{"show only unpicked", func() { l.SetShowOnlyUnpicked(true) }},
		{"search", func() { l.SetSearch("lait") }},
		{"clear search", func() { l.SetSearch("") }},
		{"update", func() {
			name := "Lait écrémé"
			l.Update("1", ItemPatch{ProductName: &name})
		}},
		{"delete", func() { l.Delete("4") }},
		{"add", func() { l.Add() }},
		{"last page", func() { l.SetPage(999) }},
	}

	for _, step := range steps {
		step.do()
		t.Run(step.name, func(t *testing.T) {
			checkView(t, l)
		})
	}
}

func TestList_Add(t *testing.T) {
	l := newTestList("alice", 10)
	l.Load(fixtureItems(), nil)
	l.SetSearch("catelli")
	if l.FilteredCount() != 1 {
		t.Fatalf("expected search to match one item, got %d", l.FilteredCount())
	}

	id := l.Add()

	if l.Filter().SearchTerm != "" {
		t.Errorf("search term = %q, want cleared", l.Filter().SearchTerm)
	}
	if l.CurrentPage() != 1 {
		t.Errorf("page = %d, want 1", l.CurrentPage())
	}
	displayed := l.DisplayedItems()
	if len(displayed) == 0 || displayed[0].ID != id {
		t.Fatalf("new item %s is not the first displayed row", id)
	}
	if displayed[0].OwnerID != "alice" || displayed[0].Category != models.DefaultCategory {
		t.Errorf("unexpected new item %+v", displayed[0])
	}
	if l.TotalCount() != 5 {
		t.Errorf("TotalCount = %d, want 5", l.TotalCount())
	}
}

func TestList_FilterResetsPage(t *testing.T) {
	items := make([]models.GroceryItem, 25)
	for i := range items {
		items[i] = models.GroceryItem{ID: fmt.Sprintf("i%d", i), ProductName: "Pomme"}
	}
	l := newTestList("", 10)
	l.Load(items, nil)

	if got := l.SetPage(3); got != 3 {
		t.Fatalf("SetPage(3) = %d", got)
	}
	l.SetShowOnlyUnpicked(true)
	if l.CurrentPage() != 1 {
		t.Errorf("page after filter change = %d, want 1", l.CurrentPage())
	}

	l.SetPage(3)
	l.SetSearch("pomme")
	if l.CurrentPage() != 1 {
		t.Errorf("page after search = %d, want 1", l.CurrentPage())
	}
}

func TestList_DeleteLastItemOnPage(t *testing.T) {
	items := make([]models.GroceryItem, 11)
	for i := range items {
		items[i] = models.GroceryItem{ID: fmt.Sprintf("i%d", i)}
	}
	l := newTestList("", 10)
	l.Load(items, nil)
	l.SetPage(2)

	l.Delete("i10")

	if l.CurrentPage() != 1 || l.TotalPages() != 1 {
		t.Errorf("page %d of %d, want 1 of 1", l.CurrentPage(), l.TotalPages())
	}
	if len(l.DisplayedItems()) != 10 {
		t.Errorf("expected 10 displayed items, got %d", len(l.DisplayedItems()))
	}
}

func TestList_Import(t *testing.T) {
	l := newTestList("alice", 10)
	l.Load(fixtureItems(), []models.GrocerySummary{{Store: "Metro"}})
	before := l.Items()

	t.Run("bad items payload leaves list unchanged", func(t *testing.T) {
		_, err := l.Import([]byte(`{"productName":"Lait"}`), nil)
		if !errors.Is(err, ErrImportFormat) {
			t.Fatalf("expected ErrImportFormat, got %v", err)
		}
		if !reflect.DeepEqual(l.Items(), before) {
			t.Error("items changed after failed import")
		}
	})

	t.Run("bad summaries payload leaves list unchanged", func(t *testing.T) {
		_, err := l.Import([]byte(`[]`), []byte(`not json`))
		if !errors.Is(err, ErrImportFormat) {
			t.Fatalf("expected ErrImportFormat, got %v", err)
		}
		if !reflect.DeepEqual(l.Items(), before) {
			t.Error("items changed after failed import")
		}
		if len(l.Summaries()) != 1 {
			t.Error("summaries changed after failed import")
		}
	})

	t.Run("valid payload replaces items and keeps summaries", func(t *testing.T) {
		cmds, err := l.Import([]byte(`[{"Product Name":"Fromage","Quantity":"2","ownerId":"bob"}]`), nil)
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if len(cmds) != 2 || cmds[0].Document != storage.ItemsDocument || cmds[1].Message != "Imported 1 items." {
			t.Errorf("unexpected commands %+v", cmds)
		}
		items := l.Items()
		if len(items) != 1 || items[0].ProductName != "Fromage" || items[0].Quantity != 2 {
			t.Fatalf("unexpected items %+v", items)
		}
		if items[0].OwnerID != "bob" {
			t.Errorf("imported owner = %q, want bob", items[0].OwnerID)
		}
		if len(l.Summaries()) != 1 {
			t.Error("summaries should be kept when no summaries payload is given")
		}
		checkView(t, l)
	})

	t.Run("summaries payload is persisted too", func(t *testing.T) {
		cmds, err := l.Import([]byte(`[]`), []byte(`[]`))
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if len(cmds) != 3 || cmds[1].Document != storage.SummariesDocument {
			t.Errorf("unexpected commands %+v", cmds)
		}
		if len(l.Summaries()) != 0 || l.TotalCount() != 0 {
			t.Error("expected empty list after importing empty arrays")
		}
	})
}

func TestList_SaveSummary(t *testing.T) {
	l := newTestList("alice", 10)
	l.Load([]models.GroceryItem{
		{ID: "a", PriceCAD: 2.00, Quantity: 3, PickedUp: true},
		{ID: "b", PriceCAD: 5.00, Quantity: 1},
	}, nil)

	if got := l.EstimatedCost(); got != 6 {
		t.Fatalf("EstimatedCost = %v, want 6", got)
	}

	summary, cmds := l.SaveSummary("2024-03-01", 7.5, "")

	want := models.GrocerySummary{
		Date:          "2024-03-01",
		EstimatedCost: 6,
		ActualCost:    7.5,
		Store:         models.DefaultStore,
		OwnerID:       "alice",
	}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
	if got := l.Summaries(); len(got) != 1 || got[0] != want {
		t.Errorf("summaries = %+v", got)
	}

	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if cmds[0].Kind != CommandPersist || cmds[0].Document != storage.SummariesDocument {
		t.Errorf("first command = %+v, want persist summaries", cmds[0])
	}
	if cmds[1].Kind != CommandNotify || cmds[1].Duration != NoticeDuration {
		t.Errorf("second command = %+v, want notify", cmds[1])
	}
	for _, s := range []string{"Store: Super C", "Estimated: $6.00", "Actual: $7.50", "Difference: $1.50"} {
		if !strings.Contains(cmds[1].Message, s) {
			t.Errorf("notice %q does not contain %q", cmds[1].Message, s)
		}
	}

	stats := l.StoreStatistics()
	if len(stats) != 1 || stats[0].Store != models.DefaultStore || stats[0].Count != 1 {
		t.Errorf("unexpected statistics %+v", stats)
	}
}

func TestList_Save(t *testing.T) {
	l := newTestList("alice", 10)
	cmds := l.Save()

	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if cmds[0] != (Command{Kind: CommandPersist, Document: storage.ItemsDocument}) {
		t.Errorf("unexpected persist command %+v", cmds[0])
	}
	if cmds[1].Message != "Data saved successfully!" {
		t.Errorf("unexpected notice %q", cmds[1].Message)
	}
}
