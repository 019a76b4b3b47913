package grocery

import (
	"fmt"

	"github.com/mmynk/groceries/internal/calculator"
	"github.com/mmynk/groceries/internal/models"
	"github.com/mmynk/groceries/internal/storage"
)

// List is one owner's grocery list together with its current view.
//
// Every mutation re-runs filter and pagination before returning, so the
// displayed page is never stale.
type List struct {
	ownerID string
	store   *ItemStore
	filter  FilterState
	pager   *Paginator

	filtered  []models.GroceryItem
	displayed []models.GroceryItem
}

// NewList returns an empty list for ownerID. An empty ownerID is the
// pre-login mode in which nothing is filtered by owner.
func NewList(ownerID string, pageSize int) *List {
	l := &List{
		ownerID: ownerID,
		store:   NewItemStore(),
		pager:   NewPaginator(pageSize),
	}
	l.recompute()
	return l
}

// OwnerID returns the owner the list was created for.
func (l *List) OwnerID() string {
	return l.ownerID
}

func (l *List) recompute() {
	l.filtered = Apply(l.store.items, l.filter)
	l.pager.Resize(len(l.filtered))
	l.displayed = l.pager.Window(l.filtered)
}

// Load replaces items and summaries with the records visible to the owner
// and returns to page 1.
func (l *List) Load(items []models.GroceryItem, summaries []models.GrocerySummary) {
	l.store.Load(items, l.ownerID)
	l.store.LoadSummaries(summaries, l.ownerID)
	l.pager.SetPage(1)
	l.recompute()
}

// LoadItems replaces only the items.
func (l *List) LoadItems(items []models.GroceryItem) {
	l.store.Load(items, l.ownerID)
	l.pager.SetPage(1)
	l.recompute()
}

// LoadSummaries replaces only the summaries.
func (l *List) LoadSummaries(summaries []models.GrocerySummary) {
	l.store.LoadSummaries(summaries, l.ownerID)
}

// Import restores a backup. itemsPayload must be a JSON array; a nil
// summariesPayload keeps the current summaries. Both payloads are decoded
// before anything is replaced, so a bad payload leaves the list untouched.
// The returned commands persist whatever was replaced.
func (l *List) Import(itemsPayload, summariesPayload []byte) ([]Command, error) {
	items, err := DecodeItems(itemsPayload)
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}

	var summaries []models.GrocerySummary
	if summariesPayload != nil {
		summaries, err = DecodeSummaries(summariesPayload)
		if err != nil {
			return nil, fmt.Errorf("summaries: %w", err)
		}
	}

	cmds := []Command{persist(storage.ItemsDocument)}
	l.store.ReplaceAll(items)
	if summariesPayload != nil {
		l.store.ReplaceSummaries(summaries)
		cmds = append(cmds, persist(storage.SummariesDocument))
	}
	l.pager.SetPage(1)
	l.recompute()

	return append(cmds, notify(fmt.Sprintf("Imported %d items.", len(items)))), nil
}

// Add inserts a blank item at the top, clears the search so the new row is
// visible, and returns its id.
func (l *List) Add() string {
	id := l.store.Add(l.ownerID)
	l.filter.SearchTerm = ""
	l.pager.SetPage(1)
	l.recompute()
	return id
}

// Update edits an item. Returns false if the id is unknown.
func (l *List) Update(id string, patch ItemPatch) bool {
	ok := l.store.Update(id, patch)
	l.recompute()
	return ok
}

// Delete removes an item. Deleting an unknown id is a no-op returning false.
func (l *List) Delete(id string) bool {
	ok := l.store.Delete(id)
	l.recompute()
	return ok
}

// TogglePicked flips an item's picked-up flag. Returns false if unknown.
func (l *List) TogglePicked(id string) bool {
	ok := l.store.TogglePicked(id)
	l.recompute()
	return ok
}

// SetFilter replaces the filter and returns to page 1.
func (l *List) SetFilter(state FilterState) {
	l.filter = state
	l.pager.SetPage(1)
	l.recompute()
}

// SetSearch changes the search term and returns to page 1.
func (l *List) SetSearch(term string) {
	l.SetFilter(FilterState{SearchTerm: term, ShowOnlyUnpicked: l.filter.ShowOnlyUnpicked})
}

// SetShowOnlyUnpicked changes the toggle and returns to page 1.
func (l *List) SetShowOnlyUnpicked(on bool) {
	l.SetFilter(FilterState{SearchTerm: l.filter.SearchTerm, ShowOnlyUnpicked: on})
}

// Filter returns the active filter.
func (l *List) Filter() FilterState {
	return l.filter
}

// SetPage moves to page, clamped to the valid range.
func (l *List) SetPage(page int) int {
	l.pager.SetPage(page)
	l.recompute()
	return l.pager.Current()
}

// NextPage moves forward one page; no-op on the last page.
func (l *List) NextPage() int {
	return l.SetPage(l.pager.Current() + 1)
}

// PreviousPage moves back one page; no-op on the first page.
func (l *List) PreviousPage() int {
	return l.SetPage(l.pager.Current() - 1)
}

// DisplayedItems returns the rows of the current page.
func (l *List) DisplayedItems() []models.GroceryItem {
	out := make([]models.GroceryItem, len(l.displayed))
	copy(out, l.displayed)
	return out
}

// TotalPages returns the page count of the filtered view.
func (l *List) TotalPages() int { return l.pager.TotalPages() }

// CurrentPage returns the current page number.
func (l *List) CurrentPage() int { return l.pager.Current() }

// PageSize returns the number of rows per page.
func (l *List) PageSize() int { return l.pager.Size() }

// FilteredCount returns the number of items in the filtered view.
func (l *List) FilteredCount() int { return len(l.filtered) }

// TotalCount returns the number of items in the list.
func (l *List) TotalCount() int { return l.store.Len() }

// Item returns a copy of one item.
func (l *List) Item(id string) (models.GroceryItem, bool) {
	return l.store.Item(id)
}

// Items returns every item in list order.
func (l *List) Items() []models.GroceryItem {
	return l.store.Items()
}

// Summaries returns every recorded trip.
func (l *List) Summaries() []models.GrocerySummary {
	return l.store.Summaries()
}

// EstimatedCost returns the cost of the picked-up items.
func (l *List) EstimatedCost() float64 {
	return calculator.EstimatedCost(l.store.items)
}

// StoreStatistics aggregates the recorded trips per store.
func (l *List) StoreStatistics() []calculator.StoreStatistic {
	return calculator.AggregateByStore(l.store.summaries)
}

// CostByDateAndStore returns the chart data of the recorded trips.
func (l *List) CostByDateAndStore() calculator.CostByDate {
	return calculator.AggregateByDateAndStore(l.store.summaries)
}

// SaveSummary records a trip with the current estimated cost and returns it
// along with the side effects the caller should carry out.
func (l *List) SaveSummary(date string, actualCost float64, store string) (models.GrocerySummary, []Command) {
	if store == "" {
		store = models.DefaultStore
	}
	summary := calculator.RecordSummary(date, actualCost, store, l.EstimatedCost(), l.ownerID)
	l.store.AppendSummary(summary)

	return summary, []Command{
		persist(storage.SummariesDocument),
		notify(SummaryNotice(summary)),
	}
}

// Save returns the commands that persist the item list.
func (l *List) Save() []Command {
	return []Command{
		persist(storage.ItemsDocument),
		notify("Data saved successfully!"),
	}
}

// SummaryNotice is the confirmation shown after a trip is recorded.
func SummaryNotice(s models.GrocerySummary) string {
	return fmt.Sprintf("Summary saved!\n\nDate: %s\nStore: %s\nEstimated: $%.2f\nActual: $%.2f\nDifference: $%.2f",
		s.Date, s.Store, s.EstimatedCost, s.ActualCost, calculator.Difference(s))
}
