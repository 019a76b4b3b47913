// Package grocery is the grocery list engine: the owner's items and trip
// summaries, the filtered view over them, and its pagination.
//
// Nothing in this package performs I/O or blocks. A List is not safe for
// concurrent use; callers serialise access to it.
package grocery

import (
	"slices"

	"github.com/google/uuid"

	"github.com/mmynk/groceries/internal/models"
)

// ItemPatch holds the editable fields of an item. Nil fields are left as is.
type ItemPatch struct {
	Category    *string  `json:"category,omitempty"`
	ProductName *string  `json:"productName,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	SizeDetails *string  `json:"sizeDetails,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	PriceCAD    *float64 `json:"priceCAD,omitempty"`
	PickedUp    *bool    `json:"pickedUp,omitempty"`
}

func (p ItemPatch) apply(item *models.GroceryItem) {
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.ProductName != nil {
		item.ProductName = *p.ProductName
	}
	if p.Brand != nil {
		item.Brand = *p.Brand
	}
	if p.SizeDetails != nil {
		item.SizeDetails = *p.SizeDetails
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.PriceCAD != nil {
		item.PriceCAD = *p.PriceCAD
	}
	if p.PickedUp != nil {
		item.PickedUp = *p.PickedUp
	}
}

// ItemStore owns the in-memory items and summaries of one owner.
// Items are addressed by their stable ID, never by position.
type ItemStore struct {
	items     []models.GroceryItem
	summaries []models.GrocerySummary

	// version increases on every mutation of items.
	version uint64
	newID   func() string
}

// NewItemStore returns an empty store that assigns UUIDs to new items.
func NewItemStore() *ItemStore {
	return &ItemStore{newID: func() string { return uuid.New().String() }}
}

// visible reports whether a record belongs to ownerID. Records without an
// owner predate accounts and are adopted by whoever loads them.
func visible(recordOwner, ownerID string) bool {
	return ownerID == "" || recordOwner == "" || recordOwner == ownerID
}

// withIDs stamps missing or duplicate ids.
func (s *ItemStore) withIDs(items []models.GroceryItem) []models.GroceryItem {
	seen := make(map[string]bool, len(items))
	for i := range items {
		if items[i].ID == "" || seen[items[i].ID] {
			items[i].ID = s.newID()
		}
		seen[items[i].ID] = true
	}
	return items
}

// Load replaces the items with the records that belong to ownerID, stamped
// with ownerID. An empty ownerID loads every record unchanged.
func (s *ItemStore) Load(records []models.GroceryItem, ownerID string) {
	items := make([]models.GroceryItem, 0, len(records))
	for _, r := range records {
		if !visible(r.OwnerID, ownerID) {
			continue
		}
		if ownerID != "" {
			r.OwnerID = ownerID
		}
		items = append(items, r)
	}
	s.items = s.withIDs(items)
	s.version++
}

// ReplaceAll swaps in a trusted set of items as is, including items of other
// owners. Used when restoring a backup.
func (s *ItemStore) ReplaceAll(items []models.GroceryItem) {
	s.items = s.withIDs(slices.Clone(items))
	s.version++
}

// Add inserts a default item at the head of the list and returns its id.
func (s *ItemStore) Add(ownerID string) string {
	item := models.NewGroceryItem(s.newID(), ownerID)
	s.items = slices.Insert(s.items, 0, item)
	s.version++
	return item.ID
}

func (s *ItemStore) index(id string) int {
	return slices.IndexFunc(s.items, func(item models.GroceryItem) bool {
		return item.ID == id
	})
}

// Update applies patch to the item with id. Returns false if absent.
func (s *ItemStore) Update(id string, patch ItemPatch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	patch.apply(&s.items[i])
	s.version++
	return true
}

// Delete removes the item with id. Returns false, and changes nothing, if absent.
func (s *ItemStore) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.version++
	return true
}

// TogglePicked flips the picked-up flag of the item with id.
func (s *ItemStore) TogglePicked(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items[i].PickedUp = !s.items[i].PickedUp
	s.version++
	return true
}

// Item returns a copy of the item with id.
func (s *ItemStore) Item(id string) (models.GroceryItem, bool) {
	i := s.index(id)
	if i < 0 {
		return models.GroceryItem{}, false
	}
	return s.items[i], true
}

// Items returns a copy of the items in list order.
func (s *ItemStore) Items() []models.GroceryItem {
	return slices.Clone(s.items)
}

// Len returns the number of items.
func (s *ItemStore) Len() int {
	return len(s.items)
}

// Version changes whenever the items change.
func (s *ItemStore) Version() uint64 {
	return s.version
}

// LoadSummaries replaces the summaries with the records that belong to ownerID.
func (s *ItemStore) LoadSummaries(records []models.GrocerySummary, ownerID string) {
	summaries := make([]models.GrocerySummary, 0, len(records))
	for _, r := range records {
		if !visible(r.OwnerID, ownerID) {
			continue
		}
		if ownerID != "" {
			r.OwnerID = ownerID
		}
		summaries = append(summaries, r)
	}
	s.summaries = summaries
}

// ReplaceSummaries swaps in a trusted set of summaries as is.
func (s *ItemStore) ReplaceSummaries(summaries []models.GrocerySummary) {
	s.summaries = slices.Clone(summaries)
}

// AppendSummary records a trip.
func (s *ItemStore) AppendSummary(summary models.GrocerySummary) {
	s.summaries = append(s.summaries, summary)
}

// Summaries returns a copy of the recorded trips in insertion order.
func (s *ItemStore) Summaries() []models.GrocerySummary {
	return slices.Clone(s.summaries)
}
