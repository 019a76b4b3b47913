package grocery

import (
	"strconv"
	"strings"

	"github.com/mmynk/groceries/internal/models"
)

// FilterState is the search box and the "unpicked only" toggle.
type FilterState struct {
	SearchTerm       string `json:"searchTerm"`
	ShowOnlyUnpicked bool   `json:"showOnlyUnpicked"`
}

// formatNumber renders a number the way it is displayed: shortest form,
// no trailing zeros ("3", "2.5").
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// matches reports whether the lower-cased term occurs in any searchable field.
func matches(item models.GroceryItem, term string) bool {
	fields := [...]string{
		item.Category,
		item.ProductName,
		item.Brand,
		item.SizeDetails,
		formatNumber(item.Quantity),
		formatNumber(item.PriceCAD),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Apply returns the items that match state, in their original order.
// A blank search term matches everything. Apply does not modify items.
func Apply(items []models.GroceryItem, state FilterState) []models.GroceryItem {
	term := strings.ToLower(strings.TrimSpace(state.SearchTerm))

	filtered := make([]models.GroceryItem, 0, len(items))
	for _, item := range items {
		if state.ShowOnlyUnpicked && item.PickedUp {
			continue
		}
		if term != "" && !matches(item, term) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}
