// Package calculator computes trip costs and aggregates recorded summaries.
//
// Sums are accumulated with decimal arithmetic and converted back to float64
// at the end, so repeated additions of cent amounts do not drift.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/groceries/internal/models"
)

// EstimatedCost returns the sum of price × quantity over picked-up items.
// Items that were not picked up contribute nothing.
func EstimatedCost(items []models.GroceryItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		if !item.PickedUp {
			continue
		}
		line := decimal.NewFromFloat(item.PriceCAD).Mul(decimal.NewFromFloat(item.Quantity))
		total = total.Add(line)
	}
	return total.InexactFloat64()
}

// RecordSummary builds the summary of a trip. The caller appends it to the
// owner's summaries.
func RecordSummary(date string, actualCost float64, store string, estimatedCost float64, ownerID string) models.GrocerySummary {
	return models.GrocerySummary{
		Date:          date,
		EstimatedCost: estimatedCost,
		ActualCost:    actualCost,
		Store:         store,
		OwnerID:       ownerID,
	}
}

// Difference returns actual minus estimated cost of a summary.
func Difference(s models.GrocerySummary) float64 {
	return decimal.NewFromFloat(s.ActualCost).Sub(decimal.NewFromFloat(s.EstimatedCost)).InexactFloat64()
}
