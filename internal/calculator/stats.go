package calculator

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groceries/internal/models"
)

// StoreStatistic aggregates every recorded trip to one store.
type StoreStatistic struct {
	Store          string  `json:"store"`
	EstimatedTotal float64 `json:"estimatedTotal"`
	ActualTotal    float64 `json:"actualTotal"`
	EstimatedAvg   float64 `json:"estimatedAvg"`
	ActualAvg      float64 `json:"actualAvg"`
	Count          int     `json:"count"`
	Difference     float64 `json:"difference"` // ActualTotal - EstimatedTotal
}

// Cost is the estimated and actual spend of one cell of the date × store chart.
type Cost struct {
	Estimated float64 `json:"estimated"`
	Actual    float64 `json:"actual"`
}

// CostByDate is the two-dimension chart data: Costs[date][store].
// Dates are ascending; Stores are in order of first appearance.
type CostByDate struct {
	Dates  []string                   `json:"dates"`
	Stores []string                   `json:"stores"`
	Costs  map[string]map[string]Cost `json:"costs"`
}

type storeTotals struct {
	estimated decimal.Decimal
	actual    decimal.Decimal
	count     int
}

// AggregateByStore groups summaries by exact store name.
// Groups are returned in order of first appearance.
func AggregateByStore(summaries []models.GrocerySummary) []StoreStatistic {
	totals := make(map[string]*storeTotals)
	var order []string

	for _, s := range summaries {
		t, exists := totals[s.Store]
		if !exists {
			t = &storeTotals{estimated: decimal.Zero, actual: decimal.Zero}
			totals[s.Store] = t
			order = append(order, s.Store)
		}
		t.estimated = t.estimated.Add(decimal.NewFromFloat(s.EstimatedCost))
		t.actual = t.actual.Add(decimal.NewFromFloat(s.ActualCost))
		t.count++
	}

	stats := make([]StoreStatistic, 0, len(order))
	for _, store := range order {
		t := totals[store]
		n := decimal.NewFromInt(int64(t.count))
		stats = append(stats, StoreStatistic{
			Store:          store,
			EstimatedTotal: t.estimated.InexactFloat64(),
			ActualTotal:    t.actual.InexactFloat64(),
			EstimatedAvg:   t.estimated.Div(n).InexactFloat64(),
			ActualAvg:      t.actual.Div(n).InexactFloat64(),
			Count:          t.count,
			Difference:     t.actual.Sub(t.estimated).InexactFloat64(),
		})
	}
	return stats
}

// AggregateByDateAndStore sums estimated and actual costs per date and store.
// ISO dates sort chronologically as strings.
func AggregateByDateAndStore(summaries []models.GrocerySummary) CostByDate {
	type cell struct{ estimated, actual decimal.Decimal }

	cells := make(map[string]map[string]*cell)
	seenStore := make(map[string]bool)
	result := CostByDate{
		Dates:  []string{},
		Stores: []string{},
		Costs:  make(map[string]map[string]Cost),
	}

	for _, s := range summaries {
		if !seenStore[s.Store] {
			seenStore[s.Store] = true
			result.Stores = append(result.Stores, s.Store)
		}
		byStore, ok := cells[s.Date]
		if !ok {
			byStore = make(map[string]*cell)
			cells[s.Date] = byStore
			result.Dates = append(result.Dates, s.Date)
		}
		c, ok := byStore[s.Store]
		if !ok {
			c = &cell{estimated: decimal.Zero, actual: decimal.Zero}
			byStore[s.Store] = c
		}
		c.estimated = c.estimated.Add(decimal.NewFromFloat(s.EstimatedCost))
		c.actual = c.actual.Add(decimal.NewFromFloat(s.ActualCost))
	}

	sort.Strings(result.Dates)
	for date, byStore := range cells {
		row := make(map[string]Cost, len(byStore))
		for store, c := range byStore {
			row[store] = Cost{Estimated: c.estimated.InexactFloat64(), Actual: c.actual.InexactFloat64()}
		}
		result.Costs[date] = row
	}
	return result
}

// defaultChartMax is the chart scale used when there is nothing to plot.
const defaultChartMax = 100

// ChartMax returns the largest estimated or actual total across stats, used as
// the 100% mark of the bar chart.
func ChartMax(stats []StoreStatistic) float64 {
	if len(stats) == 0 {
		return defaultChartMax
	}
	largest := 0.0
	for _, s := range stats {
		largest = math.Max(largest, math.Max(s.EstimatedTotal, s.ActualTotal))
	}
	return largest
}

// BarWidth returns value as a percentage of scale. A zero scale yields 0.
func BarWidth(value, scale float64) float64 {
	if scale == 0 {
		return 0
	}
	return value / scale * 100
}
