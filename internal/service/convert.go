package service

import (
	"github.com/mmynk/groceries/internal/calculator"
	"github.com/mmynk/groceries/internal/grocery"
	"github.com/mmynk/groceries/internal/models"
	"github.com/mmynk/groceries/internal/storage"
	"github.com/mmynk/groceries/pkg/api"
)

func toAPIItem(item models.GroceryItem) api.Item {
	return api.Item{
		ID:          item.ID,
		Category:    item.Category,
		ProductName: item.ProductName,
		Brand:       item.Brand,
		SizeDetails: item.SizeDetails,
		Quantity:    item.Quantity,
		PriceCAD:    item.PriceCAD,
		PickedUp:    item.PickedUp,
	}
}

func toAPISummary(s models.GrocerySummary) api.Summary {
	return api.Summary{
		Date:          s.Date,
		EstimatedCost: s.EstimatedCost,
		ActualCost:    s.ActualCost,
		Difference:    calculator.Difference(s),
		Store:         s.Store,
	}
}

func toAPISummaries(summaries []models.GrocerySummary) []api.Summary {
	out := make([]api.Summary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toAPISummary(s))
	}
	return out
}

func toPatch(p api.ItemPatch) grocery.ItemPatch {
	return grocery.ItemPatch{
		Category:    p.Category,
		ProductName: p.ProductName,
		Brand:       p.Brand,
		SizeDetails: p.SizeDetails,
		Quantity:    p.Quantity,
		PriceCAD:    p.PriceCAD,
		PickedUp:    p.PickedUp,
	}
}

func toAPIView(l *grocery.List) api.View {
	displayed := l.DisplayedItems()
	items := make([]api.Item, 0, len(displayed))
	for _, item := range displayed {
		items = append(items, toAPIItem(item))
	}

	filter := l.Filter()
	return api.View{
		Items: items,
		Filter: api.Filter{
			SearchTerm:       filter.SearchTerm,
			ShowOnlyUnpicked: filter.ShowOnlyUnpicked,
		},
		CurrentPage:   l.CurrentPage(),
		TotalPages:    l.TotalPages(),
		PageSize:      l.PageSize(),
		FilteredCount: l.FilteredCount(),
		TotalCount:    l.TotalCount(),
		EstimatedCost: l.EstimatedCost(),
	}
}

func toAPIStatistics(stats []calculator.StoreStatistic) []api.StoreStatistic {
	out := make([]api.StoreStatistic, 0, len(stats))
	for _, s := range stats {
		out = append(out, api.StoreStatistic{
			Store:          s.Store,
			EstimatedTotal: s.EstimatedTotal,
			ActualTotal:    s.ActualTotal,
			EstimatedAvg:   s.EstimatedAvg,
			ActualAvg:      s.ActualAvg,
			Count:          s.Count,
			Difference:     s.Difference,
		})
	}
	return out
}

func toAPIChart(c calculator.CostByDate, scale float64) api.CostChart {
	costs := make(map[string]map[string]api.Cost, len(c.Costs))
	for date, byStore := range c.Costs {
		costs[date] = make(map[string]api.Cost, len(byStore))
		for store, cost := range byStore {
			costs[date][store] = api.Cost{Estimated: cost.Estimated, Actual: cost.Actual}
		}
	}
	return api.CostChart{Dates: c.Dates, Stores: c.Stores, Costs: costs, Max: scale}
}

func toAPIBackups(backups []storage.Backup) []api.Backup {
	out := make([]api.Backup, 0, len(backups))
	for _, b := range backups {
		out = append(out, api.Backup{
			ID:           b.ID,
			Name:         b.Name,
			ModifiedTime: b.ModifiedTime,
			Size:         b.Size,
		})
	}
	return out
}

// toAPINotice returns the first notify command as a notice.
func toAPINotice(cmds []grocery.Command) api.Notice {
	for _, cmd := range cmds {
		if cmd.Kind == grocery.CommandNotify {
			return api.Notice{Message: cmd.Message, DurationMs: cmd.Duration.Milliseconds()}
		}
	}
	return api.Notice{}
}
