// Package api defines the request and response messages of the grocery.v1
// RPC services. Messages travel as JSON.
package api

import "encoding/json"

// Item is a grocery list row.
type Item struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	ProductName string  `json:"productName"`
	Brand       string  `json:"brand,omitempty"`
	SizeDetails string  `json:"sizeDetails"`
	Quantity    float64 `json:"quantity"`
	PriceCAD    float64 `json:"priceCAD"`
	PickedUp    bool    `json:"pickedUp"`
}

// ItemPatch carries the fields to change on an item. Absent fields are kept.
type ItemPatch struct {
	Category    *string  `json:"category,omitempty"`
	ProductName *string  `json:"productName,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	SizeDetails *string  `json:"sizeDetails,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	PriceCAD    *float64 `json:"priceCAD,omitempty"`
	PickedUp    *bool    `json:"pickedUp,omitempty"`
}

// Summary is a recorded shopping trip.
type Summary struct {
	Date          string  `json:"date"`
	EstimatedCost float64 `json:"estimatedCost"`
	ActualCost    float64 `json:"actualCost"`
	Difference    float64 `json:"difference"`
	Store         string  `json:"store"`
}

// Filter is the search state of the list.
type Filter struct {
	SearchTerm       string `json:"searchTerm"`
	ShowOnlyUnpicked bool   `json:"showOnlyUnpicked"`
}

// View is what the list screen renders.
type View struct {
	Items         []Item  `json:"items"`
	Filter        Filter  `json:"filter"`
	CurrentPage   int     `json:"currentPage"`
	TotalPages    int     `json:"totalPages"`
	PageSize      int     `json:"pageSize"`
	FilteredCount int     `json:"filteredCount"`
	TotalCount    int     `json:"totalCount"`
	EstimatedCost float64 `json:"estimatedCost"`
}

// Notice is a transient message for the user.
type Notice struct {
	Message    string `json:"message"`
	DurationMs int64  `json:"durationMs"`
}

type GetViewRequest struct {
	// Filter, when set, replaces the current filter and returns to page 1.
	Filter *Filter `json:"filter,omitempty"`
}

type GetViewResponse struct {
	View View `json:"view"`
}

type AddItemRequest struct{}

type AddItemResponse struct {
	ItemID string `json:"itemId"`
	View   View   `json:"view"`
}

type UpdateItemRequest struct {
	ItemID string    `json:"itemId"`
	Patch  ItemPatch `json:"patch"`
}

type UpdateItemResponse struct {
	Updated bool `json:"updated"`
	View    View `json:"view"`
}

type DeleteItemRequest struct {
	ItemID string `json:"itemId"`
}

type DeleteItemResponse struct {
	Deleted bool `json:"deleted"`
	View    View `json:"view"`
}

type TogglePickedRequest struct {
	ItemID string `json:"itemId"`
}

type TogglePickedResponse struct {
	Toggled bool `json:"toggled"`
	View    View `json:"view"`
}

// Page directions accepted by ChangePage.
const (
	DirectionNext     = "next"
	DirectionPrevious = "previous"
)

type ChangePageRequest struct {
	// Direction moves relative to the current page; otherwise Page is used.
	Direction string `json:"direction,omitempty"`
	Page      int    `json:"page,omitempty"`
}

type ChangePageResponse struct {
	View View `json:"view"`
}

// Backend names accepted by the persistence RPCs. An empty name selects the
// default backend.
const (
	BackendLocal = "local"
	BackendFile  = "file"
	BackendDrive = "drive"
)

type SaveDataRequest struct {
	Backend string `json:"backend,omitempty"`
}

type SaveDataResponse struct {
	Notice Notice `json:"notice"`
}

// Sources reported by LoadData.
const (
	SourceStore = "store"
	SourceSeed  = "seed"
	SourceEmpty = "empty"
)

type LoadDataRequest struct {
	Backend string `json:"backend,omitempty"`
}

type LoadDataResponse struct {
	View   View   `json:"view"`
	Source string `json:"source"`
}

type SaveSummaryRequest struct {
	Date       string  `json:"date"`
	ActualCost float64 `json:"actualCost"`
	Store      string  `json:"store,omitempty"`
	Backend    string  `json:"backend,omitempty"`
}

type SaveSummaryResponse struct {
	Summary Summary `json:"summary"`
	Notice  Notice  `json:"notice"`
}

// StoreStatistic aggregates the trips made to one store.
type StoreStatistic struct {
	Store          string  `json:"store"`
	EstimatedTotal float64 `json:"estimatedTotal"`
	ActualTotal    float64 `json:"actualTotal"`
	EstimatedAvg   float64 `json:"estimatedAvg"`
	ActualAvg      float64 `json:"actualAvg"`
	Count          int     `json:"count"`
	Difference     float64 `json:"difference"`
}

// Cost is an estimated/actual pair.
type Cost struct {
	Estimated float64 `json:"estimated"`
	Actual    float64 `json:"actual"`
}

// CostChart holds the per date and store totals. Costs is keyed by date
// then store.
type CostChart struct {
	Dates  []string                   `json:"dates"`
	Stores []string                   `json:"stores"`
	Costs  map[string]map[string]Cost `json:"costs"`
	Max    float64                    `json:"max"`
}

type GetStatisticsRequest struct{}

type GetStatisticsResponse struct {
	Stores    []StoreStatistic `json:"stores"`
	Chart     CostChart        `json:"chart"`
	Summaries []Summary        `json:"summaries"`
}

// ImportDataRequest carries a backup. Both payloads are JSON arrays in the
// export file format; a missing Summaries keeps the current trips.
type ImportDataRequest struct {
	Items     json.RawMessage `json:"items"`
	Summaries json.RawMessage `json:"summaries,omitempty"`
	Backend   string          `json:"backend,omitempty"`
}

type ImportDataResponse struct {
	View         View   `json:"view"`
	SummaryCount int    `json:"summaryCount"`
	Notice       Notice `json:"notice"`
}

type ExportDataRequest struct{}

type ExportDataResponse struct {
	Items     json.RawMessage `json:"items"`
	Summaries json.RawMessage `json:"summaries"`
}

// Backup is a restorable file of a backend.
type Backup struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	Size         int64  `json:"size"`
}

type ListBackupsRequest struct {
	Backend string `json:"backend,omitempty"`
}

type ListBackupsResponse struct {
	Backups []Backup `json:"backups"`
}
