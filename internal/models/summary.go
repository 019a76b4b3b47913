package models

// DefaultStore is the store preselected when recording a trip.
const DefaultStore = "Super C"

// Stores lists the store choices offered when recording a trip.
var Stores = []string{
	"Super C",
	"Metro",
	"IGA",
	"Maxi",
	"Provigo",
	"Loblaws",
}

// GrocerySummary records the outcome of one shopping trip.
// Summaries are immutable once saved.
type GrocerySummary struct {
	// Date is the trip date in ISO format (yyyy-mm-dd).
	Date string `json:"date"`

	// EstimatedCost is the sum of price × quantity over picked-up items at the
	// time the summary was saved.
	EstimatedCost float64 `json:"estimatedCost"`

	// ActualCost is the amount paid at the till, entered by the user.
	ActualCost float64 `json:"actualCost"`

	// Store is the name of the store visited.
	Store string `json:"store"`

	// OwnerID is the customer that recorded the trip.
	OwnerID string `json:"ownerId,omitempty"`
}
