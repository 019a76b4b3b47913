package models

// DefaultCategory is the category given to freshly added items.
const DefaultCategory = "Fruits et légumes"

// Categories lists the category choices offered when editing an item.
var Categories = []string{
	"Fruits et légumes",
	"Produits laitiers et œufs",
	"Garde-Manger",
	"Boissons",
	"Viandes et volailles",
	"Collations",
	"Produits surgelés",
	"Pains et pâtisseries",
	"Entretien ménager",
}

// GroceryItem represents a single product on the household grocery list.
type GroceryItem struct {
	// ID is the stable synthetic identifier (UUID format).
	// Assigned when the item is created or first loaded.
	ID string `json:"id"`

	// Category is the aisle grouping (e.g., "Boissons").
	Category string `json:"category"`

	// ProductName is the name of the product (e.g., "Lait 2%").
	ProductName string `json:"productName"`

	// Brand is optional.
	Brand string `json:"brand,omitempty"`

	// SizeDetails is free text describing the package (e.g., "4 L").
	SizeDetails string `json:"sizeDetails"`

	// Quantity is the number of units to buy. Not validated.
	Quantity float64 `json:"quantity"`

	// PriceCAD is the unit price in Canadian dollars. Not validated.
	PriceCAD float64 `json:"priceCAD"`

	// PickedUp marks the item as obtained during the current trip.
	PickedUp bool `json:"pickedUp"`

	// OwnerID is the customer the item belongs to. Empty for items created
	// before login.
	OwnerID string `json:"ownerId,omitempty"`
}

// NewGroceryItem returns an item with the default field values used when a
// row is added to the list.
func NewGroceryItem(id, ownerID string) GroceryItem {
	return GroceryItem{
		ID:       id,
		Category: DefaultCategory,
		Quantity: 1,
		OwnerID:  ownerID,
	}
}
