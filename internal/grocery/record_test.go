package grocery

import (
	"errors"
	"testing"

	"github.com/mmynk/groceries/internal/models"
)

func TestDecodeItems(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []models.GroceryItem
		wantErr bool
	}{
		{
			name:    "current field names",
			payload: `[{"id":"a","category":"Boissons","productName":"Jus","brand":"Oasis","sizeDetails":"1.75 L","quantity":2,"priceCAD":3.49,"pickedUp":true,"ownerId":"alice"}]`,
			want: []models.GroceryItem{
				{ID: "a", Category: "Boissons", ProductName: "Jus", Brand: "Oasis", SizeDetails: "1.75 L", Quantity: 2, PriceCAD: 3.49, PickedUp: true, OwnerID: "alice"},
			},
		},
		{
			name:    "legacy spreadsheet columns",
			payload: `[{"Category":"Collations","Product Name":"Croustilles","Size / Details":"235 g","Quantity":1,"Price (CAD)":4.29,"Picked Up":false}]`,
			want: []models.GroceryItem{
				{Category: "Collations", ProductName: "Croustilles", SizeDetails: "235 g", Quantity: 1, PriceCAD: 4.29},
			},
		},
		{
			name:    "missing fields default and unknown fields are ignored",
			payload: `[{"productName":"Oeufs","colour":"brown"}]`,
			want: []models.GroceryItem{
				{ProductName: "Oeufs"},
			},
		},
		{
			name:    "numeric strings and loose booleans",
			payload: `[{"productName":"Riz","quantity":"3","priceCAD":" 7.5 ","pickedUp":"true"},{"productName":"Sel","pickedUp":1,"quantity":"lots"}]`,
			want: []models.GroceryItem{
				{ProductName: "Riz", Quantity: 3, PriceCAD: 7.5, PickedUp: true},
				{ProductName: "Sel", PickedUp: true},
			},
		},
		{
			name:    "non-object elements are skipped",
			payload: `[1, "x", null, {"productName":"Thé"}]`,
			want: []models.GroceryItem{
				{ProductName: "Thé"},
			},
		},
		{
			name:    "empty array",
			payload: `[]`,
			want:    []models.GroceryItem{},
		},
		{name: "object payload", payload: `{"items":[]}`, wantErr: true},
		{name: "null payload", payload: `null`, wantErr: true},
		{name: "empty payload", payload: ``, wantErr: true},
		{name: "truncated array", payload: `[{"productName":"Lait"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeItems([]byte(tt.payload))
			if tt.wantErr {
				if !errors.Is(err, ErrImportFormat) {
					t.Fatalf("DecodeItems() error = %v, want ErrImportFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeItems() unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("DecodeItems() returned %d items, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("item %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecodeSummaries(t *testing.T) {
	got, err := DecodeSummaries([]byte(`[
		{"date":"2024-03-01","estimatedCost":48.75,"actualCost":"52.10","store":"Metro","customerId":"alice"},
		{"store":"IGA"}
	]`))
	if err != nil {
		t.Fatalf("DecodeSummaries() error: %v", err)
	}

	want := []models.GrocerySummary{
		{Date: "2024-03-01", EstimatedCost: 48.75, ActualCost: 52.10, Store: "Metro", OwnerID: "alice"},
		{Store: "IGA"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d summaries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("summary %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if _, err := DecodeSummaries([]byte(`"nope"`)); !errors.Is(err, ErrImportFormat) {
		t.Errorf("expected ErrImportFormat, got %v", err)
	}
}

func TestEncodeDecodeItems(t *testing.T) {
	items := []models.GroceryItem{
		{ID: "1", Category: "Boissons", ProductName: "Eau", Quantity: 6, PriceCAD: 0.99, OwnerID: "alice"},
	}
	data, err := EncodeItems(items)
	if err != nil {
		t.Fatalf("EncodeItems() error: %v", err)
	}
	got, err := DecodeItems(data)
	if err != nil {
		t.Fatalf("DecodeItems() error: %v", err)
	}
	if len(got) != 1 || got[0] != items[0] {
		t.Errorf("got %+v, want %+v", got, items)
	}

	empty, _ := EncodeItems(nil)
	if string(empty) != "[]" {
		t.Errorf("EncodeItems(nil) = %s, want []", empty)
	}
}
