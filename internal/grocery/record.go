package grocery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmynk/groceries/internal/models"
)

// ErrImportFormat is returned when a bulk payload is not a JSON array.
var ErrImportFormat = errors.New("payload is not a JSON array of records")

// Accepted keys per field, current name first. The remaining names are the
// spreadsheet column headers older exports were written with.
var (
	keyID          = []string{"id"}
	keyCategory    = []string{"category", "Category"}
	keyProductName = []string{"productName", "Product Name"}
	keyBrand       = []string{"brand", "Brand"}
	keySizeDetails = []string{"sizeDetails", "Size / Details"}
	keyQuantity    = []string{"quantity", "Quantity"}
	keyPrice       = []string{"priceCAD", "Price (CAD)"}
	keyPickedUp    = []string{"pickedUp", "Picked Up"}
	keyOwner       = []string{"ownerId", "customerId"}

	keyDate          = []string{"date"}
	keyEstimatedCost = []string{"estimatedCost"}
	keyActualCost    = []string{"actualCost"}
	keyStore         = []string{"store"}
)

type record map[string]json.RawMessage

func (r record) lookup(keys []string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}

// str reads a string field; numbers are kept in their JSON spelling.
func (r record) str(keys []string) string {
	v, ok := r.lookup(keys)
	if !ok {
		return ""
	}
	var s string
	if json.Unmarshal(v, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(v, &n) == nil {
		return n.String()
	}
	return ""
}

// num reads a number or a numeric string. Anything else is 0.
func (r record) num(keys []string) float64 {
	v, ok := r.lookup(keys)
	if !ok {
		return 0
	}
	var f float64
	if json.Unmarshal(v, &f) == nil {
		return f
	}
	var s string
	if json.Unmarshal(v, &s) == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

// flag reads a boolean, a "true"/"false" string or a 0/1 number.
func (r record) flag(keys []string) bool {
	v, ok := r.lookup(keys)
	if !ok {
		return false
	}
	var b bool
	if json.Unmarshal(v, &b) == nil {
		return b
	}
	var s string
	if json.Unmarshal(v, &s) == nil {
		b, _ := strconv.ParseBool(strings.TrimSpace(s))
		return b
	}
	var f float64
	if json.Unmarshal(v, &f) == nil {
		return f != 0
	}
	return false
}

// decodeRecords splits a JSON array into object records. Elements that are
// not objects are skipped.
func decodeRecords(data []byte) ([]record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrImportFormat
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}

	records := make([]record, 0, len(elems))
	for _, e := range elems {
		var r record
		if err := json.Unmarshal(e, &r); err != nil || r == nil {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// DecodeItems decodes a JSON array of item records. Missing or malformed
// fields are defaulted; unknown fields are ignored. Only a payload that is not
// an array fails, with ErrImportFormat.
func DecodeItems(data []byte) ([]models.GroceryItem, error) {
	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}

	items := make([]models.GroceryItem, 0, len(records))
	for _, r := range records {
		items = append(items, models.GroceryItem{
			ID:          r.str(keyID),
			Category:    r.str(keyCategory),
			ProductName: r.str(keyProductName),
			Brand:       r.str(keyBrand),
			SizeDetails: r.str(keySizeDetails),
			Quantity:    r.num(keyQuantity),
			PriceCAD:    r.num(keyPrice),
			PickedUp:    r.flag(keyPickedUp),
			OwnerID:     r.str(keyOwner),
		})
	}
	return items, nil
}

// DecodeSummaries decodes a JSON array of summary records with the same
// tolerance as DecodeItems.
func DecodeSummaries(data []byte) ([]models.GrocerySummary, error) {
	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.GrocerySummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, models.GrocerySummary{
			Date:          r.str(keyDate),
			EstimatedCost: r.num(keyEstimatedCost),
			ActualCost:    r.num(keyActualCost),
			Store:         r.str(keyStore),
			OwnerID:       r.str(keyOwner),
		})
	}
	return summaries, nil
}

// EncodeItems renders items as an indented JSON array.
func EncodeItems(items []models.GroceryItem) ([]byte, error) {
	if items == nil {
		items = []models.GroceryItem{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal items: %w", err)
	}
	return data, nil
}

// EncodeSummaries renders summaries as an indented JSON array.
func EncodeSummaries(summaries []models.GrocerySummary) ([]byte, error) {
	if summaries == nil {
		summaries = []models.GrocerySummary{}
	}
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summaries: %w", err)
	}
	return data, nil
}
