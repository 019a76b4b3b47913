// Package models defines the core domain models for the grocery manager.
//
// # Models
//
//   - GroceryItem: one line of the household grocery list
//   - GrocerySummary: the recorded outcome of a shopping trip
//   - Customer: a household account that can log in with an application token
//
// Items and summaries are owned by a customer. The owner is carried in the
// OwnerID field and is stamped by the grocery engine when records are loaded
// or created during an authenticated session.
//
// # Wire format
//
// Items and summaries are persisted as JSON arrays of flat records using the
// json tags declared here. Decoding of stored documents goes through
// grocery.DecodeItems / grocery.DecodeSummaries, which also accept the legacy
// spreadsheet column names and default missing fields.
package models
