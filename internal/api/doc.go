// Package api defines wire-format types and converters for the HTTP layer.
// It translates sheets, grids, and fee tiers into transport-friendly DTOs the
// browser page can render without knowing the internal types.
//
// # Key Types
//
// SheetView: both grids, the totals, and the edit in progress.
//
// RowView: one grid row plus derived flags (auto-calculated, fee editable).
//
// TotalsView: raw totals and their MMK display strings.
//
// RulesResponse: the fee tier table.
//
// # Design Notes
//
// DTOs use camelCase JSON tags for the JavaScript consumer. Row text is passed
// through exactly as stored so the page shows what the user typed. Derived
// flags are computed here rather than in the browser so the page never needs
// its own copy of the auto-calculation rule.
package api
