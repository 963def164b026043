package api

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"feesheet/internal/fees"
	"feesheet/internal/sheet"
)

// Currency is the unit every amount is expressed in.
const Currency = "MMK"

// FromSheet converts a sheet to its API representation.
func FromSheet(id string, s *sheet.Sheet) SheetView {
	if s == nil {
		return SheetView{ID: id}
	}
	view := SheetView{
		ID:     id,
		Movies: FromGrid(s.Movies()),
		Series: FromGrid(s.Series()),
		Totals: FromTotals(s.Totals()),
	}
	if edit := s.Active(); edit != nil {
		view.Active = &EditView{
			Category: string(edit.Category()),
			No:       edit.RowNo(),
			Field:    string(edit.Field()),
			Value:    edit.Value(),
		}
	}
	return view
}

// FromGrid converts one grid.
func FromGrid(g *sheet.Grid) GridView {
	if g == nil {
		return GridView{Rows: []RowView{}}
	}
	rows := g.Rows()
	out := make([]RowView, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromRow(row))
	}
	return GridView{
		Category: string(g.Category()),
		Label:    Label(string(g.Category())),
		Rows:     out,
	}
}

// FromRow converts one row and derives its editability flags.
func FromRow(row sheet.Row) RowView {
	auto := sheet.IsAutoCalculated(row)
	return RowView{
		No:          row.No,
		Kind:        row.Kind,
		CustomFee:   row.CustomFee,
		Edition:     row.Edition,
		Name:        row.Name,
		Lines:       row.Lines,
		Fees:        row.Fees,
		Selected:    row.Selected,
		Auto:        auto,
		FeeEditable: !auto,
	}
}

// FromTotals converts totals and formats them for display.
func FromTotals(t sheet.Totals) TotalsView {
	return TotalsView{
		Movie:      t.Movie,
		Series:     t.Series,
		Grand:      t.Grand,
		MovieText:  fees.FormatMMK(t.Movie),
		SeriesText: fees.FormatMMK(t.Series),
		GrandText:  fees.FormatMMK(t.Grand),
	}
}

// Rules returns the fee tier table.
func Rules() RulesResponse {
	tiers := fees.Tiers()
	out := make([]TierView, 0, len(tiers))
	for _, tier := range tiers {
		out = append(out, FromTier(tier))
	}
	return RulesResponse{Currency: Currency, Tiers: out}
}

// FromTier converts one tier and renders a one-line description of it.
func FromTier(t fees.Tier) TierView {
	return TierView{
		Category: string(t.Category),
		Edition:  string(t.Edition),
		Base:     t.Base,
		Limit:    t.Limit,
		Rate:     t.Rate,
		Summary:  TierSummary(t),
	}
}

// TierSummary describes a tier the way the page hint lists it.
func TierSummary(t fees.Tier) string {
	return fmt.Sprintf("%s %s: base %s (limit %d, extra ×%d)",
		Label(string(t.Category)), Label(string(t.Edition)), fees.FormatMMK(t.Base), t.Limit, t.Rate)
}

// Fields describes the editable columns in display order.
func Fields() []FieldView {
	fields := sheet.Fields()
	out := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldView{
			Name:    string(f),
			Label:   Label(string(f)),
			Options: f.Options(),
		})
	}
	return out
}

// Label title-cases an identifier for display: "custom_fee" becomes "Custom Fee".
func Label(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", " "))
	if value == "" {
		return ""
	}
	// Casers keep state and are not shared between goroutines.
	return cases.Title(language.English).String(value)
}

// FormatTime renders a timestamp for API payloads.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
