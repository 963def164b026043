package api

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"feesheet/internal/fees"
	"feesheet/internal/sheet"
)

func TestFromSheetCarriesRowsTotalsAndFlags(t *testing.T) {
	s := sheet.New(2)
	if _, err := s.Set("movie", 1, sheet.FieldLines, "1500"); err != nil {
		t.Fatalf("set lines: %v", err)
	}
	if _, err := s.Set("series", 2, sheet.FieldKind, "Exe"); err != nil {
		t.Fatalf("set kind: %v", err)
	}

	view := FromSheet("abc", s)
	if view.ID != "abc" {
		t.Fatalf("id = %q", view.ID)
	}
	if view.Movies.Label != "Movie" || view.Series.Label != "Series" {
		t.Fatalf("labels = %q, %q", view.Movies.Label, view.Series.Label)
	}
	if got := view.Movies.Rows[0].Fees; got != "15,000" {
		t.Fatalf("movie fee = %q, want 15,000", got)
	}
	if !view.Movies.Rows[0].Auto || view.Movies.Rows[0].FeeEditable {
		t.Fatalf("movie row flags = %+v", view.Movies.Rows[0])
	}
	exe := view.Series.Rows[1]
	if exe.Auto || !exe.FeeEditable || exe.CustomFee != sheet.CustomFeeYes {
		t.Fatalf("exe row = %+v", exe)
	}
	want := TotalsView{Movie: 15000, Series: 0, Grand: 15000, MovieText: "15,000", SeriesText: "0", GrandText: "15,000"}
	if diff := cmp.Diff(want, view.Totals); diff != "" {
		t.Fatalf("totals mismatch (-want +got):\n%s", diff)
	}
	if view.Active != nil {
		t.Fatalf("expected no active edit, got %+v", view.Active)
	}
}

func TestFromSheetReportsActiveEdit(t *testing.T) {
	s := sheet.New(1)
	edit, err := s.Begin("series", 1, sheet.FieldLines)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := edit.Input("90"); err != nil {
		t.Fatalf("input: %v", err)
	}
	view := FromSheet("x", s)
	if view.Active == nil {
		t.Fatal("expected active edit")
	}
	want := EditView{Category: "series", No: 1, Field: "lines", Value: "90"}
	if diff := cmp.Diff(want, *view.Active); diff != "" {
		t.Fatalf("active edit mismatch (-want +got):\n%s", diff)
	}
}

func TestSheetViewJSONUsesCamelCase(t *testing.T) {
	data, err := json.Marshal(FromSheet("id", sheet.New(1)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	text := string(data)
	for _, key := range []string{`"customFee"`, `"feeEditable"`, `"grandText"`} {
		if !strings.Contains(text, key) {
			t.Fatalf("expected %s in %s", key, text)
		}
	}
	if strings.Contains(text, `"active"`) {
		t.Fatalf("idle sheet should omit active: %s", text)
	}
}

func TestRulesListsEveryTier(t *testing.T) {
	rules := Rules()
	if rules.Currency != "MMK" {
		t.Fatalf("currency = %q", rules.Currency)
	}
	if len(rules.Tiers) != len(fees.Tiers()) {
		t.Fatalf("tiers = %d, want %d", len(rules.Tiers), len(fees.Tiers()))
	}
	first := rules.Tiers[0]
	if first.Summary != "Movie Old: base 12,000 (limit 1200, extra ×10)" {
		t.Fatalf("summary = %q", first.Summary)
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"custom_fee": "Custom Fee",
		"movie":      "Movie",
		"  ":         "",
		"new":        "New",
	}
	for in, want := range tests {
		if got := Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFieldsExposeListOptions(t *testing.T) {
	fields := Fields()
	if len(fields) != 6 {
		t.Fatalf("fields = %d", len(fields))
	}
	if diff := cmp.Diff([]string{"Exe", "Blank"}, fields[0].Options); diff != "" {
		t.Fatalf("kind options (-want +got):\n%s", diff)
	}
	if fields[3].Options != nil {
		t.Fatalf("name column should be free text, got %v", fields[3].Options)
	}
}

func TestFormatTime(t *testing.T) {
	if FormatTime(time.Time{}) != "" {
		t.Fatal("zero time should render empty")
	}
	ts := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	if got := FormatTime(ts); got != "2026-03-01T08:30:00.000Z" {
		t.Fatalf("FormatTime = %q", got)
	}
}
