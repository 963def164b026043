package sheet_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"feesheet/internal/sheet"
)

func mustSet(t *testing.T, s *sheet.Sheet, category string, no int, field sheet.Field, value string) sheet.Row {
	t.Helper()
	row, err := s.Set(category, no, field, value)
	if err != nil {
		t.Fatalf("Set(%s, %d, %s, %q): %v", category, no, field, value, err)
	}
	return row
}

func TestNewSheetStartsWithDefaultRows(t *testing.T) {
	s := sheet.New(sheet.DefaultInitialRows)
	for _, g := range []*sheet.Grid{s.Movies(), s.Series()} {
		if g.Len() != 6 {
			t.Fatalf("%s grid has %d rows, want 6", g.Category(), g.Len())
		}
		for i, row := range g.Rows() {
			if row.No != i+1 {
				t.Fatalf("%s row %d numbered %d", g.Category(), i, row.No)
			}
		}
	}
	if got := s.Totals(); got != (sheet.Totals{}) {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}

func TestAutoFeeScenario(t *testing.T) {
	s := sheet.New(1)
	row := mustSet(t, s, "movie", 1, sheet.FieldLines, "1500")
	if row.Fees != "15,000" {
		t.Fatalf("expected fee 15,000, got %q", row.Fees)
	}
	want := sheet.Totals{Movie: 15000, Series: 0, Grand: 15000}
	if got := s.Totals(); got != want {
		t.Fatalf("totals = %+v, want %+v", got, want)
	}
}

func TestExeForcesCustomFeeAndKeepsManualFee(t *testing.T) {
	s := sheet.New(1)
	mustSet(t, s, "movie", 1, sheet.FieldLines, "1500")
	row := mustSet(t, s, "movie", 1, sheet.FieldKind, "Exe")
	if row.CustomFee != sheet.CustomFeeYes {
		t.Fatalf("expected custom fee forced to Yes, got %q", row.CustomFee)
	}
	if sheet.IsAutoCalculated(row) {
		t.Fatal("expected manual row after Exe")
	}

	mustSet(t, s, "movie", 1, sheet.FieldFees, "9999")
	for _, lines := range []string{"2000", "10", ""} {
		row = mustSet(t, s, "movie", 1, sheet.FieldLines, lines)
		if row.Fees != "9999" {
			t.Fatalf("manual fee overwritten after lines=%q: %q", lines, row.Fees)
		}
	}
	if got := s.Totals().Movie; got != 9999 {
		t.Fatalf("movie total = %d, want 9999", got)
	}
}

func TestLiveLinesInputUpdatesFeeBeforeCommit(t *testing.T) {
	s := sheet.New(1)
	var seen []sheet.Totals
	s.OnTotals(func(tot sheet.Totals) { seen = append(seen, tot) })

	e, err := s.Begin("series", 1, sheet.FieldLines)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	for _, keystroke := range []string{"8", "80", "801"} {
		if err := e.Input(keystroke); err != nil {
			t.Fatalf("Input(%q): %v", keystroke, err)
		}
	}
	row, _ := s.Series().Row(1)
	if row.Lines != "" {
		t.Fatalf("lines committed early: %q", row.Lines)
	}
	if row.Fees != "8,010" {
		t.Fatalf("live fee = %q, want 8,010", row.Fees)
	}
	if got := s.Totals().Series; got != 8010 {
		t.Fatalf("live series total = %d", got)
	}
	// initial registration plus one per keystroke
	if len(seen) != 4 {
		t.Fatalf("expected 4 totals notifications, got %d", len(seen))
	}

	row, err = e.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if row.Lines != "801" || row.Fees != "8,010" {
		t.Fatalf("unexpected committed row: %+v", row)
	}
	if s.Active() != nil {
		t.Fatal("expected no active edit after commit")
	}
}

func TestInvalidLinesBlankFee(t *testing.T) {
	s := sheet.New(1)
	mustSet(t, s, "movie", 1, sheet.FieldLines, "1500")
	for _, lines := range []string{"abc", "-5", ""} {
		row := mustSet(t, s, "movie", 1, sheet.FieldLines, lines)
		if row.Fees != "" {
			t.Fatalf("lines=%q: expected blank fee, got %q", lines, row.Fees)
		}
	}
	mustSet(t, s, "movie", 1, sheet.FieldLines, "100")
	row := mustSet(t, s, "movie", 1, sheet.FieldEdition, "Vintage")
	if row.Fees != "" {
		t.Fatalf("unknown edition: expected blank fee, got %q", row.Fees)
	}
}

func TestCancelRestoresLiveFee(t *testing.T) {
	s := sheet.New(1)
	mustSet(t, s, "movie", 1, sheet.FieldLines, "1200")

	e, err := s.Begin("movie", 1, sheet.FieldLines)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := e.Input("2200"); err != nil {
		t.Fatalf("Input: %v", err)
	}
	if got := s.Totals().Movie; got != 22000 {
		t.Fatalf("live total = %d, want 22000", got)
	}
	row, err := e.Cancel()
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if row.Lines != "1200" || row.Fees != "12,000" {
		t.Fatalf("cancel did not restore row: %+v", row)
	}
	if got := s.Totals().Movie; got != 12000 {
		t.Fatalf("total after cancel = %d", got)
	}
	if _, err := e.Commit(); !errors.Is(err, sheet.ErrEditClosed) {
		t.Fatalf("expected ErrEditClosed, got %v", err)
	}
}

func TestEditionChangeRecomputesWithoutTouchingLines(t *testing.T) {
	s := sheet.New(1)
	mustSet(t, s, "movie", 1, sheet.FieldLines, "1300")
	row := mustSet(t, s, "movie", 1, sheet.FieldEdition, "new")
	if row.Edition != sheet.EditionNew {
		t.Fatalf("edition not canonicalized: %q", row.Edition)
	}
	if row.Fees != "16,500" {
		t.Fatalf("fee after edition change = %q, want 16,500", row.Fees)
	}
	row = mustSet(t, s, "movie", 1, sheet.FieldCustomFee, "Yes")
	if row.Fees != "16,500" {
		t.Fatalf("manual row lost its fee: %q", row.Fees)
	}
	row = mustSet(t, s, "movie", 1, sheet.FieldCustomFee, "No")
	if row.Fees != "16,500" {
		t.Fatalf("auto row fee = %q", row.Fees)
	}
}

func TestFeeEditRejectedOnAutoRow(t *testing.T) {
	for _, field := range []sheet.Field{sheet.FieldFees, "Fees", " FEES "} {
		s := sheet.New(1)
		mustSet(t, s, "movie", 1, sheet.FieldLines, "1500")
		if _, err := s.Begin("movie", 1, field); !errors.Is(err, sheet.ErrReadOnly) {
			t.Fatalf("Begin(%q) error = %v, want ErrReadOnly", field, err)
		}
		if s.Active() != nil {
			t.Fatalf("Begin(%q) left an active edit", field)
		}
	}
}

func TestBeginNormalizesFieldName(t *testing.T) {
	s := sheet.New(1)
	e, err := s.Begin("movie", 1, "Lines")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if e.Field() != sheet.FieldLines {
		t.Fatalf("Field = %q, want %q", e.Field(), sheet.FieldLines)
	}
	if err := e.Input("1300"); err != nil {
		t.Fatalf("Input: %v", err)
	}
	row, err := e.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if row.Lines != "1300" || row.Fees != "13,000" {
		t.Fatalf("row = %+v", row)
	}
}

func TestFeeInputRecalculatesFromCommittedData(t *testing.T) {
	s := sheet.New(1)
	mustSet(t, s, "series", 1, sheet.FieldCustomFee, "Yes")
	e, err := s.Begin("series", 1, sheet.FieldFees)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := e.Input("5,000"); err != nil {
		t.Fatalf("Input: %v", err)
	}
	if got := s.Totals().Series; got != 0 {
		t.Fatalf("uncommitted fee counted in totals: %d", got)
	}
	if _, err := e.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got := s.Totals(); got.Series != 5000 || got.Grand != 5000 {
		t.Fatalf("totals after commit = %+v", got)
	}
}

func TestCommitIsIdempotent(t *testing.T) {
	s := sheet.New(2)
	mustSet(t, s, "movie", 1, sheet.FieldLines, "1500")
	mustSet(t, s, "movie", 2, sheet.FieldKind, "Exe")
	mustSet(t, s, "movie", 2, sheet.FieldFees, "700")

	before := s.Movies().Rows()
	totals := s.Totals()
	mustSet(t, s, "movie", 1, sheet.FieldLines, "1500")
	mustSet(t, s, "movie", 2, sheet.FieldFees, "700")
	mustSet(t, s, "movie", 2, sheet.FieldKind, "Exe")

	if diff := cmp.Diff(before, s.Movies().Rows()); diff != "" {
		t.Fatalf("rows changed on repeated commit (-before +after):\n%s", diff)
	}
	if s.Totals() != totals {
		t.Fatalf("totals changed: %+v -> %+v", totals, s.Totals())
	}
}

func TestBeginCommitsPreviousEdit(t *testing.T) {
	s := sheet.New(2)
	first, err := s.Begin("movie", 1, sheet.FieldName)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := first.Input("Film A"); err != nil {
		t.Fatalf("Input: %v", err)
	}
	if _, err := s.Begin("movie", 2, sheet.FieldName); err != nil {
		t.Fatalf("Begin second: %v", err)
	}
	row, _ := s.Movies().Row(1)
	if row.Name != "Film A" {
		t.Fatalf("previous edit not committed on focus change: %q", row.Name)
	}
}

func TestAddAndDeleteSelectedRenumbers(t *testing.T) {
	s := sheet.New(0)
	for i := 0; i < 5; i++ {
		if _, err := s.AddRow("series"); err != nil {
			t.Fatalf("AddRow: %v", err)
		}
	}
	for no := 1; no <= 5; no++ {
		mustSet(t, s, "series", no, sheet.FieldName, string(rune('A'+no-1)))
		mustSet(t, s, "series", no, sheet.FieldLines, "800")
	}
	if got := s.Totals().Series; got != 40000 {
		t.Fatalf("series total = %d", got)
	}
	for _, no := range []int{1, 3, 4} {
		if err := s.SetSelected("series", no, true); err != nil {
			t.Fatalf("SetSelected(%d): %v", no, err)
		}
	}
	removed, err := s.DeleteSelected("series")
	if err != nil {
		t.Fatalf("DeleteSelected: %v", err)
	}
	if removed != 3 {
		t.Fatalf("removed %d rows, want 3", removed)
	}

	var got []string
	for i, row := range s.Series().Rows() {
		if row.No != i+1 {
			t.Fatalf("row %d numbered %d", i, row.No)
		}
		got = append(got, row.Name)
	}
	if diff := cmp.Diff([]string{"B", "E"}, got); diff != "" {
		t.Fatalf("remaining order (-want +got):\n%s", diff)
	}
	if tot := s.Totals(); tot.Series != 16000 || tot.Grand != 16000 {
		t.Fatalf("totals after delete = %+v", tot)
	}

	row, err := s.AddRow("series")
	if err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	if row.No != 3 {
		t.Fatalf("new row numbered %d, want 3", row.No)
	}
}

func TestDeleteAllRowsLeavesEmptyGrid(t *testing.T) {
	s := sheet.New(2)
	_ = s.SetSelected("movie", 1, true)
	_ = s.SetSelected("movie", 2, true)
	if _, err := s.DeleteSelected("movie"); err != nil {
		t.Fatalf("DeleteSelected: %v", err)
	}
	if s.Movies().Len() != 0 {
		t.Fatalf("expected empty grid, got %d rows", s.Movies().Len())
	}
}

func TestUnknownCategoryAndRow(t *testing.T) {
	s := sheet.New(1)
	if _, err := s.AddRow("podcast"); !errors.Is(err, sheet.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if _, err := s.Begin("movie", 9, sheet.FieldName); !errors.Is(err, sheet.ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
}
