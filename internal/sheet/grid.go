package sheet

import (
	"fmt"
	"strings"

	"feesheet/internal/fees"
)

// Grid is the ordered row collection for one category.
type Grid struct {
	category fees.Category
	rows     []Row
	changed  func()
}

// NewGrid creates a grid seeded with initial default rows.
func NewGrid(category fees.Category, initial int) *Grid {
	g := &Grid{category: category}
	if initial < 0 {
		initial = 0
	}
	g.rows = make([]Row, 0, initial)
	for i := 0; i < initial; i++ {
		g.rows = append(g.rows, NewRow(i+1))
	}
	return g
}

// Category reports which category the grid prices rows against.
func (g *Grid) Category() fees.Category {
	return g.category
}

// Rows returns a copy of the rows in display order.
func (g *Grid) Rows() []Row {
	out := make([]Row, len(g.rows))
	copy(out, g.rows)
	return out
}

// Len returns the number of rows.
func (g *Grid) Len() int {
	return len(g.rows)
}

// Row returns the row with the given sequence number.
func (g *Grid) Row(no int) (Row, error) {
	idx, err := g.index(no)
	if err != nil {
		return Row{}, err
	}
	return g.rows[idx], nil
}

// AddRow appends a default row and returns it.
func (g *Grid) AddRow() Row {
	g.rows = append(g.rows, NewRow(len(g.rows)+1))
	g.renumber()
	g.notify()
	return g.rows[len(g.rows)-1]
}

// SetSelected marks a row for the next DeleteSelected.
func (g *Grid) SetSelected(no int, selected bool) error {
	idx, err := g.index(no)
	if err != nil {
		return err
	}
	g.rows[idx].Selected = selected
	return nil
}

// DeleteSelected removes every selected row, renumbers the rest, and returns
// how many rows were removed.
func (g *Grid) DeleteSelected() int {
	kept := g.rows[:0]
	removed := 0
	for _, row := range g.rows {
		if row.Selected {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	clear(g.rows[len(kept):])
	g.rows = kept
	g.renumber()
	g.notify()
	return removed
}

// Replace swaps in a new row set, as pasting a block over the grid does.
// Rows are renumbered, list values canonicalized, selection marks cleared,
// and every row goes through the consistency pass.
func (g *Grid) Replace(rows []Row) {
	g.rows = make([]Row, len(rows))
	copy(g.rows, rows)
	for i := range g.rows {
		row := &g.rows[i]
		row.Selected = false
		for _, f := range []Field{FieldKind, FieldCustomFee, FieldEdition} {
			row.set(f, row.Value(f))
		}
	}
	g.renumber()
	for i := range g.rows {
		g.reconcile(i)
	}
	g.notify()
}

func (g *Grid) renumber() {
	for i := range g.rows {
		g.rows[i].No = i + 1
	}
}

func (g *Grid) index(no int) (int, error) {
	idx := no - 1
	if idx < 0 || idx >= len(g.rows) || g.rows[idx].No != no {
		return -1, fmt.Errorf("%w: %s row %d", ErrRowNotFound, g.category, no)
	}
	return idx, nil
}

// autoFee prices the row's committed line count, formatted for display.
func (g *Grid) autoFee(row Row, linesText string) string {
	fee, ok := fees.Compute(string(g.category), row.Edition, fees.ParseLines(linesText))
	if !ok {
		return ""
	}
	return fees.FormatMMK(fee)
}

// reconcile is the consistency pass run after any cell commit.
func (g *Grid) reconcile(idx int) {
	row := &g.rows[idx]
	if strings.EqualFold(strings.TrimSpace(row.Kind), "exe") && !strings.EqualFold(strings.TrimSpace(row.CustomFee), "yes") {
		row.CustomFee = CustomFeeYes
	}
	if IsAutoCalculated(*row) {
		row.Fees = g.autoFee(*row, row.Lines)
	}
}

func (g *Grid) notify() {
	if g.changed != nil {
		g.changed()
	}
}
