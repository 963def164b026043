package sheet

import "feesheet/internal/fees"

// Edit is an in-progress cell editor. Input is called per keystroke; the
// typed value reaches the row on Commit and is dropped on Cancel.
type Edit struct {
	sheet *Sheet
	grid  *Grid
	no    int
	field Field

	committed string
	value     string
	feesAtBeg string
	closed    bool
}

// Category returns the category of the edited grid.
func (e *Edit) Category() fees.Category { return e.grid.category }

// Field returns the column being edited.
func (e *Edit) Field() Field { return e.field }

// RowNo returns the sequence number of the edited row.
func (e *Edit) RowNo() int { return e.no }

// Value returns the in-progress text.
func (e *Edit) Value() string { return e.value }

// Input records a keystroke. For a line-count edit on an auto-calculated row
// the fee is recomputed from the typed text and written to the row at once.
// Totals are recalculated after every keystroke.
func (e *Edit) Input(value string) error {
	if e.closed {
		return ErrEditClosed
	}
	idx, err := e.grid.index(e.no)
	if err != nil {
		return err
	}
	e.value = value
	if e.field == FieldLines {
		row := &e.grid.rows[idx]
		if IsAutoCalculated(*row) {
			row.Fees = e.grid.autoFee(*row, value)
		}
	}
	e.sheet.recalc()
	return nil
}

// Commit writes the typed value to the row, runs the consistency pass, and
// recalculates totals. It returns the row as committed.
func (e *Edit) Commit() (Row, error) {
	if e.closed {
		return Row{}, ErrEditClosed
	}
	e.close()
	idx, err := e.grid.index(e.no)
	if err != nil {
		return Row{}, err
	}
	e.grid.rows[idx].set(e.field, e.value)
	e.grid.reconcile(idx)
	e.sheet.recalc()
	return e.grid.rows[idx], nil
}

// Cancel drops the typed value and restores the row to its state before the
// edit began, including any fee refreshed by keystrokes.
func (e *Edit) Cancel() (Row, error) {
	if e.closed {
		return Row{}, ErrEditClosed
	}
	e.close()
	idx, err := e.grid.index(e.no)
	if err != nil {
		return Row{}, err
	}
	row := &e.grid.rows[idx]
	row.Fees = e.feesAtBeg
	e.value = e.committed
	e.sheet.recalc()
	return *row, nil
}

func (e *Edit) close() {
	e.closed = true
	if e.sheet.active == e {
		e.sheet.active = nil
	}
}
