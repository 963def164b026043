package sheet

import (
	"fmt"

	"feesheet/internal/fees"
)

// DefaultInitialRows is how many blank rows each grid starts with.
const DefaultInitialRows = 6

// Sheet pairs the movie and series grids and keeps their totals current.
type Sheet struct {
	movies *Grid
	series *Grid
	totals Totals
	active *Edit

	observer func(Totals)
}

// New creates a sheet with initialRows default rows in each grid.
func New(initialRows int) *Sheet {
	s := &Sheet{
		movies: NewGrid(fees.CategoryMovie, initialRows),
		series: NewGrid(fees.CategorySeries, initialRows),
	}
	s.movies.changed = s.recalc
	s.series.changed = s.recalc
	s.recalc()
	return s
}

// OnTotals registers fn to receive the totals after every recalculation.
func (s *Sheet) OnTotals(fn func(Totals)) {
	s.observer = fn
	if fn != nil {
		fn(s.totals)
	}
}

// Movies returns the movie grid.
func (s *Sheet) Movies() *Grid { return s.movies }

// Series returns the series grid.
func (s *Sheet) Series() *Grid { return s.series }

// Grid resolves a category name to its grid.
func (s *Sheet) Grid(category string) (*Grid, error) {
	cat, ok := fees.ParseCategory(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if cat == fees.CategorySeries {
		return s.series, nil
	}
	return s.movies, nil
}

// Totals returns the totals as of the last state change.
func (s *Sheet) Totals() Totals {
	return s.totals
}

// Active returns the edit in progress, if any.
func (s *Sheet) Active() *Edit {
	return s.active
}

// AddRow appends a default row to the category's grid. An edit in progress
// is committed first.
func (s *Sheet) AddRow(category string) (Row, error) {
	g, err := s.Grid(category)
	if err != nil {
		return Row{}, err
	}
	s.CommitActive()
	return g.AddRow(), nil
}

// DeleteSelected removes the selected rows of the category's grid.
func (s *Sheet) DeleteSelected(category string) (int, error) {
	g, err := s.Grid(category)
	if err != nil {
		return 0, err
	}
	s.CommitActive()
	return g.DeleteSelected(), nil
}

// SetSelected toggles the selection mark of one row.
func (s *Sheet) SetSelected(category string, no int, selected bool) error {
	g, err := s.Grid(category)
	if err != nil {
		return err
	}
	s.CommitActive()
	return g.SetSelected(no, selected)
}

// Copy returns the category's grid as tab-separated text. An edit in
// progress is committed first.
func (s *Sheet) Copy(category string) (string, error) {
	g, err := s.Grid(category)
	if err != nil {
		return "", err
	}
	s.CommitActive()
	return CopyTSV(g.rows), nil
}

// Paste replaces the category's rows with a tab-separated block and returns
// how many rows it now holds. A block with no rows leaves the grid alone.
func (s *Sheet) Paste(category, text string) (int, error) {
	g, err := s.Grid(category)
	if err != nil {
		return 0, err
	}
	rows := ParseTSV(text)
	if len(rows) == 0 {
		return 0, ErrEmptyPaste
	}
	s.CommitActive()
	g.Replace(rows)
	return len(rows), nil
}

// Begin opens an editor on one cell. Any edit already in progress is
// committed, the way moving focus to another cell does.
func (s *Sheet) Begin(category string, no int, field Field) (*Edit, error) {
	g, err := s.Grid(category)
	if err != nil {
		return nil, err
	}
	field, err = ParseField(string(field))
	if err != nil {
		return nil, err
	}
	s.CommitActive()

	idx, err := g.index(no)
	if err != nil {
		return nil, err
	}
	row := g.rows[idx]
	if !row.Editable(field) {
		return nil, fmt.Errorf("%w: %s on %s row %d", ErrReadOnly, field, g.category, no)
	}
	e := &Edit{
		sheet:     s,
		grid:      g,
		no:        no,
		field:     field,
		committed: row.Value(field),
		value:     row.Value(field),
		feesAtBeg: row.Fees,
	}
	s.active = e
	return e, nil
}

// Set commits a value to a cell in one step.
func (s *Sheet) Set(category string, no int, field Field, value string) (Row, error) {
	e, err := s.Begin(category, no, field)
	if err != nil {
		return Row{}, err
	}
	if err := e.Input(value); err != nil {
		return Row{}, err
	}
	return e.Commit()
}

// CommitActive commits the edit in progress, if any, as a focus change
// would.
func (s *Sheet) CommitActive() {
	if s.active == nil {
		return
	}
	// The active edit targets an existing row, so commit cannot fail here.
	_, _ = s.active.Commit()
}

func (s *Sheet) recalc() {
	s.totals = computeTotals(s.movies.rows, s.series.rows)
	if s.observer != nil {
		s.observer(s.totals)
	}
}
