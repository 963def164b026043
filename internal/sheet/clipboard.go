package sheet

import (
	"strconv"
	"strings"
)

// column is one grid column as it appears in a copied block. field is empty
// for the sequence number, which is never taken from a paste.
type column struct {
	title string
	field Field
}

var columns = []column{
	{title: "No."},
	{title: "Type", field: FieldKind},
	{title: "Custom Fee", field: FieldCustomFee},
	{title: "Old/New", field: FieldEdition},
	{title: "Name", field: FieldName},
	{title: "Lines", field: FieldLines},
	{title: "Fees (MMK)", field: FieldFees},
}

// ColumnTitles returns the header of a copied block.
func ColumnTitles() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.title
	}
	return out
}

// CopyTSV renders rows as tab-separated text with a header line, the way the
// grid is placed on the clipboard.
func CopyTSV(rows []Row) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(ColumnTitles(), "\t"))
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			if c.field == "" {
				cells[i] = strconv.Itoa(row.No)
				continue
			}
			cells[i] = flattenCell(row.Value(c.field))
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return strings.Join(lines, "\n")
}

// ParseTSV reads a pasted block into rows. A first line naming the columns
// (by title or field name) decides which cell feeds which column; without
// one, cells map onto the columns in display order. Missing cells keep the
// row defaults and blank lines are skipped. Sequence numbers are not read.
func ParseTSV(text string) []Row {
	text = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)
	var records [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, strings.Split(line, "\t"))
	}
	if len(records) == 0 {
		return nil
	}

	layout, ok := headerLayout(records[0])
	if ok {
		records = records[1:]
	} else {
		layout = make([]int, len(columns))
		for i := range layout {
			layout[i] = i
		}
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := NewRow(len(rows) + 1)
		for i, cell := range record {
			if i >= len(layout) || layout[i] < 0 {
				continue
			}
			if f := columns[layout[i]].field; f != "" {
				row.set(f, strings.TrimSpace(cell))
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// headerLayout maps each cell of a header line to a column index, or -1 for
// a cell naming no column. ok is false unless every non-blank cell names a
// column.
func headerLayout(record []string) ([]int, bool) {
	layout := make([]int, len(record))
	matched := 0
	for i, cell := range record {
		cell = strings.TrimSpace(cell)
		layout[i] = -1
		if cell == "" {
			continue
		}
		idx := columnIndex(cell)
		if idx < 0 {
			return nil, false
		}
		layout[i] = idx
		matched++
	}
	return layout, matched > 0
}

func columnIndex(name string) int {
	for i, c := range columns {
		if strings.EqualFold(name, c.title) || (c.field != "" && strings.EqualFold(name, string(c.field))) {
			return i
		}
	}
	return -1
}

func flattenCell(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, value)
}
