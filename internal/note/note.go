// Package note renders the downloadable fee note: one "name | lines | fees"
// line per named row, movies first, then series.
package note

import (
	"strings"

	"feesheet/internal/sheet"
)

const (
	// Filename is the download name offered for the note.
	Filename = "Monthly_Fees_Note.txt"
	// ContentType is the MIME type of the note.
	ContentType = "text/plain; charset=utf-8"
)

// Export serializes both grids in display order. Rows with a blank name are
// skipped; lines and fees are emitted as trimmed text without re-validation.
func Export(movies, series []sheet.Row) string {
	out := make([]string, 0, len(movies)+len(series))
	for _, rows := range [][]sheet.Row{movies, series} {
		for _, row := range rows {
			name := strings.TrimSpace(row.Name)
			if name == "" {
				continue
			}
			out = append(out, name+" | "+strings.TrimSpace(row.Lines)+" | "+strings.TrimSpace(row.Fees))
		}
	}
	return strings.Join(out, "\n")
}

// ExportSheet is Export over a sheet's current rows. An edit in progress is
// committed first so the note never pairs a live fee with stale lines.
func ExportSheet(s *sheet.Sheet) string {
	s.CommitActive()
	return Export(s.Movies().Rows(), s.Series().Rows())
}
