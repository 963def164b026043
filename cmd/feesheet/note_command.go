package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"feesheet/internal/api"
	"feesheet/internal/fees"
	"feesheet/internal/note"
	"feesheet/internal/sheet"
)

// noteEntry is one title given on the command line.
type noteEntry struct {
	Name    string
	Lines   string
	Edition string
	Fee     string
}

// parseNoteEntry reads "name|lines[|old|new][|fee]". A fee makes the row a
// custom-fee row.
func parseNoteEntry(value string) (noteEntry, error) {
	parts := strings.Split(value, "|")
	if len(parts) < 2 || len(parts) > 4 {
		return noteEntry{}, fmt.Errorf("entry %q: want name|lines[|edition][|fee]", value)
	}
	entry := noteEntry{Name: strings.TrimSpace(parts[0]), Lines: strings.TrimSpace(parts[1])}
	if entry.Name == "" {
		return noteEntry{}, fmt.Errorf("entry %q: name is required", value)
	}
	rest := parts[2:]
	if len(rest) > 0 {
		if _, ok := fees.ParseEdition(rest[0]); ok {
			entry.Edition = strings.TrimSpace(rest[0])
			rest = rest[1:]
		}
	}
	switch len(rest) {
	case 0:
	case 1:
		entry.Fee = strings.TrimSpace(rest[0])
	default:
		return noteEntry{}, fmt.Errorf("entry %q: unrecognized edition %q", value, parts[2])
	}
	return entry, nil
}

type cellEdit struct {
	field sheet.Field
	value string
}

// buildNoteSheet fills a fresh sheet the way a user would through the page.
func buildNoteSheet(movies, series []noteEntry) (*sheet.Sheet, error) {
	sh := sheet.New(0)
	groups := []struct {
		category fees.Category
		entries  []noteEntry
	}{{fees.CategoryMovie, movies}, {fees.CategorySeries, series}}
	for _, group := range groups {
		cat := string(group.category)
		for _, entry := range group.entries {
			row, err := sh.AddRow(cat)
			if err != nil {
				return nil, err
			}
			edits := []cellEdit{{sheet.FieldName, entry.Name}, {sheet.FieldLines, entry.Lines}}
			if entry.Edition != "" {
				edits = append(edits, cellEdit{sheet.FieldEdition, entry.Edition})
			}
			if entry.Fee != "" {
				edits = append(edits, cellEdit{sheet.FieldCustomFee, sheet.CustomFeeYes}, cellEdit{sheet.FieldFees, entry.Fee})
			}
			for _, edit := range edits {
				if _, err := sh.Set(cat, row.No, edit.field, edit.value); err != nil {
					return nil, fmt.Errorf("%s %q: %w", cat, entry.Name, err)
				}
			}
		}
	}
	return sh, nil
}

func newNoteCommand(ctx *commandContext) *cobra.Command {
	var movieFlags, seriesFlags []string
	var output string

	cmd := &cobra.Command{
		Use:   "note",
		Short: "Write a fee note for titles given on the command line",
		Example: `  feesheet note --movie "Film A|1500" --series "Show A|800|new" --series "Show B|0|9,500"
  feesheet note --movie "Film A|1500" --output -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(movieFlags) == 0 && len(seriesFlags) == 0 {
				return errors.New("at least one --movie or --series entry is required")
			}
			movies, err := parseNoteEntries(movieFlags)
			if err != nil {
				return err
			}
			series, err := parseNoteEntries(seriesFlags)
			if err != nil {
				return err
			}
			sh, err := buildNoteSheet(movies, series)
			if err != nil {
				return err
			}
			content := note.ExportSheet(sh)

			out := cmd.OutOrStdout()
			if output == "-" {
				fmt.Fprintln(out, content)
				return nil
			}
			target := strings.TrimSpace(output)
			if target == "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				target = cfg.Sheet.ExportFilename
			}
			if err := writeNote(target, content); err != nil {
				return err
			}
			fmt.Fprintln(out, renderNoteSummary(sh, shouldColorize(out)))
			fmt.Fprintf(out, "Wrote fee note to %s\n", target)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&movieFlags, "movie", nil, "Movie entry name|lines[|old|new][|fee] (repeatable)")
	cmd.Flags().StringArrayVar(&seriesFlags, "series", nil, "Series entry name|lines[|old|new][|fee] (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Note file path, or - for stdout (default sheet.export_filename)")
	return cmd
}

func parseNoteEntries(values []string) ([]noteEntry, error) {
	entries := make([]noteEntry, 0, len(values))
	for _, value := range values {
		entry, err := parseNoteEntry(value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func writeNote(target, content string) error {
	if dir := filepath.Dir(target); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create note directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}

func renderNoteSummary(sh *sheet.Sheet, colorize bool) string {
	var rows [][]string
	for _, grid := range []*sheet.Grid{sh.Movies(), sh.Series()} {
		label := api.Label(string(grid.Category()))
		for _, row := range grid.Rows() {
			rows = append(rows, []string{label, strconv.Itoa(row.No), row.Name, row.Lines, row.Fees})
		}
	}
	totals := sh.Totals()
	return renderTable(tableSpec{
		Headers: []string{"Category", "No.", "Name", "Lines", "Fees (" + api.Currency + ")"},
		Rows:    rows,
		Footer:  []string{"", "", "Grand total", "", fees.FormatMMK(totals.Grand)},
		Aligns:  []columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignRight},
		Color:   colorize,
	})
}
