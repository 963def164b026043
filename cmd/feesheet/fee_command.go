package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"feesheet/internal/api"
	"feesheet/internal/fees"
)

// feeQuote is the JSON shape of a single fee lookup.
type feeQuote struct {
	Category string `json:"category"`
	Edition  string `json:"edition"`
	Lines    string `json:"lines"`
	Fee      *int64 `json:"fee"`
	FeeText  string `json:"feeText"`
}

func newFeeCommand() *cobra.Command {
	var category, edition, lines string
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "fee",
		Short:       "Price one title from the auto rules",
		Annotations: skipConfig(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, ok := fees.ParseCategory(category)
			if !ok {
				return fmt.Errorf("unknown category %q (want movie or series)", category)
			}
			quote := feeQuote{Category: string(cat), Edition: strings.TrimSpace(edition), Lines: strings.TrimSpace(lines)}
			amount, ok := fees.Compute(string(cat), edition, fees.ParseLines(lines))
			if ok {
				quote.Fee = &amount
				quote.FeeText = fees.FormatMMK(amount)
			}
			if asJSON {
				return writeJSON(cmd, quote)
			}

			out := cmd.OutOrStdout()
			tier, hasTier := fees.LookupTier(string(cat), edition)
			feeText := quote.FeeText
			if feeText == "" {
				feeText = "-"
			}
			row := []string{api.Label(string(cat)), api.Label(quote.Edition), quote.Lines, "-", "-", "-", feeText}
			if hasTier {
				row[3] = fees.FormatMMK(tier.Base)
				row[4] = strconv.FormatInt(tier.Limit, 10)
				row[5] = "×" + strconv.FormatInt(tier.Rate, 10)
			}
			fmt.Fprintln(out, renderTable(tableSpec{
				Headers: []string{"Category", "Edition", "Lines", "Base", "Limit", "Extra", "Fee (" + api.Currency + ")"},
				Rows:    [][]string{row},
				Aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
				Color:   shouldColorize(out),
			}))
			if !ok {
				fmt.Fprintln(out, "No auto fee applies: edition must be old or new and lines a non-negative number.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", string(fees.CategoryMovie), "movie or series")
	cmd.Flags().StringVar(&edition, "edition", string(fees.EditionOld), "old or new")
	cmd.Flags().StringVar(&lines, "lines", "", "Line count (commas and decimals accepted)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newRulesCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "rules",
		Short:       "Show the auto-calculation fee tiers",
		Annotations: skipConfig(),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := api.Rules()
			if asJSON {
				return writeJSON(cmd, rules)
			}
			rows := make([][]string, 0, len(rules.Tiers))
			for _, tier := range rules.Tiers {
				rows = append(rows, []string{
					api.Label(tier.Category),
					api.Label(tier.Edition),
					fees.FormatMMK(tier.Base),
					strconv.FormatInt(tier.Limit, 10),
					"×" + strconv.FormatInt(tier.Rate, 10),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(tableSpec{
				Title:   "Auto rules (Blank only)",
				Headers: []string{"Category", "Edition", "Base (" + rules.Currency + ")", "Limit (lines)", "Extra per line"},
				Rows:    rows,
				Aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
				Color:   shouldColorize(out),
			}))
			fmt.Fprintln(out, "Fee = base + (lines - limit) × rate when lines exceed the limit, otherwise base.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
