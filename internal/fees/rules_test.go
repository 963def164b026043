package fees_test

import (
	"math"
	"testing"

	"feesheet/internal/fees"
)

func lines(n int64) *int64 { return &n }

func TestComputeKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		category string
		edition  string
		lines    *int64
		want     int64
	}{
		{name: "movie old at limit", category: "movie", edition: "old", lines: lines(1200), want: 12000},
		{name: "movie old above limit", category: "movie", edition: "old", lines: lines(1201), want: 12010},
		{name: "movie old 1500", category: "movie", edition: "Old", lines: lines(1500), want: 15000},
		{name: "movie new zero", category: "movie", edition: "new", lines: lines(0), want: 15000},
		{name: "series new at limit", category: "series", edition: "new", lines: lines(800), want: 10000},
		{name: "series new above limit", category: "series", edition: "new", lines: lines(801), want: 10015},
		{name: "series old mixed case", category: "SERIES", edition: " OLD ", lines: lines(900), want: 9000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fees.Compute(tt.category, tt.edition, tt.lines)
			if !ok {
				t.Fatalf("Compute(%q, %q) reported not applicable", tt.category, tt.edition)
			}
			if got != tt.want {
				t.Fatalf("Compute = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeNotApplicable(t *testing.T) {
	tests := []struct {
		name     string
		category string
		edition  string
		lines    *int64
	}{
		{name: "invalid edition movie", category: "movie", edition: "vintage", lines: lines(5)},
		{name: "invalid edition series", category: "series", edition: "", lines: lines(5)},
		{name: "negative lines", category: "movie", edition: "old", lines: lines(-1)},
		{name: "negative series lines", category: "series", edition: "old", lines: lines(-1)},
		{name: "absent lines", category: "movie", edition: "old", lines: nil},
		{name: "unknown category", category: "podcast", edition: "old", lines: lines(10)},
		{name: "fee overflows", category: "movie", edition: "new", lines: lines(1e18)},
		{name: "max lines", category: "series", edition: "old", lines: lines(math.MaxInt64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := fees.Compute(tt.category, tt.edition, tt.lines); ok {
				t.Fatalf("expected not applicable, got %d", got)
			}
		})
	}
}

func TestComputeMonotonicAndBaseAtLimit(t *testing.T) {
	for _, tier := range fees.Tiers() {
		if got, ok := tier.Fee(tier.Limit); !ok || got != tier.Base {
			t.Fatalf("%s/%s fee at limit = %d, want base %d", tier.Category, tier.Edition, got, tier.Base)
		}
		prev := int64(-1)
		for n := int64(0); n <= tier.Limit*2; n += 7 {
			got, ok := fees.Compute(string(tier.Category), string(tier.Edition), lines(n))
			if !ok {
				t.Fatalf("%s/%s lines=%d not applicable", tier.Category, tier.Edition, n)
			}
			if got < prev {
				t.Fatalf("%s/%s not monotonic at %d: %d < %d", tier.Category, tier.Edition, n, got, prev)
			}
			prev = got
		}
	}
}

func TestComputeLargestParsedLineCount(t *testing.T) {
	limit := fees.ParseLines(fees.FormatMMK(fees.MaxAmount))
	if limit == nil {
		t.Fatal("MaxAmount did not parse")
	}
	for _, tier := range fees.Tiers() {
		atLimit, ok := fees.Compute(string(tier.Category), string(tier.Edition), lines(tier.Limit))
		if !ok {
			t.Fatalf("%s/%s at limit not applicable", tier.Category, tier.Edition)
		}
		got, ok := fees.Compute(string(tier.Category), string(tier.Edition), limit)
		if !ok {
			t.Fatalf("%s/%s lines=%d not applicable", tier.Category, tier.Edition, *limit)
		}
		if got < atLimit {
			t.Fatalf("%s/%s fee %d below base %d", tier.Category, tier.Edition, got, atLimit)
		}
	}
}

func TestParseCategoryAndEdition(t *testing.T) {
	if c, ok := fees.ParseCategory(" Movie "); !ok || c != fees.CategoryMovie {
		t.Fatalf("ParseCategory(Movie) = %q, %v", c, ok)
	}
	if _, ok := fees.ParseCategory("film"); ok {
		t.Fatal("expected unknown category")
	}
	if e, ok := fees.ParseEdition("NEW"); !ok || e != fees.EditionNew {
		t.Fatalf("ParseEdition(NEW) = %q, %v", e, ok)
	}
}
