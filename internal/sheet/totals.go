package sheet

import (
	"math"

	"feesheet/internal/fees"
)

// Totals are the three running sums shown above the grids.
type Totals struct {
	Movie  int64 `json:"movie"`
	Series int64 `json:"series"`
	Grand  int64 `json:"grand"`
}

// SumFees adds every fee that parses to a non-negative integer. Blank,
// unparseable, and negative fees contribute nothing. The sum saturates at
// math.MaxInt64 rather than wrapping.
func SumFees(rows []Row) int64 {
	var total int64
	for _, row := range rows {
		fee, ok := fees.ParseAmount(row.Fees)
		if !ok || fee < 0 {
			continue
		}
		total = addSaturating(total, fee)
	}
	return total
}

func addSaturating(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func computeTotals(movies, series []Row) Totals {
	movie := SumFees(movies)
	show := SumFees(series)
	return Totals{Movie: movie, Series: show, Grand: addSaturating(movie, show)}
}
