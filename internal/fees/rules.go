package fees

import (
	"math"
	"strings"
)

// Category identifies which grid a row belongs to.
type Category string

const (
	CategoryMovie  Category = "movie"
	CategorySeries Category = "series"
)

// Edition selects the pricing tier within a category.
type Edition string

const (
	EditionOld Edition = "old"
	EditionNew Edition = "new"
)

// Tier is one row of the pricing table.
type Tier struct {
	Category Category
	Edition  Edition
	Base     int64
	Limit    int64
	Rate     int64
}

var tiers = []Tier{
	{Category: CategoryMovie, Edition: EditionOld, Base: 12000, Limit: 1200, Rate: 10},
	{Category: CategoryMovie, Edition: EditionNew, Base: 15000, Limit: 1200, Rate: 15},
	{Category: CategorySeries, Edition: EditionOld, Base: 8000, Limit: 800, Rate: 10},
	{Category: CategorySeries, Edition: EditionNew, Base: 10000, Limit: 800, Rate: 15},
}

// Categories lists the known categories in display order.
func Categories() []Category {
	return []Category{CategoryMovie, CategorySeries}
}

// Tiers returns a copy of the pricing table.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// ParseCategory normalizes a category name. Unknown names return false.
func ParseCategory(value string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(value))) {
	case CategoryMovie:
		return CategoryMovie, true
	case CategorySeries:
		return CategorySeries, true
	default:
		return "", false
	}
}

// ParseEdition normalizes an edition name. Unknown names return false.
func ParseEdition(value string) (Edition, bool) {
	switch Edition(strings.ToLower(strings.TrimSpace(value))) {
	case EditionOld:
		return EditionOld, true
	case EditionNew:
		return EditionNew, true
	default:
		return "", false
	}
}

// LookupTier finds the tier for a category/edition pair, case-insensitively.
func LookupTier(category, edition string) (Tier, bool) {
	cat, ok := ParseCategory(category)
	if !ok {
		return Tier{}, false
	}
	ed, ok := ParseEdition(edition)
	if !ok {
		return Tier{}, false
	}
	for _, tier := range tiers {
		if tier.Category == cat && tier.Edition == ed {
			return tier, true
		}
	}
	return Tier{}, false
}

// Fee prices a non-negative line count against the tier. ok is false when
// the fee does not fit in an int64.
func (t Tier) Fee(lines int64) (int64, bool) {
	if lines <= t.Limit {
		return t.Base, true
	}
	extra := lines - t.Limit
	if t.Rate > 0 && extra > (math.MaxInt64-t.Base)/t.Rate {
		return 0, false
	}
	return t.Base + extra*t.Rate, true
}

// Compute returns the auto-calculated fee. ok is false when lines is nil or
// negative, when the category or edition is not recognized, or when the fee
// would overflow.
func Compute(category, edition string, lines *int64) (int64, bool) {
	if lines == nil || *lines < 0 {
		return 0, false
	}
	tier, ok := LookupTier(category, edition)
	if !ok {
		return 0, false
	}
	return tier.Fee(*lines)
}
