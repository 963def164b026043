// Package fees holds the monthly fee rule table and the numeric helpers shared
// by the sheet, the HTTP page, and the CLI.
//
// A fee is selected from a tier keyed by category (movie or series) and
// edition (old or new). Line counts at or below the tier limit pay the base
// amount; each line above the limit adds the tier rate. All arithmetic is
// integer MMK. Functions in this package never fail: inputs that cannot be
// priced report ok=false and callers render a blank cell.
package fees
