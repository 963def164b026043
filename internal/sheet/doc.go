// Package sheet models the two editable fee grids (movies and series) and the
// rules that keep them consistent while a user types.
//
// A Sheet owns one Grid per category. Rows carry the textual values shown in
// the grid; IsAutoCalculated decides whether a row's fee is derived from the
// rule table or typed by hand. Edits follow a begin/input/commit/cancel cycle:
// line-count keystrokes refresh an auto fee immediately, every commit runs the
// row consistency pass, and every state change recomputes the totals before
// the call returns.
//
// A Sheet is not safe for concurrent use; callers serialize access.
package sheet
