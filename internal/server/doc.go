// Package server hosts the fee calculator page and the JSON API behind it.
//
// The browser page is a thin renderer. Every keystroke, commit, cancel, row
// add, delete and selection change is a request against a sheet held in the
// session store, and each response carries the full sheet view so the page
// can redraw from it. Requests for one sheet are serialized by the store.
//
// Start takes an exclusive flock in the log directory so two servers cannot
// share one log tree, then listens on the configured bind address until the
// context is cancelled or Stop is called.
//
// Every request is tagged with an X-Request-ID (generated when the client
// sends none) which is logged as correlation_id.
package server
