// Package main hosts the feesheet CLI entrypoint and command graph.
//
// serve runs the fee calculator page and its API. The remaining commands work
// offline against the same fee rules: fee prices a single title, rules prints
// the tier table, note writes a fee note from titles given on the command
// line, and config scaffolds or checks the configuration file. status asks a
// running server how it is doing.
//
// Keep this package lean: the pricing, sheet, and export behaviour live in
// internal packages and the commands here only parse flags and render output.
package main
