// Package config loads, normalizes, and validates feesheet configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FEESHEET_BIND. The Config type centralizes every knob the server and CLI
// need so the bind address, asset directory, and sheet limits are resolved in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
