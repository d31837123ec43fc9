// Package config centralizes the options one assembly run is
// configured by: k-mer length, cleaning-phase thresholds and length
// bounds, and I/O paths. The key type is Option, a function that
// mutates a Config; Resolve applies sensible defaults then any number
// of Options in order, mirroring the functional-options style used
// throughout this codebase's graph constructors.
package config
