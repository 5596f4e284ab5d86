// Package catalog provides the read-only entity catalogs consumed by the
// dashboard core: shipping routes, suppliers, and the alert seed list.
//
// Catalogs are loaded once at process start, either from the built-in
// sample data (Seed) or from a YAML/JSON/CUE file (Load). Files are
// validated against an embedded CUE schema before decoding, so a
// catalog that reaches the rest of the system always has:
//   - non-empty, unique ids per collection
//   - enum fields restricted to their known values
//   - supplier scores within 0..100
//
// This package imports nothing internal. Every other domain package
// builds on these types.
package catalog
