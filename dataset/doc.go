// Package dataset loads the two source files of the name story into typed,
// read-only slices.
//
// Loading is a fixed pipeline per file: read delimited text, validate the
// header against the schema package, prune administrative columns, coerce
// types. Dog license dates are reduced to their calendar year. Every coercion
// failure is reported as a *ParseError naming the file, row and column; rows
// are never dropped silently.
//
// NormalizeName is the single name identity used wherever the two datasets
// are compared or aggregated.
package dataset
