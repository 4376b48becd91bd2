// Package samples stores the sample datasets written for mismatching rules.
//
// SQLStore materializes each dataset as a table of TEXT columns named
// <location>.<table>, replacing any previous table of the same name.
// ObjectStore writes the dataset as a JSON object <location>/<table>.json in
// the configured bucket. Both can read a dataset back for inspection.
package samples
