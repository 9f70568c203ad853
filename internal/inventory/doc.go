// Package inventory holds the parcel record store.
//
// A Store is an ordered collection of Records. Insertion order is the
// iteration order and the on-disk line order. Records are persisted as a
// delimited text file with one record per line:
//
//	<serial>, <description>, <weight>\n
//
// There is no header line and no quoting, so a description containing a
// comma cannot be read back. Trailing whitespace on a line is stripped on
// read, so a weight ending in spaces loses them after Save and Load. Paths given to Load and Save get a ".csv"
// suffix appended when they do not already carry one.
//
// # Failures
//
// Every operation reports failure as a value. Errors are *Error with a
// Code (NOT_FOUND, MALFORMED_INPUT, OUT_OF_RANGE, INVALID_SERIAL,
// DUPLICATE_SERIAL); use the Is* helpers to classify them. Load and
// FindIndexBySerial additionally return the NotFound sentinel (-1).
//
// # Loading
//
//   - Load replaces the entire contents of the store.
//   - Records are buffered while parsing and only committed on success.
//     On any failure the store is left empty.
//   - Duplicate serial numbers in a file are accepted; lookups return the
//     lowest index.
package inventory
