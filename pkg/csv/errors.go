// Package csv provides error types for CSV parsing.
package csv

import (
	"errors"
	"fmt"

	"github.com/shapestone/stdcsv/internal/tokenizer"
)

// ParseError represents a parsing error with position information.
// It provides detailed context about where the error occurred in the CSV data.
//
// Error() renders one of:
//
//	parse error on line L, column C: <detail>
//	record on line S; parse error on line L, column C: <detail>
//	record on line L: wrong number of fields
type ParseError = tokenizer.ParseError

// OptionsError reports an unusable separator or comment character.
// Its message is always "Invalid Delimiter"; Field names the offending option.
type OptionsError = tokenizer.OptionsError

// Common parsing errors. Use errors.Is to test for them.
var (
	// ErrBareQuote indicates a quote inside an unquoted field.
	ErrBareQuote = tokenizer.ErrBareQuote

	// ErrQuote indicates a stray quote after a quoted field, or a quoted field
	// that is never closed.
	ErrQuote = tokenizer.ErrQuote

	// ErrFieldCount indicates a record has the wrong number of fields.
	ErrFieldCount = tokenizer.ErrFieldCount

	// ErrInvalidDelim indicates an invalid separator or comment configuration.
	ErrInvalidDelim = tokenizer.ErrInvalidDelim

	// ErrNoColumns is returned by MapRecords when neither a header row nor
	// explicit columns were requested.
	ErrNoColumns = errors.New("csv: no columns to map records onto")
)

// HeaderError reports a data row whose length does not match the column list
// used for header mapping.
type HeaderError struct {
	// Line is the 0-based index of the row in the parsed table, counting the header row.
	Line int
	// Found is the number of column names.
	Found int
	// Expected is the number of fields in the row.
	Expected int
}

// Error returns the three-line mismatch report.
func (e *HeaderError) Error() string {
	return fmt.Sprintf("Error number of fields line: %d\nNumber of fields found: %d\nExpected number of fields: %d",
		e.Line, e.Found, e.Expected)
}
