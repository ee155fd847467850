package tokenizer

import (
	"errors"
	"fmt"
)

// Sentinel errors. ParseError and OptionsError unwrap to one of these.
var (
	// ErrBareQuote is reported when a quote appears inside an unquoted field.
	ErrBareQuote = errors.New("bare \" in non-quoted-field")
	// ErrQuote is reported for a stray quote after a closed quoted field or an
	// unterminated quoted field.
	ErrQuote = errors.New("extraneous or missing \" in quoted-field")
	// ErrFieldCount is reported when a record has the wrong number of fields.
	ErrFieldCount = errors.New("wrong number of fields")
	// ErrInvalidDelim is reported for an unusable separator or comment character.
	ErrInvalidDelim = errors.New("Invalid Delimiter")
)

// ParseError is a positioned parsing failure.
type ParseError struct {
	// StartLine is the line on which the failing record starts (1-indexed).
	StartLine int
	// Line is the line where the failure was detected (1-indexed).
	Line int
	// Column is the 0-indexed character column of the failure.
	// It is not meaningful for ErrFieldCount.
	Column int
	// Err is ErrBareQuote, ErrQuote or ErrFieldCount.
	Err error
}

// Error formats the error the way existing callers match it.
func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrFieldCount) {
		return fmt.Sprintf("record on line %d: %v", e.Line, e.Err)
	}
	if e.StartLine != e.Line {
		return fmt.Sprintf("record on line %d; parse error on line %d, column %d: %v",
			e.StartLine, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// OptionsError reports an invalid separator/comment configuration.
// It is raised before any input is read.
type OptionsError struct {
	// Field is the name of the offending option ("Comma" or "Comment").
	Field string
}

// Error returns "Invalid Delimiter".
func (e *OptionsError) Error() string {
	return ErrInvalidDelim.Error()
}

// Unwrap returns ErrInvalidDelim.
func (e *OptionsError) Unwrap() error {
	return ErrInvalidDelim
}
