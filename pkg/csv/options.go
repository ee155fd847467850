// Package csv provides configurable options for CSV parsing.
package csv

import (
	"errors"
	"io"

	"github.com/go-logr/logr"
	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/stdcsv/internal/parser"
)

// ReaderOptions configures CSV parsing behavior.
// These options mirror the encoding/csv.Reader configuration.
type ReaderOptions struct {
	// Comma is the field delimiter.
	// It must be a valid rune and not 0, a quote, \r, \n, or the Unicode
	// replacement character (0xFFFD).
	// Default: ','
	Comma rune

	// Comment, if not 0, is the comment character. Lines beginning with the
	// Comment character without preceding whitespace are ignored.
	// It must differ from Comma.
	// Default: 0 (disabled)
	Comment rune

	// FieldsPerRecord is the expected number of fields per record.
	// If positive, each record must have exactly this many fields.
	// If 0, the first record determines the expected field count.
	// If negative, no field count validation is performed.
	// Default: -1
	FieldsPerRecord int

	// LazyQuotes controls whether a quote may appear in an unquoted field
	// and a non-doubled quote may appear in a quoted field.
	// Default: false
	LazyQuotes bool

	// TrimLeadingSpace controls whether leading white space in a field is ignored.
	// This is done even if the field delimiter (Comma) is white space.
	// Default: false
	TrimLeadingSpace bool

	// Logger receives parse diagnostics: V(1) for failures, V(2) for every record.
	// Default: discard
	Logger logr.Logger
}

// DefaultReaderOptions returns the default reader configuration.
// FieldsPerRecord defaults to -1 (no validation).
// Set to 0 for encoding/csv-compatible behavior where first record sets expected count.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		Comma:           ',',
		FieldsPerRecord: -1,
	}
}

// Validate checks if the options are valid.
// It returns an *OptionsError when Comma or Comment is unusable.
func (o ReaderOptions) Validate() error {
	return o.parserOptions().Validate()
}

func (o ReaderOptions) parserOptions() parser.Options {
	return parser.Options{
		Comma:            o.Comma,
		Comment:          o.Comment,
		FieldsPerRecord:  o.FieldsPerRecord,
		LazyQuotes:       o.LazyQuotes,
		TrimLeadingSpace: o.TrimLeadingSpace,
		Logger:           o.Logger,
	}
}

// ReadOptions extends ReaderOptions with header mapping.
//
// When SkipFirstRow is set or Columns is non-empty, records are mapped onto
// objects keyed by column name (see MapRecords).
type ReadOptions struct {
	ReaderOptions

	// SkipFirstRow treats the first record as the header row.
	// Without Columns, its fields become the object keys.
	SkipFirstRow bool

	// Columns names the object keys explicitly. When set together with
	// SkipFirstRow, the first record is discarded and Columns win.
	Columns []Column
}

// DefaultReadOptions returns the default configuration with header mapping disabled.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{ReaderOptions: DefaultReaderOptions()}
}

// MapsHeaders reports whether the options request header mapping.
func (o ReadOptions) MapsHeaders() bool {
	return o.SkipFirstRow || len(o.Columns) > 0
}

// ParseWithOptions parses CSV format into an AST from a string with custom options.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.Comma = '\t'  // Tab-separated
//	opts.TrimLeadingSpace = true
//	node, err := csv.ParseWithOptions("name\tage\nAlice\t30", opts)
func ParseWithOptions(input string, opts ReaderOptions) (ast.SchemaNode, error) {
	p, err := parser.NewFromString(input, opts.parserOptions())
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// ParseReaderWithOptions parses CSV format into an AST from an io.Reader with custom options.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.Comment = '#'  // Skip comment lines
//	node, err := csv.ParseReaderWithOptions(file, opts)
func ParseReaderWithOptions(reader io.Reader, opts ReaderOptions) (ast.SchemaNode, error) {
	p, err := parser.New(reader, opts.parserOptions())
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// ValidateWithOptions checks if the input string is valid CSV with custom options.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.Comma = ';'  // Semicolon-separated
//	err := csv.ValidateWithOptions("a;b;c", opts)
func ValidateWithOptions(input string, opts ReaderOptions) error {
	_, err := ReadAll(input, opts)
	return err
}

// Reader reads records one at a time and tracks their positions.
// This mirrors encoding/csv.Reader's Read, FieldPos and InputOffset methods.
//
// Each record returned by Read is a fresh slice; Read never reuses the
// backing array of a previous record.
type Reader struct {
	p    *parser.Parser
	last *parser.Record
}

// NewReader creates a Reader over r with the given options.
// It returns an *OptionsError, without reading anything, if the options are invalid.
func NewReader(r io.Reader, opts ReaderOptions) (*Reader, error) {
	p, err := parser.New(r, opts.parserOptions())
	if err != nil {
		return nil, err
	}
	return &Reader{p: p}, nil
}

// Read reads one record. It returns io.EOF when the input is exhausted.
// After a parse error every call returns the same error.
func (r *Reader) Read() ([]string, error) {
	rec, err := r.p.ReadRecord()
	if err != nil {
		return nil, err
	}
	r.last = rec
	return rec.Fields, nil
}

// ReadAll reads all the remaining records.
// A successful call returns err == nil, not err == io.EOF.
func (r *Reader) ReadAll() ([][]string, error) {
	records := make([][]string, 0, 16)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// FieldPos returns the line and column of the start of the field with the
// given index in the record most recently returned by Read.
// Lines are 1-indexed; columns are 0-indexed and count characters.
//
// If called with an out-of-bounds index, it panics.
func (r *Reader) FieldPos(field int) (line, column int) {
	if r.last == nil || field < 0 || field >= len(r.last.Positions) {
		panic("out of range index passed to FieldPos")
	}
	pos := r.last.Positions[field]
	return pos.Line, pos.Column
}

// Line returns the line on which the most recently read record starts,
// or 0 before the first record.
func (r *Reader) Line() int {
	if r.last == nil {
		return 0
	}
	return r.last.Line
}

// InputOffset returns the input byte offset of the end of the most recently read row.
func (r *Reader) InputOffset() int64 {
	return r.p.InputOffset()
}
