// Package parser assembles tokenizer output into records and validates them.
//
// The parser owns the field-count policy and is the layer that turns the
// token stream into Shape's AST representation.
package parser

import (
	"errors"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/stdcsv/internal/tokenizer"
)

// Options configures the parser behavior.
type Options struct {
	// Comma is the field delimiter. Default: ','
	Comma rune
	// Comment is the comment character. Lines starting with this are skipped. Default: 0 (disabled)
	Comment rune
	// FieldsPerRecord validates field count.
	// Negative disables validation, 0 takes the count from the first record,
	// positive requires exactly that many fields in every record.
	FieldsPerRecord int
	// LazyQuotes allows quotes in unquoted fields and non-doubled quotes in quoted fields.
	LazyQuotes bool
	// TrimLeadingSpace trims leading white space from fields.
	TrimLeadingSpace bool
	// Logger receives debug output. The zero value discards it.
	Logger logr.Logger
}

// DefaultOptions returns default parser options.
// FieldsPerRecord defaults to -1 (no validation).
func DefaultOptions() Options {
	return Options{
		Comma:           ',',
		FieldsPerRecord: -1,
	}
}

func (o Options) tokenizerOptions() tokenizer.Options {
	return tokenizer.Options{
		Comma:            o.Comma,
		Comment:          o.Comment,
		LazyQuotes:       o.LazyQuotes,
		TrimLeadingSpace: o.TrimLeadingSpace,
	}
}

// Validate checks the separator and comment configuration.
func (o Options) Validate() error {
	return o.tokenizerOptions().Validate()
}

// Record is one parsed row.
type Record struct {
	// Fields holds the field values in input order.
	Fields []string
	// Positions holds the start position of each field.
	Positions []tokenizer.Position
	// Offsets holds the input byte offset of each field.
	Offsets []int64
	// Line is the line on which the record starts.
	Line int
}

// Parser reads records from a tokenizer and enforces the field-count policy.
type Parser struct {
	tok            *tokenizer.Tokenizer
	opts           Options
	log            logr.Logger
	expectedFields int // Set from first record when FieldsPerRecord is 0
	recordNum      int
	err            error
}

// New creates a parser reading from r. It fails with *tokenizer.OptionsError
// before reading anything if the separator or comment is unusable.
func New(r io.Reader, opts Options) (*Parser, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Parser{
		tok:            tokenizer.New(r, opts.tokenizerOptions()),
		opts:           opts,
		log:            opts.Logger,
		expectedFields: opts.FieldsPerRecord,
	}, nil
}

// NewFromString creates a parser for an in-memory input.
func NewFromString(input string, opts Options) (*Parser, error) {
	return New(strings.NewReader(input), opts)
}

// ReadRecord returns the next record, or io.EOF when the input is exhausted.
// The first error is sticky.
func (p *Parser) ReadRecord() (*Record, error) {
	if p.err != nil {
		return nil, p.err
	}
	rec, err := p.readRecord()
	if err != nil {
		p.err = err
		if err != io.EOF {
			p.log.V(1).Info("csv parse failed", "error", err.Error(), "line", p.tok.Line())
		}
		return nil, err
	}
	if err := p.checkFieldCount(rec); err != nil {
		p.err = err
		p.log.V(1).Info("csv parse failed", "error", err.Error(), "line", rec.Line)
		return nil, err
	}
	p.recordNum++
	p.log.V(2).Info("record", "line", rec.Line, "fields", len(rec.Fields))
	return rec, nil
}

func (p *Parser) readRecord() (*Record, error) {
	rec := &Record{
		Fields:    make([]string, 0, 8),
		Positions: make([]tokenizer.Position, 0, 8),
		Offsets:   make([]int64, 0, 8),
	}
	for {
		token, err := p.tok.Next()
		if err != nil {
			return nil, err
		}
		if token.Kind == tokenizer.TokenEndOfRecord {
			rec.Line = token.Pos.Line
			return rec, nil
		}
		rec.Fields = append(rec.Fields, token.Value)
		rec.Positions = append(rec.Positions, token.Pos)
		rec.Offsets = append(rec.Offsets, token.Offset)
	}
}

// checkFieldCount applies the field-count policy to a complete record.
func (p *Parser) checkFieldCount(rec *Record) error {
	if p.opts.FieldsPerRecord < 0 {
		return nil
	}
	if p.recordNum == 0 && p.opts.FieldsPerRecord == 0 {
		// First record sets expected count
		p.expectedFields = len(rec.Fields)
		return nil
	}
	if len(rec.Fields) != p.expectedFields {
		return &tokenizer.ParseError{
			StartLine: rec.Line,
			Line:      rec.Line,
			Err:       tokenizer.ErrFieldCount,
		}
	}
	return nil
}

// ReadAll reads every remaining record.
func (p *Parser) ReadAll() ([][]string, error) {
	records := make([][]string, 0, 16)
	for {
		rec, err := p.ReadRecord()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec.Fields)
	}
}

// Parse parses the input and returns an AST representing the CSV file.
//
// Returns *ast.ArrayDataNode - an array of records, where each record is an ArrayDataNode of fields.
// Each field is a LiteralNode containing a string value, positioned at the field's start.
func (p *Parser) Parse() (ast.SchemaNode, error) {
	records := make([]ast.SchemaNode, 0, 16)
	for {
		rec, err := p.ReadRecord()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, recordNode(rec))
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition()), nil
}

// InputOffset returns the input byte offset of the end of the most recently read record.
func (p *Parser) InputOffset() int64 {
	return p.tok.InputOffset()
}

func recordNode(rec *Record) *ast.ArrayDataNode {
	fields := make([]ast.SchemaNode, len(rec.Fields))
	for i, value := range rec.Fields {
		pos := rec.Positions[i]
		fields[i] = ast.NewLiteralNode(value, ast.NewPosition(int(rec.Offsets[i]), pos.Line, pos.Column))
	}
	return ast.NewArrayDataNode(fields, ast.NewPosition(int(rec.Offsets[0]), rec.Line, 0))
}
