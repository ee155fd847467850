// Package csv provides a user-friendly DOM API for parsed CSV data.
//
// The DOM API provides type-safe access to parsed documents without requiring
// type assertions or working with raw AST nodes.
//
// # Document Type
//
// Document represents a CSV file with optional headers and data records:
//
//	opts := csv.DefaultReadOptions()
//	opts.SkipFirstRow = true
//	doc, _ := csv.ParseDocument("name,age\nAlice,30\nBob,25", opts)
//
// # Record Type
//
// Record represents a single row in a CSV file with typed access:
//
//	record, _ := doc.GetRecord(0)
//	name, _ := record.Get(0)           // Get by index
//	age, _ := record.GetByName("age")  // Get by header name
//
// # AST Integration
//
//	node, _ := doc.ToNode()        // back to Shape's AST
//	doc2, _ := csv.FromNode(node)  // and from it
package csv

import (
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Document represents a parsed CSV file.
//
// A Document consists of:
//   - Optional headers (the header row, or explicit column names)
//   - Data records (remaining rows)
type Document struct {
	headers []string
	records [][]string
	// firstLine is the table index of records[0]; 1 when a header row was consumed.
	firstLine int
}

// Record represents a single row in a CSV file.
// It provides type-safe access to field values by index or by header name.
type Record struct {
	fields  []string
	headers []string // Reference to document headers for name-based access
}

// NewDocument creates a new empty Document.
func NewDocument() *Document {
	return &Document{
		headers: []string{},
		records: make([][]string, 0),
	}
}

// ParseDocument parses a CSV string into a Document.
//
// opts.SkipFirstRow consumes the first row as headers; opts.Columns sets the
// headers explicitly (and wins over the header row). Without either, all rows
// are data records and the document has no headers.
//
// Example:
//
//	opts := csv.DefaultReadOptions()
//	opts.SkipFirstRow = true
//	doc, err := csv.ParseDocument("name,age\nAlice,30\nBob,25", opts)
//	if err != nil {
//	    // handle error
//	}
//	rec, _ := doc.GetRecord(1)
//	age, _ := rec.GetByName("age") // "25"
func ParseDocument(input string, opts ReadOptions) (*Document, error) {
	records, err := ReadAll(input, opts.ReaderOptions)
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	if opts.SkipFirstRow && len(records) > 0 {
		doc.headers = records[0]
		records = records[1:]
		doc.firstLine = 1
	}
	if len(opts.Columns) > 0 {
		doc.headers = make([]string, len(opts.Columns))
		for i, c := range opts.Columns {
			doc.headers[i] = c.Name
		}
	}
	doc.records = records
	return doc, nil
}

// SetHeaders sets the column headers for this CSV document.
// Headers are used by Record.GetByName() to access fields by name.
// Returns the Document for method chaining.
func (d *Document) SetHeaders(headers []string) *Document {
	d.headers = headers
	return d
}

// AddRecord adds a data record (row) to the document.
// Returns the Document for method chaining.
func (d *Document) AddRecord(fields []string) *Document {
	d.records = append(d.records, fields)
	return d
}

// Headers returns the column headers.
// Returns an empty slice if no headers have been set.
func (d *Document) Headers() []string {
	return d.headers
}

// Records returns all data records as Record objects.
func (d *Document) Records() []Record {
	records := make([]Record, len(d.records))
	for i, fields := range d.records {
		records[i] = Record{
			fields:  fields,
			headers: d.headers,
		}
	}
	return records
}

// RecordCount returns the number of data records in the document.
// This does not include the header row.
func (d *Document) RecordCount() int {
	return len(d.records)
}

// GetRecord returns the record at the specified index.
// Returns (Record, false) if the index is out of bounds.
// Index is 0-based (0 = first data record, not the header).
func (d *Document) GetRecord(index int) (Record, bool) {
	if index < 0 || index >= len(d.records) {
		return Record{}, false
	}

	return Record{
		fields:  d.records[index],
		headers: d.headers,
	}, true
}

// Objects maps every data record onto the document headers.
// It fails with ErrNoColumns when the document has no headers and with
// *HeaderError when a record's length differs from the header count.
func (d *Document) Objects() ([]map[string]string, error) {
	if len(d.headers) == 0 {
		return nil, ErrNoColumns
	}
	return mapRows(d.records, d.headers, d.firstLine)
}

// String returns a short description of the document for debugging.
func (d *Document) String() string {
	return fmt.Sprintf("Document{headers: [%s], records: %d}", strings.Join(d.headers, ", "), len(d.records))
}

// ============================================================================
// Record Methods (type-safe field access)
// ============================================================================

// Get gets the field value at the specified index.
// Returns (value, false) if the index is out of bounds.
// Index is 0-based.
func (r Record) Get(index int) (string, bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false
	}
	return r.fields[index], true
}

// GetByName gets the field value by header name.
// Returns (value, false) if the header name is not found or if no headers are set.
// With duplicate header names the last matching column wins, as in header mapping.
func (r Record) GetByName(name string) (string, bool) {
	for i := len(r.headers) - 1; i >= 0; i-- {
		if r.headers[i] == name {
			return r.Get(i)
		}
	}
	return "", false
}

// Fields returns all field values in the record.
// This returns a copy of the fields slice.
func (r Record) Fields() []string {
	fields := make([]string, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.fields)
}

// ============================================================================
// AST Conversion (for integration with AST-based APIs)
// ============================================================================

// ToNode converts the Document to an AST ArrayDataNode.
// Headers, if set, become the first record.
func (d *Document) ToNode() (*ast.ArrayDataNode, error) {
	table := make([][]string, 0, len(d.records)+1)
	if len(d.headers) > 0 {
		table = append(table, d.headers)
	}
	table = append(table, d.records...)
	return recordsNode(table), nil
}

// FromNode creates a Document from an AST ArrayDataNode of records.
// All records become data records; use SetHeaders to designate headers.
func FromNode(node ast.SchemaNode) (*Document, error) {
	records, err := nodeRecords(node)
	if err != nil {
		return nil, err
	}
	doc := NewDocument()
	doc.records = records
	return doc, nil
}
