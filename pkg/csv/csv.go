// Package csv provides RFC 4180 CSV parsing and AST generation.
//
// The reader reproduces the behavior of the widely deployed Go-derived CSV
// reader exactly, including its line-ending rules and error messages:
//
//   - "\r\n" ends a record like "\n"; any other "\r" is field content
//   - a final "\r" at the end of the input is dropped
//   - a leading byte-order mark is ignored
//   - invalid UTF-8 bytes are kept verbatim
//
// It parses CSV data into Shape's unified AST representation, into plain
// [][]string tables, or into header-keyed objects.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each function call creates its own parser instance with no shared mutable state.
// A Reader or Scanner must not be shared between goroutines.
//
//	// Safe: Concurrent parsing
//	go func() { csv.Parse(input1) }()
//	go func() { csv.ReadAll(input2, csv.DefaultReaderOptions()) }()
//
// # Parsing APIs
//
//   - Parse / ParseReader - AST (*ast.ArrayDataNode of records)
//   - ReadAll / ReadAllReader - [][]string
//   - ReadObjects / ReadObjectsReader - []map[string]string keyed by header
//   - NewReader - one record at a time with positions
//   - NewScanner - bufio.Scanner-style iteration with header access
//
// # Errors
//
// Malformed input fails with *ParseError, unusable options with *OptionsError
// ("Invalid Delimiter") and header mapping mismatches with *HeaderError:
//
//	_, err := csv.ReadAll(`a "b"`, csv.DefaultReaderOptions())
//	var perr *csv.ParseError
//	if errors.As(err, &perr) && errors.Is(err, csv.ErrBareQuote) {
//	    fmt.Println(perr.Line, perr.Column)
//	}
package csv

import (
	"io"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Parse parses CSV format into an AST from a string using default options.
//
// Returns an ast.ArrayDataNode representing the parsed CSV:
//   - *ast.ArrayDataNode for the file (array of records)
//   - Each record is an *ast.ArrayDataNode of fields
//   - Each field is an *ast.LiteralNode containing a string value
//
// Example:
//
//	node, err := csv.Parse("name,age\nAlice,30\nBob,25")
//	arrayNode := node.(*ast.ArrayDataNode)
//	records := arrayNode.Elements()
//	// records[0] is the header row
//	// records[1] is the first data row
func Parse(input string) (ast.SchemaNode, error) {
	return ParseWithOptions(input, DefaultReaderOptions())
}

// ParseReader parses CSV format into an AST from an io.Reader using default options.
//
// The reader is consumed incrementally through a buffered source; only the
// resulting AST is held in memory.
//
// Example parsing from a file:
//
//	file, err := os.Open("data.csv")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	node, err := csv.ParseReader(file)
func ParseReader(reader io.Reader) (ast.SchemaNode, error) {
	return ParseReaderWithOptions(reader, DefaultReaderOptions())
}

// ReadAll parses a complete CSV document into records.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.Comment = '#'
//	records, err := csv.ReadAll("#skip\na,b\n", opts)
//	// records is [][]string{{"a", "b"}}
func ReadAll(input string, opts ReaderOptions) ([][]string, error) {
	return ReadAllReader(strings.NewReader(input), opts)
}

// ReadAllReader parses every record from reader.
func ReadAllReader(reader io.Reader, opts ReaderOptions) ([][]string, error) {
	r, err := NewReader(reader, opts)
	if err != nil {
		return nil, err
	}
	return r.ReadAll()
}

// Format returns the format identifier for this parser.
// Returns "CSV" to identify this as the CSV data format parser.
func Format() string {
	return "CSV"
}

// Validate checks if the input string is valid CSV under default options.
//
// Returns nil if the input is valid CSV.
// Returns an error with details about why the CSV is invalid.
//
//	if err := csv.Validate(input); err != nil {
//	    fmt.Println("Invalid CSV:", err)
//	}
func Validate(input string) error {
	return ValidateWithOptions(input, DefaultReaderOptions())
}

// ValidateReader checks if the input from an io.Reader is valid CSV under default options.
// Records are discarded as they are read.
func ValidateReader(reader io.Reader) error {
	r, err := NewReader(reader, DefaultReaderOptions())
	if err != nil {
		return err
	}
	for {
		if _, err := r.Read(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
