package csv_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/stdcsv/pkg/csv"
)

// TestParse tests the Parse function
func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantRecords int
		wantErr     bool
	}{
		{
			name:        "simple csv",
			input:       "name,age\nAlice,30\nBob,25",
			wantRecords: 3,
		},
		{
			name:        "quoted fields",
			input:       "\"name\",\"age\"\n\"Alice\",\"30\"",
			wantRecords: 2,
		},
		{
			name:        "empty input",
			input:       "",
			wantRecords: 0,
		},
		{
			name:        "single field",
			input:       "value",
			wantRecords: 1,
		},
		{
			name:    "unclosed quote",
			input:   `"unclosed`,
			wantErr: true,
		},
		{
			name:        "escaped quotes",
			input:       `"field with ""quotes"" inside"`,
			wantRecords: 1,
		},
		{
			name:        "empty fields",
			input:       "a,,c\n,b,",
			wantRecords: 2,
		},
		{
			name:        "newlines in quoted fields",
			input:       "\"field\nwith\nnewlines\",normal",
			wantRecords: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := csv.Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			arrayNode, ok := node.(*ast.ArrayDataNode)
			if !ok {
				t.Fatalf("Parse() returned %T, expected *ast.ArrayDataNode", node)
			}
			if len(arrayNode.Elements()) != tt.wantRecords {
				t.Errorf("Parse() returned %d records, want %d", len(arrayNode.Elements()), tt.wantRecords)
			}
		})
	}
}

// TestParseReader tests parsing from an io.Reader
func TestParseReader(t *testing.T) {
	input := "name,age\r\nAlice,30\r\n"
	fromString, err := csv.Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fromReader, err := csv.ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}

	got := csv.NodeToRecords(fromReader)
	want := csv.NodeToRecords(fromString)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseReader() = %q, Parse() = %q", got, want)
	}
}

// TestValidate tests the Validate and ValidateReader functions
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "a,b\nc,d", nil},
		{"ragged rows are valid", "a,b,c\nd", nil},
		{"bare quote", `a"b`, csv.ErrBareQuote},
		{"extraneous quote", `"a"b`, csv.ErrQuote},
		{"unterminated quote", `"abc`, csv.ErrQuote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := csv.Validate(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			err = csv.ValidateReader(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateReader() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestFormat tests the Format function
func TestFormat(t *testing.T) {
	if got := csv.Format(); got != "CSV" {
		t.Errorf("Format() = %q, want %q", got, "CSV")
	}
}

// TestReadAll covers the reference behavior examples end to end.
func TestReadAll(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    func(*csv.ReaderOptions)
		want    [][]string
		wantErr string
	}{
		{
			name:  "bare carriage return stays in field",
			input: "a,b\rc,d\r\n",
			want:  [][]string{{"a", "b\rc", "d"}},
		},
		{
			name:  "non-ascii separator and comment",
			input: "a£b,c£ \td,e\n€ comment\n",
			opts: func(o *csv.ReaderOptions) {
				o.Comma = '£'
				o.Comment = '€'
				o.TrimLeadingSpace = true
			},
			want: [][]string{{"a", "b,c", "d,e"}},
		},
		{
			name:    "extraneous quote",
			input:   `"a "word","b"`,
			wantErr: `parse error on line 1, column 3: extraneous or missing " in quoted-field`,
		},
		{
			name:    "bare quote",
			input:   `a "word","b"`,
			wantErr: `parse error on line 1, column 2: bare " in non-quoted-field`,
		},
		{
			name:  "comment lines",
			input: "#1,2,3\na,b,c\n#comment",
			opts:  func(o *csv.ReaderOptions) { o.Comment = '#' },
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:    "record spanning lines",
			input:   "a,\"b\nc\"d,e",
			opts:    func(o *csv.ReaderOptions) { o.FieldsPerRecord = 2 },
			wantErr: `record on line 1; parse error on line 2, column 1: extraneous or missing " in quoted-field`,
		},
		{
			name:  "doubled quotes",
			input: `""""""""`,
			want:  [][]string{{`"""`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := csv.DefaultReaderOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			got, err := csv.ReadAll(tt.input, opts)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("ReadAll() error = %v, want %q", err, tt.wantErr)
				}
				var perr *csv.ParseError
				if !errors.As(err, &perr) {
					t.Errorf("expected *csv.ParseError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadAll() = %q, want %q", got, tt.want)
			}
		})
	}
}

// quoteRecords renders records, quoting any field that holds the separator,
// a quote or a line-ending character.
func quoteRecords(records [][]string, sep rune) string {
	var b strings.Builder
	for _, rec := range records {
		for i, f := range rec {
			if i > 0 {
				b.WriteRune(sep)
			}
			if (f == "" && len(rec) == 1) || strings.ContainsAny(f, string(sep)+"\"\r\n") {
				b.WriteByte('"')
				b.WriteString(strings.ReplaceAll(f, `"`, `""`))
				b.WriteByte('"')
				continue
			}
			b.WriteString(f)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// TestReadAll_RoundTrip checks that re-quoting parsed records and parsing
// again reproduces them.
func TestReadAll_RoundTrip(t *testing.T) {
	inputs := []struct {
		input string
		sep   rune
	}{
		{"a,b,c\n", ','},
		{"\"a,b\",\"c\"\"d\",e\r\n", ','},
		{"\"multi\nline\",x\ny,z", ','},
		{"field\r\rfield\r\r", ','},
		{"field1,field2\r\r\n\r\rfield1,field2\r\r\n\r\r,", ','},
		{"a;\"b;c\";d\n", ';'},
		{"x\tqu\"\"ote\n", '\t'},
		{"a\x09\xb4,b", ','},
		{"\"\"\n", ','},
		{"\"abθcd\"λefθgh", 'λ'},
	}

	for _, tt := range inputs {
		opts := csv.DefaultReaderOptions()
		opts.Comma = tt.sep
		opts.LazyQuotes = tt.sep == '\t'
		records, err := csv.ReadAll(tt.input, opts)
		if err != nil {
			t.Fatalf("ReadAll(%q) error = %v", tt.input, err)
		}
		opts.LazyQuotes = false
		again, err := csv.ReadAll(quoteRecords(records, tt.sep), opts)
		if err != nil {
			t.Fatalf("re-parse of %q error = %v", tt.input, err)
		}
		if !reflect.DeepEqual(records, again) {
			t.Errorf("round trip of %q = %q, want %q", tt.input, again, records)
		}
	}
}

// TestReadAll_CommentPrefixConfusion checks that a comment character sharing
// a leading UTF-8 byte with field content does not swallow data lines.
func TestReadAll_CommentPrefixConfusion(t *testing.T) {
	pairs := []struct {
		comment rune
		data    string
	}{
		{'θ', "λ"},
		{'λ', "θ"},
		{'€', "₤"},
		{'é', "è"},
	}

	for _, p := range pairs {
		opts := csv.DefaultReaderOptions()
		opts.Comment = p.comment
		input := p.data + "\n" + string(p.comment) + " skipped\n" + p.data + "x\n"
		got, err := csv.ReadAll(input, opts)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		want := [][]string{{p.data}, {p.data + "x"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("comment %q: got %q, want %q", p.comment, got, want)
		}
	}
}

// TestReadAll_FreshRecords checks that no two returned records share storage.
func TestReadAll_FreshRecords(t *testing.T) {
	records, err := csv.ReadAll("a,b\nc,d\n", csv.DefaultReaderOptions())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	records[0][0] = "changed"
	if records[1][0] != "c" {
		t.Errorf("records share storage: %q", records)
	}
}

func generateLargeCSV(rows int) string {
	var b strings.Builder
	b.WriteString("id,name,note\n")
	for i := 0; i < rows; i++ {
		b.WriteString("1,\"Name, Jr.\",\"line one\nline two\"\n")
	}
	return b.String()
}

func BenchmarkReadAll(b *testing.B) {
	input := generateLargeCSV(1000)
	opts := csv.DefaultReaderOptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := csv.ReadAll(input, opts); err != nil {
			b.Fatal(err)
		}
	}
}
