package csv_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/shapestone/stdcsv/pkg/csv"
)

func TestReadObjects(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		skipFirstRow bool
		columns      []csv.Column
		want         []map[string]string
	}{
		{
			name:         "header mapping boolean",
			input:        "a,b,c\ne,f,g\n",
			skipFirstRow: true,
			want:         []map[string]string{{"a": "e", "b": "f", "c": "g"}},
		},
		{
			name:    "header mapping array",
			input:   "a,b,c\ne,f,g\n",
			columns: csv.ColumnNames("this", "is", "sparta"),
			want: []map[string]string{
				{"this": "a", "is": "b", "sparta": "c"},
				{"this": "e", "is": "f", "sparta": "g"},
			},
		},
		{
			name:    "header mapping object",
			input:   "a,b,c\ne,f,g\n",
			columns: []csv.Column{{Name: "this"}, {Name: "is"}, {Name: "sparta"}},
			want: []map[string]string{
				{"this": "a", "is": "b", "sparta": "c"},
				{"this": "e", "is": "f", "sparta": "g"},
			},
		},
		{
			name:         "provides both skipFirstRow and columns",
			input:        "a,b,1\nc,d,2\ne,f,3",
			skipFirstRow: true,
			columns:      csv.ColumnNames("foo", "bar", "baz"),
			want: []map[string]string{
				{"foo": "c", "bar": "d", "baz": "2"},
				{"foo": "e", "bar": "f", "baz": "3"},
			},
		},
		{
			name:         "header only",
			input:        "a,b,c\n",
			skipFirstRow: true,
			want:         []map[string]string{},
		},
		{
			name:         "empty input",
			input:        "",
			skipFirstRow: true,
			want:         []map[string]string{},
		},
		{
			name:         "duplicate header keeps last field",
			input:        "k,k\n1,2\n",
			skipFirstRow: true,
			want:         []map[string]string{{"k": "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := csv.DefaultReadOptions()
			opts.SkipFirstRow = tt.skipFirstRow
			opts.Columns = tt.columns

			got, err := csv.ReadObjects(tt.input, opts)
			if err != nil {
				t.Fatalf("ReadObjects() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadObjects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadObjects_Mismatch(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		skipFirstRow bool
		columns      []csv.Column
		want         string
	}{
		{
			name:         "mismatching number of headers and fields",
			input:        "a,b,c\nd,e",
			skipFirstRow: true,
			columns:      csv.ColumnNames("foo", "bar", "baz"),
			want:         "Error number of fields line: 1\nNumber of fields found: 3\nExpected number of fields: 2",
		},
		{
			name:    "columns only count from the first row",
			input:   "a,b\nc,d,e",
			columns: csv.ColumnNames("x", "y"),
			want:    "Error number of fields line: 1\nNumber of fields found: 2\nExpected number of fields: 3",
		},
		{
			name:         "header row sets the key count",
			input:        "a,b\nc,d\ne",
			skipFirstRow: true,
			want:         "Error number of fields line: 2\nNumber of fields found: 2\nExpected number of fields: 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := csv.DefaultReadOptions()
			opts.SkipFirstRow = tt.skipFirstRow
			opts.Columns = tt.columns

			_, err := csv.ReadObjects(tt.input, opts)
			if err == nil || err.Error() != tt.want {
				t.Fatalf("ReadObjects() error = %v, want %q", err, tt.want)
			}
			var herr *csv.HeaderError
			if !errors.As(err, &herr) {
				t.Fatalf("expected *csv.HeaderError, got %T", err)
			}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				t.Error("header mismatch must not be a *csv.ParseError")
			}
		})
	}
}

func TestReadObjects_Errors(t *testing.T) {
	t.Run("no columns", func(t *testing.T) {
		_, err := csv.ReadObjects("a,b\n", csv.DefaultReadOptions())
		if !errors.Is(err, csv.ErrNoColumns) {
			t.Errorf("ReadObjects() error = %v, want ErrNoColumns", err)
		}
	})

	t.Run("parse error wins", func(t *testing.T) {
		opts := csv.DefaultReadOptions()
		opts.SkipFirstRow = true
		_, err := csv.ReadObjects("a,b\nc\"d,e\n", opts)
		if !errors.Is(err, csv.ErrBareQuote) {
			t.Errorf("ReadObjects() error = %v, want ErrBareQuote", err)
		}
	})

	t.Run("invalid options", func(t *testing.T) {
		opts := csv.DefaultReadOptions()
		opts.Comma = '"'
		_, err := csv.ReadObjectsReader(strings.NewReader("a"), opts)
		if !errors.Is(err, csv.ErrInvalidDelim) {
			t.Errorf("ReadObjectsReader() error = %v, want ErrInvalidDelim", err)
		}
	})
}

func TestMapRecords(t *testing.T) {
	table := [][]string{{"id", "name"}, {"1", "Alice"}}

	got, err := csv.MapRecords(table, true, nil)
	if err != nil {
		t.Fatalf("MapRecords() error = %v", err)
	}
	want := []map[string]string{{"id": "1", "name": "Alice"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MapRecords() = %v, want %v", got, want)
	}

	if _, err := csv.MapRecords(table, false, nil); !errors.Is(err, csv.ErrNoColumns) {
		t.Errorf("MapRecords() without columns error = %v", err)
	}
}
