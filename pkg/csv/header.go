package csv

import (
	"io"
	"strings"
)

// Column names one key of a header-mapped object.
type Column struct {
	Name string
}

// ColumnNames builds a column list from plain names.
func ColumnNames(names ...string) []Column {
	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Column{Name: name}
	}
	return columns
}

// MapRecords projects a parsed table onto objects keyed by column name.
//
// With skipFirstRow the first row is consumed as the header and its fields
// become the keys. A non-empty columns list supplies the keys instead (the
// first row is still consumed when skipFirstRow is set). Every remaining row
// must have exactly one field per key, otherwise a *HeaderError is returned.
// If a name appears twice, the later field wins.
//
// It returns ErrNoColumns when neither skipFirstRow nor columns is given.
func MapRecords(table [][]string, skipFirstRow bool, columns []Column) ([]map[string]string, error) {
	if !skipFirstRow && len(columns) == 0 {
		return nil, ErrNoColumns
	}

	rows := table
	line := 0
	var keys []string
	if skipFirstRow && len(rows) > 0 {
		keys = rows[0]
		rows = rows[1:]
		line++
	}
	if len(columns) > 0 {
		keys = make([]string, len(columns))
		for i, c := range columns {
			keys[i] = c.Name
		}
	}

	return mapRows(rows, keys, line)
}

// mapRows maps rows onto keys; line is the table index of rows[0].
func mapRows(rows [][]string, keys []string, line int) ([]map[string]string, error) {
	objects := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		if len(row) != len(keys) {
			return nil, &HeaderError{Line: line, Found: len(keys), Expected: len(row)}
		}
		obj := make(map[string]string, len(keys))
		for i, key := range keys {
			obj[key] = row[i]
		}
		objects = append(objects, obj)
		line++
	}
	return objects, nil
}

// ReadObjects parses input and maps its records onto header-keyed objects.
//
// Example:
//
//	opts := csv.DefaultReadOptions()
//	opts.SkipFirstRow = true
//	objs, err := csv.ReadObjects("a,b,c\ne,f,g\n", opts)
//	// objs is []map[string]string{{"a": "e", "b": "f", "c": "g"}}
func ReadObjects(input string, opts ReadOptions) ([]map[string]string, error) {
	return ReadObjectsReader(strings.NewReader(input), opts)
}

// ReadObjectsReader is ReadObjects over an io.Reader.
func ReadObjectsReader(reader io.Reader, opts ReadOptions) ([]map[string]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if !opts.MapsHeaders() {
		return nil, ErrNoColumns
	}
	table, err := ReadAllReader(reader, opts.ReaderOptions)
	if err != nil {
		return nil, err
	}
	return MapRecords(table, opts.SkipFirstRow, opts.Columns)
}
