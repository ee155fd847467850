// Package output renders parsed CSV input for the stdcsv command.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Result is the parsed form of one input.
type Result struct {
	// Source names the input ("-" for stdin).
	Source string
	// Columns is the header key order when the records were mapped.
	Columns []string
	// Records holds the raw records when no header mapping was requested.
	Records [][]string
	// Objects holds the mapped records.
	Objects []map[string]string
	// Mapped selects Objects over Records.
	Mapped bool
}

type document struct {
	Source string      `json:"source" yaml:"source"`
	Rows   interface{} `json:"rows" yaml:"rows"`
}

func (r Result) document() document {
	if r.Mapped {
		rows := r.Objects
		if rows == nil {
			rows = []map[string]string{}
		}
		return document{Source: r.Source, Rows: rows}
	}
	rows := r.Records
	if rows == nil {
		rows = [][]string{}
	}
	return document{Source: r.Source, Rows: rows}
}

// Write renders results in the given format ("json", "yaml" or "table").
func Write(w io.Writer, format string, results []Result) error {
	switch format {
	case "json":
		return writeJSON(w, results)
	case "yaml":
		return writeYAML(w, results)
	case "table":
		return writeTable(w, results)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	for _, r := range results {
		if err := enc.Encode(r.document()); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, results []Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, r := range results {
		if err := enc.Encode(r.document()); err != nil {
			return err
		}
	}
	return enc.Close()
}

func writeTable(w io.Writer, results []Result) error {
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "==> %s <==\n", r.Source); err != nil {
				return err
			}
		}
		if err := writeRows(w, r.tableRows()); err != nil {
			return err
		}
	}
	return nil
}

// tableRows flattens a result into display rows, header first when mapped.
func (r Result) tableRows() [][]string {
	if !r.Mapped {
		return r.Records
	}
	columns := uniqueColumns(r.Columns)
	rows := make([][]string, 0, len(r.Objects)+1)
	rows = append(rows, columns)
	for _, obj := range r.Objects {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = obj[c]
		}
		rows = append(rows, row)
	}
	return rows
}

func uniqueColumns(columns []string) []string {
	seen := make(map[string]struct{}, len(columns))
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

var cellEscaper = strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`)

func writeRows(w io.Writer, rows [][]string) error {
	var widths []int
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, field := range row {
			cell := cellEscaper.Replace(field)
			cells[i][j] = cell
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			if cw := runewidth.StringWidth(cell); cw > widths[j] {
				widths[j] = cw
			}
		}
	}

	var b strings.Builder
	for _, row := range cells {
		b.Reset()
		for j, cell := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			if j == len(row)-1 {
				b.WriteString(cell)
				continue
			}
			b.WriteString(runewidth.FillRight(cell, widths[j]))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
