// Package config holds the stdcsv command-line options and turns them into
// csv.ReadOptions.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/shapestone/stdcsv/pkg/csv"
)

// AutoSeparator makes the CLI sniff the separator from the input.
const AutoSeparator = "auto"

// Output formats understood by internal/output.
const (
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTable = "table"
)

// Options holds all CLI configuration.
type Options struct {
	Separator        string
	Comment          string
	TrimLeadingSpace bool
	LazyQuotes       bool
	FieldsPerRecord  int
	SkipFirstRow     bool
	Columns          []string
	Output           string
	Jobs             int
	LogLevel         string
}

// NewOptions returns the defaults used when no flag is given.
func NewOptions() *Options {
	return &Options{
		Separator:       ",",
		FieldsPerRecord: -1,
		Output:          OutputJSON,
		Jobs:            4,
		LogLevel:        "info",
	}
}

// AddFlags registers the options on fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Separator, "separator", "s", o.Separator, "Field separator: a single character, or \"auto\" to detect it from the input")
	fs.StringVarP(&o.Comment, "comment", "c", o.Comment, "Lines starting with this character are skipped")
	fs.BoolVar(&o.TrimLeadingSpace, "trim-leading-space", o.TrimLeadingSpace, "Ignore leading white space in fields")
	fs.BoolVar(&o.LazyQuotes, "lazy-quotes", o.LazyQuotes, "Accept bare and unescaped quotes")
	fs.IntVar(&o.FieldsPerRecord, "fields-per-record", o.FieldsPerRecord, "Expected fields per record (0: first record decides, negative: any)")
	fs.BoolVar(&o.SkipFirstRow, "skip-first-row", o.SkipFirstRow, "Use the first row as column names and print objects")
	fs.StringSliceVar(&o.Columns, "columns", o.Columns, "Column names to map records onto (comma-separated)")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format (json, yaml, table)")
	fs.IntVarP(&o.Jobs, "jobs", "j", o.Jobs, "Number of files parsed concurrently")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (trace, debug, info, warn, error)")
}

// Validate checks the options before any input is opened.
func (o *Options) Validate() error {
	switch o.Output {
	case OutputJSON, OutputYAML, OutputTable:
	default:
		return fmt.Errorf("unknown output format %q (expected json, yaml, or table)", o.Output)
	}
	if o.Jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1, got %d", o.Jobs)
	}
	if o.AutoSeparator() {
		// The separator is only known once the input has been sniffed.
		_, err := singleRune(o.Comment, "Comment")
		return err
	}
	opts, err := o.ReadOptions(logr.Discard())
	if err != nil {
		return err
	}
	return opts.Validate()
}

// AutoSeparator reports whether the separator should be sniffed.
func (o *Options) AutoSeparator() bool {
	return strings.EqualFold(o.Separator, AutoSeparator)
}

// ReadOptions converts the CLI options into parser options.
// With an automatic separator Comma is left at its default; callers replace it
// after sniffing.
func (o *Options) ReadOptions(logger logr.Logger) (csv.ReadOptions, error) {
	opts := csv.DefaultReadOptions()
	if !o.AutoSeparator() {
		comma, err := singleRune(o.Separator, "Comma")
		if err != nil {
			return opts, err
		}
		opts.Comma = comma
	}
	comment, err := singleRune(o.Comment, "Comment")
	if err != nil {
		return opts, err
	}
	opts.Comment = comment
	opts.TrimLeadingSpace = o.TrimLeadingSpace
	opts.LazyQuotes = o.LazyQuotes
	opts.FieldsPerRecord = o.FieldsPerRecord
	opts.SkipFirstRow = o.SkipFirstRow
	opts.Columns = csv.ColumnNames(o.Columns...)
	opts.Logger = logger
	return opts, nil
}

// singleRune decodes a one-character flag value. The empty string is 0.
func singleRune(s, field string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, &csv.OptionsError{Field: field}
	}
	return r, nil
}
