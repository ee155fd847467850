package csv

import (
	"io"
)

// Scanner provides a streaming interface for reading CSV records one at a time.
// Records are parsed on demand, so memory use is bounded by the largest record
// rather than by the size of the input.
//
// Example usage:
//
//	file, _ := os.Open("data.csv")
//	defer file.Close()
//
//	scanner := csv.NewScanner(file).SetHasHeaders(true)
//	for scanner.Scan() {
//	    record := scanner.Record()
//	    name, _ := record.GetByName("name")
//	    fmt.Println(name)
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner struct {
	source      io.Reader
	opts        ReaderOptions
	reader      *Reader
	hasHeaders  bool
	reuseRecord bool
	headers     []string
	current     []string
	err         error
	done        bool
	lastRecord  Record // reused when reuseRecord is true
}

// NewScanner creates a new Scanner that reads CSV from the given io.Reader
// with DefaultReaderOptions. By default, the scanner assumes no headers.
// Use SetHasHeaders(true) to treat the first row as headers.
//
// Example:
//
//	scanner := csv.NewScanner(reader)
func NewScanner(reader io.Reader) *Scanner {
	return &Scanner{
		source:  reader,
		opts:    DefaultReaderOptions(),
		headers: []string{},
	}
}

// SetOptions replaces the parsing options. It has no effect once Scan has
// been called. Returns the Scanner for method chaining.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.Comma = ';'
//	scanner := csv.NewScanner(reader).SetOptions(opts)
func (s *Scanner) SetOptions(opts ReaderOptions) *Scanner {
	s.opts = opts
	return s
}

// SetHasHeaders sets whether the first row should be treated as headers.
// If true, the first row will be used as column names for GetByName() access.
// Returns the Scanner for method chaining.
func (s *Scanner) SetHasHeaders(hasHeaders bool) *Scanner {
	s.hasHeaders = hasHeaders
	return s
}

// SetReuseRecord sets whether the scanner should reuse the Record struct.
// When true, successive calls to Record() return the same Record struct
// with updated field values. Field slices themselves are never shared
// between records.
// Returns the Scanner for method chaining.
func (s *Scanner) SetReuseRecord(reuse bool) *Scanner {
	s.reuseRecord = reuse
	return s
}

// Scan advances the scanner to the next record.
// It returns false when there are no more records or an error occurs.
// After Scan returns false, the Err method will return any error that occurred.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	if s.reader == nil {
		r, err := NewReader(s.source, s.opts)
		if err != nil {
			return s.stop(err)
		}
		s.reader = r
		if s.hasHeaders {
			headers, err := r.Read()
			if err != nil {
				return s.stop(err)
			}
			s.headers = headers
		}
	}

	record, err := s.reader.Read()
	if err != nil {
		return s.stop(err)
	}
	s.current = record
	return true
}

func (s *Scanner) stop(err error) bool {
	s.done = true
	s.current = nil
	if err != io.EOF {
		s.err = err
	}
	return false
}

// Record returns the current record.
// This should only be called after Scan() returns true.
//
// The returned Record provides access to field values
// by index or by header name (if headers are set).
func (s *Scanner) Record() Record {
	if s.current == nil {
		return Record{fields: []string{}, headers: s.headers}
	}

	if s.reuseRecord {
		s.lastRecord.fields = s.current
		s.lastRecord.headers = s.headers
		return s.lastRecord
	}

	return Record{
		fields:  s.current,
		headers: s.headers,
	}
}

// FieldPos returns the position of a field of the current record.
// See Reader.FieldPos.
func (s *Scanner) FieldPos(field int) (line, column int) {
	return s.reader.FieldPos(field)
}

// Err returns the error, if any, that was encountered during scanning.
// It returns nil if no error occurred or at EOF.
func (s *Scanner) Err() error {
	return s.err
}

// Headers returns the column headers if SetHasHeaders(true) was called.
// Returns an empty slice if no headers were set.
// This is available after the first call to Scan().
func (s *Scanner) Headers() []string {
	return s.headers
}
