// Package csv provides CSV dialect detection and header sniffing.
package csv

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// DefaultSniffSize is the number of bytes SniffReader inspects.
const DefaultSniffSize = 4096

// sniffCandidates are the separators DetectDelimiter chooses from, in tie-break order.
var sniffCandidates = []rune{',', '\t', ';', '|'}

var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`),       // snake_case or identifier
	regexp.MustCompile(`^[a-zA-Z]+[A-Z][a-zA-Z]*$`),      // camelCase
	regexp.MustCompile(`^[A-Z][a-z]+([ ][A-Z][a-z]+)*$`), // Title Case
}

// Sniffer detects the CSV dialect (separator, header row) from a sample.
//
// The sample is tokenized with the real reader in lazy-quote mode for every
// candidate separator, so quoted separators and embedded line breaks are
// handled exactly as a later parse would handle them. When the sample was cut
// off by SniffReader the incomplete last line is ignored.
type Sniffer struct {
	sample    string
	truncated bool
	delimiter rune
	hasHeader bool
	analyzed  bool
}

// NewSniffer creates a new Sniffer with a sample of CSV data.
// For best results, provide at least 2-3 lines of data.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	s.delimiter = s.detectDelimiter()
	s.hasHeader = s.detectHeader()
	s.analyzed = true
}

// DetectDelimiter returns the detected field separator.
// Common separators checked: comma, tab, semicolon, pipe. Defaults to comma.
func (s *Sniffer) DetectDelimiter() rune {
	s.analyze()
	return s.delimiter
}

// HasHeader returns true if the first record appears to be a header.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// sampleRecords parses the complete records of the sample with the given separator.
func (s *Sniffer) sampleRecords(sep rune) [][]string {
	opts := DefaultReaderOptions()
	opts.Comma = sep
	opts.LazyQuotes = true

	sample := s.sample
	if i := strings.LastIndexByte(sample, '\n'); s.truncated && i >= 0 {
		sample = sample[:i+1]
	}
	r, err := NewReader(strings.NewReader(sample), opts)
	if err != nil {
		return nil
	}
	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			return records
		}
		records = append(records, rec)
	}
}

func (s *Sniffer) detectDelimiter() rune {
	best := ','
	bestScore := 0
	for _, sep := range sniffCandidates {
		records := s.sampleRecords(sep)
		if len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		score := len(records[0]) - 1
		consistent := true
		for _, rec := range records[1:] {
			if len(rec) != len(records[0]) {
				consistent = false
				break
			}
		}
		if consistent {
			score *= 10 // Bonus for consistency
		}
		if score > bestScore {
			best = sep
			bestScore = score
		}
	}
	return best
}

// detectHeader compares the first record with the second: a header row is
// made of name-like fields while data rows are not.
func (s *Sniffer) detectHeader() bool {
	records := s.sampleRecords(s.delimiter)
	if len(records) < 2 {
		return false
	}

	headerScore := 0
	dataScore := 0
	for _, field := range records[0] {
		field = strings.TrimSpace(field)
		if isLikelyHeader(field) {
			headerScore++
		}
		if isNumeric(field) {
			dataScore++
		}
	}
	return headerScore > dataScore
}

func isLikelyHeader(s string) bool {
	if s == "" || isNumeric(s) {
		return false
	}
	for _, pattern := range headerPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// SniffReader reads up to size bytes from r, detects the dialect from them and
// returns a reader that still yields the complete input.
// A size of 0 or less uses DefaultSniffSize.
func SniffReader(r io.Reader, size int) (*Sniffer, io.Reader, error) {
	if size <= 0 {
		size = DefaultSniffSize
	}
	br := bufio.NewReaderSize(r, size)
	sample, err := br.Peek(size)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, nil, err
	}
	s := NewSniffer(string(sample))
	s.truncated = len(sample) == size
	return s, br, nil
}
