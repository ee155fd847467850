package tokenizer

import (
	"io"
	"strings"
	"unicode"
)

type state int

const (
	stateStartOfLine state = iota
	stateComment
	stateStartOfField
	stateUnquoted
	stateQuoted
	// stateQuoteSeen follows a quote inside a quoted field: the next character
	// decides between an escaped quote and the end of the field.
	stateQuoteSeen
)

// Tokenizer turns a character stream into field tokens.
//
// It is a pull-based state machine: every call to Next consumes only as many
// characters as needed to finish the next token. Field content is accumulated
// in a buffer that is handed off (not reused) when the field is emitted.
type Tokenizer struct {
	src  *source
	opts Options

	state      state
	line       int
	column     int
	recordLine int

	field       strings.Builder
	fieldPos    Position
	fieldOffset int64
	// quoteCol is the column of the most recent quote in a quoted field.
	quoteCol int
	// quotedText is set when the current line of a quoted field has content
	// after the last quote (or since the line started).
	quotedText bool

	endPending bool
	err        error
}

// New creates a tokenizer reading from r. Options are not validated here;
// callers run Options.Validate first.
func New(r io.Reader, opts Options) *Tokenizer {
	return &Tokenizer{
		src:  newSource(r),
		opts: opts,
		line: 1,
	}
}

// NewFromString creates a tokenizer over an in-memory string.
func NewFromString(input string, opts Options) *Tokenizer {
	return New(strings.NewReader(input), opts)
}

// InputOffset returns the number of raw input bytes consumed so far.
func (t *Tokenizer) InputOffset() int64 {
	return t.src.offset
}

// Line returns the current 1-indexed line.
func (t *Tokenizer) Line() int {
	return t.line
}

// Next returns the next token. It returns io.EOF once the input is exhausted.
// After a failure every subsequent call returns the same error.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}
	if t.endPending {
		t.endPending = false
		return Token{Kind: TokenEndOfRecord, Pos: Position{Line: t.recordLine}}, nil
	}

	for {
		c, err := t.src.read()
		if err != nil {
			// The source always closes the last line with a terminator, so
			// end of input is only ever reached between records.
			return t.fail(err)
		}
		tok, ok, err := t.step(c, t.src.offset-int64(c.size))
		if err != nil {
			return t.fail(err)
		}
		if ok {
			return tok, nil
		}
	}
}

func (t *Tokenizer) step(c char, offset int64) (Token, bool, error) {
	for {
		switch t.state {
		case stateStartOfLine:
			if c.r == '\n' {
				t.newline()
				return Token{}, false, nil
			}
			if t.opts.Comment != 0 && t.is(c, t.opts.Comment) {
				t.column++
				t.state = stateComment
				return Token{}, false, nil
			}
			t.recordLine = t.line
			t.state = stateStartOfField

		case stateComment:
			if c.r == '\n' {
				t.newline()
				t.state = stateStartOfLine
			} else {
				t.column++
			}
			return Token{}, false, nil

		case stateStartOfField:
			if t.opts.TrimLeadingSpace && c.r != '\n' && !c.invalid && unicode.IsSpace(c.r) {
				t.column++
				return Token{}, false, nil
			}
			t.fieldPos = Position{Line: t.line, Column: t.column}
			t.fieldOffset = offset
			if t.is(c, '"') {
				t.column++
				t.quotedText = false
				t.state = stateQuoted
				return Token{}, false, nil
			}
			t.state = stateUnquoted

		case stateUnquoted:
			switch {
			case t.is(c, t.opts.Comma):
				t.column++
				t.state = stateStartOfField
				return t.emitField(), true, nil
			case c.r == '\n':
				return t.endRecord(), true, nil
			case t.is(c, '"') && !t.opts.LazyQuotes:
				return Token{}, false, t.errorAt(t.line, t.column, ErrBareQuote)
			}
			t.appendChar(c)
			t.column++
			return Token{}, false, nil

		case stateQuoted:
			switch {
			case t.is(c, '"'):
				t.quoteCol = t.column
				t.column++
				t.quotedText = false
				t.state = stateQuoteSeen
				return Token{}, false, nil
			case c.r == '\n':
				return t.quotedNewline()
			}
			t.appendChar(c)
			t.column++
			t.quotedText = true
			return Token{}, false, nil

		case stateQuoteSeen:
			switch {
			case t.is(c, '"'):
				t.field.WriteByte('"')
				t.column++
				t.state = stateQuoted
				return Token{}, false, nil
			case t.is(c, t.opts.Comma):
				t.column++
				t.state = stateStartOfField
				return t.emitField(), true, nil
			case c.r == '\n':
				return t.endRecord(), true, nil
			case t.opts.LazyQuotes:
				t.field.WriteByte('"')
				t.appendChar(c)
				t.column++
				t.quotedText = true
				t.state = stateQuoted
				return Token{}, false, nil
			}
			return Token{}, false, t.errorAt(t.line, t.quoteCol, ErrQuote)
		}
	}
}

// quotedNewline handles a terminator inside an open quoted field.
func (t *Tokenizer) quotedNewline() (Token, bool, error) {
	last, err := t.src.atEnd()
	if err != nil {
		return Token{}, false, err
	}
	if !last {
		t.field.WriteByte('\n')
		t.newline()
		t.quotedText = false
		return Token{}, false, nil
	}

	// The quoted field runs into the end of the input.
	if t.opts.LazyQuotes {
		return t.endRecord(), true, nil
	}
	if t.quotedText {
		return Token{}, false, t.errorAt(t.line+1, 0, ErrQuote)
	}
	return Token{}, false, t.errorAt(t.line, t.column, ErrQuote)
}

func (t *Tokenizer) emitField() Token {
	tok := Token{
		Kind:   TokenField,
		Value:  t.field.String(),
		Pos:    t.fieldPos,
		Offset: t.fieldOffset,
	}
	t.field.Reset()
	return tok
}

func (t *Tokenizer) endRecord() Token {
	tok := t.emitField()
	t.endPending = true
	t.newline()
	t.state = stateStartOfLine
	return tok
}

func (t *Tokenizer) newline() {
	t.line++
	t.column = 0
}

// is compares whole characters; invalid bytes never match.
func (t *Tokenizer) is(c char, r rune) bool {
	return !c.invalid && c.r == r
}

func (t *Tokenizer) appendChar(c char) {
	if c.invalid {
		t.field.WriteByte(c.raw)
		return
	}
	t.field.WriteRune(c.r)
}

func (t *Tokenizer) errorAt(line, column int, err error) error {
	return &ParseError{
		StartLine: t.recordLine,
		Line:      line,
		Column:    column,
		Err:       err,
	}
}

func (t *Tokenizer) fail(err error) (Token, error) {
	t.err = err
	return Token{}, err
}
