package tokenizer

import (
	"bufio"
	"io"
	"unicode/utf8"
)

const byteOrderMark = '\uFEFF'

// char is one character of the normalized stream.
type char struct {
	r rune
	// raw holds the byte for an invalid UTF-8 sequence (r is utf8.RuneError).
	raw     byte
	invalid bool
	// size is the number of raw input bytes this character consumed,
	// including a CR folded into a CRLF or dropped at the end of input.
	size int
}

// source yields the input as normalized characters:
//
//   - "\r\n" becomes a single '\n'
//   - a final '\r' is dropped when the input does not end in '\n'
//   - input not ending in '\n' gets an implicit '\n' (size 0)
//   - a leading byte-order mark is skipped
//
// Every other '\r' is passed through as content.
type source struct {
	br      *bufio.Reader
	offset  int64
	started bool
	// any is set once a character has been produced; last is that character.
	any  bool
	last rune
	eof  bool

	ahead    char
	aheadErr error
	hasAhead bool
}

func newSource(r io.Reader) *source {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &source{br: br}
}

// read consumes the next character. It returns io.EOF at the end of input.
func (s *source) read() (char, error) {
	c, err := s.peek()
	s.hasAhead = false
	if err != nil {
		return c, err
	}
	s.offset += int64(c.size)
	return c, nil
}

// peek returns the next character without consuming it.
func (s *source) peek() (char, error) {
	if !s.hasAhead {
		s.ahead, s.aheadErr = s.normalized()
		s.hasAhead = true
	}
	return s.ahead, s.aheadErr
}

// atEnd reports whether no characters remain.
func (s *source) atEnd() (bool, error) {
	_, err := s.peek()
	if err == io.EOF {
		return true, nil
	}
	return false, err
}

func (s *source) normalized() (char, error) {
	if s.eof {
		return char{}, io.EOF
	}
	c, err := s.readRaw()
	if !s.started {
		s.started = true
		if err == nil && c.r == byteOrderMark && !c.invalid {
			s.offset += int64(c.size)
			c, err = s.readRaw()
		}
	}
	if err == io.EOF {
		s.eof = true
		if s.any && s.last != '\n' {
			s.last = '\n'
			return char{r: '\n'}, nil
		}
		return char{}, io.EOF
	}
	if err != nil {
		return char{}, err
	}

	if c.r == '\r' {
		next, err := s.br.Peek(1)
		switch {
		case err == nil && next[0] == '\n':
			_, _ = s.br.ReadByte()
			c = char{r: '\n', size: c.size + 1}
		case err == io.EOF:
			// Trailing lone CR: dropped, and the implicit terminator takes its place.
			s.eof = true
			s.any = true
			s.last = '\n'
			return char{r: '\n', size: c.size}, nil
		case err != nil:
			return char{}, err
		}
	}

	s.any = true
	s.last = c.r
	return c, nil
}

func (s *source) readRaw() (char, error) {
	r, size, err := s.br.ReadRune()
	if err != nil {
		return char{}, err
	}
	if r == utf8.RuneError && size == 1 {
		if err := s.br.UnreadRune(); err != nil {
			return char{}, err
		}
		b, err := s.br.ReadByte()
		if err != nil {
			return char{}, err
		}
		return char{r: r, raw: b, invalid: true, size: 1}, nil
	}
	return char{r: r, size: size}, nil
}
