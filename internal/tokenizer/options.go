package tokenizer

import "unicode/utf8"

// Options configures the tokenizer behavior.
type Options struct {
	// Comma is the field separator. Default: ','
	Comma rune
	// Comment starts a comment line when it is the first character of a line.
	// Zero disables comment lines.
	Comment rune
	// LazyQuotes treats stray quotes as literal content instead of failing.
	LazyQuotes bool
	// TrimLeadingSpace skips white space at the start of every field.
	TrimLeadingSpace bool
}

// DefaultOptions returns default tokenizer options.
func DefaultOptions() Options {
	return Options{
		Comma: ',',
	}
}

// validDelim reports whether r can be used as a separator or comment character.
func validDelim(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// Validate checks the separator and comment characters.
func (o Options) Validate() error {
	if !validDelim(o.Comma) {
		return &OptionsError{Field: "Comma"}
	}
	if o.Comment != 0 && !validDelim(o.Comment) {
		return &OptionsError{Field: "Comment"}
	}
	if o.Comment == o.Comma {
		return &OptionsError{Field: "Comment"}
	}
	return nil
}
