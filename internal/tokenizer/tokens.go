// Package tokenizer implements the character-level CSV state machine.
//
// The tokenizer reads a character stream, normalizes line endings, interprets
// quoting and emits one token per field plus an end-of-record marker. It is
// the only component that sees raw characters; everything above it works on
// finished field values.
package tokenizer

// Kind identifies the type of a Token.
type Kind int

// Token kinds emitted by the tokenizer.
//
// A record is a run of TokenField tokens followed by exactly one
// TokenEndOfRecord. Blank lines and comment lines produce no tokens.
const (
	TokenField       Kind = iota // one field value
	TokenEndOfRecord             // record terminator (explicit or implied by end of input)
)

// String returns the name of the token kind.
func (k Kind) String() string {
	switch k {
	case TokenField:
		return "Field"
	case TokenEndOfRecord:
		return "EndOfRecord"
	default:
		return "Unknown"
	}
}

// Position is a location in the normalized character stream.
// Line is 1-indexed; Column is 0-indexed and counts characters, not bytes.
type Position struct {
	Line   int
	Column int
}

// Token is a unit emitted by the tokenizer.
type Token struct {
	Kind Kind
	// Value is the unescaped field content. Empty for TokenEndOfRecord.
	Value string
	// Pos is where the field starts (after any trimmed leading space).
	// For TokenEndOfRecord it is the record's start line at column 0.
	Pos Position
	// Offset is the raw byte offset of Pos in the input.
	Offset int64
}
