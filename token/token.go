// Package token defines the tokens produced by the scanner.
//
// Tokens form a singly-linked list, each carrying a (pointer, length) slice
// back into the original source buffer for both keyword/punctuator matching
// and diagnostic carets.
package token

// Kind identifies the category of a Token.
type Kind int

// The token kinds the scanner can produce.
const (
	Reserved   Kind = iota // keyword or punctuator, matched by exact text
	Identifier             // [A-Za-z_][A-Za-z_0-9]*
	String                 // a quoted, escape-decoded string literal
	Number                 // a base-10 integer literal
	EOF                    // one terminal token, past the end of the buffer
)

// Keywords is the scanner's fixed keyword table. A candidate identifier is a
// keyword only if it's followed by a non-identifier-continuation byte; see
// lexer.readIdentOrKeyword.
var Keywords = []string{
	"return", "if", "else", "while", "for",
	"int", "char", "struct", "sizeof", "typedef",
}

// Punctuators is the scanner's fixed multi-character punctuator table,
// checked longest-prefix-first, before falling back to a single-byte
// Reserved token.
var Punctuators = []string{
	"==", "!=", "<=", ">=", "->",
}

// Token is a tagged record: a Kind, the original source slice (used both for
// matching and diagnostics), and kind-specific payload fields.
type Token struct {
	Kind Kind

	// Text is the token's exact source slice: the keyword/punctuator text
	// for Reserved, the identifier spelling for Identifier, the raw
	// quoted text (including quotes) for String, the digit run for
	// Number. The EOF token's Text is empty.
	Text string

	// Offset is the byte offset of Text's first byte within the source
	// buffer the scanner was given; used to render diagnostic carets.
	Offset int

	// Num holds the parsed value of a Number token.
	Num int64

	// Str holds the escape-decoded bytes of a String token, including
	// the terminating zero byte counted in StrLen.
	Str    []byte
	StrLen int

	// Next is the following token in the stream; nil only past EOF.
	Next *Token
}

// Is reports whether t is a Reserved token whose text equals s.
func (t *Token) Is(s string) bool {
	return t != nil && t.Kind == Reserved && t.Text == s
}

// IsEOF reports whether t is the terminal EOF token.
func (t *Token) IsEOF() bool {
	return t != nil && t.Kind == EOF
}
