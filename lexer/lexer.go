// Package lexer turns a source buffer into a linked stream of tokens.
//
// Whitespace is skipped; "//" runs to end of line; "/*" runs to the next
// "*/" (an unclosed block comment is fatal). String literals are decoded
// in place, with a fixed 1024-byte buffer matching the reference
// implementation's hard limit. Keywords and multi-character punctuators are
// recognized by longest-prefix checks against the two fixed tables in the
// token package; anything else single-byte becomes its own Reserved token.
// Any other byte is a fatal "could not tokenize" error.
package lexer

import (
	"strconv"
	"strings"

	"github.com/ninecc/minic/diag"
	"github.com/ninecc/minic/token"
)

// maxStringLiteral is the fixed buffer size for a decoded string literal,
// including its trailing zero byte: a hard limit inherited from the
// reference implementation, not a growable buffer.
const maxStringLiteral = 1024

// Lexer holds the scanner's state over one source buffer.
type Lexer struct {
	src *diag.Source
	pos int
}

// New creates a Lexer over src.
func New(src *diag.Source) *Lexer {
	return &Lexer{src: src}
}

// Tokenize scans the whole buffer and returns the head of the resulting
// token list, terminated by one EOF token. Any lexical error is fatal: it
// is reported via diag and the process exits before this function returns.
func (l *Lexer) Tokenize() *token.Token {
	dummy := &token.Token{}
	cur := dummy

	text := l.src.Text
	for l.pos < len(text) {
		c := text[l.pos]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.pos++
			continue

		case strings.HasPrefix(text[l.pos:], "//"):
			for l.pos < len(text) && text[l.pos] != '\n' {
				l.pos++
			}
			continue

		case strings.HasPrefix(text[l.pos:], "/*"):
			start := l.pos
			end := strings.Index(text[l.pos+2:], "*/")
			if end < 0 {
				diag.FatalAt(l.src, start, "unclosed block comment")
			}
			l.pos = l.pos + 2 + end + 2
			continue

		case c == '"':
			cur.Next = l.readString()
			cur = cur.Next
			continue

		case isDigit(c):
			cur.Next = l.readNumber()
			cur = cur.Next
			continue

		case isIdentStart(c):
			cur.Next = l.readIdentOrKeyword()
			cur = cur.Next
			continue

		default:
			cur.Next = l.readPunctuator()
			cur = cur.Next
		}
	}

	cur.Next = &token.Token{Kind: token.EOF, Offset: len(text)}
	return dummy.Next
}

func (l *Lexer) readPunctuator() *token.Token {
	text := l.src.Text
	start := l.pos

	for _, p := range token.Punctuators {
		if strings.HasPrefix(text[l.pos:], p) {
			l.pos += len(p)
			return &token.Token{Kind: token.Reserved, Text: p, Offset: start}
		}
	}

	c := text[l.pos]
	if !isPunctByte(c) {
		diag.FatalAt(l.src, l.pos, "could not tokenize: unrecognized byte %q", c)
	}

	l.pos++
	return &token.Token{Kind: token.Reserved, Text: text[start:l.pos], Offset: start}
}

func (l *Lexer) readIdentOrKeyword() *token.Token {
	text := l.src.Text
	start := l.pos
	for l.pos < len(text) && isIdentCont(text[l.pos]) {
		l.pos++
	}
	word := text[start:l.pos]

	for _, kw := range token.Keywords {
		if word == kw {
			return &token.Token{Kind: token.Reserved, Text: word, Offset: start}
		}
	}
	return &token.Token{Kind: token.Identifier, Text: word, Offset: start}
}

func (l *Lexer) readNumber() *token.Token {
	text := l.src.Text
	start := l.pos
	for l.pos < len(text) && isDigit(text[l.pos]) {
		l.pos++
	}
	word := text[start:l.pos]
	val, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		diag.FatalAt(l.src, start, "invalid number literal %q", word)
	}
	return &token.Token{Kind: token.Number, Text: word, Offset: start, Num: val}
}

// readString decodes a "..." literal starting at the current '"'. Supported
// escapes are \a \b \t \n \v \f \r \e \0 and \c for any other c (the
// character itself). The decoded bytes, with a trailing zero appended, are
// stored in Str/StrLen; Text keeps the original quoted source slice.
func (l *Lexer) readString() *token.Token {
	text := l.src.Text
	start := l.pos
	l.pos++ // opening quote

	buf := make([]byte, 0, 32)
	for {
		if l.pos >= len(text) {
			diag.FatalAt(l.src, start, "unclosed string literal")
		}
		c := text[l.pos]
		if c == '"' {
			l.pos++
			break
		}
		if c == '\\' {
			l.pos++
			if l.pos >= len(text) {
				diag.FatalAt(l.src, start, "unclosed string literal")
			}
			buf = append(buf, decodeEscape(text[l.pos]))
			l.pos++
		} else {
			buf = append(buf, c)
			l.pos++
		}

		if len(buf)+1 > maxStringLiteral {
			diag.FatalAt(l.src, start, "string literal too large (exceeds %d bytes)", maxStringLiteral)
		}
	}

	buf = append(buf, 0)

	return &token.Token{
		Kind:   token.String,
		Text:   text[start:l.pos],
		Offset: start,
		Str:    buf,
		StrLen: len(buf),
	}
}

func decodeEscape(c byte) byte {
	switch c {
	case 'a':
		return '\a'
	case 'b':
		return '\b'
	case 't':
		return '\t'
	case 'n':
		return '\n'
	case 'v':
		return '\v'
	case 'f':
		return '\f'
	case 'r':
		return '\r'
	case 'e':
		return 0x1b
	case '0':
		return 0
	default:
		return c
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// isPunctByte reports whether c is a printable, non-whitespace, non-NUL byte
// eligible to become a single-character Reserved token. Anything else
// (control bytes, high bytes outside the supported subset) is a lexical
// error.
func isPunctByte(c byte) bool {
	return c >= '!' && c <= '~'
}
