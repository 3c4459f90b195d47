// Package diag renders the compiler's fatal diagnostics.
//
// There is no error recovery: the first diagnostic formats itself, is
// written to standard error, and the process exits with status 1. This
// mirrors the three-way split in the original tutorial compiler this
// project is descended from: a bare message (no location, used for
// argv/usage problems), a location-pointer message (used by the scanner,
// before any token exists), and a token-anchored message (used everywhere
// else, once the scanner has produced a stream).
package diag

import (
	"fmt"
	"os"

	"github.com/ninecc/minic/token"
)

// Source is the buffer a diagnostic's caret is computed against, plus the
// name under which it should be reported.
type Source struct {
	Name string
	Text string
}

// Fatal reports a message with no source location and exits with status 1.
// Used for command-line and I/O errors, before compilation begins.
func Fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// FatalAt reports a message anchored to a byte offset into src and exits
// with status 1.
func FatalAt(src *Source, offset int, format string, args ...any) {
	fmt.Fprint(os.Stderr, Render(src, offset, fmt.Sprintf(format, args...)))
	os.Exit(1)
}

// FatalTok reports a message anchored to tok's source slice and exits with
// status 1. This is the most commonly used entry point once the scanner has
// produced a token stream: parser and semantic errors are always reported
// against a specific token.
func FatalTok(src *Source, tok *token.Token, format string, args ...any) {
	FatalAt(src, tok.Offset, format, args...)
}

// Render produces the "file:line: source-line\n    ^ message" block for a
// byte offset into src.Text, without printing or exiting. It's split out
// from FatalAt so the formatting itself can be exercised by tests.
func Render(src *Source, offset int, message string) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src.Text) {
		offset = len(src.Text)
	}

	lineStart := offset
	for lineStart > 0 && src.Text[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := offset
	for lineEnd < len(src.Text) && src.Text[lineEnd] != '\n' {
		lineEnd++
	}

	line := 1
	for i := 0; i < lineStart; i++ {
		if src.Text[i] == '\n' {
			line++
		}
	}

	col := offset - lineStart
	prefix := fmt.Sprintf("%s:%d: ", src.Name, line)

	out := prefix + src.Text[lineStart:lineEnd] + "\n"
	for i := 0; i < len(prefix)+col; i++ {
		out += " "
	}
	out += "^ " + message + "\n"
	return out
}
