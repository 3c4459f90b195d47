// Package compiler ties the other packages together into the driver the
// command-line front-end calls: lex, parse (which also type-annotates and
// lifts string literals as it goes), assign stack offsets, and generate.
//
// Every error this pipeline can hit — a bad token, a malformed expression,
// an invalid pointer operation — is fatal: diag reports it and exits the
// process before Compile returns. There is nothing to recover from, so
// unlike the reference implementation's Compile, this one has no error
// return; by the time it returns, the program was valid.
package compiler

import (
	"github.com/ninecc/minic/codegen"
	"github.com/ninecc/minic/diag"
	"github.com/ninecc/minic/lexer"
	"github.com/ninecc/minic/parser"
)

// Compiler holds our object-state.
type Compiler struct {
	// debug holds a flag to decide if debugging "stuff" is generated
	// in the output assembly.
	debug bool

	// source holds the program we're compiling, and the name it should
	// be reported under in diagnostics.
	source *diag.Source
}

// New creates a new compiler, given the source text and the name it should
// be reported under in diagnostics (typically the path it was read from).
func New(name, input string) *Compiler {
	return &Compiler{source: &diag.Source{Name: name, Text: input}}
}

// SetDebug changes the debug-flag for our output.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
}

// Compile converts the input program into a complete x86-64 assembly-text
// translation unit.
func (c *Compiler) Compile() string {
	tokens := lexer.New(c.source).Tokenize()
	prog := parser.New(c.source, tokens).Parse()
	return codegen.Generate(prog, c.debug)
}
