// Package parser implements the compiler's recursive-descent parser: it
// reads the token stream produced by the lexer through a cursor, builds a
// typed AST (type annotation happens inline, node by node, as the parser
// goes — see the sema package), and resolves identifiers against two
// parallel lexically-nested scope stacks: ordinary variables and typedefs
// share one namespace, struct tags live in a separate one.
package parser

import (
	"strconv"

	"github.com/ninecc/minic/ast"
	"github.com/ninecc/minic/diag"
	"github.com/ninecc/minic/sema"
	"github.com/ninecc/minic/token"
	"github.com/ninecc/minic/types"
)

// varBinding is one entry on the variable/typedef scope stack: a name bound
// either to a Variable or to a typedef'd Type, never both.
type varBinding struct {
	name     string
	variable *ast.Variable
	typedef  *types.Type
}

// tagBinding is one entry on the struct-tag scope stack.
type tagBinding struct {
	name string
	typ  *types.Type
}

// function tracks the in-progress state of the function currently being
// parsed; nil at file scope.
type function struct {
	name   string
	locals []*ast.Variable
}

// Parser holds all parsing state as struct fields — no process-wide mutable
// state. The variable/typedef and tag stacks are flat, append-only slices;
// entering a block snapshots their lengths, leaving it truncates back to the
// snapshot. This is the ordered-sequence equivalent of the linked
// scope-stack design the original implementation uses.
type Parser struct {
	src *diag.Source
	cur *token.Token

	varStack []varBinding
	tagStack []tagBinding

	fn *function

	anonCounter int
	prog        *ast.Program
}

// New creates a Parser over an already-tokenized source.
func New(src *diag.Source, tokens *token.Token) *Parser {
	return &Parser{
		src:  src,
		cur:  tokens,
		prog: &ast.Program{},
	}
}

// Parse runs the program grammar to completion and returns the resulting
// Program. Any syntax or semantic error is fatal.
func (p *Parser) Parse() *ast.Program {
	for !p.cur.IsEOF() {
		if p.atFunction() {
			p.parseFunction()
		} else {
			p.parseGlobalVar()
		}
	}
	return p.prog
}

// --- token cursor helpers ---------------------------------------------------

// peek reports whether the current token is the Reserved punctuator/keyword
// s, without consuming it.
func (p *Parser) peek(s string) bool {
	return p.cur.Is(s)
}

// consume advances past the current token and reports true if it is the
// Reserved punctuator/keyword s; otherwise it leaves the cursor untouched
// and reports false.
func (p *Parser) consume(s string) bool {
	if !p.cur.Is(s) {
		return false
	}
	p.cur = p.cur.Next
	return true
}

// expect consumes the Reserved punctuator/keyword s or reports a fatal
// diagnostic.
func (p *Parser) expect(s string) {
	if !p.consume(s) {
		p.fatalHere("expected %q", s)
	}
}

// expectNumber consumes a Number token and returns its value, or reports a
// fatal diagnostic.
func (p *Parser) expectNumber() int64 {
	if p.cur.Kind != token.Number {
		p.fatalHere("expected a number")
	}
	v := p.cur.Num
	p.cur = p.cur.Next
	return v
}

// expectIdent consumes an Identifier token and returns its text, or reports
// a fatal diagnostic. The message deliberately mirrors a copy-paste bug in
// the reference implementation: it says "integer", not "identifier".
func (p *Parser) expectIdent() string {
	if p.cur.Kind != token.Identifier {
		p.fatalHere("Expected an integer")
	}
	name := p.cur.Text
	p.cur = p.cur.Next
	return name
}

// consumeIdent consumes and returns the current token's text if it is an
// Identifier, reporting ok=false (without consuming anything) otherwise.
func (p *Parser) consumeIdent() (string, bool) {
	if p.cur.Kind != token.Identifier {
		return "", false
	}
	name := p.cur.Text
	p.cur = p.cur.Next
	return name, true
}

func (p *Parser) fatalHere(format string, args ...any) {
	p.fatalAt(p.cur, format, args...)
}

// fatalAt reports a fatal diagnostic anchored to an arbitrary token (usually
// the operator/keyword token that triggered a semantic check), rather than
// the parser's current cursor position.
func (p *Parser) fatalAt(tok *token.Token, format string, args ...any) {
	diag.FatalTok(p.src, tok, format, args...)
}

// typed runs sema.AddType on a freshly constructed expression node and
// returns it; every expression-node constructor in this package routes
// through it so that, by the time a node is handed to its parent, its Type
// is always already populated — matching the "both annotated on the fly"
// requirement that the pointer-arithmetic disambiguation rules depend on.
func (p *Parser) typed(n *ast.Node) *ast.Node {
	sema.AddType(p.src, n)
	return n
}

// --- scope management --------------------------------------------------------

// blockScope is a snapshot of both scope stacks' heads, recorded on block
// entry and restored on exit.
type blockScope struct {
	vars int
	tags int
}

func (p *Parser) enterBlock() blockScope {
	return blockScope{vars: len(p.varStack), tags: len(p.tagStack)}
}

func (p *Parser) leaveBlock(s blockScope) {
	p.varStack = p.varStack[:s.vars]
	p.tagStack = p.tagStack[:s.tags]
}

// declareVar pushes a Variable binding onto the variable/typedef scope.
func (p *Parser) declareVar(v *ast.Variable) {
	p.varStack = append(p.varStack, varBinding{name: v.Name, variable: v})
}

// declareTypedef pushes a typedef name -> Type binding onto the same
// namespace as variables (struct tags are separate).
func (p *Parser) declareTypedef(name string, t *types.Type) {
	p.varStack = append(p.varStack, varBinding{name: name, typedef: t})
}

// lookupVar scans the variable/typedef stack top-down for a Variable
// binding. Shadowing: the most recently declared match wins.
func (p *Parser) lookupVar(name string) *ast.Variable {
	for i := len(p.varStack) - 1; i >= 0; i-- {
		if p.varStack[i].name == name && p.varStack[i].variable != nil {
			return p.varStack[i].variable
		}
	}
	return nil
}

// lookupTypedef scans the variable/typedef stack top-down for a typedef
// binding.
func (p *Parser) lookupTypedef(name string) *types.Type {
	for i := len(p.varStack) - 1; i >= 0; i-- {
		if p.varStack[i].name == name && p.varStack[i].typedef != nil {
			return p.varStack[i].typedef
		}
	}
	return nil
}

// declareTag pushes a struct tag -> Type binding onto the tag scope.
func (p *Parser) declareTag(name string, t *types.Type) {
	p.tagStack = append(p.tagStack, tagBinding{name: name, typ: t})
}

// lookupTag scans the tag stack top-down for a struct tag binding.
func (p *Parser) lookupTag(name string) *types.Type {
	for i := len(p.tagStack) - 1; i >= 0; i-- {
		if p.tagStack[i].name == name {
			return p.tagStack[i].typ
		}
	}
	return nil
}

// --- locals / globals --------------------------------------------------------

// addLocal creates a new local Variable in the function currently being
// parsed, declares it in scope, and returns it. Its stack Offset is left
// zero; the driver assigns offsets after parsing finishes.
func (p *Parser) addLocal(name string, t *types.Type) *ast.Variable {
	v := &ast.Variable{Name: name, Type: t, IsLocal: true}
	p.fn.locals = append(p.fn.locals, v)
	p.declareVar(v)
	return v
}

// addGlobal creates a new file-scope Variable, declares it in scope, and
// registers it on the program.
func (p *Parser) addGlobal(name string, t *types.Type) *ast.Variable {
	v := &ast.Variable{Name: name, Type: t}
	p.prog.Globals = append(p.prog.Globals, v)
	p.declareVar(v)
	return v
}

// liftStringLiteral registers a string literal's decoded bytes (contents)
// as a new anonymous global of type Array(char, len(contents)), named
// ".L.data.<n>" with a
// monotonically increasing n, and returns it.
func (p *Parser) liftStringLiteral(contents []byte) *ast.Variable {
	name := p.nextAnonName()
	v := &ast.Variable{
		Name:     name,
		Type:     types.ArrayOf(types.CharType(), len(contents)),
		Contents: contents,
		ContLen:  len(contents),
	}
	p.prog.Globals = append(p.prog.Globals, v)
	return v
}

func (p *Parser) nextAnonName() string {
	n := p.anonCounter
	p.anonCounter++
	return ".L.data." + strconv.Itoa(n)
}
