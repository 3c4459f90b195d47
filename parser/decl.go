// decl.go parses the top-level (basetype, struct-decl, function,
// global-var) productions of the grammar.
package parser

import (
	"github.com/ninecc/minic/ast"
	"github.com/ninecc/minic/types"
)

// atFunction speculatively parses a basetype followed by an identifier and
// reports whether that identifier is followed by "(" — i.e. whether the
// upcoming top-level declaration is a function rather than a global
// variable. It fully rewinds afterward: both the token cursor and any
// struct-tag/typedef bindings the speculative basetype parse may have
// registered (an inline "struct Foo { ... }" as a return type, say) are
// restored, so the real parse that follows sees a clean slate.
func (p *Parser) atFunction() bool {
	savedTok := p.cur
	savedVars := len(p.varStack)
	savedTags := len(p.tagStack)
	defer func() {
		p.cur = savedTok
		p.varStack = p.varStack[:savedVars]
		p.tagStack = p.tagStack[:savedTags]
	}()

	p.basetype()
	_, ok := p.consumeIdent()
	if !ok {
		return false
	}
	return p.peek("(")
}

// parseFunction parses one function definition and appends it to the
// program. Per the spec's resolved open question, the parameter scope this
// pushes onto the variable stack is never popped: each function begins with
// an empty Locals slice, but the variable/typedef/tag scope keeps
// accumulating across the whole file, including leftover parameter
// bindings from earlier functions.
func (p *Parser) parseFunction() {
	p.basetype() // return type; this subset only ever returns int
	name := p.expectIdent()

	p.fn = &function{name: name}

	p.expect("(")
	first := true
	for !p.peek(")") {
		if !first {
			p.expect(",")
		}
		first = false

		ptype := p.basetype()
		pname := p.expectIdent()
		ptype = p.typeSuffix(ptype)
		p.addLocal(pname, ptype)
	}
	p.expect(")")

	params := append([]*ast.Variable(nil), p.fn.locals...)

	p.expect("{")
	var body []*ast.Node
	for !p.consume("}") {
		body = append(body, p.stmt())
	}

	p.prog.Functions = append(p.prog.Functions, &ast.Function{
		Name:   name,
		Params: params,
		Locals: p.fn.locals,
		Body:   body,
	})

	p.fn = nil
}

// parseGlobalVar parses one file-scope variable declaration. A basetype
// followed directly by ";" (such as a struct definition with no variable)
// declares no variable.
func (p *Parser) parseGlobalVar() {
	base := p.basetype()
	if p.consume(";") {
		return
	}
	name := p.expectIdent()
	t := p.typeSuffix(base)
	p.expect(";")
	p.addGlobal(name, t)
}

// basetype parses ("char" | "int" | struct-decl | typedef-name) "*"*.
func (p *Parser) basetype() *types.Type {
	var base *types.Type

	switch {
	case p.consume("char"):
		base = types.CharType()
	case p.consume("int"):
		base = types.IntType()
	case p.peek("struct"):
		base = p.structDecl()
	default:
		name, ok := p.consumeIdent()
		if !ok {
			p.fatalHere("expected a type")
		}
		t := p.lookupTypedef(name)
		if t == nil {
			p.fatalHere("unknown type name: %s", name)
		}
		base = t
	}

	for p.consume("*") {
		base = types.PointerTo(base)
	}
	return base
}

// structDecl parses "struct" ident? ("{" (basetype ident type-suffix ";")*
// "}")?. A named tag with a body both defines and registers the tag; a
// named tag without a body references a previously registered tag (fatal if
// unknown); an anonymous declaration defines a single nonce type that is
// never registered.
func (p *Parser) structDecl() *types.Type {
	tok := p.cur
	p.expect("struct")
	name, hasName := p.consumeIdent()

	if !p.peek("{") {
		if !hasName {
			p.fatalAt(tok, "expected a struct tag or body")
		}
		t := p.lookupTag(name)
		if t == nil {
			p.fatalAt(tok, "unknown struct tag: %s", name)
		}
		return t
	}

	p.expect("{")
	var members []*types.Member
	for !p.consume("}") {
		mbase := p.basetype()
		mname := p.expectIdent()
		mtype := p.typeSuffix(mbase)
		p.expect(";")
		members = append(members, &types.Member{Name: mname, Type: mtype})
	}
	t := types.NewStruct(members)

	if hasName {
		p.declareTag(name, t)
	}
	return t
}

// typeSuffix parses ("[" num "]")*, recursively, so that "int x[2][3]"
// builds Array(Array(int,3),2) — an array of 2 arrays of 3 ints.
func (p *Parser) typeSuffix(base *types.Type) *types.Type {
	if !p.consume("[") {
		return base
	}
	n := p.expectNumber()
	p.expect("]")
	inner := p.typeSuffix(base)
	return types.ArrayOf(inner, int(n))
}
