// stmt.go parses statements: control-flow forms, declarations, typedefs,
// blocks, and the bare expression-statement fallback.
package parser

import (
	"github.com/ninecc/minic/ast"
	"github.com/ninecc/minic/token"
)

func (p *Parser) stmt() *ast.Node {
	tok := p.cur

	switch {
	case p.consume("if"):
		p.expect("(")
		cond := p.expr()
		p.expect(")")
		cons := p.stmt()
		var alt *ast.Node
		if p.consume("else") {
			alt = p.stmt()
		}
		return &ast.Node{Kind: ast.If, Tok: tok, Cond: cond, Cons: cons, Alt: alt}

	case p.consume("while"):
		p.expect("(")
		cond := p.expr()
		p.expect(")")
		cons := p.stmt()
		return &ast.Node{Kind: ast.While, Tok: tok, Cond: cond, Cons: cons}

	case p.consume("for"):
		return p.forStmt(tok)

	case p.consume("return"):
		e := p.expr()
		p.expect(";")
		return &ast.Node{Kind: ast.Return, Tok: tok, LHS: e}

	case p.peek("{"):
		return p.block()

	case p.consume("typedef"):
		base := p.basetype()
		name := p.expectIdent()
		t := p.typeSuffix(base)
		p.expect(";")
		p.declareTypedef(name, t)
		return &ast.Node{Kind: ast.Null, Tok: tok}

	case p.startsDeclaration():
		return p.declaration()

	default:
		e := p.expr()
		p.expect(";")
		return &ast.Node{Kind: ast.ExprStmt, Tok: tok, LHS: e}
	}
}

func (p *Parser) forStmt(tok *token.Token) *ast.Node {
	p.expect("(")

	var init, cond, updt *ast.Node
	if !p.peek(";") {
		e := p.expr()
		init = &ast.Node{Kind: ast.ExprStmt, Tok: tok, LHS: e}
	}
	p.expect(";")

	if !p.peek(";") {
		cond = p.expr()
	}
	p.expect(";")

	if !p.peek(")") {
		e := p.expr()
		updt = &ast.Node{Kind: ast.ExprStmt, Tok: tok, LHS: e}
	}
	p.expect(")")

	cons := p.stmt()
	return &ast.Node{Kind: ast.For, Tok: tok, Init: init, Cond: cond, Updt: updt, Cons: cons}
}

// block parses "{" stmt* "}", with its own scope that shadows but does not
// disturb the enclosing scope.
func (p *Parser) block() *ast.Node {
	tok := p.cur
	p.expect("{")

	scope := p.enterBlock()
	var body []*ast.Node
	for !p.consume("}") {
		body = append(body, p.stmt())
	}
	p.leaveBlock(scope)

	return &ast.Node{Kind: ast.Block, Tok: tok, Body: body}
}

// startsDeclaration reports whether the upcoming tokens begin a basetype:
// a builtin keyword, a struct, or an identifier bound to a typedef. This
// disambiguates `declaration` from the bare `expr ";"` fallback without
// needing to rewind.
func (p *Parser) startsDeclaration() bool {
	if p.peek("int") || p.peek("char") || p.peek("struct") {
		return true
	}
	if p.cur.Kind == token.Identifier {
		return p.lookupTypedef(p.cur.Text) != nil
	}
	return false
}

// declaration parses basetype (ident type-suffix ("=" expr)?)? ";". A bare
// basetype with no identifier (e.g. a struct definition with no variable)
// produces a Null node, as does a declaration with no initializer.
func (p *Parser) declaration() *ast.Node {
	tok := p.cur
	base := p.basetype()

	name, ok := p.consumeIdent()
	if !ok {
		p.expect(";")
		return &ast.Node{Kind: ast.Null, Tok: tok}
	}

	vtype := p.typeSuffix(base)
	v := p.addLocal(name, vtype)

	if !p.consume("=") {
		p.expect(";")
		return &ast.Node{Kind: ast.Null, Tok: tok}
	}

	varNode := p.typed(&ast.Node{Kind: ast.Var, Tok: tok, Variable: v})
	rhs := p.expr()
	assign := p.typed(&ast.Node{Kind: ast.Assign, Tok: tok, LHS: varNode, RHS: rhs})
	p.expect(";")
	return &ast.Node{Kind: ast.ExprStmt, Tok: tok, LHS: assign}
}
