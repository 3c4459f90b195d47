// expr.go parses expressions: the precedence chain from assignment down to
// primary, pointer-arithmetic disambiguation, array subscripting, member
// access, sizeof, string-literal lifting, call arguments, and statement
// expressions.
package parser

import (
	"github.com/ninecc/minic/ast"
	"github.com/ninecc/minic/token"
	"github.com/ninecc/minic/types"
)

func (p *Parser) expr() *ast.Node {
	return p.assign()
}

// assign = equality ("=" assign)?
func (p *Parser) assign() *ast.Node {
	n := p.equality()
	if tok := p.cur; p.consume("=") {
		rhs := p.assign()
		n = p.typed(&ast.Node{Kind: ast.Assign, Tok: tok, LHS: n, RHS: rhs})
	}
	return n
}

// equality = relational (("=="|"!=") relational)*
func (p *Parser) equality() *ast.Node {
	n := p.relational()
	for {
		tok := p.cur
		switch {
		case p.consume("=="):
			n = p.typed(&ast.Node{Kind: ast.Eq, Tok: tok, LHS: n, RHS: p.relational()})
		case p.consume("!="):
			n = p.typed(&ast.Node{Kind: ast.Ne, Tok: tok, LHS: n, RHS: p.relational()})
		default:
			return n
		}
	}
}

// relational = add (("<"|"<="|">"|">=") add)*
//
// ">" and ">=" are desugared to "<"/"<=" with their operands swapped, so
// codegen never has to know about them.
func (p *Parser) relational() *ast.Node {
	n := p.add()
	for {
		tok := p.cur
		switch {
		case p.consume("<"):
			n = p.typed(&ast.Node{Kind: ast.Lt, Tok: tok, LHS: n, RHS: p.add()})
		case p.consume("<="):
			n = p.typed(&ast.Node{Kind: ast.Le, Tok: tok, LHS: n, RHS: p.add()})
		case p.consume(">"):
			rhs := p.add()
			n = p.typed(&ast.Node{Kind: ast.Lt, Tok: tok, LHS: rhs, RHS: n})
		case p.consume(">="):
			rhs := p.add()
			n = p.typed(&ast.Node{Kind: ast.Le, Tok: tok, LHS: rhs, RHS: n})
		default:
			return n
		}
	}
}

// add = mul (("+"|"-") mul)*
func (p *Parser) add() *ast.Node {
	n := p.mul()
	for {
		tok := p.cur
		switch {
		case p.consume("+"):
			n = p.newAdd(n, p.mul(), tok)
		case p.consume("-"):
			n = p.newSub(n, p.mul(), tok)
		default:
			return n
		}
	}
}

// newAdd disambiguates "+" by operand type: int+int is plain Add;
// ptr/array + int (either order) becomes PtrAdd with the pointer
// canonicalized to the LHS; ptr + ptr is invalid.
func (p *Parser) newAdd(lhs, rhs *ast.Node, tok *token.Token) *ast.Node {
	switch {
	case types.IsInteger(lhs.Type) && types.IsInteger(rhs.Type):
		return p.typed(&ast.Node{Kind: ast.Add, Tok: tok, LHS: lhs, RHS: rhs})
	case types.HasBase(lhs.Type) && types.IsInteger(rhs.Type):
		return p.typed(&ast.Node{Kind: ast.PtrAdd, Tok: tok, LHS: lhs, RHS: rhs})
	case types.IsInteger(lhs.Type) && types.HasBase(rhs.Type):
		return p.typed(&ast.Node{Kind: ast.PtrAdd, Tok: tok, LHS: rhs, RHS: lhs})
	default:
		p.fatalAt(tok, "invalid operands")
		panic("unreachable")
	}
}

// newSub disambiguates "-": int-int is plain Sub; ptr/array - int is
// PtrSub; ptr/array - ptr/array is PtrDiff (an element count, always Int);
// int - ptr is invalid.
func (p *Parser) newSub(lhs, rhs *ast.Node, tok *token.Token) *ast.Node {
	switch {
	case types.IsInteger(lhs.Type) && types.IsInteger(rhs.Type):
		return p.typed(&ast.Node{Kind: ast.Sub, Tok: tok, LHS: lhs, RHS: rhs})
	case types.HasBase(lhs.Type) && types.IsInteger(rhs.Type):
		return p.typed(&ast.Node{Kind: ast.PtrSub, Tok: tok, LHS: lhs, RHS: rhs})
	case types.HasBase(lhs.Type) && types.HasBase(rhs.Type):
		return p.typed(&ast.Node{Kind: ast.PtrDiff, Tok: tok, LHS: lhs, RHS: rhs})
	default:
		p.fatalAt(tok, "invalid operands")
		panic("unreachable")
	}
}

// mul = unary (("*"|"/") unary)*
func (p *Parser) mul() *ast.Node {
	n := p.unary()
	for {
		tok := p.cur
		switch {
		case p.consume("*"):
			n = p.typed(&ast.Node{Kind: ast.Mul, Tok: tok, LHS: n, RHS: p.unary()})
		case p.consume("/"):
			n = p.typed(&ast.Node{Kind: ast.Div, Tok: tok, LHS: n, RHS: p.unary()})
		default:
			return n
		}
	}
}

// unary = ("+"|"-"|"&"|"*"|"sizeof")? unary | postfix
func (p *Parser) unary() *ast.Node {
	tok := p.cur
	switch {
	case p.consume("+"):
		return p.unary()

	case p.consume("-"):
		// "-x" is "0 - x", routed through newSub so the usual
		// pointer-arithmetic rules still apply to it.
		zero := p.typed(&ast.Node{Kind: ast.Num, Tok: tok, Num: 0})
		return p.newSub(zero, p.unary(), tok)

	case p.consume("&"):
		lhs := p.unary()
		return p.typed(&ast.Node{Kind: ast.Addr, Tok: tok, LHS: lhs})

	case p.consume("*"):
		lhs := p.unary()
		return p.typed(&ast.Node{Kind: ast.Deref, Tok: tok, LHS: lhs})

	case p.consume("sizeof"):
		// The operand is fully parsed and typed, but never generates
		// code: only its type's size matters.
		operand := p.unary()
		return p.typed(&ast.Node{Kind: ast.Num, Tok: tok, Num: int64(operand.Type.Size)})

	default:
		return p.postfix()
	}
}

// postfix = primary ("[" expr "]" | "." ident | "->" ident)*
func (p *Parser) postfix() *ast.Node {
	n := p.primary()
	for {
		tok := p.cur
		switch {
		case p.consume("["):
			idx := p.expr()
			p.expect("]")
			addr := p.newAdd(n, idx, tok)
			n = p.typed(&ast.Node{Kind: ast.Deref, Tok: tok, LHS: addr})

		case p.consume("."):
			n = p.member(n, tok)

		case p.consume("->"):
			deref := p.typed(&ast.Node{Kind: ast.Deref, Tok: tok, LHS: n})
			n = p.member(deref, tok)

		default:
			return n
		}
	}
}

// member resolves "base.name" against base's struct type.
func (p *Parser) member(base *ast.Node, tok *token.Token) *ast.Node {
	if !types.IsStruct(base.Type) {
		p.fatalAt(tok, "not a struct")
	}
	name := p.expectIdent()
	m := base.Type.Member(name)
	if m == nil {
		p.fatalAt(tok, "no such member: %s", name)
	}
	return p.typed(&ast.Node{Kind: ast.Member, Tok: tok, LHS: base, Mem: m})
}

// primary = "(" ( "{" stmt-expr | expr ")" ) | ident ("(" args? ")")? | str | num
func (p *Parser) primary() *ast.Node {
	tok := p.cur

	if p.consume("(") {
		if p.consume("{") {
			return p.stmtExpr(tok)
		}
		n := p.expr()
		p.expect(")")
		return n
	}

	if name, ok := p.consumeIdent(); ok {
		if p.consume("(") {
			return p.call(name, tok)
		}
		v := p.lookupVar(name)
		if v == nil {
			p.fatalAt(tok, "undefined variable: %s", name)
		}
		return p.typed(&ast.Node{Kind: ast.Var, Tok: tok, Variable: v})
	}

	if p.cur.Kind == token.String {
		str := p.cur
		p.cur = p.cur.Next
		v := p.liftStringLiteral(str.Str)
		return p.typed(&ast.Node{Kind: ast.Var, Tok: tok, Variable: v})
	}

	val := p.expectNumber()
	return p.typed(&ast.Node{Kind: ast.Num, Tok: tok, Num: val})
}

// call parses the argument list of a function call already past its "(".
func (p *Parser) call(name string, tok *token.Token) *ast.Node {
	var args []*ast.Node
	first := true
	for !p.peek(")") {
		if !first {
			p.expect(",")
		}
		first = false
		args = append(args, p.expr())
	}
	p.expect(")")
	return p.typed(&ast.Node{Kind: ast.Call, Tok: tok, FuncName: name, Args: args})
}

// stmtExpr parses a GNU statement expression, "({ stmt+ })", already past
// its leading "(" "{". The last statement must be an ExprStmt; it's
// rewritten in place to expose its expression as the statement expression's
// value.
func (p *Parser) stmtExpr(tok *token.Token) *ast.Node {
	scope := p.enterBlock()
	var body []*ast.Node
	for !p.consume("}") {
		body = append(body, p.stmt())
	}
	p.leaveBlock(scope)
	p.expect(")")

	if len(body) == 0 {
		p.fatalAt(tok, "statement expression returning void")
	}
	last := body[len(body)-1]
	if last.Kind != ast.ExprStmt {
		p.fatalAt(tok, "statement expression returning void")
	}
	body[len(body)-1] = last.LHS

	return p.typed(&ast.Node{Kind: ast.StmtExpr, Tok: tok, Body: body})
}
