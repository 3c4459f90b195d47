package codegen

import "github.com/ninecc/minic/ast"

// genStmt executes one statement. Statements never leave a value on the
// stack; genExpr's callers are responsible for discarding whatever their
// expression produced.
func (g *Generator) genStmt(n *ast.Node) {
	switch n.Kind {
	case ast.Null:
		return

	case ast.ExprStmt:
		g.genExpr(n.LHS)
		g.emit("  add rsp, 8")

	case ast.Return:
		g.genExpr(n.LHS)
		g.emit("  pop rax")
		g.emit("  jmp %s", g.retLabel)

	case ast.Block:
		for _, s := range n.Body {
			g.genStmt(s)
		}

	case ast.If:
		seq := g.nextLabel()
		g.genExpr(n.Cond)
		g.emit("  pop rax")
		g.emit("  cmp rax, 0")
		if n.Alt != nil {
			g.emit("  je .L.else.%d", seq)
			g.genStmt(n.Cons)
			g.emit("  jmp .L.end.%d", seq)
			g.emit(".L.else.%d:", seq)
			g.genStmt(n.Alt)
			g.emit(".L.end.%d:", seq)
		} else {
			g.emit("  je .L.end.%d", seq)
			g.genStmt(n.Cons)
			g.emit(".L.end.%d:", seq)
		}

	case ast.While:
		seq := g.nextLabel()
		g.emit(".L.begin.%d:", seq)
		g.genExpr(n.Cond)
		g.emit("  pop rax")
		g.emit("  cmp rax, 0")
		g.emit("  je .L.end.%d", seq)
		g.genStmt(n.Cons)
		g.emit("  jmp .L.begin.%d", seq)
		g.emit(".L.end.%d:", seq)

	case ast.For:
		seq := g.nextLabel()
		if n.Init != nil {
			g.genStmt(n.Init)
		}
		g.emit(".L.begin.%d:", seq)
		if n.Cond != nil {
			g.genExpr(n.Cond)
			g.emit("  pop rax")
			g.emit("  cmp rax, 0")
			g.emit("  je .L.end.%d", seq)
		}
		g.genStmt(n.Cons)
		if n.Updt != nil {
			g.genStmt(n.Updt)
		}
		g.emit("  jmp .L.begin.%d", seq)
		g.emit(".L.end.%d:", seq)

	default:
		panic("codegen: unhandled statement kind")
	}
}
