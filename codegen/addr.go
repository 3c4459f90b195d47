package codegen

import "github.com/ninecc/minic/ast"

// genAddr pushes the address of an lvalue node onto the stack. Var, Deref
// and Member are the only node kinds that can appear as an lvalue; any other
// kind reaching here is a bug in an earlier pass, not a user-facing error.
func (g *Generator) genAddr(n *ast.Node) {
	switch n.Kind {
	case ast.Var:
		if n.Variable.IsLocal {
			g.emit("  lea rax, [rbp-%d]", n.Variable.Offset)
		} else {
			g.emit("  lea rax, [rip+%s]", n.Variable.Name)
		}
		g.emit("  push rax")

	case ast.Deref:
		// The pointer value itself *is* the address: just evaluate it.
		g.genExpr(n.LHS)

	case ast.Member:
		g.genAddr(n.LHS)
		g.emit("  pop rax")
		g.emit("  add rax, %d", n.Mem.Offset)
		g.emit("  push rax")

	default:
		panic("codegen: not an lvalue")
	}
}
