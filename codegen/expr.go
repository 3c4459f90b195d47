package codegen

import (
	"github.com/ninecc/minic/ast"
	"github.com/ninecc/minic/types"
)

// genExpr evaluates n and leaves exactly one 8-byte value on the stack.
func (g *Generator) genExpr(n *ast.Node) {
	switch n.Kind {
	case ast.Num:
		g.emit("  push %d", n.Num)
		return

	case ast.Var, ast.Member:
		g.genAddr(n)
		if !types.IsArray(n.Type) {
			g.load(n.Type)
		}
		return

	case ast.Deref:
		g.genExpr(n.LHS)
		if !types.IsArray(n.Type) {
			g.load(n.Type)
		}
		return

	case ast.Addr:
		g.genAddr(n.LHS)
		return

	case ast.Assign:
		g.genAddr(n.LHS)
		g.genExpr(n.RHS)
		g.store(n.Type)
		return

	case ast.StmtExpr:
		for i, stmt := range n.Body {
			if i == len(n.Body)-1 {
				g.genExpr(stmt)
			} else {
				g.genStmt(stmt)
			}
		}
		return

	case ast.Call:
		g.genCall(n)
		return
	}

	// Every remaining kind is a binary operator: evaluate both operands,
	// pop them into rax/rdi, and dispatch on the operator.
	g.genExpr(n.LHS)
	g.genExpr(n.RHS)
	g.emit("  pop rdi")
	g.emit("  pop rax")

	switch n.Kind {
	case ast.Add:
		g.emit("  add rax, rdi")
	case ast.PtrAdd:
		g.emit("  imul rdi, %d", n.LHS.Type.Base.Size)
		g.emit("  add rax, rdi")
	case ast.Sub:
		g.emit("  sub rax, rdi")
	case ast.PtrSub:
		g.emit("  imul rdi, %d", n.LHS.Type.Base.Size)
		g.emit("  sub rax, rdi")
	case ast.PtrDiff:
		g.emit("  sub rax, rdi")
		g.emit("  cqo")
		g.emit("  mov rdi, %d", n.LHS.Type.Base.Size)
		g.emit("  idiv rdi")
	case ast.Mul:
		g.emit("  imul rax, rdi")
	case ast.Div:
		g.emit("  cqo")
		g.emit("  idiv rdi")
	case ast.Eq:
		g.emit("  cmp rax, rdi")
		g.emit("  sete al")
		g.emit("  movzx rax, al")
	case ast.Ne:
		g.emit("  cmp rax, rdi")
		g.emit("  setne al")
		g.emit("  movzx rax, al")
	case ast.Lt:
		g.emit("  cmp rax, rdi")
		g.emit("  setl al")
		g.emit("  movzx rax, al")
	case ast.Le:
		g.emit("  cmp rax, rdi")
		g.emit("  setle al")
		g.emit("  movzx rax, al")
	default:
		panic("codegen: unhandled expression kind")
	}

	g.emit("  push rax")
}

// load dereferences the address on top of the stack, sized by t, and
// replaces it with the loaded value. Every call site guards against t being
// an array: an array lvalue decays to its own address instead of being
// loaded, so load itself assumes a scalar and never checks.
func (g *Generator) load(t *types.Type) {
	g.emit("  pop rax")
	if t.Size == 1 {
		g.emit("  movsx rax, byte ptr [rax]")
	} else {
		g.emit("  mov rax, [rax]")
	}
	g.emit("  push rax")
}

// store pops a value and an address off the stack (value on top) and writes
// the value, sized by t, to that address, leaving the value back on the
// stack as the result of the assignment expression.
func (g *Generator) store(t *types.Type) {
	g.emit("  pop rdi")
	g.emit("  pop rax")
	if t.Size == 1 {
		g.emit("  mov [rax], dil")
	} else {
		g.emit("  mov [rax], rdi")
	}
	g.emit("  push rdi")
}

// genCall evaluates every argument left to right, pushing each onto the
// stack, then pops them off in reverse into the SysV argument registers so
// evaluation order matches source order while the registers end up loaded
// in calling-convention order. The stack is 16-byte aligned immediately
// before the call per the SysV ABI; rax is cleared to signal zero
// vector-register arguments to any variadic callee.
func (g *Generator) genCall(n *ast.Node) {
	for _, arg := range n.Args {
		g.genExpr(arg)
	}
	for i := len(n.Args) - 1; i >= 0; i-- {
		g.emit("  pop %s", argRegisters[i])
	}

	seq := g.nextLabel()
	g.emit("  mov rax, rsp")
	g.emit("  and rax, 15")
	g.emit("  jnz .L.call.%d", seq)
	g.emit("  mov rax, 0")
	g.emit("  call %s", n.FuncName)
	g.emit("  jmp .L.end.call.%d", seq)
	g.emit(".L.call.%d:", seq)
	g.emit("  sub rsp, 8")
	g.emit("  mov rax, 0")
	g.emit("  call %s", n.FuncName)
	g.emit("  add rsp, 8")
	g.emit(".L.end.call.%d:", seq)
	g.emit("  push rax")
}
