package codegen

import "github.com/ninecc/minic/ast"

// genText emits the ".text" section: one global label and one prologue per
// function, its body, and an epilogue reached by every "return" via a
// per-function return label (mirroring the single-exit-point style the
// reference implementation's footer uses).
func (g *Generator) genText(functions []*ast.Function, debug bool) {
	if len(functions) == 0 {
		return
	}

	g.emitRaw(".text\n")
	for _, fn := range functions {
		g.genFunction(fn, debug)
	}
}

func (g *Generator) genFunction(fn *ast.Function, debug bool) {
	g.fn = fn
	g.retLabel = ".L.return." + fn.Name

	g.emit(".global %s", fn.Name)
	g.emit("%s:", fn.Name)

	// Prologue: save the caller's frame, reserve this function's frame.
	g.emit("  push rbp")
	g.emit("  mov rbp, rsp")
	g.emit("  sub rsp, %d", fn.StackSize)

	if debug {
		g.emit("  int3")
	}

	// Parameters arrive in registers; spill them to their stack slots so
	// the rest of the body can address them like any other local.
	for i, p := range fn.Params {
		if i >= len(argRegisters) {
			panic("codegen: more than 6 parameters is unsupported")
		}
		g.emit("  lea rax, [rbp-%d]", p.Offset)
		if p.Type.Size == 1 {
			g.emit("  mov [rax], %s", byteArg(argRegisters[i]))
		} else {
			g.emit("  mov [rax], %s", argRegisters[i])
		}
	}

	for _, stmt := range fn.Body {
		g.genStmt(stmt)
	}

	g.emit("%s:", g.retLabel)
	g.emit("  mov rsp, rbp")
	g.emit("  pop rbp")
	g.emit("  ret")

	g.fn = nil
}

// byteArg maps a 64-bit argument register name to its low 8-bit name, for
// spilling a char parameter with a byte-sized store.
func byteArg(reg64 string) string {
	switch reg64 {
	case "rdi":
		return "dil"
	case "rsi":
		return "sil"
	case "rdx":
		return "dl"
	case "rcx":
		return "cl"
	case "r8":
		return "r8b"
	case "r9":
		return "r9b"
	default:
		panic("codegen: unknown argument register " + reg64)
	}
}
