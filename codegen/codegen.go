// Package codegen walks a typed ast.Program and emits x86-64 assembly text,
// Intel syntax, in the AT&T-free style GNU as accepts with ".intel_syntax
// noprefix". Every expression leaves exactly one 8-byte value on the machine
// stack; every statement discards whatever its expression left there. There
// is no register allocator: the machine stack is the only spill space this
// compiler ever uses.
package codegen

import (
	"fmt"
	"strings"

	"github.com/ninecc/minic/ast"
	"github.com/ninecc/minic/types"
)

// argRegisters holds the SysV calling-convention registers, in order, used
// both to receive a callee's first six parameters and to load a caller's
// first six arguments before a call.
var argRegisters = []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// Generator holds the emitter's state for one Program: the output buffer,
// the label allocator, and the function currently being walked (for its
// return label and its locals' offsets).
type Generator struct {
	out *strings.Builder

	labelSeq int

	fn       *ast.Function
	retLabel string
}

// Generate assigns stack offsets to every function's locals, then emits a
// complete assembly-language translation unit for prog: a ".data" section
// for its globals, followed by a ".text" section with one label per
// function. debug, when true, inserts an "int3" breakpoint at the start of
// each function body.
func Generate(prog *ast.Program, debug bool) string {
	for _, fn := range prog.Functions {
		assignOffsets(fn)
	}

	g := &Generator{out: &strings.Builder{}}
	g.header()
	g.genData(prog.Globals)
	g.genText(prog.Functions, debug)
	return g.out.String()
}

// assignOffsets lays out fn's locals (which include its parameters) on the
// stack frame: each local is placed at align_to(offset, local.Type.Align) +
// local.Type.Size, growing downward from the frame base, and the frame's
// total size is that running offset rounded up to an 8-byte boundary. The
// frame itself only needs 8-byte alignment; the 16-byte alignment a call
// requires is restored dynamically at each call site in genCall.
func assignOffsets(fn *ast.Function) {
	offset := 0
	for _, v := range fn.Locals {
		offset = types.AlignTo(offset, v.Type.Align) + v.Type.Size
		v.Offset = offset
	}
	fn.StackSize = types.AlignTo(offset, 8)
}

func (g *Generator) emit(format string, args ...any) {
	fmt.Fprintf(g.out, format, args...)
	g.out.WriteByte('\n')
}

func (g *Generator) emitRaw(s string) {
	g.out.WriteString(s)
}

func (g *Generator) header() {
	g.emitRaw(".intel_syntax noprefix\n")
}

// nextLabel returns a fresh, process-unique numeric suffix for a branch
// label.
func (g *Generator) nextLabel() int {
	n := g.labelSeq
	g.labelSeq++
	return n
}
