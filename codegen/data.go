package codegen

import (
	"strings"

	"github.com/samber/lo"

	"github.com/ninecc/minic/ast"
)

// genData emits the ".data" section: one label per global, holding either
// the raw bytes of a lifted string literal's initializer or
// ".zero N" reserved space for an uninitialized global. Initialized globals
// (lifted string literals) are emitted before zero-initialized ones, purely
// so the section reads with the "interesting" data up front.
func (g *Generator) genData(globals []*ast.Variable) {
	if len(globals) == 0 {
		return
	}

	initialized, zeroed := lo.FilterReject(globals, func(v *ast.Variable, _ int) bool {
		return v.Contents != nil
	})

	g.emitRaw(".data\n")
	for _, v := range append(initialized, zeroed...) {
		// Lifted string literals are named ".L.data.N", an assembler-local
		// symbol: it must not be exported, unlike a user-declared global.
		if !strings.HasPrefix(v.Name, ".L.") {
			g.emit(".global %s", v.Name)
		}
		g.emit("%s:", v.Name)
		if v.Contents != nil {
			g.emitBytes(v.Contents)
		} else {
			g.emit("  .zero %d", v.Type.Size)
		}
	}
}

// emitBytes emits an initialized global's contents as a run of ".byte"
// directives, one per source byte, which sidesteps any need to escape
// control characters or quotes for the assembler's string-literal syntax.
func (g *Generator) emitBytes(contents []byte) {
	for _, b := range contents {
		g.emit("  .byte %d", b)
	}
}
