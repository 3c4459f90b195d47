// Package sema implements the compiler's single type-annotation walk:
// add_type assigns every expression node's Type, deriving it bottom-up from
// already-typed children. The parser applies it to every expression node
// as soon as that node is built, so every ExprStmt subtree is fully typed before
// codegen ever sees it (invariant: every expression node has a non-nil Type
// after parsing).
//
// Re-running AddType on an already-typed tree is a no-op: a node whose Type
// is already set is left untouched, and its children are never visited.
package sema

import (
	"github.com/samber/lo"

	"github.com/ninecc/minic/ast"
	"github.com/ninecc/minic/diag"
	"github.com/ninecc/minic/types"
)

// AddType walks node and its children, assigning Type to every node that
// doesn't already have one. src is used only to render a diagnostic if an
// invalid dereference is found. A nil node is a no-op.
func AddType(src *diag.Source, node *ast.Node) {
	if node == nil || node.Type != nil {
		return
	}

	singleChildren := lo.Filter(
		[]*ast.Node{node.LHS, node.RHS, node.Cond, node.Cons, node.Alt, node.Init, node.Updt},
		func(n *ast.Node, _ int) bool { return n != nil },
	)
	for _, n := range singleChildren {
		AddType(src, n)
	}
	for _, n := range node.Body {
		AddType(src, n)
	}
	for _, n := range node.Args {
		AddType(src, n)
	}

	switch node.Kind {
	case ast.Add, ast.Sub, ast.Mul, ast.Div,
		ast.Eq, ast.Ne, ast.Lt, ast.Le,
		ast.Call, ast.PtrDiff, ast.Num:
		node.Type = types.IntType()

	case ast.PtrAdd, ast.PtrSub, ast.Assign:
		node.Type = node.LHS.Type

	case ast.Var:
		node.Type = node.Variable.Type

	case ast.Member:
		node.Type = node.Mem.Type

	case ast.Addr:
		if types.IsArray(node.LHS.Type) {
			// Taking the address of an array decays to a pointer to
			// its element type, not a pointer to the array itself.
			node.Type = types.PointerTo(node.LHS.Type.Base)
		} else {
			node.Type = types.PointerTo(node.LHS.Type)
		}

	case ast.Deref:
		if !types.HasBase(node.LHS.Type) {
			diag.FatalAt(src, node.Tok.Offset, "invalid pointer dereference")
		}
		node.Type = node.LHS.Type.Base

	case ast.StmtExpr:
		last := node.Body[len(node.Body)-1]
		node.Type = last.Type

	default:
		// Statement kinds (If, While, For, Return, Block, ExprStmt,
		// Null) carry no value and are never consulted for Type.
	}
}
