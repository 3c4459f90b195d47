// Package ast defines the compiler's abstract syntax tree, plus the
// Variable, Function and Program records the parser builds around it.
//
// Node is a single tagged record used for both statements and expressions;
// unused fields for a given Kind are simply left zero. Var nodes, Member
// nodes and a Node's Tok are all "points into a longer-lived collection":
// they borrow from Function.Locals/Program.Globals, a Struct type's member
// list, and the token stream respectively. None of these are owned by the
// Node itself, and there are no true reference cycles in the tree.
package ast

import (
	"github.com/ninecc/minic/token"
	"github.com/ninecc/minic/types"
)

// Kind tags what a Node represents.
type Kind int

// The node kinds this compiler's AST carries.
const (
	Add Kind = iota
	Sub
	Mul
	Div
	PtrAdd  // ptr + int, canonicalized with the pointer operand as LHS
	PtrSub  // ptr - int
	PtrDiff // ptr - ptr, result is an element count
	Eq
	Ne
	Lt
	Le
	Addr
	Deref
	Member
	Assign
	If
	While
	For
	Return
	Block
	ExprStmt
	StmtExpr
	Null
	Num
	Var
	Call
)

// Node is the compiler's single AST record, shared across statement and
// expression kinds.
type Node struct {
	Kind Kind
	Tok  *token.Token // representative token, for diagnostics
	Type *types.Type  // filled in by sema.AddType; nil until then

	LHS, RHS *Node

	// If/While/For
	Cond, Cons, Alt *Node // cons is If/While/For's body; Alt is If's else
	Init, Updt      *Node // For's init/update clauses, both optional

	// Block and StmtExpr
	Body []*Node

	// Call
	FuncName string
	Args     []*Node

	// Var
	Variable *Variable

	// Num
	Num int64

	// Member access (a.m)
	Mem *types.Member
}

// Variable is a named storage location: a function-local (with a stack
// offset assigned post-parse) or a file-scope global (possibly anonymous,
// such as a lifted string literal, and possibly carrying an initializer).
type Variable struct {
	Name    string
	Type    *types.Type
	IsLocal bool
	Offset  int // valid once the driver has assigned local offsets

	// Contents is the initializer for a global (e.g. the decoded bytes
	// of a lifted string literal); ContLen is its length including any
	// trailing zero byte. Locals never carry initializer contents.
	Contents []byte
	ContLen  int
}

// Function is one parsed function definition.
type Function struct {
	Name      string
	Params    []*Variable
	Locals    []*Variable
	Body      []*Node
	StackSize int // align_to(sum of local sizes, 8), assigned by the driver
}

// Program is the parser's top-level output: every file-scope variable and
// lifted string-literal global, plus every function definition, in the
// order they were declared.
type Program struct {
	Globals   []*Variable
	Functions []*Function
}
