package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninecc/minic/ast"
	"github.com/ninecc/minic/diag"
	"github.com/ninecc/minic/lexer"
	"github.com/ninecc/minic/types"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	s := &diag.Source{Name: "test.c", Text: src}
	toks := lexer.New(s).Tokenize()
	return New(s, toks).Parse()
}

func TestSingleFunctionReturningConstant(t *testing.T) {
	prog := parse(t, "int main(){ return 42; }")
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "main", fn.Name)
	require.Len(t, fn.Body, 1)
	assert.Equal(t, ast.Return, fn.Body[0].Kind)
	assert.Equal(t, int64(42), fn.Body[0].LHS.Num)
}

func TestLocalDeclarationWithInitializer(t *testing.T) {
	prog := parse(t, "int main(){ int a=3; return a; }")
	fn := prog.Functions[0]
	require.Len(t, fn.Locals, 1)
	assert.Equal(t, "a", fn.Locals[0].Name)
	assert.Same(t, types.IntType(), fn.Locals[0].Type)

	require.Len(t, fn.Body, 2)
	assert.Equal(t, ast.ExprStmt, fn.Body[0].Kind)
	assert.Equal(t, ast.Assign, fn.Body[0].LHS.Kind)
}

func TestGlobalVsFunctionClassification(t *testing.T) {
	prog := parse(t, "int g; int main(){ return g; }")
	require.Len(t, prog.Globals, 1)
	require.Len(t, prog.Functions, 1)
	assert.Equal(t, "g", prog.Globals[0].Name)
}

func TestFunctionCallAndParams(t *testing.T) {
	prog := parse(t, "int add(int x,int y){ return x+y; } int main(){ return add(3,4); }")
	require.Len(t, prog.Functions, 2)
	add := prog.Functions[0]
	require.Len(t, add.Params, 2)
	assert.Equal(t, "x", add.Params[0].Name)
	assert.Equal(t, "y", add.Params[1].Name)

	main := prog.Functions[1]
	call := main.Body[0].LHS
	assert.Equal(t, ast.Call, call.Kind)
	assert.Equal(t, "add", call.FuncName)
	require.Len(t, call.Args, 2)
}

func TestPointerArithmeticCanonicalizesPointerToLHS(t *testing.T) {
	prog := parse(t, "int main(){ int a[3]; return *(1+a); }")
	fn := prog.Functions[0]
	ret := fn.Body[1]
	deref := ret.LHS
	require.Equal(t, ast.Deref, deref.Kind)
	require.Equal(t, ast.PtrAdd, deref.LHS.Kind)
	// "1 + a" must be canonicalized so the array/pointer ends up on LHS.
	assert.Equal(t, ast.Var, deref.LHS.LHS.Kind)
	assert.Equal(t, ast.Num, deref.LHS.RHS.Kind)
}

func TestPointerDifference(t *testing.T) {
	prog := parse(t, "int main(){ int a[3]; int *p; int *q; p=a; q=a+2; return q-p; }")
	fn := prog.Functions[0]
	last := fn.Body[len(fn.Body)-1]
	assert.Equal(t, ast.PtrDiff, last.LHS.Kind)
	assert.Same(t, types.IntType(), last.LHS.Type)
}

func TestArraySubscriptRewritesToDerefOfAdd(t *testing.T) {
	prog := parse(t, "int main(){ int a[3]; return a[1]; }")
	fn := prog.Functions[0]
	e := fn.Body[1].LHS
	assert.Equal(t, ast.Deref, e.Kind)
	assert.Equal(t, ast.PtrAdd, e.LHS.Kind)
}

func TestStructMemberAccessAndArrow(t *testing.T) {
	prog := parse(t, `
struct P { int x; char y; };
int main(){
  struct P p;
  struct P *q;
  q = &p;
  p.x = 10;
  return q->x;
}`)
	fn := prog.Functions[0]
	last := fn.Body[len(fn.Body)-1]
	assert.Equal(t, ast.Member, last.LHS.Kind)
	assert.Equal(t, "x", last.LHS.Mem.Name)
	// `q->x` rewrites to `(*q).x`: member's base must be a Deref.
	assert.Equal(t, ast.Deref, last.LHS.LHS.Kind)
}

func TestSizeofSizeofIsEight(t *testing.T) {
	prog := parse(t, "int main(){ int x; return sizeof(sizeof(x)); }")
	fn := prog.Functions[0]
	ret := fn.Body[1]
	assert.Equal(t, ast.Num, ret.LHS.Kind)
	assert.Equal(t, int64(8), ret.LHS.Num)
}

func TestStringLiteralLiftedToAnonymousGlobal(t *testing.T) {
	prog := parse(t, `int main(){ char *s="abc"; return s[1]; }`)
	require.Len(t, prog.Globals, 1)
	g := prog.Globals[0]
	assert.Equal(t, ".L.data.0", g.Name)
	assert.Equal(t, []byte("abc\x00"), g.Contents)
	assert.True(t, types.IsArray(g.Type))
}

func TestTypedefRegistersTypeName(t *testing.T) {
	prog := parse(t, "int main(){ typedef int myint; myint x; x=5; return x; }")
	fn := prog.Functions[0]
	require.Len(t, fn.Locals, 1)
	assert.Same(t, types.IntType(), fn.Locals[0].Type)
}

func TestBlockScopeShadowsButDoesNotLeak(t *testing.T) {
	prog := parse(t, "int main(){ int a=1; { int a; a=2; } return a; }")
	fn := prog.Functions[0]
	// Both "a"s become distinct Locals in the flat Locals list.
	count := 0
	for _, l := range fn.Locals {
		if l.Name == "a" {
			count++
		}
	}
	assert.Equal(t, 2, count)

	ret := fn.Body[len(fn.Body)-1]
	// The final `return a` must resolve to the outer `a` (the first one
	// declared), since the inner block's scope was popped.
	assert.Same(t, fn.Locals[0], ret.LHS.Variable)
}

func TestForLoopAllClausesOptional(t *testing.T) {
	prog := parse(t, "int main(){ int i; int s=0; for(i=0;i<10;i=i+1) s=s+i; return s; }")
	fn := prog.Functions[0]
	var forNode *ast.Node
	for _, n := range fn.Body {
		if n.Kind == ast.For {
			forNode = n
		}
	}
	require.NotNil(t, forNode)
	assert.NotNil(t, forNode.Init)
	assert.NotNil(t, forNode.Cond)
	assert.NotNil(t, forNode.Updt)

	prog2 := parse(t, "int main(){ for(;;) return 0; }")
	var forNode2 *ast.Node
	for _, n := range prog2.Functions[0].Body {
		if n.Kind == ast.For {
			forNode2 = n
		}
	}
	require.NotNil(t, forNode2)
	assert.Nil(t, forNode2.Init)
	assert.Nil(t, forNode2.Cond)
	assert.Nil(t, forNode2.Updt)
}

func TestIfWithoutElse(t *testing.T) {
	prog := parse(t, "int main(){ if (1) return 1; return 0; }")
	fn := prog.Functions[0]
	assert.Equal(t, ast.If, fn.Body[0].Kind)
	assert.Nil(t, fn.Body[0].Alt)
}

func TestGreaterThanDesugarsWithSwappedOperands(t *testing.T) {
	prog := parse(t, "int main(){ return 1 > 2; }")
	ret := prog.Functions[0].Body[0]
	lt := ret.LHS
	assert.Equal(t, ast.Lt, lt.Kind)
	assert.Equal(t, int64(2), lt.LHS.Num)
	assert.Equal(t, int64(1), lt.RHS.Num)
}

func TestStatementExpressionValueIsLastExprStmt(t *testing.T) {
	prog := parse(t, "int main(){ return ({ int x=3; x+1; }); }")
	ret := prog.Functions[0].Body[0]
	se := ret.LHS
	require.Equal(t, ast.StmtExpr, se.Kind)
	last := se.Body[len(se.Body)-1]
	assert.Equal(t, ast.Add, last.Kind)
	assert.Same(t, types.IntType(), se.Type)
}

func TestEveryExpressionNodeIsTypedAfterParsing(t *testing.T) {
	prog := parse(t, `
struct P { int x; char y; };
int add(int a, int b){ return a+b; }
int main(){
  struct P p;
  int a[3];
  char *s = "hi";
  p.x = 1;
  a[0] = add(p.x, s[0]);
  return a[0];
}`)
	for _, fn := range prog.Functions {
		for _, stmt := range fn.Body {
			assertTyped(t, stmt)
		}
	}
}

func assertTyped(t *testing.T, n *ast.Node) {
	t.Helper()
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.If, ast.While, ast.For, ast.Return, ast.Block, ast.ExprStmt, ast.Null:
		// statement kinds carry no Type
	default:
		assert.NotNil(t, n.Type, "node kind %v has no type", n.Kind)
	}
	assertTyped(t, n.LHS)
	assertTyped(t, n.RHS)
	assertTyped(t, n.Cond)
	assertTyped(t, n.Cons)
	assertTyped(t, n.Alt)
	assertTyped(t, n.Init)
	assertTyped(t, n.Updt)
	for _, c := range n.Body {
		assertTyped(t, c)
	}
	for _, c := range n.Args {
		assertTyped(t, c)
	}
}
