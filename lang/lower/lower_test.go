package lower

import (
	"strings"
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/marcsoda/lightc/lang/checker"
	"github.com/marcsoda/lightc/lang/hir"
	"github.com/marcsoda/lightc/lang/lexer"
	"github.com/marcsoda/lightc/lang/parser"
	"github.com/marcsoda/lightc/lang/symtable"
	"github.com/stretchr/testify/require"
)

func mustLower(t *testing.T, src string) *hir.Module {
	t.Helper()
	toks, err := lexer.New(src).Scan()
	require.NoError(t, err)
	symbols := symtable.New()
	prog, err := parser.New(toks, symbols).Parse()
	require.NoError(t, err)
	typed, err := checker.New(symbols).Check(prog)
	require.NoError(t, err)
	mod, err := New().Lower(typed)
	require.NoError(t, err)
	return mod
}

func containsOperator(s string, ops ...string) bool {
	for _, op := range ops {
		if strings.Contains(s, op) {
			return true
		}
	}
	return false
}

func TestLowerCompoundAssignExpands(t *testing.T) {
	mod := mustLower(t, `fn f() -> void {
		let x: int32 = 1
		x += 2
	}`)
	printed := mod.String()
	require.False(t, containsOperator(printed, "+="), "printed HIR must not contain a compound-assign operator: %s", printed)
	require.Contains(t, printed, "=")
}

func TestLowerIncrementExpands(t *testing.T) {
	mod := mustLower(t, `fn f() -> void {
		let x: int32 = 1
		++x
	}`)
	printed := mod.String()
	require.False(t, containsOperator(printed, "++", "--"), "printed HIR must not contain an increment/decrement operator: %s", printed)
}

func TestLowerHoistsStructMethod(t *testing.T) {
	mod := mustLower(t, `struct Point {
		x: int32,
		y: int32

		fn getX() -> int32 { 1 }
	}`)
	require.Len(t, mod.Fns, 1)
	fn := mod.Fns[0]
	require.Equal(t, "Point::getX", fn.Name)
	require.Len(t, fn.Args, 1)
	require.Equal(t, "self", fn.Args[0].Name)
}

func TestLowerCondSynthesizesElse(t *testing.T) {
	mod := mustLower(t, `fn f() -> void {
		if true { }
	}`)
	fn := mod.Fns[0]
	body := fn.Body.(*hir.Block)
	cond := body.List[0].(*hir.Cond)
	require.NotNil(t, cond.Else)
	elseBlock, ok := cond.Else.(*hir.Block)
	require.True(t, ok)
	require.Empty(t, elseBlock.List)
}

func TestLowerIntPowUnrolled(t *testing.T) {
	mod := mustLower(t, `fn f() -> int32 {
		2 ** 3
	}`)
	printed := mod.Fns[0].String()
	require.False(t, containsOperator(printed, "**"), "printed HIR must not contain a pow operator: %s", printed)
	require.Contains(t, printed, "*")
}

func TestLowerFloatPowCallsHelper(t *testing.T) {
	mod := mustLower(t, `fn f() -> double {
		let x: double = 2.0
		x ** 2.0
	}`)
	printed := mod.Fns[0].String()
	require.Contains(t, printed, "pow(")
}

func TestLowerPreservesDeclOrderWithHoistedMethods(t *testing.T) {
	mod := mustLower(t, `
		struct Point {
			x: int32

			fn getX() -> int32 { 1 }
		}
		fn main() -> void { }
	`)
	require.Len(t, mod.Fns, 2)
	require.Equal(t, "Point::getX", mod.Fns[0].Name)
	require.Equal(t, "main", mod.Fns[1].Name)
}

// TestLowerArithFnStringForm pins the exact printed form of a lowered
// function so a regression in hir.Node.String() shows up as a readable
// line-level diff rather than a wall of escaped text.
func TestLowerArithFnStringForm(t *testing.T) {
	mod := mustLower(t, `fn add(a: int32, b: int32) -> int32 { a + b }`)
	want := "fn add(a: int32, b: int32) -> int32 { (a + b) }"
	got := mod.Fns[0].String()
	if got != want {
		t.Fatalf("lowered HIR mismatch:\n%s", diff.Diff(want, got))
	}
}
