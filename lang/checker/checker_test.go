package checker

import (
	"errors"
	"testing"

	"github.com/marcsoda/lightc/lang/ast"
	"github.com/marcsoda/lightc/lang/lexer"
	"github.com/marcsoda/lightc/lang/parser"
	"github.com/marcsoda/lightc/lang/symtable"
	"github.com/marcsoda/lightc/lang/types"
	"github.com/stretchr/testify/require"
)

func mustCheck(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.New(src).Scan()
	require.NoError(t, err)
	symbols := symtable.New()
	prog, err := parser.New(toks, symbols).Parse()
	require.NoError(t, err)
	typed, err := New(symbols).Check(prog)
	require.NoError(t, err)
	return typed
}

func checkErr(t *testing.T, src string) error {
	t.Helper()
	toks, err := lexer.New(src).Scan()
	require.NoError(t, err)
	symbols := symtable.New()
	prog, err := parser.New(toks, symbols).Parse()
	require.NoError(t, err)
	_, err = New(symbols).Check(prog)
	require.Error(t, err)
	return err
}

func TestCheckArithFn(t *testing.T) {
	src := `fn arith(x: int32, y: int32) -> int32 {
		let result: int32 = (x + y) * 4 / 4
		result
	}`
	typed := mustCheck(t, src)
	fn := typed.Nodes()[0].(*ast.Fn)
	body := fn.Body.(*ast.Block)
	require.True(t, body.Type().Equal(types.TInt32))

	let := body.List[0].(*ast.Let)
	require.True(t, let.Type().Equal(types.TInt32))
}

func TestCheckUnknownVariable(t *testing.T) {
	err := checkErr(t, `fn f() -> int32 { y }`)
	require.True(t, errors.Is(err, ErrUnknownVariable))
}

func TestCheckIllegalLHS(t *testing.T) {
	err := checkErr(t, `fn f() -> void { 1 = 2 }`)
	require.True(t, errors.Is(err, ErrIllegalLHS))
}

func TestCheckLiteralOutOfRange(t *testing.T) {
	err := checkErr(t, `fn f() -> void { let x: int8 = 200 }`)
	require.True(t, errors.Is(err, ErrOutOfRange))
}

func TestCheckLiteralContext(t *testing.T) {
	err := checkErr(t, `fn f() -> void { let x: bool = 3 }`)
	require.True(t, errors.Is(err, ErrLiteralContext))
}

func TestCheckBoolOperators(t *testing.T) {
	src := `fn f(a: bool, b: bool) -> bool { a && b }`
	typed := mustCheck(t, src)
	fn := typed.Nodes()[0].(*ast.Fn)
	require.True(t, fn.Body.Type().Equal(types.TBool))
}

func TestCheckComparisonRequiresNumericOrChar(t *testing.T) {
	err := checkErr(t, `fn f(a: bool, b: bool) -> bool { a < b }`)
	require.True(t, errors.Is(err, ErrOperatorIllegal))
}

func TestCheckCallArityMismatch(t *testing.T) {
	err := checkErr(t, `
		fn g(x: int32) -> int32 { x }
		fn f() -> int32 { g(1, 2) }
	`)
	require.True(t, errors.Is(err, ErrArityMismatch))
}

func TestCheckCondBranchMismatch(t *testing.T) {
	err := checkErr(t, `
		fn f(x: bool) -> int32 {
			if x { 1 } else { true }
		}
	`)
	require.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestCheckCondNotBool(t *testing.T) {
	err := checkErr(t, `fn f() -> int32 { if 1 { 2 } else { 3 } }`)
	require.True(t, errors.Is(err, ErrCondNotBool))
}

func TestCheckMainMustNotAnnotateReturn(t *testing.T) {
	err := checkErr(t, `fn main() -> int32 { 0 }`)
	require.True(t, errors.Is(err, ErrMainReturnNotVoid))
	require.Contains(t, err.Error(), "main()'s return value shouldn't be annotated. Found `int32`")
}

func TestCheckLetTypeMismatchMessage(t *testing.T) {
	err := checkErr(t, `fn main() -> void { let x: int32 = true }`)
	require.True(t, errors.Is(err, ErrTypeMismatch))
	require.Contains(t, err.Error(), "`x` annotated with `int32` but initial value is `bool`")
}

func TestCheckArrayLiteralTooBigMessage(t *testing.T) {
	err := checkErr(t, `fn main() -> void { let xs: array(int32, 3) = [1, 2, 3, 4] }`)
	require.True(t, errors.Is(err, ErrArrayTooLong))
	require.Contains(t, err.Error(), "Array literal too big in assignment: `4` > `3`")
}

func TestCheckMainVoidOK(t *testing.T) {
	typed := mustCheck(t, `fn main() -> void { let x: int32 = 1 }`)
	fn := typed.Nodes()[0].(*ast.Fn)
	require.Equal(t, "void", fn.Proto.RetTy)
}

func TestCheckForLoop(t *testing.T) {
	src := `fn f() -> void {
		for i: int32 = 0; i < 10; i += 1 {
			i
		}
	}`
	typed := mustCheck(t, src)
	fn := typed.Nodes()[0].(*ast.Fn)
	body := fn.Body.(*ast.Block)
	forNode := body.List[0].(*ast.For)
	require.True(t, forNode.Type().Equal(types.TVoid))
}

func TestCheckForStepPlainAssignOK(t *testing.T) {
	src := `fn f() -> void {
		for i: int32 = 0; i < 10; i = i + 1 {
			i
		}
	}`
	typed := mustCheck(t, src)
	fn := typed.Nodes()[0].(*ast.Fn)
	body := fn.Body.(*ast.Block)
	forNode := body.List[0].(*ast.For)
	require.True(t, forNode.Type().Equal(types.TVoid))
}

func TestCheckForStepTypeMismatchFails(t *testing.T) {
	src := `fn f() -> void {
		for i: int32 = 0; i < 10; true {
		}
	}`
	err := checkErr(t, src)
	require.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestCheckArrayLiteralNoHintFails(t *testing.T) {
	err := checkErr(t, `fn f() -> void { [1, 2, 3] }`)
	require.True(t, errors.Is(err, ErrArrayNoHint))
}

func TestCheckZeroValueDefaultForLet(t *testing.T) {
	typed := mustCheck(t, `fn f() -> void { let x: int32 }`)
	fn := typed.Nodes()[0].(*ast.Fn)
	body := fn.Body.(*ast.Block)
	let := body.List[0].(*ast.Let)
	lit := let.Init.(*ast.Lit)
	require.Equal(t, types.LitInt32, lit.Value.Kind)
	require.Equal(t, uint64(0), lit.Value.Int)
}

func TestCheckCompZeroInitIsTODO(t *testing.T) {
	src := `struct Point {
		x: int32,
		y: int32
	}
	fn f() -> void { let p: Point }`
	err := checkErr(t, src)
	require.True(t, errors.Is(err, ErrCompZeroInitUnsupported))
}

func TestCheckStructFieldsAndMethods(t *testing.T) {
	src := `struct Point {
		x: int32,
		y: int32

		fn sum() -> int32 {
			1
		}
	}`
	typed := mustCheck(t, src)
	st := typed.Nodes()[0].(*ast.Struct)
	require.Len(t, st.Fields, 2)
	require.Len(t, st.Methods, 1)
}

func TestCheckIndexIntoNonArray(t *testing.T) {
	src := `fn f() -> int32 {
		let xs: int32 = 5
		xs[0]
	}`
	err := checkErr(t, src)
	require.True(t, errors.Is(err, ErrIndexNotArray))
}
