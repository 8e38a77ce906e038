// Package checker implements stage 4 of the compiler: walking the untyped
// AST produced by lang/parser, rejecting ill-typed programs, and producing
// an AST in which every node carries a resolved type.
//
// The checker threads a single piece of context through its recursive
// descent: an optional type hint, set for a child and restored on return to
// its caller. This is bidirectional inference in the small, and it is
// passed as an ordinary function parameter rather than mutable visitor
// state, so every rule below reads as a single function of (node, hint).
package checker

import (
	"errors"
	"fmt"

	"github.com/marcsoda/lightc/lang/ast"
	"github.com/marcsoda/lightc/lang/symtable"
	"github.com/marcsoda/lightc/lang/token"
	"github.com/marcsoda/lightc/lang/types"
)

// The checker's error taxonomy is flat, matching spec §4.4/§7: each failure
// aborts the stage immediately with one of these sentinels, wrapped with a
// short detail via fmt.Errorf("%w: ...", sentinel).
var (
	ErrUnknownVariable   = errors.New("Unknown variable")
	ErrUnknownFunction   = errors.New("Unknown function")
	ErrIllegalLHS        = errors.New("Expected LHS to be a variable")
	ErrOutOfRange        = errors.New("Numeric literal out of range")
	ErrLiteralContext    = errors.New("Literal is an integer in a non-numeric context")
	ErrFloatIntoInt      = errors.New("Float literal cannot be used in an integer context")
	ErrTypeMismatch      = errors.New("Type mismatch")
	ErrArityMismatch     = errors.New("Argument count mismatch")
	ErrOperatorIllegal   = errors.New("Operator not legal for operand type")
	ErrCondNotBool       = errors.New("Condition must be Bool")
	ErrIndexNotArray     = errors.New("Indexed value is not an array")
	ErrArrayNoHint       = errors.New("Array literal requires a type hint")
	ErrArrayTooLong      = errors.New("Array literal has more elements than its hint's length")
	ErrMainReturnNotVoid = errors.New("main must not declare a non-void return type")
	ErrVoidVariable      = errors.New("variable cannot be declared Void")

	// ErrCompZeroInitUnsupported is returned wherever a Comp(_)-typed
	// variable would need a synthesized default value. The checker does
	// not resolve composite types against the symbol table yet (no
	// field-access AST node exists to build a field-by-field zero
	// value against), so per spec §9 this is a deliberate TODO rather
	// than a guessed-at implementation: a Comp(_) variable must always
	// be given an explicit initializer for now.
	ErrCompZeroInitUnsupported = errors.New("TODO: Comp(_) default initialization is not implemented; an explicit initializer is required")
)

// Checker walks a Program built by lang/parser and produces its typed
// counterpart, using symbols (already populated by the parser with every
// top-level fn/extern fn/struct declaration) for name resolution.
type Checker struct {
	symbols *symtable.Table
}

// New returns a Checker backed by symbols, installing the built-in
// primitive type markers into its global scope.
func New(symbols *symtable.Table) *Checker {
	symbols.InstallBuiltinTypes(types.AsStrings())
	return &Checker{symbols: symbols}
}

// Check type-checks every top-level declaration in prog and returns the
// typed program, or the first error encountered.
func (c *Checker) Check(prog *ast.Program) (*ast.Program, error) {
	out := ast.NewProgram()
	for _, n := range prog.Nodes() {
		typed, err := c.checkTop(n)
		if err != nil {
			return nil, err
		}
		out.Add(typed)
	}
	return out, nil
}

func (c *Checker) checkTop(n ast.Node) (ast.Node, error) {
	switch decl := n.(type) {
	case *ast.Fn:
		return c.checkFn(decl)
	case *ast.Struct:
		return c.checkStruct(decl)
	default:
		return nil, fmt.Errorf("checker: unexpected top-level node %T", n)
	}
}

// check dispatches on concrete node type, threading hint through the
// recursive descent. hint is nil when the caller has no expectation.
func (c *Checker) check(n ast.Node, hint *types.Type) (ast.Node, error) {
	switch node := n.(type) {
	case *ast.Lit:
		return c.checkLit(node, hint)
	case *ast.Ident:
		return c.checkIdent(node)
	case *ast.BinOp:
		return c.checkBinOp(node)
	case *ast.UnOp:
		return c.checkUnOp(node)
	case *ast.Call:
		return c.checkCall(node)
	case *ast.Index:
		return c.checkIndex(node)
	case *ast.Cond:
		return c.checkCond(node)
	case *ast.Block:
		return c.checkBlock(node)
	case *ast.Let:
		return c.checkLet(node)
	case *ast.For:
		return c.checkFor(node)
	default:
		return nil, fmt.Errorf("checker: unexpected node %T", n)
	}
}

func (c *Checker) checkIdent(n *ast.Ident) (ast.Node, error) {
	sym := c.symbols.Get(n.Name)
	if sym == nil || sym.Kind != symtable.KindVar {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, n.Name)
	}
	out := ast.NewIdent(n.Name, nil)
	out.SetType(sym.Ty())
	return out, nil
}

func (c *Checker) checkBinOp(n *ast.BinOp) (ast.Node, error) {
	if n.Op == token.ASSIGN || isCompoundAssign(n.Op) {
		if !isLvalue(n.LHS) {
			return nil, ErrIllegalLHS
		}
	}

	var lhs, rhs ast.Node
	var err error

	switch {
	case ast.IsNumLiteral(n.LHS) && !ast.IsNumLiteral(n.RHS):
		rhs, err = c.check(n.RHS, nil)
		if err != nil {
			return nil, err
		}
		rt := rhs.Type()
		lhs, err = c.check(n.LHS, rt)
		if err != nil {
			return nil, err
		}
	case ast.IsNumLiteral(n.RHS) && !ast.IsNumLiteral(n.LHS):
		lhs, err = c.check(n.LHS, nil)
		if err != nil {
			return nil, err
		}
		lt := lhs.Type()
		rhs, err = c.check(n.RHS, lt)
		if err != nil {
			return nil, err
		}
	default:
		lhs, err = c.check(n.LHS, nil)
		if err != nil {
			return nil, err
		}
		lt := lhs.Type()
		rhs, err = c.check(n.RHS, lt)
		if err != nil {
			return nil, err
		}
	}

	if !lhs.Type().Equal(*rhs.Type()) {
		return nil, fmt.Errorf("%w: %s vs %s", ErrTypeMismatch, lhs.Type(), rhs.Type())
	}
	lt := *lhs.Type()

	var resultTy types.Type
	switch n.Op {
	case token.AND, token.OR:
		if lt.Kind() != types.Bool {
			return nil, fmt.Errorf("%w: %s requires Bool operands", ErrOperatorIllegal, n.Op)
		}
		resultTy = types.TBool
	case token.EQ, token.NOT_EQ:
		if !lt.IsNumeric() && lt.Kind() != types.Bool && lt.Kind() != types.Char {
			return nil, fmt.Errorf("%w: %s requires numeric, Bool or Char operands", ErrOperatorIllegal, n.Op)
		}
		resultTy = types.TBool
	case token.LT, token.LT_EQ, token.GT, token.GT_EQ:
		if !lt.IsNumeric() && lt.Kind() != types.Char {
			return nil, fmt.Errorf("%w: %s requires numeric or Char operands", ErrOperatorIllegal, n.Op)
		}
		resultTy = types.TBool
	case token.ADD, token.SUB, token.MUL, token.DIV, token.POW, token.BIT_AND, token.BIT_OR, token.BIT_XOR:
		if !lt.IsNumeric() {
			return nil, fmt.Errorf("%w: %s requires numeric operands", ErrOperatorIllegal, n.Op)
		}
		resultTy = lt
	default:
		// '=' and compound-assign: fully expanded by the lowerer; Void here.
		resultTy = types.TVoid
	}

	out := ast.NewBinOp(n.Op, lhs, rhs, nil)
	out.SetType(resultTy)
	return out, nil
}

func isCompoundAssign(op token.Kind) bool {
	switch op {
	case token.ADD_EQ, token.SUB_EQ, token.MUL_EQ, token.DIV_EQ:
		return true
	default:
		return false
	}
}

func isLvalue(n ast.Node) bool {
	switch n.(type) {
	case *ast.Ident, *ast.Index:
		return true
	default:
		return false
	}
}

func (c *Checker) checkUnOp(n *ast.UnOp) (ast.Node, error) {
	rhs, err := c.check(n.RHS, nil)
	if err != nil {
		return nil, err
	}
	if !rhs.Type().IsNumeric() {
		return nil, fmt.Errorf("%w: unary %s requires a numeric operand", ErrOperatorIllegal, n.Op)
	}
	out := ast.NewUnOp(n.Op, rhs, nil)
	out.SetType(*rhs.Type())
	return out, nil
}

func (c *Checker) checkCall(n *ast.Call) (ast.Node, error) {
	sym := c.symbols.Get(n.Name)
	if sym == nil || sym.Kind != symtable.KindFn {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, n.Name)
	}
	if len(n.Args) != len(sym.Fn.Args) {
		return nil, fmt.Errorf("%w: Call to `%s()` takes %d args and %d were given",
			ErrArityMismatch, n.Name, len(sym.Fn.Args), len(n.Args))
	}

	args := make([]ast.Node, len(n.Args))
	for i, a := range n.Args {
		formalTy := types.ResolveType(sym.Fn.Args[i].TyName)
		checked, err := c.check(a, &formalTy)
		if err != nil {
			return nil, err
		}
		if !checked.Type().Equal(formalTy) {
			return nil, fmt.Errorf("%w: argument %d of %q: expected %s, got %s", ErrTypeMismatch, i, n.Name, formalTy, checked.Type())
		}
		args[i] = checked
	}

	retTy := types.ResolveType(sym.Fn.RetTy)
	out := ast.NewCall(n.Name, args, nil)
	out.SetType(retTy)
	return out, nil
}

func (c *Checker) checkIndex(n *ast.Index) (ast.Node, error) {
	binding, err := c.check(n.Binding, nil)
	if err != nil {
		return nil, err
	}
	if binding.Type().Kind() != types.Array {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotArray, binding.Type())
	}
	idxHint := types.TInt32
	idx, err := c.check(n.Idx, &idxHint)
	if err != nil {
		return nil, err
	}
	if !idx.Type().Equal(types.TInt32) {
		return nil, fmt.Errorf("%w: array index must be Int32, got %s", ErrTypeMismatch, idx.Type())
	}
	out := ast.NewIndex(binding, idx, nil)
	out.SetType(*binding.Type().Elem)
	return out, nil
}

func (c *Checker) checkCond(n *ast.Cond) (ast.Node, error) {
	cond, err := c.check(n.CondExpr, nil)
	if err != nil {
		return nil, err
	}
	if !cond.Type().Equal(types.TBool) {
		return nil, fmt.Errorf("%w: got %s", ErrCondNotBool, cond.Type())
	}

	then, err := c.check(n.Then, nil)
	if err != nil {
		return nil, err
	}

	if n.Else == nil {
		out := ast.NewCond(cond, then, nil, nil)
		out.SetType(*then.Type())
		return out, nil
	}

	thenTy := *then.Type()
	els, err := c.check(n.Else, &thenTy)
	if err != nil {
		return nil, err
	}
	if !then.Type().Equal(*els.Type()) {
		return nil, fmt.Errorf("%w: if/else branches: %s vs %s", ErrTypeMismatch, then.Type(), els.Type())
	}

	out := ast.NewCond(cond, then, els, nil)
	out.SetType(*then.Type())
	return out, nil
}

func (c *Checker) checkBlock(n *ast.Block) (ast.Node, error) {
	c.symbols.EnterScope()
	defer c.symbols.LeaveScope()

	list := make([]ast.Node, len(n.List))
	for i, stmt := range n.List {
		checked, err := c.check(stmt, nil)
		if err != nil {
			return nil, err
		}
		list[i] = checked
	}

	ty := types.TVoid
	if len(list) > 0 {
		ty = *list[len(list)-1].Type()
	}
	out := ast.NewBlock(list, nil)
	out.SetType(ty)
	return out, nil
}

func (c *Checker) checkLet(n *ast.Let) (ast.Node, error) {
	if n.Antn.Kind() == types.Void {
		return nil, ErrVoidVariable
	}

	var init ast.Node
	if n.Init != nil {
		checked, err := c.check(n.Init, &n.Antn)
		if err != nil {
			return nil, err
		}
		if !checked.Type().Equal(n.Antn) {
			return nil, fmt.Errorf("%w: Types don't match in let statement. `%s` annotated with `%s` but initial value is `%s`",
				ErrTypeMismatch, n.Name, n.Antn, checked.Type())
		}
		init = checked
	} else {
		zero, err := zeroValue(n.Antn)
		if err != nil {
			return nil, err
		}
		init = zero
	}

	c.symbols.Insert(symtable.NewVarSymbol(n.Name, n.Antn))

	out := ast.NewLet(n.Name, n.Antn, init)
	out.SetType(n.Antn)
	return out, nil
}

// zeroValue synthesizes a typed default-initialized literal for a `let` or
// `for` start variable with no explicit initializer. Comp(_) is refused per
// spec §9 (see ErrCompZeroInitUnsupported): do not guess.
func zeroValue(t types.Type) (ast.Node, error) {
	switch t.Kind() {
	case types.Bool:
		n := ast.NewLit(types.NewBoolLiteral[ast.Node](false), nil)
		n.SetType(types.TBool)
		return n, nil
	case types.Char:
		n := ast.NewLit(types.NewCharLiteral[ast.Node](0), nil)
		n.SetType(types.TChar)
		return n, nil
	case types.Float, types.Double:
		kind := types.LitFloat
		if t.Kind() == types.Double {
			kind = types.LitDouble
		}
		n := ast.NewLit(types.NewFloatLiteral[ast.Node](kind, 0), nil)
		n.SetType(t)
		return n, nil
	case types.Array:
		elems := make([]ast.Node, t.Len)
		for i := range elems {
			elem, err := zeroValue(*t.Elem)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		n := ast.NewLit(types.NewArrayLiteral[ast.Node](elems, t.Elem), nil)
		n.SetType(t)
		return n, nil
	case types.Comp:
		return nil, fmt.Errorf("%w: `%s` has no initializer", ErrCompZeroInitUnsupported, t)
	default:
		kind := intLitKindOf(t)
		n := ast.NewLit(types.NewIntLiteral[ast.Node](kind, 0), nil)
		n.SetType(t)
		return n, nil
	}
}

func intLitKindOf(t types.Type) types.LitKind {
	switch t.Kind() {
	case types.Int8:
		return types.LitInt8
	case types.Int16:
		return types.LitInt16
	case types.Int32:
		return types.LitInt32
	case types.Int64:
		return types.LitInt64
	case types.UInt8:
		return types.LitUInt8
	case types.UInt16:
		return types.LitUInt16
	case types.UInt32:
		return types.LitUInt32
	default:
		return types.LitUInt64
	}
}

func (c *Checker) checkFor(n *ast.For) (ast.Node, error) {
	c.symbols.EnterScope()
	defer c.symbols.LeaveScope()

	var startInit ast.Node
	if n.StartInit != nil {
		checked, err := c.check(n.StartInit, &n.StartAntn)
		if err != nil {
			return nil, err
		}
		if !checked.Type().Equal(n.StartAntn) {
			return nil, fmt.Errorf("%w: %q: declared %s, initializer is %s", ErrTypeMismatch, n.StartName, n.StartAntn, checked.Type())
		}
		startInit = checked
	} else {
		zero, err := zeroValue(n.StartAntn)
		if err != nil {
			return nil, err
		}
		startInit = zero
	}
	c.symbols.Insert(symtable.NewVarSymbol(n.StartName, n.StartAntn))

	cond, err := c.check(n.Cond, nil)
	if err != nil {
		return nil, err
	}
	if !cond.Type().Equal(types.TBool) {
		return nil, fmt.Errorf("%w: got %s", ErrCondNotBool, cond.Type())
	}

	step, err := c.check(n.Step, &n.StartAntn)
	if err != nil {
		return nil, err
	}
	// An assignment/compound-assignment step is always typed Void at this
	// stage (see checkBinOp), regardless of what it assigns. So the
	// step-matches-start-type check only applies when the step isn't
	// itself an assignment; see DESIGN.md for the full rationale.
	if bin, ok := step.(*ast.BinOp); !ok || (bin.Op != token.ASSIGN && !isCompoundAssign(bin.Op)) {
		if !step.Type().Equal(n.StartAntn) {
			return nil, fmt.Errorf("%w: for-loop step has type %s, start variable `%s` has type %s",
				ErrTypeMismatch, step.Type(), n.StartName, n.StartAntn)
		}
	}

	body, err := c.check(n.Body, nil)
	if err != nil {
		return nil, err
	}

	out := ast.NewFor(n.StartName, n.StartAntn, startInit, cond, step, body)
	out.SetType(types.TVoid)
	return out, nil
}

func (c *Checker) checkFn(n *ast.Fn) (ast.Node, error) {
	if n.Body == nil {
		return n, nil // extern: pass through unchanged
	}

	c.symbols.EnterScope()
	defer c.symbols.LeaveScope()

	for _, a := range n.Proto.Args {
		c.symbols.Insert(symtable.NewVarSymbol(a.Name, types.ResolveType(a.TyName)))
	}

	declaredRet := types.ResolveType(n.Proto.RetTy)
	if n.Proto.Name == "main" {
		if declaredRet.Kind() != types.Void {
			return nil, fmt.Errorf("%w: main()'s return value shouldn't be annotated. Found `%s`",
				ErrMainReturnNotVoid, declaredRet)
		}
		declaredRet = types.TVoid
	}

	body, err := c.check(n.Body, nil)
	if err != nil {
		return nil, err
	}

	if declaredRet.Kind() != types.Void && !body.Type().Equal(declaredRet) {
		return nil, fmt.Errorf("%w: %q: declared return %s, body is %s", ErrTypeMismatch, n.Proto.Name, declaredRet, body.Type())
	}

	proto := *n.Proto
	proto.RetTy = declaredRet.String()
	out := ast.NewFn(&proto, body)
	return out, nil
}

func (c *Checker) checkStruct(n *ast.Struct) (ast.Node, error) {
	c.symbols.EnterScope()
	fields := make([]ast.Node, len(n.Fields))
	for i, f := range n.Fields {
		checked, err := c.check(f, nil)
		if err != nil {
			c.symbols.LeaveScope()
			return nil, err
		}
		fields[i] = checked
	}
	c.symbols.LeaveScope()

	methods := make([]ast.Node, len(n.Methods))
	for i, m := range n.Methods {
		checked, err := c.checkFn(m.(*ast.Fn))
		if err != nil {
			return nil, err
		}
		methods[i] = checked
	}

	return ast.NewStruct(n.Name, fields, methods), nil
}
