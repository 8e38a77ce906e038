// Package lower implements stage 5 of the compiler: transforming the typed
// AST into HIR. It expands compound assignment, increment/decrement and
// power expressions into their primitive forms, hoists struct methods into
// free functions, and canonicalizes conditionals so every branch has an
// explicit value.
package lower

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/marcsoda/lightc/lang/ast"
	"github.com/marcsoda/lightc/lang/hir"
	"github.com/marcsoda/lightc/lang/token"
	"github.com/marcsoda/lightc/lang/types"
)

// methodSep joins a struct name and method name in a hoisted function's
// name, e.g. "Point::sum".
const methodSep = "::"

// Lowerer holds no state beyond what's needed per call; exported as a type
// (rather than a bare function) to match the parser/checker stage shape
// and leave room for future per-run configuration.
type Lowerer struct{}

// New returns a Lowerer.
func New() *Lowerer { return &Lowerer{} }

// Lower transforms a checked Program into a Module, preserving declaration
// order except that a struct's hoisted methods immediately follow it.
func (lo *Lowerer) Lower(prog *ast.Program) (*hir.Module, error) {
	mod := &hir.Module{}
	for _, n := range prog.Nodes() {
		switch decl := n.(type) {
		case *ast.Fn:
			fn, err := lo.lowerFn(decl, "")
			if err != nil {
				return nil, err
			}
			mod.Fns = append(mod.Fns, fn)

		case *ast.Struct:
			methods, err := lo.lowerStruct(decl)
			if err != nil {
				return nil, err
			}
			mod.Fns = append(mod.Fns, methods...)

		default:
			return nil, fmt.Errorf("lower: unexpected top-level node %T", n)
		}
	}
	return mod, nil
}

// lowerStruct hoists each method into a free function named
// "<Struct>::<method>" with a synthetic leading `self` parameter. Methods
// are sorted by name using slices.SortFunc, so the hoisted order does not
// depend on the order the methods are declared in the struct body.
func (lo *Lowerer) lowerStruct(s *ast.Struct) ([]*hir.Fn, error) {
	methods := make([]*ast.Fn, len(s.Methods))
	for i, m := range s.Methods {
		methods[i] = m.(*ast.Fn)
	}
	slices.SortFunc(methods, func(a, b *ast.Fn) int {
		switch {
		case a.Proto.Name < b.Proto.Name:
			return -1
		case a.Proto.Name > b.Proto.Name:
			return 1
		default:
			return 0
		}
	})

	out := make([]*hir.Fn, len(methods))
	for i, m := range methods {
		fn, err := lo.lowerFn(m, s.Name)
		if err != nil {
			return nil, err
		}
		out[i] = fn
	}
	return out, nil
}

func (lo *Lowerer) lowerFn(fn *ast.Fn, structName string) (*hir.Fn, error) {
	name := fn.Proto.Name
	args := make([]hir.Arg, 0, len(fn.Proto.Args)+1)

	if structName != "" {
		name = structName + methodSep + fn.Proto.Name
		args = append(args, hir.Arg{Name: "self", Ty: types.NewComp(structName)})
	}
	for _, a := range fn.Proto.Args {
		args = append(args, hir.Arg{Name: a.Name, Ty: types.ResolveType(a.TyName)})
	}

	retTy := types.ResolveType(fn.Proto.RetTy)

	var body hir.Node
	if fn.Body != nil {
		lowered, err := lo.lowerNode(fn.Body)
		if err != nil {
			return nil, err
		}
		body = lowered
	}

	return &hir.Fn{Name: name, Args: args, RetTy: retTy, Body: body, IsExtern: fn.Proto.IsExtern}, nil
}

func (lo *Lowerer) lowerNode(n ast.Node) (hir.Node, error) {
	switch node := n.(type) {
	case *ast.Lit:
		return lo.lowerLit(node)
	case *ast.Ident:
		return hir.NewIdent(node.Name, *node.Type()), nil
	case *ast.BinOp:
		return lo.lowerBinOp(node)
	case *ast.UnOp:
		return lo.lowerUnOp(node)
	case *ast.Call:
		return lo.lowerCall(node)
	case *ast.Index:
		return lo.lowerIndex(node)
	case *ast.Cond:
		return lo.lowerCond(node)
	case *ast.Block:
		return lo.lowerBlock(node)
	case *ast.Let:
		return lo.lowerLet(node)
	case *ast.For:
		return lo.lowerFor(node)
	default:
		return nil, fmt.Errorf("lower: unrepresentable construct %T", n)
	}
}

func (lo *Lowerer) lowerLit(n *ast.Lit) (hir.Node, error) {
	if n.Value.Kind != types.LitArray {
		return hir.NewLit(castLiteral(n.Value), *n.Type()), nil
	}

	elems := make([]hir.Node, len(n.Value.ArrayElems))
	for i, e := range n.Value.ArrayElems {
		lowered, err := lo.lowerNode(e)
		if err != nil {
			return nil, err
		}
		elems[i] = lowered
	}
	lit := types.NewArrayLiteral[hir.Node](elems, n.Value.ArrayElemType)
	return hir.NewLit(lit, *n.Type()), nil
}

// castLiteral re-tags a types.Literal[ast.Node] as a types.Literal[hir.Node]
// for non-array literals, whose value fields carry no Node payload.
func castLiteral(v types.Literal[ast.Node]) types.Literal[hir.Node] {
	return types.Literal[hir.Node]{Kind: v.Kind, Int: v.Int, Float: v.Float, Bool: v.Bool, Char: v.Char}
}

func isCompoundAssign(op token.Kind) (token.Kind, bool) {
	switch op {
	case token.ADD_EQ:
		return token.ADD, true
	case token.SUB_EQ:
		return token.SUB, true
	case token.MUL_EQ:
		return token.MUL, true
	case token.DIV_EQ:
		return token.DIV, true
	default:
		return token.ILLEGAL, false
	}
}

func (lo *Lowerer) lowerBinOp(n *ast.BinOp) (hir.Node, error) {
	if plain, ok := isCompoundAssign(n.Op); ok {
		lhs, err := lo.lowerNode(n.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := lo.lowerNode(n.RHS)
		if err != nil {
			return nil, err
		}
		lhsAgain, err := lo.lowerNode(n.LHS)
		if err != nil {
			return nil, err
		}
		inner := hir.NewBinOp(plain, lhsAgain, rhs, lhs.Type())
		return hir.NewBinOp(token.ASSIGN, lhs, inner, types.TVoid), nil
	}

	if n.Op == token.POW {
		return lo.lowerPow(n)
	}

	lhs, err := lo.lowerNode(n.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := lo.lowerNode(n.RHS)
	if err != nil {
		return nil, err
	}
	return hir.NewBinOp(n.Op, lhs, rhs, *n.Type()), nil
}

// lowerPow expands `a ** b`: a call to a runtime helper (`powf32`/`pow`)
// when a is floating; when a is integer, a multiply chain unrolled at
// compile time if b is a literal, or a call to the runtime `ipow` helper
// otherwise.
func (lo *Lowerer) lowerPow(n *ast.BinOp) (hir.Node, error) {
	base, err := lo.lowerNode(n.LHS)
	if err != nil {
		return nil, err
	}

	if n.LHS.Type().IsFloat() {
		exp, err := lo.lowerNode(n.RHS)
		if err != nil {
			return nil, err
		}
		helper := "powf32"
		if n.LHS.Type().Kind() == types.Double {
			helper = "pow"
		}
		return hir.NewCall(helper, []hir.Node{base, exp}, *n.Type()), nil
	}

	lit, ok := n.RHS.(*ast.Lit)
	if !ok {
		exp, err := lo.lowerNode(n.RHS)
		if err != nil {
			return nil, err
		}
		return hir.NewCall("ipow", []hir.Node{base, exp}, *n.Type()), nil
	}

	exp := lit.Value.Int
	if exp == 0 {
		return hir.NewLit(types.NewIntLiteral[hir.Node](intLitKindOf(*n.Type()), 1), *n.Type()), nil
	}
	result := base
	for i := uint64(1); i < exp; i++ {
		rebased, err := lo.lowerNode(n.LHS)
		if err != nil {
			return nil, err
		}
		result = hir.NewBinOp(token.MUL, result, rebased, *n.Type())
	}
	return result, nil
}

// oneValue builds the literal "1" of numeric type t, for increment/decrement
// expansion.
func oneValue(t types.Type) hir.Node {
	if t.IsFloat() {
		kind := types.LitFloat
		if t.Kind() == types.Double {
			kind = types.LitDouble
		}
		return hir.NewLit(types.NewFloatLiteral[hir.Node](kind, 1), t)
	}
	return hir.NewLit(types.NewIntLiteral[hir.Node](intLitKindOf(t), 1), t)
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

func (lo *Lowerer) lowerUnOp(n *ast.UnOp) (hir.Node, error) {
	if n.Op == token.INC || n.Op == token.DEC {
		operand, err := lo.lowerNode(n.RHS)
		if err != nil {
			return nil, err
		}
		operandAgain, err := lo.lowerNode(n.RHS)
		if err != nil {
			return nil, err
		}
		op := token.ADD
		if n.Op == token.DEC {
			op = token.SUB
		}
		one := oneValue(operand.Type())
		inner := hir.NewBinOp(op, operandAgain, one, operand.Type())
		return hir.NewBinOp(token.ASSIGN, operand, inner, types.TVoid), nil
	}

	rhs, err := lo.lowerNode(n.RHS)
	if err != nil {
		return nil, err
	}
	return hir.NewUnOp(n.Op, rhs, *n.Type()), nil
}

func (lo *Lowerer) lowerCall(n *ast.Call) (hir.Node, error) {
	args := make([]hir.Node, len(n.Args))
	for i, a := range n.Args {
		lowered, err := lo.lowerNode(a)
		if err != nil {
			return nil, err
		}
		args[i] = lowered
	}
	return hir.NewCall(n.Name, args, *n.Type()), nil
}

func (lo *Lowerer) lowerIndex(n *ast.Index) (hir.Node, error) {
	binding, err := lo.lowerNode(n.Binding)
	if err != nil {
		return nil, err
	}
	idx, err := lo.lowerNode(n.Idx)
	if err != nil {
		return nil, err
	}
	return hir.NewIndex(binding, idx, *n.Type()), nil
}

// lowerCond canonicalizes conditionals: an absent `else` becomes an empty
// Void block, so the backend never sees a one-armed conditional.
func (lo *Lowerer) lowerCond(n *ast.Cond) (hir.Node, error) {
	cond, err := lo.lowerNode(n.CondExpr)
	if err != nil {
		return nil, err
	}
	then, err := lo.lowerNode(n.Then)
	if err != nil {
		return nil, err
	}

	var els hir.Node
	if n.Else != nil {
		els, err = lo.lowerNode(n.Else)
		if err != nil {
			return nil, err
		}
	} else {
		els = hir.NewBlock(nil, types.TVoid)
	}

	return hir.NewCond(cond, then, els, *n.Type()), nil
}

func (lo *Lowerer) lowerBlock(n *ast.Block) (hir.Node, error) {
	list := make([]hir.Node, len(n.List))
	for i, stmt := range n.List {
		lowered, err := lo.lowerNode(stmt)
		if err != nil {
			return nil, err
		}
		list[i] = lowered
	}
	return hir.NewBlock(list, *n.Type()), nil
}

func (lo *Lowerer) lowerLet(n *ast.Let) (hir.Node, error) {
	init, err := lo.lowerNode(n.Init)
	if err != nil {
		return nil, err
	}
	return hir.NewLet(n.Name, init, n.Antn), nil
}

func (lo *Lowerer) lowerFor(n *ast.For) (hir.Node, error) {
	startInit, err := lo.lowerNode(n.StartInit)
	if err != nil {
		return nil, err
	}
	cond, err := lo.lowerNode(n.Cond)
	if err != nil {
		return nil, err
	}
	step, err := lo.lowerNode(n.Step)
	if err != nil {
		return nil, err
	}
	body, err := lo.lowerNode(n.Body)
	if err != nil {
		return nil, err
	}
	return hir.NewFor(n.StartName, startInit, cond, step, body), nil
}
