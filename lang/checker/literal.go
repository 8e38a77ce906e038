package checker

import (
	"fmt"

	"github.com/marcsoda/lightc/lang/ast"
	"github.com/marcsoda/lightc/lang/types"
)

// checkLit implements spec §4.4.1: integer literals arrive tagged
// LitUInt64, float literals LitDouble; both are narrowed exactly once here,
// against hint if present or a fixed default otherwise.
func (c *Checker) checkLit(n *ast.Lit, hint *types.Type) (ast.Node, error) {
	switch n.Value.Kind {
	case types.LitUInt64:
		return checkIntLit(n, hint)
	case types.LitDouble:
		return checkFloatLit(n, hint)
	case types.LitBool:
		out := ast.NewLit(n.Value, nil)
		out.SetType(types.TBool)
		return out, nil
	case types.LitChar:
		out := ast.NewLit(n.Value, nil)
		out.SetType(types.TChar)
		return out, nil
	case types.LitArray:
		return c.checkArrayLit(n, hint)
	default:
		return nil, fmt.Errorf("checker: unrecognized literal kind %v", n.Value.Kind)
	}
}

func checkIntLit(n *ast.Lit, hint *types.Type) (ast.Node, error) {
	if hint == nil {
		if !types.FitsInt(types.LitInt32, n.Value.Int) {
			return nil, fmt.Errorf("%w: %d does not fit in Int32", ErrOutOfRange, n.Value.Int)
		}
		out := ast.NewLit(types.NewIntLiteral[ast.Node](types.LitInt32, n.Value.Int), nil)
		out.SetType(types.TInt32)
		return out, nil
	}

	switch {
	case hint.IsInt():
		kind := intLitKindOf(*hint)
		if !types.FitsInt(kind, n.Value.Int) {
			return nil, fmt.Errorf("%w: %d does not fit in %s", ErrOutOfRange, n.Value.Int, hint)
		}
		out := ast.NewLit(types.NewIntLiteral[ast.Node](kind, n.Value.Int), nil)
		out.SetType(*hint)
		return out, nil

	case hint.IsFloat():
		kind := types.LitFloat
		if hint.Kind() == types.Double {
			kind = types.LitDouble
		}
		out := ast.NewLit(types.NewFloatLiteral[ast.Node](kind, float64(n.Value.Int)), nil)
		out.SetType(*hint)
		return out, nil

	default:
		return nil, fmt.Errorf("%w (%s)", ErrLiteralContext, hint)
	}
}

func checkFloatLit(n *ast.Lit, hint *types.Type) (ast.Node, error) {
	if hint == nil {
		out := ast.NewLit(types.NewFloatLiteral[ast.Node](types.LitFloat, n.Value.Float), nil)
		out.SetType(types.TFloat)
		return out, nil
	}

	if hint.IsInt() {
		return nil, ErrFloatIntoInt
	}
	if !hint.IsFloat() {
		return nil, fmt.Errorf("%w (%s)", ErrLiteralContext, hint)
	}

	kind := types.LitFloat
	if hint.Kind() == types.Double {
		kind = types.LitDouble
	}
	out := ast.NewLit(types.NewFloatLiteral[ast.Node](kind, n.Value.Float), nil)
	out.SetType(*hint)
	return out, nil
}

func (c *Checker) checkArrayLit(n *ast.Lit, hint *types.Type) (ast.Node, error) {
	if hint == nil || hint.Kind() != types.Array {
		return nil, ErrArrayNoHint
	}
	if len(n.Value.ArrayElems) > hint.Len {
		return nil, fmt.Errorf("%w: Array literal too big in assignment: `%d` > `%d`",
			ErrArrayTooLong, len(n.Value.ArrayElems), hint.Len)
	}

	elemTy := *hint.Elem
	elems := make([]ast.Node, len(n.Value.ArrayElems))
	for i, e := range n.Value.ArrayElems {
		checked, err := c.check(e, &elemTy)
		if err != nil {
			return nil, err
		}
		if !checked.Type().Equal(elemTy) {
			return nil, fmt.Errorf("%w: array element %d: expected %s, got %s", ErrTypeMismatch, i, elemTy, checked.Type())
		}
		elems[i] = checked
	}
	for i := len(elems); i < hint.Len; i++ {
		zero, err := zeroValue(elemTy)
		if err != nil {
			return nil, err
		}
		elems = append(elems, zero)
	}

	out := ast.NewLit(types.NewArrayLiteral[ast.Node](elems, &elemTy), nil)
	out.SetType(*hint)
	return out, nil
}
