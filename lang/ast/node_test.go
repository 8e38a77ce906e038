package ast

import (
	"testing"

	"github.com/marcsoda/lightc/lang/token"
	"github.com/marcsoda/lightc/lang/types"
	"github.com/stretchr/testify/require"
)

func TestIsNumLiteral(t *testing.T) {
	intLit := NewLit(types.NewIntLiteral[Node](types.LitUInt64, 3), nil)
	boolLit := NewLit(types.NewBoolLiteral[Node](true), nil)
	ident := NewIdent("x", nil)

	require.True(t, IsNumLiteral(intLit))
	require.False(t, IsNumLiteral(boolLit))
	require.False(t, IsNumLiteral(ident))
}

func TestTypeRoundTrip(t *testing.T) {
	n := NewIdent("x", nil)
	require.Nil(t, n.Type())
	n.SetType(types.TInt32)
	require.NotNil(t, n.Type())
	require.True(t, n.Type().Equal(types.TInt32))
}

func TestBinOpString(t *testing.T) {
	lhs := NewIdent("x", nil)
	rhs := NewLit(types.NewIntLiteral[Node](types.LitInt32, 1), nil)
	n := NewBinOp(token.ADD, lhs, rhs, nil)
	require.Equal(t, "(x + 1)", n.String())
}

func TestProgramOrder(t *testing.T) {
	p := NewProgram()
	p.Add(NewIdent("a", nil))
	p.Add(NewIdent("b", nil))
	require.Len(t, p.Nodes(), 2)
	require.Equal(t, "a", p.Nodes()[0].(*Ident).Name)
	require.Equal(t, "b", p.Nodes()[1].(*Ident).Name)
}
