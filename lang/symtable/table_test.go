package symtable

import (
	"testing"

	"github.com/marcsoda/lightc/lang/types"
	"github.com/stretchr/testify/require"
)

func TestInsertGetShadowing(t *testing.T) {
	tbl := New()
	tbl.InsertGlobal(NewVarSymbol("x", types.TInt32))

	require.Equal(t, types.TInt32, tbl.Get("x").Ty())

	tbl.EnterScope()
	tbl.Insert(NewVarSymbol("x", types.TBool))
	require.Equal(t, types.TBool, tbl.Get("x").Ty())

	tbl.LeaveScope()
	require.Equal(t, types.TInt32, tbl.Get("x").Ty())
}

func TestGetMissing(t *testing.T) {
	tbl := New()
	require.Nil(t, tbl.Get("nope"))
}

func TestDepthBalance(t *testing.T) {
	tbl := New()
	require.Equal(t, 1, tbl.Depth())
	tbl.EnterScope()
	tbl.EnterScope()
	require.Equal(t, 3, tbl.Depth())
	tbl.LeaveScope()
	tbl.LeaveScope()
	require.Equal(t, 1, tbl.Depth())
}

func TestLeaveGlobalPanics(t *testing.T) {
	tbl := New()
	require.Panics(t, func() { tbl.LeaveScope() })
}

func TestBuiltinTypesReserved(t *testing.T) {
	tbl := New()
	tbl.InstallBuiltinTypes(types.AsStrings())
	require.NotNil(t, tbl.GetType("int32"))
	require.Nil(t, tbl.Get("int32")) // not a value name
}

func TestFnSymbolAccessors(t *testing.T) {
	sym := NewFnSymbol("add", []Arg{{Name: "a", TyName: "int32"}, {Name: "b", TyName: "int32"}}, "int32", false)
	require.Equal(t, []string{"int32", "int32"}, sym.ArgTypeNames())
	require.Equal(t, "int32", sym.RetTyName())
	require.False(t, sym.IsExtern())
}
