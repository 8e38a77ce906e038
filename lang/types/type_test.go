package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveType(t *testing.T) {
	cases := []struct {
		name string
		want Type
	}{
		{"int8", TInt8},
		{"int32", TInt32},
		{"int", TInt32},
		{"uint32", TUInt32},
		{"uint", TUInt32},
		{"float", TFloat},
		{"double", TDouble},
		{"bool", TBool},
		{"char", TChar},
		{"void", TVoid},
		{"Foo", NewComp("Foo")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.True(t, ResolveType(c.name).Equal(c.want))
		})
	}
}

func TestTypeEqual(t *testing.T) {
	require.True(t, NewArray(TInt32, 3).Equal(NewArray(TInt32, 3)))
	require.False(t, NewArray(TInt32, 3).Equal(NewArray(TInt32, 4)))
	require.False(t, NewArray(TInt32, 3).Equal(NewArray(TInt64, 3)))
	require.True(t, NewComp("Point").Equal(NewComp("Point")))
	require.False(t, NewComp("Point").Equal(NewComp("Vec")))
	require.False(t, TInt32.Equal(TInt64))
}

func TestFitsInt(t *testing.T) {
	require.True(t, FitsInt(LitInt8, 127))
	require.False(t, FitsInt(LitInt8, 128))
	require.True(t, FitsInt(LitUInt8, 255))
	require.False(t, FitsInt(LitUInt8, 256))
	require.True(t, FitsInt(LitInt32, 1<<31-1))
	require.False(t, FitsInt(LitInt32, 1<<31))
	require.True(t, FitsInt(LitUInt64, 1<<63))
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "int32", TInt32.String())
	require.Equal(t, "array(int32, 3)", NewArray(TInt32, 3).String())
	require.Equal(t, "Point", NewComp("Point").String())
}
