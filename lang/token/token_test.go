package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	for k := Kind(0); k < maxKind; k++ {
		if k.String() == "" {
			t.Errorf("missing string representation of kind %d", k)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		lit  string
		want Kind
	}{
		{"fn", FN},
		{"let", LET},
		{"extern", EXTERN},
		{"if", IF},
		{"else", ELSE},
		{"for", FOR},
		{"struct", STRUCT},
		{"true", BOOL},
		{"false", BOOL},
		{"foo", IDENT},
		{"x", IDENT},
	}
	for _, c := range cases {
		t.Run(c.lit, func(t *testing.T) {
			require.Equal(t, c.want, LookupIdent(c.lit))
		})
	}
}

func TestLookupPunct(t *testing.T) {
	cases := []struct {
		b    byte
		want Kind
		ok   bool
	}{
		{'(', LPAREN, true},
		{')', RPAREN, true},
		{'{', LBRACE, true},
		{'}', RBRACE, true},
		{',', COMMA, true},
		{';', SEMI, true},
		{':', COLON, true},
		{'[', LBRACK, true},
		{']', RBRACK, true},
		{'@', ILLEGAL, false},
	}
	for _, c := range cases {
		k, ok := LookupPunct(c.b)
		require.Equal(t, c.ok, ok)
		if ok {
			require.Equal(t, c.want, k)
		}
	}
}

func TestOperatorsLongestFirst(t *testing.T) {
	ops := Operators()
	for i := 1; i < len(ops); i++ {
		if len(ops[i].Lit) > len(ops[i-1].Lit) {
			t.Errorf("operator %q (len %d) appears after shorter operator %q (len %d): not longest-match-first",
				ops[i].Lit, len(ops[i].Lit), ops[i-1].Lit, len(ops[i-1].Lit))
		}
	}
}
