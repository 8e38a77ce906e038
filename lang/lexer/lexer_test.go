package lexer

import (
	"errors"
	"testing"

	"github.com/marcsoda/lightc/lang/token"
	"github.com/stretchr/testify/require"
)

func kinds(toks []TokenAndValue) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanFull(t *testing.T) {
	input := `extern cos(x: double) -> double

fn arith(x: int32, y: int32) -> int32 {
    let result: int32 = (x + y) * 4 / 4
    a > b
    result
}
`
	toks, err := New(input).Scan()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.EXTERN, token.IDENT, token.LPAREN, token.IDENT, token.COLON, token.IDENT, token.RPAREN, token.ARROW, token.IDENT,
		token.FN, token.IDENT, token.LPAREN, token.IDENT, token.COLON, token.IDENT, token.COMMA, token.IDENT, token.COLON, token.IDENT, token.RPAREN, token.ARROW, token.IDENT, token.LBRACE,
		token.LET, token.IDENT, token.COLON, token.IDENT, token.ASSIGN, token.LPAREN, token.IDENT, token.ADD, token.IDENT, token.RPAREN, token.MUL, token.INT, token.DIV, token.INT,
		token.IDENT, token.GT, token.IDENT,
		token.IDENT,
		token.RBRACE,
		token.EOF,
	}, kinds(toks))
}

func TestScanInvalidNum(t *testing.T) {
	_, err := New("let foo = 1b4").Scan()
	require.True(t, errors.Is(err, ErrInvalidNum))
}

func TestScanLineComment(t *testing.T) {
	toks, err := New("// comment\nfoo").Scan()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.IDENT, token.EOF}, kinds(toks))
	require.Equal(t, "foo", toks[0].Value.Raw)
}

func TestScanTrailingComment(t *testing.T) {
	toks, err := New("let foo = 14\n// trailing").Scan()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.LET, token.IDENT, token.ASSIGN, token.INT, token.EOF}, kinds(toks))
}

func TestScanCharLiteral(t *testing.T) {
	toks, err := New(`'a' '\n' '\0'`).Scan()
	require.NoError(t, err)
	require.Equal(t, byte('a'), toks[0].Value.Char)
	require.Equal(t, byte('\n'), toks[1].Value.Char)
	require.Equal(t, byte(0), toks[2].Value.Char)
}

func TestScanUnterminatedChar(t *testing.T) {
	_, err := New(`'a`).Scan()
	require.True(t, errors.Is(err, ErrUnterminatedChar))
}

func TestScanUnknownChar(t *testing.T) {
	_, err := New("let x = @").Scan()
	require.True(t, errors.Is(err, ErrUnknownChar))
}

func TestScanFloat(t *testing.T) {
	toks, err := New("3.14").Scan()
	require.NoError(t, err)
	require.Equal(t, token.FLOAT, toks[0].Kind)
	require.InDelta(t, 3.14, toks[0].Value.Float, 1e-9)
}

func TestScanOperatorsLongestMatch(t *testing.T) {
	toks, err := New("+= ++ + ** *").Scan()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.ADD_EQ, token.INC, token.ADD, token.POW, token.MUL, token.EOF}, kinds(toks))
}

func TestScanBoolKeyword(t *testing.T) {
	toks, err := New("true false").Scan()
	require.NoError(t, err)
	require.True(t, toks[0].Value.Bool)
	require.False(t, toks[1].Value.Bool)
}
