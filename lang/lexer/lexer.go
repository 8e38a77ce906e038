// Package lexer implements stage 1 of the compiler: turning source text
// into a token sequence. It is restartable (a fresh Lexer per source
// string) and consumes whitespace and line comments silently.
package lexer

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/marcsoda/lightc/lang/token"
)

// The lexer's error taxonomy is flat, matching spec §4.1 and §7: a lexing
// failure aborts the stage immediately with one of these three sentinels,
// wrapped with a short detail via fmt.Errorf("%w: ...", sentinel).
var (
	ErrInvalidNum       = errors.New("InvalidNum")
	ErrUnknownChar      = errors.New("UnknownChar")
	ErrUnterminatedChar = errors.New("UnterminatedChar")
)

// TokenAndValue pairs a token's kind with its scanned value.
type TokenAndValue struct {
	Kind  token.Kind
	Value token.Value
}

// Lexer tokenizes a single source string. Use New then Scan.
type Lexer struct {
	src []byte
	off int  // byte offset of cur
	cur rune // current character, -1 at EOF
}

// New returns a Lexer ready to tokenize src.
func New(src string) *Lexer {
	l := &Lexer{src: []byte(src)}
	l.off = 0
	if len(l.src) == 0 {
		l.cur = -1
	} else {
		l.cur = rune(l.src[0])
	}
	return l
}

func (l *Lexer) peek() byte {
	if l.off+1 < len(l.src) {
		return l.src[l.off+1]
	}
	return 0
}

func (l *Lexer) advance() {
	l.off++
	if l.off >= len(l.src) {
		l.cur = -1
		return
	}
	l.cur = rune(l.src[l.off])
}

// Scan tokenizes the entire source and returns the resulting token
// sequence, including a trailing EOF token. The first lexing failure
// aborts and is returned as the error.
func (l *Lexer) Scan() ([]TokenAndValue, error) {
	var out []TokenAndValue
	for {
		tv, err := l.scanOne()
		if err != nil {
			return nil, err
		}
		out = append(out, tv)
		if tv.Kind == token.EOF {
			return out, nil
		}
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for isWhitespace(l.cur) {
			l.advance()
		}
		if l.cur == '/' && l.peek() == '/' {
			for l.cur != '\n' && l.cur != -1 {
				l.advance()
			}
			continue
		}
		return
	}
}

func (l *Lexer) scanOne() (TokenAndValue, error) {
	l.skipWhitespaceAndComments()

	switch {
	case l.cur == -1:
		return TokenAndValue{Kind: token.EOF, Value: token.Value{Kind: token.EOF}}, nil

	case isIdentStart(l.cur):
		return l.scanIdent()

	case isDigit(l.cur):
		return l.scanNumber()

	case l.cur == '\'':
		return l.scanChar()

	default:
		if k, ok := token.LookupPunct(byte(l.cur)); ok {
			lit := string(byte(l.cur))
			l.advance()
			return TokenAndValue{Kind: k, Value: token.Value{Kind: k, Raw: lit}}, nil
		}
		if tv, ok := l.scanOperator(); ok {
			return tv, nil
		}
		bad := l.cur
		l.advance()
		return TokenAndValue{}, fmt.Errorf("%w: unrecognized character %q", ErrUnknownChar, bad)
	}
}

func (l *Lexer) scanIdent() (TokenAndValue, error) {
	start := l.off
	for isIdentStart(l.cur) || isDigit(l.cur) {
		l.advance()
	}
	lit := string(l.src[start:l.off])
	k := token.LookupIdent(lit)
	v := token.Value{Kind: k, Raw: lit}
	if k == token.BOOL {
		v.Bool = lit == "true"
	}
	return TokenAndValue{Kind: k, Value: v}, nil
}

func (l *Lexer) scanNumber() (TokenAndValue, error) {
	start := l.off
	for isDigit(l.cur) {
		l.advance()
	}

	isFloat := false
	if l.cur == '.' && isDigit(rune(l.peek())) {
		isFloat = true
		l.advance() // consume '.'
		for isDigit(l.cur) {
			l.advance()
		}
	}

	// A letter or underscore directly abutting the number, with no
	// separating whitespace or operator, is malformed: e.g. `1b4`.
	if isIdentStart(l.cur) {
		for isIdentStart(l.cur) || isDigit(l.cur) || l.cur == '.' {
			l.advance()
		}
		return TokenAndValue{}, fmt.Errorf("%w: %q", ErrInvalidNum, string(l.src[start:l.off]))
	}

	lit := string(l.src[start:l.off])
	if isFloat {
		f, err := parseFloat(lit)
		if err != nil {
			return TokenAndValue{}, fmt.Errorf("%w: %q", ErrInvalidNum, lit)
		}
		return TokenAndValue{Kind: token.FLOAT, Value: token.Value{Kind: token.FLOAT, Raw: lit, Float: f}}, nil
	}

	v, err := parseUint(lit)
	if err != nil {
		return TokenAndValue{}, fmt.Errorf("%w: %q", ErrInvalidNum, lit)
	}
	return TokenAndValue{Kind: token.INT, Value: token.Value{Kind: token.INT, Raw: lit, Int: v}}, nil
}

func (l *Lexer) scanChar() (TokenAndValue, error) {
	start := l.off
	l.advance() // consume opening quote

	var b byte
	switch l.cur {
	case -1, '\'':
		return TokenAndValue{}, fmt.Errorf("%w: empty character literal", ErrUnterminatedChar)
	case '\\':
		l.advance()
		esc, ok := charEscape(l.cur)
		if !ok {
			return TokenAndValue{}, fmt.Errorf("%w: invalid escape %q", ErrUnterminatedChar, l.cur)
		}
		b = esc
		l.advance()
	default:
		b = byte(l.cur)
		l.advance()
	}

	if l.cur != '\'' {
		return TokenAndValue{}, fmt.Errorf("%w: %q", ErrUnterminatedChar, string(l.src[start:l.off]))
	}
	l.advance() // consume closing quote

	return TokenAndValue{Kind: token.CHAR, Value: token.Value{Kind: token.CHAR, Raw: string(l.src[start:l.off]), Char: b}}, nil
}

func charEscape(r rune) (byte, bool) {
	switch r {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '0':
		return 0, true
	default:
		return 0, false
	}
}

func (l *Lexer) scanOperator() (TokenAndValue, bool) {
	rest := l.src[l.off:]
	for _, op := range token.Operators() {
		if len(op.Lit) <= len(rest) && string(rest[:len(op.Lit)]) == op.Lit {
			for range op.Lit {
				l.advance()
			}
			return TokenAndValue{Kind: op.Kind, Value: token.Value{Kind: op.Kind, Raw: op.Lit}}, true
		}
	}
	return TokenAndValue{}, false
}

func isWhitespace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

func isIdentStart(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func parseUint(lit string) (uint64, error) {
	return strconv.ParseUint(lit, 10, 64)
}

func parseFloat(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}
