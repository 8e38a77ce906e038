package token

// Value carries a scanned token's kind together with whatever literal
// payload it has. Integer literals are always held unsigned and widest
// (uint64) until narrowed by the type checker, per the narrowing design:
// the lexer never attempts to guess a width.
type Value struct {
	Kind Kind
	Raw  string // the exact source spelling, used in error messages

	Int   uint64
	Float float64
	Char  byte
	Bool  bool
}

func (v Value) String() string { return v.Raw }
