package types

import "fmt"

// LitKind tags the variant of a Literal value.
type LitKind uint8

const (
	LitInt8 LitKind = iota
	LitInt16
	LitInt32
	LitInt64
	LitUInt8
	LitUInt16
	LitUInt32
	LitUInt64
	LitFloat
	LitDouble
	LitBool
	LitChar
	LitArray
)

// Literal is a type-tagged literal value. Integer literals come out of the
// parser as LitUInt64 (the widest unsigned representation) and are narrowed
// to their final kind exactly once, by the checker.
//
// ArrayElems and ArrayElemType are populated only when Kind == LitArray;
// ArrayElemType is nil until the checker has resolved the element type from
// its hint.
type Literal[Node any] struct {
	Kind LitKind

	Int   uint64
	Float float64
	Bool  bool
	Char  byte

	ArrayElems    []Node
	ArrayElemType *Type
}

// NewIntLiteral builds a literal of the given integer kind from a uint64
// value. The caller is responsible for ensuring v fits; use FitsInt to
// check first.
func NewIntLiteral[Node any](kind LitKind, v uint64) Literal[Node] {
	return Literal[Node]{Kind: kind, Int: v}
}

// NewFloatLiteral builds a Float or Double literal.
func NewFloatLiteral[Node any](kind LitKind, v float64) Literal[Node] {
	return Literal[Node]{Kind: kind, Float: v}
}

// NewBoolLiteral builds a Bool literal.
func NewBoolLiteral[Node any](v bool) Literal[Node] {
	return Literal[Node]{Kind: LitBool, Bool: v}
}

// NewCharLiteral builds a Char literal.
func NewCharLiteral[Node any](v byte) Literal[Node] {
	return Literal[Node]{Kind: LitChar, Char: v}
}

// NewArrayLiteral builds an Array literal. elemType is nil until the checker
// assigns it.
func NewArrayLiteral[Node any](elems []Node, elemType *Type) Literal[Node] {
	return Literal[Node]{Kind: LitArray, ArrayElems: elems, ArrayElemType: elemType}
}

// TypeOfKind returns the Type corresponding to a narrowed literal kind
// (meaningless for LitArray, whose type is computed by the caller since it
// needs the element type and length).
func TypeOfKind(k LitKind) Type {
	switch k {
	case LitInt8:
		return TInt8
	case LitInt16:
		return TInt16
	case LitInt32:
		return TInt32
	case LitInt64:
		return TInt64
	case LitUInt8:
		return TUInt8
	case LitUInt16:
		return TUInt16
	case LitUInt32:
		return TUInt32
	case LitUInt64:
		return TUInt64
	case LitFloat:
		return TFloat
	case LitDouble:
		return TDouble
	case LitBool:
		return TBool
	case LitChar:
		return TChar
	default:
		panic("types: TypeOfKind called with LitArray")
	}
}

// FitsInt reports whether the literal's unsigned value v (always
// non-negative, since the lexer never produces a signed literal) fits in
// the range of the given narrowed integer kind. Narrowing is implemented as
// "convert then convert back and compare", mirroring the Rust
// implementation's TryFrom-based narrowing: converting it to the target
// width and back to uint64 must reproduce it exactly. For the signed kinds,
// v must also be at most the kind's largest positive value, since a large v
// can wrap to a negative value and still round-trip.
func FitsInt(kind LitKind, v uint64) bool {
	switch kind {
	case LitInt8:
		return uint64(int8(v)) == v && v <= 0x7F
	case LitInt16:
		return uint64(int16(v)) == v && v <= 0x7FFF
	case LitInt32:
		return uint64(int32(v)) == v && v <= 0x7FFFFFFF
	case LitInt64:
		return v <= 0x7FFFFFFFFFFFFFFF
	case LitUInt8:
		return uint64(uint8(v)) == v
	case LitUInt16:
		return uint64(uint16(v)) == v
	case LitUInt32:
		return uint64(uint32(v)) == v
	case LitUInt64:
		return true
	default:
		return false
	}
}

func (l Literal[Node]) String() string {
	switch l.Kind {
	case LitInt8, LitInt16, LitInt32, LitInt64:
		return fmt.Sprintf("%d", int64(l.Int))
	case LitUInt8, LitUInt16, LitUInt32, LitUInt64:
		return fmt.Sprintf("%d", l.Int)
	case LitFloat, LitDouble:
		return fmt.Sprintf("%g", l.Float)
	case LitBool:
		return fmt.Sprintf("%t", l.Bool)
	case LitChar:
		return fmt.Sprintf("%q", rune(l.Char))
	case LitArray:
		return fmt.Sprintf("array[%d]", len(l.ArrayElems))
	default:
		return "<invalid literal>"
	}
}
