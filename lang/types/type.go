// Package types defines the shared type algebra used across every stage of
// the compiler (parser, checker, lowerer) and the literal value
// representation attached to Lit nodes.
package types

import "fmt"

// Type is the tagged sum of every type the language can express: the
// primitive scalars, fixed-length homogeneous arrays, and nominal
// composites (structs) identified by name and resolved later against the
// symbol table.
type Type struct {
	kind Kind

	// Elem and Len are set only when kind == Array.
	Elem *Type
	Len  int

	// Name is set only when kind == Comp.
	Name string
}

// Kind is the tag of a Type.
type Kind uint8

const (
	Int8 Kind = iota
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float
	Double
	Bool
	Char
	Void
	Array
	Comp
)

var kindNames = [...]string{
	Int8: "int8", Int16: "int16", Int32: "int32", Int64: "int64",
	UInt8: "uint8", UInt16: "uint16", UInt32: "uint32", UInt64: "uint64",
	Float: "float", Double: "double", Bool: "bool", Char: "char", Void: "void",
	Array: "array", Comp: "comp",
}

// Kind returns the type's tag.
func (t Type) Kind() Kind { return t.kind }

// Prim constructs a primitive (non-Array, non-Comp) type from its kind.
func Prim(k Kind) Type { return Type{kind: k} }

// NewArray constructs an Array(elem, length) type.
func NewArray(elem Type, length int) Type {
	e := elem
	return Type{kind: Array, Elem: &e, Len: length}
}

// NewComp constructs a Comp(name) type.
func NewComp(name string) Type {
	return Type{kind: Comp, Name: name}
}

var (
	TInt8   = Prim(Int8)
	TInt16  = Prim(Int16)
	TInt32  = Prim(Int32)
	TInt64  = Prim(Int64)
	TUInt8  = Prim(UInt8)
	TUInt16 = Prim(UInt16)
	TUInt32 = Prim(UInt32)
	TUInt64 = Prim(UInt64)
	TFloat  = Prim(Float)
	TDouble = Prim(Double)
	TBool   = Prim(Bool)
	TChar   = Prim(Char)
	TVoid   = Prim(Void)
)

// Default is the type used where an annotation is absent: Void.
func Default() Type { return TVoid }

// ResolveType maps a source type-name string to a Type, per the fixed
// resolution rule: the primitive names plus the `int`/`uint` aliases
// resolve to their primitive; anything else resolves to Comp(name).
func ResolveType(name string) Type {
	switch name {
	case "int8":
		return TInt8
	case "int16":
		return TInt16
	case "int32", "int":
		return TInt32
	case "int64":
		return TInt64
	case "uint8":
		return TUInt8
	case "uint16":
		return TUInt16
	case "uint32", "uint":
		return TUInt32
	case "uint64":
		return TUInt64
	case "float":
		return TFloat
	case "double":
		return TDouble
	case "bool":
		return TBool
	case "char":
		return TChar
	case "void":
		return TVoid
	default:
		return NewComp(name)
	}
}

// IsNumeric reports whether t is one of the eight integer kinds or the two
// floating kinds.
func (t Type) IsNumeric() bool {
	switch t.kind {
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64, Float, Double:
		return true
	default:
		return false
	}
}

// IsInt reports whether t is one of the eight integer kinds.
func (t Type) IsInt() bool {
	switch t.kind {
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is Float or Double.
func (t Type) IsFloat() bool {
	return t.kind == Float || t.kind == Double
}

// Equal reports whether t and u denote the same type, recursively for Array
// and by name for Comp.
func (t Type) Equal(u Type) bool {
	if t.kind != u.kind {
		return false
	}
	switch t.kind {
	case Array:
		return t.Len == u.Len && t.Elem.Equal(*u.Elem)
	case Comp:
		return t.Name == u.Name
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.kind {
	case Comp:
		return t.Name
	case Array:
		return fmt.Sprintf("array(%s, %d)", t.Elem, t.Len)
	default:
		return kindNames[t.kind]
	}
}

// AsStrings returns the primitive type-name spellings accepted by
// ResolveType, for use in diagnostics and the symbol table's built-in type
// registration.
func AsStrings() []string {
	return []string{
		"int8", "int16", "int32", "int64",
		"uint8", "uint16", "uint32", "uint64",
		"float", "double", "bool", "char", "void",
	}
}
