// Package symtable implements the compiler's symbol table: a stack of
// lexical scopes shared by reference across the parser, checker and
// lowerer. It enforces no invariant beyond insertion/lookup; the scope
// discipline (when to enter/leave a scope) belongs to the callers.
package symtable

import "github.com/marcsoda/lightc/lang/types"

// typeKeyPrefix mangles a built-in type name so it cannot collide with a
// value (variable/function/struct) name of the same spelling in the global
// scope.
const typeKeyPrefix = "_type_"

// TypeSymbolKey returns the reserved symbol-table key for the built-in type
// named name.
func TypeSymbolKey(name string) string { return typeKeyPrefix + name }

// Arg is a (name, type-name) pair, as declared in source before type
// resolution. It is kept as strings because the annotation may name a
// struct that hasn't been parsed yet (forward reference).
type Arg struct {
	Name   string
	TyName string
}

// FnData describes a function symbol.
type FnData struct {
	Args     []Arg
	RetTy    string
	IsExtern bool
}

// VarData describes a variable symbol (let binding, for-loop induction
// variable, or function parameter).
type VarData struct {
	Ty types.Type
}

// StructData describes a struct symbol.
type StructData struct {
	Fields  []Arg
	Methods []string
}

// Kind tags which variant of associated data a Symbol carries.
type Kind uint8

const (
	KindFn Kind = iota
	KindVar
	KindStruct
	KindType
)

// Symbol is a (name, data) pair stored in the symbol table.
type Symbol struct {
	Name string
	Kind Kind

	Fn     FnData
	Var    VarData
	Struct StructData
}

// NewFnSymbol builds a Fn symbol.
func NewFnSymbol(name string, args []Arg, retTy string, isExtern bool) *Symbol {
	return &Symbol{Name: name, Kind: KindFn, Fn: FnData{Args: args, RetTy: retTy, IsExtern: isExtern}}
}

// NewVarSymbol builds a Var symbol.
func NewVarSymbol(name string, ty types.Type) *Symbol {
	return &Symbol{Name: name, Kind: KindVar, Var: VarData{Ty: ty}}
}

// NewStructSymbol builds a Struct symbol.
func NewStructSymbol(name string, fields []Arg, methods []string) *Symbol {
	return &Symbol{Name: name, Kind: KindStruct, Struct: StructData{Fields: fields, Methods: methods}}
}

// NewTypeSymbol builds the marker Symbol for a built-in type, stored under
// TypeSymbolKey(name) to avoid colliding with value names.
func NewTypeSymbol(name string) *Symbol {
	return &Symbol{Name: TypeSymbolKey(name), Kind: KindType}
}

// Ty returns the symbol's variable type. It panics if the symbol is not a
// Var; this is a programmer error (an internal invariant violation), not a
// recoverable compile error.
func (s *Symbol) Ty() types.Type {
	if s.Kind != KindVar {
		panic("symtable: expected symbol to be a variable")
	}
	return s.Var.Ty
}

// ArgTypeNames returns the declared argument type names of a Fn symbol. It
// panics if the symbol is not a Fn.
func (s *Symbol) ArgTypeNames() []string {
	if s.Kind != KindFn {
		panic("symtable: expected symbol to be a function")
	}
	out := make([]string, len(s.Fn.Args))
	for i, a := range s.Fn.Args {
		out[i] = a.TyName
	}
	return out
}

// RetTyName returns a Fn symbol's declared return type name. It panics if
// the symbol is not a Fn.
func (s *Symbol) RetTyName() string {
	if s.Kind != KindFn {
		panic("symtable: expected symbol to be a function")
	}
	return s.Fn.RetTy
}

// IsExtern reports whether a Fn symbol has no body. It panics if the symbol
// is not a Fn.
func (s *Symbol) IsExtern() bool {
	if s.Kind != KindFn {
		panic("symtable: expected symbol to be a function")
	}
	return s.Fn.IsExtern
}
