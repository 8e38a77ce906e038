// Package ast defines the node algebra shared by the untyped and typed AST:
// every node optionally carries a resolved Type, populated by the checker.
//
// Passes over the tree (the checker, the lowerer) are written as a single
// exhaustive type switch over the concrete node type, rather than a
// polymorphic visitor interface. Go does not check a type switch for
// exhaustiveness, so each pass's switch ends in a default case that returns
// an error for an unexpected node type at run time. The switch avoids the
// indirection of dynamic dispatch, and it keeps each pass's logic for a
// given node colocated in one function instead of spread across per-variant
// Visit methods.
package ast

import "github.com/marcsoda/lightc/lang/types"

// Node is implemented by every AST node, untyped or typed.
type Node interface {
	// Type returns the node's resolved type, or nil if it hasn't been
	// type-checked yet.
	Type() *types.Type
	// SetType assigns the node's resolved type.
	SetType(t types.Type)
	// String renders the node for --show-ast/--show-typed-ast dumps.
	String() string
}

// typed is embedded in every concrete node to provide the Type/SetType
// half of the Node interface.
type typed struct {
	ty *types.Type
}

func (t *typed) Type() *types.Type { return t.ty }
func (t *typed) SetType(ty types.Type) {
	t.ty = &ty
}

// IsNumLiteral reports whether n is a Lit node holding a numeric (integer or
// float) literal value, before narrowing. Used by the checker's binop rule
// to decide which side to use as a hint for the other.
func IsNumLiteral(n Node) bool {
	lit, ok := n.(*Lit)
	if !ok {
		return false
	}
	switch lit.Value.Kind {
	case types.LitInt8, types.LitInt16, types.LitInt32, types.LitInt64,
		types.LitUInt8, types.LitUInt16, types.LitUInt32, types.LitUInt64,
		types.LitFloat, types.LitDouble:
		return true
	default:
		return false
	}
}
