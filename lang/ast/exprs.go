package ast

import (
	"fmt"
	"strings"

	"github.com/marcsoda/lightc/lang/token"
	"github.com/marcsoda/lightc/lang/types"
)

// Lit is a literal expression, e.g. `3`, `3.14`, `true`, `'a'`, `[1, 2]`.
type Lit struct {
	typed
	Value types.Literal[Node]
}

func NewLit(v types.Literal[Node], ty *types.Type) *Lit {
	n := &Lit{Value: v}
	n.ty = ty
	return n
}

func (n *Lit) String() string { return n.Value.String() }

// Ident is an identifier expression.
type Ident struct {
	typed
	Name string
}

func NewIdent(name string, ty *types.Type) *Ident {
	n := &Ident{Name: name}
	n.ty = ty
	return n
}

func (n *Ident) String() string { return n.Name }

// BinOp is a binary operator expression, e.g. `x + y`.
type BinOp struct {
	typed
	Op  token.Kind
	LHS Node
	RHS Node
}

func NewBinOp(op token.Kind, lhs, rhs Node, ty *types.Type) *BinOp {
	n := &BinOp{Op: op, LHS: lhs, RHS: rhs}
	n.ty = ty
	return n
}

func (n *BinOp) String() string { return fmt.Sprintf("(%s %s %s)", n.LHS, n.Op, n.RHS) }

// UnOp is a unary operator expression, e.g. `-x`, `!x`, `++x`.
type UnOp struct {
	typed
	Op  token.Kind
	RHS Node
}

func NewUnOp(op token.Kind, rhs Node, ty *types.Type) *UnOp {
	n := &UnOp{Op: op, RHS: rhs}
	n.ty = ty
	return n
}

func (n *UnOp) String() string { return fmt.Sprintf("(%s%s)", n.Op, n.RHS) }

// Call is a function call expression, e.g. `f(1, 2)`.
type Call struct {
	typed
	Name string
	Args []Node
}

func NewCall(name string, args []Node, ty *types.Type) *Call {
	n := &Call{Name: name, Args: args}
	n.ty = ty
	return n
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}

// Index is an array index expression, e.g. `a[i]`.
type Index struct {
	typed
	Binding Node
	Idx     Node
}

func NewIndex(binding, idx Node, ty *types.Type) *Index {
	n := &Index{Binding: binding, Idx: idx}
	n.ty = ty
	return n
}

func (n *Index) String() string { return fmt.Sprintf("%s[%s]", n.Binding, n.Idx) }

// Cond is an if/else conditional expression.
type Cond struct {
	typed
	CondExpr Node
	Then     Node // always a *Block
	Else     Node // nil if no else branch; a *Block, or a *Cond for `else if`
}

func NewCond(cond, then, els Node, ty *types.Type) *Cond {
	n := &Cond{CondExpr: cond, Then: then, Else: els}
	n.ty = ty
	return n
}

func (n *Cond) String() string {
	if n.Else == nil {
		return fmt.Sprintf("if %s %s", n.CondExpr, n.Then)
	}
	return fmt.Sprintf("if %s %s else %s", n.CondExpr, n.Then, n.Else)
}

// Block is a brace-delimited list of statements; its type is that of its
// last element (or Void if empty).
type Block struct {
	typed
	List []Node
}

func NewBlock(list []Node, ty *types.Type) *Block {
	n := &Block{List: list}
	n.ty = ty
	return n
}

func (n *Block) String() string {
	parts := make([]string, len(n.List))
	for i, s := range n.List {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}
