// Package hir defines the lowerer's output representation: a typed node
// algebra identical in shape to the typed AST, except every type is
// concrete (no optionality) and the operator set excludes compound
// assignment and increment/decrement, both fully expanded during lowering.
package hir

import (
	"fmt"
	"strings"

	"github.com/marcsoda/lightc/lang/token"
	"github.com/marcsoda/lightc/lang/types"
)

// Node is implemented by every HIR node. Unlike ast.Node, Type is never nil:
// the lowerer's contract is that every node it emits is fully concretized.
type Node interface {
	Type() types.Type
	String() string
}

type typed struct{ ty types.Type }

func (t typed) Type() types.Type { return t.ty }

// Lit is a literal value, narrowed and retagged by the checker.
type Lit struct {
	typed
	Value types.Literal[Node]
}

func NewLit(v types.Literal[Node], ty types.Type) *Lit { return &Lit{typed{ty}, v} }
func (n *Lit) String() string                          { return n.Value.String() }

// Ident is a variable reference.
type Ident struct {
	typed
	Name string
}

func NewIdent(name string, ty types.Type) *Ident { return &Ident{typed{ty}, name} }
func (n *Ident) String() string                  { return n.Name }

// BinOp is a binary operator expression restricted to the non-compound,
// non-increment operator subset (`=` included, since plain assignment is
// not compound).
type BinOp struct {
	typed
	Op  token.Kind
	LHS Node
	RHS Node
}

func NewBinOp(op token.Kind, lhs, rhs Node, ty types.Type) *BinOp {
	return &BinOp{typed{ty}, op, lhs, rhs}
}
func (n *BinOp) String() string { return fmt.Sprintf("(%s %s %s)", n.LHS, n.Op, n.RHS) }

// UnOp is a unary operator expression restricted to `-` and `!` (`++`/`--`
// never survive lowering).
type UnOp struct {
	typed
	Op  token.Kind
	RHS Node
}

func NewUnOp(op token.Kind, rhs Node, ty types.Type) *UnOp { return &UnOp{typed{ty}, op, rhs} }
func (n *UnOp) String() string                             { return fmt.Sprintf("(%s%s)", n.Op, n.RHS) }

// Call is a function or hoisted-method call.
type Call struct {
	typed
	Name string
	Args []Node
}

func NewCall(name string, args []Node, ty types.Type) *Call { return &Call{typed{ty}, name, args} }
func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}

// Index is an array index expression.
type Index struct {
	typed
	Binding Node
	Idx     Node
}

func NewIndex(binding, idx Node, ty types.Type) *Index { return &Index{typed{ty}, binding, idx} }
func (n *Index) String() string                        { return fmt.Sprintf("%s[%s]", n.Binding, n.Idx) }

// Cond is a conditional expression whose Else branch is always present
// after lowering (an empty Void block is synthesized where the source had
// none).
type Cond struct {
	typed
	CondExpr Node
	Then     Node
	Else     Node
}

func NewCond(cond, then, els Node, ty types.Type) *Cond {
	return &Cond{typed{ty}, cond, then, els}
}
func (n *Cond) String() string {
	return fmt.Sprintf("if %s %s else %s", n.CondExpr, n.Then, n.Else)
}

// Block is a brace-delimited statement list.
type Block struct {
	typed
	List []Node
}

func NewBlock(list []Node, ty types.Type) *Block { return &Block{typed{ty}, list} }
func (n *Block) String() string {
	parts := make([]string, len(n.List))
	for i, s := range n.List {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// For is a three-part for loop, with a compound-assignment or
// increment/decrement step already expanded to plain assignment by the
// lowerer.
type For struct {
	typed
	StartName string
	StartInit Node
	Cond      Node
	Step      Node
	Body      Node
}

func NewFor(startName string, startInit, cond, step, body Node) *For {
	return &For{typed{types.TVoid}, startName, startInit, cond, step, body}
}
func (n *For) String() string {
	return fmt.Sprintf("for %s = %s; %s; %s %s", n.StartName, n.StartInit, n.Cond, n.Step, n.Body)
}

// Let is a variable declaration.
type Let struct {
	typed
	Name string
	Init Node
}

func NewLet(name string, init Node, ty types.Type) *Let { return &Let{typed{ty}, name, init} }
func (n *Let) String() string                           { return fmt.Sprintf("let %s = %s", n.Name, n.Init) }

// Arg is a (name, type) function-parameter pair, concretized.
type Arg struct {
	Name string
	Ty   types.Type
}

// Fn is a free function: after lowering, struct methods are hoisted here
// under the name "<Struct>::<method>" with a synthetic leading `self`
// parameter of type Comp(<Struct>).
type Fn struct {
	Name     string
	Args     []Arg
	RetTy    types.Type
	Body     Node // nil for extern
	IsExtern bool
}

func (n *Fn) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.Name + ": " + a.Ty.String()
	}
	prefix := "fn"
	if n.IsExtern {
		prefix = "extern fn"
	}
	if n.Body == nil {
		return fmt.Sprintf("%s %s(%s) -> %s", prefix, n.Name, strings.Join(args, ", "), n.RetTy)
	}
	return fmt.Sprintf("%s %s(%s) -> %s %s", prefix, n.Name, strings.Join(args, ", "), n.RetTy, n.Body)
}

// Module is the lowerer's top-level output: the full set of free functions
// (including hoisted methods) in emission order — original declaration
// order, with each struct's methods immediately following it.
type Module struct {
	Fns []*Fn
}

func (m *Module) String() string {
	parts := make([]string, len(m.Fns))
	for i, f := range m.Fns {
		parts[i] = f.String()
	}
	return strings.Join(parts, "\n")
}
