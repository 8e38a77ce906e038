package ast

import (
	"fmt"
	"strings"

	"github.com/marcsoda/lightc/lang/types"
)

// For is a three-part for loop: `for start; cond; step { body }`.
type For struct {
	typed
	StartName string
	StartAntn types.Type
	StartInit Node // nil if the loop variable has no initializer
	Cond      Node
	Step      Node
	Body      Node // always a *Block
}

func NewFor(startName string, startAntn types.Type, startInit, cond, step, body Node) *For {
	n := &For{StartName: startName, StartAntn: startAntn, StartInit: startInit, Cond: cond, Step: step, Body: body}
	n.SetType(types.TVoid)
	return n
}

func (n *For) String() string {
	return fmt.Sprintf("for %s: %s = %s; %s; %s %s", n.StartName, n.StartAntn, n.StartInit, n.Cond, n.Step, n.Body)
}

// Let is a variable declaration: `let x: ty = init`.
type Let struct {
	typed
	Name string
	Antn types.Type
	Init Node // nil only before the checker synthesizes a zero value
}

func NewLet(name string, antn types.Type, init Node) *Let {
	n := &Let{Name: name, Antn: antn, Init: init}
	return n
}

func (n *Let) String() string { return fmt.Sprintf("let %s: %s = %s", n.Name, n.Antn, n.Init) }

// Prototype is a function's signature: name, positional (name, type-name)
// args, declared return type name, and whether it's an extern declaration.
type Prototype struct {
	Name     string
	Args     []Arg
	RetTy    string
	IsExtern bool
}

// Arg is a (name, source type-name) pair.
type Arg struct {
	Name   string
	TyName string
}

func (p *Prototype) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.Name + ": " + a.TyName
	}
	prefix := "fn"
	if p.IsExtern {
		prefix = "extern fn"
	}
	return fmt.Sprintf("%s %s(%s) -> %s", prefix, p.Name, strings.Join(args, ", "), p.RetTy)
}

// Fn is a function declaration. Body is nil for an extern declaration.
type Fn struct {
	typed
	Proto *Prototype
	Body  Node // nil for extern; always a *Block otherwise
}

func NewFn(proto *Prototype, body Node) *Fn {
	n := &Fn{Proto: proto, Body: body}
	n.SetType(types.TVoid)
	return n
}

func (n *Fn) String() string {
	if n.Body == nil {
		return n.Proto.String()
	}
	return fmt.Sprintf("%s %s", n.Proto, n.Body)
}

// Struct is a struct declaration with its fields (as Let nodes, unchecked
// until the checker visits them) and methods (as Fn nodes).
type Struct struct {
	typed
	Name    string
	Fields  []Node
	Methods []Node
}

func NewStruct(name string, fields, methods []Node) *Struct {
	n := &Struct{Name: name, Fields: fields, Methods: methods}
	n.SetType(types.TVoid)
	return n
}

func (n *Struct) String() string {
	fields := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		fields[i] = f.String()
	}
	methods := make([]string, len(n.Methods))
	for i, m := range n.Methods {
		methods[i] = m.String()
	}
	return fmt.Sprintf("struct %s { %s } { %s }", n.Name, strings.Join(fields, ", "), strings.Join(methods, ", "))
}
