package ast

// Program is an ordered sequence of top-level declarations (Fn or Struct
// nodes). It is the parser's and checker's stage output type for the
// AST/typed-AST phases, and the lowerer's input (the lowerer produces an
// hir.Module).
type Program struct {
	nodes []Node
}

// NewProgram returns an empty Program.
func NewProgram() *Program { return &Program{} }

// Add appends a top-level node, preserving program order.
func (p *Program) Add(n Node) { p.nodes = append(p.nodes, n) }

// Nodes returns the program's top-level declarations in source order.
func (p *Program) Nodes() []Node { return p.nodes }

// Len returns the number of top-level declarations.
func (p *Program) Len() int { return len(p.nodes) }
