package symtable

import "github.com/dolthub/swiss"

// scope is a single frame in the symbol-table stack, backed by a swiss-table
// map since scope lookup (symbol resolution) runs once per AST node visited
// by the checker and is the hottest path in that stage.
type scope struct {
	m *swiss.Map[string, *Symbol]
}

func newScope() *scope {
	return &scope{m: swiss.NewMap[string, *Symbol](8)}
}

// Table is a stack of scopes, innermost last. It is shared by reference
// across the parser, checker and lowerer: each stage mutates and queries it
// in sequence, never concurrently.
type Table struct {
	scopes []*scope
}

// New returns a Table with a single, empty global scope.
func New() *Table {
	return &Table{scopes: []*scope{newScope()}}
}

// Depth returns the number of scopes currently on the stack. Callers use
// this to assert that EnterScope/LeaveScope calls are balanced across a
// full stage run.
func (t *Table) Depth() int { return len(t.scopes) }

// EnterScope pushes a new, empty scope onto the stack.
func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, newScope())
}

// LeaveScope pops the innermost scope off the stack. It panics if called
// with only the global scope remaining: that is a programmer error in a
// pass, not a recoverable compile error.
func (t *Table) LeaveScope() {
	if len(t.scopes) <= 1 {
		panic("symtable: cannot leave the global scope")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Insert adds sym to the innermost scope, overwriting any existing symbol
// of the same name in that scope.
func (t *Table) Insert(sym *Symbol) {
	t.scopes[len(t.scopes)-1].m.Put(sym.Name, sym)
}

// InsertGlobal adds sym to the outermost (global) scope, overwriting any
// existing symbol of the same name there. Used by the parser to install
// function/struct symbols ahead of body parsing (and by InstallBuiltinTypes
// for the built-in type markers), regardless of how
// deeply nested the parser currently is (it never is, since this language
// has no nested declarations, but the guarantee is explicit).
func (t *Table) InsertGlobal(sym *Symbol) {
	t.scopes[0].m.Put(sym.Name, sym)
}

// Get searches the scope stack innermost-to-outermost and returns the first
// symbol found with the given name, or nil if none exists.
func (t *Table) Get(name string) *Symbol {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].m.Get(name); ok {
			return sym
		}
	}
	return nil
}

// GetType looks up a built-in type's marker symbol by its type name. Struct
// symbols are stored under their own name, so GetType does not find them;
// use Get for those.
func (t *Table) GetType(name string) *Symbol {
	return t.Get(TypeSymbolKey(name))
}

// InstallBuiltinTypes registers every primitive type name as a Type marker
// symbol in the global scope, so a user struct can never silently shadow a
// primitive.
func (t *Table) InstallBuiltinTypes(names []string) {
	for _, n := range names {
		t.InsertGlobal(NewTypeSymbol(n))
	}
}
