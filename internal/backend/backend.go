// Package backend defines the seam between the compiler's core (lexer
// through lowerer) and native code generation. Code generation and linking
// are out of scope for this repository: Backend is the interface a real
// native backend would implement, and Unimplemented is the only concrete
// implementation provided.
package backend

import (
	"errors"
	"fmt"

	"github.com/marcsoda/lightc/lang/hir"
	"github.com/marcsoda/lightc/lang/symtable"
)

// ErrUnimplemented is returned by Unimplemented.Run.
var ErrUnimplemented = errors.New("backend: native code generation is not implemented")

// Backend lowers a finished HIR module to a native object file.
type Backend interface {
	Run(mod *hir.Module, moduleName string, symbols *symtable.Table, buildDir string) (objectPath string, err error)
}

// Unimplemented is a Backend that always fails, naming the module it was
// asked to emit. It exists so internal/driver has a concrete collaborator
// to call through the Backend seam without depending on any particular
// code generator.
type Unimplemented struct{}

func (Unimplemented) Run(mod *hir.Module, moduleName string, symbols *symtable.Table, buildDir string) (string, error) {
	return "", fmt.Errorf("%w: module %q (%d function(s)) targeted at %s", ErrUnimplemented, moduleName, len(mod.Fns), buildDir)
}
