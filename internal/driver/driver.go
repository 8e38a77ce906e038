// Package driver orchestrates the compiler's core pipeline end to end:
// lex, parse, check, lower, and (via the backend seam) emit. It owns the
// .build directory lifecycle and the compile-only (`-c`) vs. link-to-
// executable branching, matching spec §6's filesystem contract.
package driver

import (
	"fmt"
	"os"

	"github.com/marcsoda/lightc/internal/backend"
	"github.com/marcsoda/lightc/lang/ast"
	"github.com/marcsoda/lightc/lang/checker"
	"github.com/marcsoda/lightc/lang/lexer"
	"github.com/marcsoda/lightc/lang/lower"
	"github.com/marcsoda/lightc/lang/parser"
	"github.com/marcsoda/lightc/lang/symtable"
)

// Dumps collects the intermediate representations requested via
// --show-tokens/--show-ast/--show-typed-ast/--show-hir, rendered as
// strings ready to print. A field is empty unless its corresponding
// Options flag was set.
type Dumps struct {
	Tokens   string
	AST      string
	TypedAST string
	HIR      string
}

// Options configures a single Run.
type Options struct {
	OutputPath       string // -o; default "a.out"
	CompileOnly      bool   // -c
	ShowTokens       bool
	ShowAST          bool
	ShowTypedAST     bool
	ShowHIR          bool
	StdlibObjectPath string // runtime support object for the final link
	Backend          backend.Backend
}

// Result is what Run produces: the dumps requested by Options, and the path
// to whatever artifact was ultimately produced (an object file if
// CompileOnly, an executable otherwise). When a stage fails after the
// source was read, Run returns the Result together with the error; it then
// holds the dumps of the stages that completed and an empty OutputPath.
type Result struct {
	Dumps      Dumps
	OutputPath string
}

// Run executes the full pipeline against the source at sourcePath.
func Run(sourcePath string, opts Options) (*Result, error) {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("driver: reading %s: %w", sourcePath, err)
	}

	result := &Result{}

	toks, err := lexer.New(string(src)).Scan()
	if err != nil {
		return result, fmt.Errorf("lex: %w", err)
	}
	if opts.ShowTokens {
		result.Dumps.Tokens = formatTokens(toks)
	}

	symbols := symtable.New()
	prog, err := parser.New(toks, symbols).Parse()
	if err != nil {
		return result, fmt.Errorf("parse: %w", err)
	}
	if opts.ShowAST {
		result.Dumps.AST = formatProgram(prog)
	}

	typed, err := checker.New(symbols).Check(prog)
	if err != nil {
		return result, fmt.Errorf("check: %w", err)
	}
	if opts.ShowTypedAST {
		result.Dumps.TypedAST = formatProgram(typed)
	}

	mod, err := lower.New().Lower(typed)
	if err != nil {
		return result, fmt.Errorf("lower: %w", err)
	}
	if opts.ShowHIR {
		result.Dumps.HIR = mod.String()
	}

	moduleName := backend.ModuleName(sourcePath)
	buildDir, err := backend.PrepareBuildDir(".")
	if err != nil {
		return result, fmt.Errorf("driver: %w", err)
	}

	be := opts.Backend
	if be == nil {
		be = backend.Unimplemented{}
	}
	objectPath, err := be.Run(mod, moduleName, symbols, buildDir)
	if err != nil {
		return result, fmt.Errorf("backend: %w", err)
	}

	if opts.CompileOnly {
		dest, err := backend.CopyObjectToWorkingDir(objectPath, ".")
		if err != nil {
			return result, fmt.Errorf("driver: %w", err)
		}
		result.OutputPath = dest
		return result, nil
	}

	outPath := opts.OutputPath
	if outPath == "" {
		outPath = "a.out"
	}
	if err := backend.LinkExecutable(objectPath, opts.StdlibObjectPath, outPath); err != nil {
		return result, fmt.Errorf("driver: %w", err)
	}
	result.OutputPath = outPath
	return result, nil
}

func formatTokens(toks []lexer.TokenAndValue) string {
	var out string
	for _, t := range toks {
		out += t.Kind.String()
		if t.Value.Raw != "" {
			out += " " + t.Value.Raw
		}
		out += "\n"
	}
	return out
}

func formatProgram(p *ast.Program) string {
	var out string
	for _, n := range p.Nodes() {
		out += n.String() + "\n"
	}
	return out
}
