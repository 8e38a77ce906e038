// Package maincmd implements the command-line surface described in spec
// §6: a single command compiling one source file, using github.com/mna/
// mainer for flag parsing, stdio plumbing and signal-aware cancellation,
// matching the teacher binary's CLI idiom.
package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/marcsoda/lightc/internal/driver"
)

const binName = "lightc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <file>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <file>
       %[1]s -h|--help
       %[1]s -v|--version

Ahead-of-time compiler for the %[1]s programming language.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -o PATH                   Output executable path (default a.out).
       -c                        Stop after object emission; copy the
                                 object file to the working directory.
       --show-tokens             Print the token stream.
       --show-ast                Print the untyped AST.
       --show-typed-ast          Print the typed AST.
       --show-hir                Print the lowered HIR.
`, binName)
)

// Cmd is the command's flag/argument surface, populated by mainer.Parser.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Output       string `flag:"o"`
	CompileOnly  bool   `flag:"c"`
	ShowTokens   bool   `flag:"show-tokens"`
	ShowAST      bool   `flag:"show-ast"`
	ShowTypedAST bool   `flag:"show-typed-ast"`
	ShowHIR      bool   `flag:"show-hir"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) != 1 {
		return fmt.Errorf("exactly one source file must be provided, got %d", len(c.args))
	}
	return nil
}

// Main is the mainer.Cmd entry point.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.run(ctx, stdio); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return mainer.Failure
	}
	return mainer.Success
}

func (c *Cmd) run(_ context.Context, stdio mainer.Stdio) error {
	opts := driver.Options{
		OutputPath:   c.Output,
		CompileOnly:  c.CompileOnly,
		ShowTokens:   c.ShowTokens,
		ShowAST:      c.ShowAST,
		ShowTypedAST: c.ShowTypedAST,
		ShowHIR:      c.ShowHIR,
	}

	result, err := driver.Run(c.args[0], opts)
	if result != nil {
		printDumps(stdio, result.Dumps)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdio.Stdout, "%s\n", result.OutputPath)
	return nil
}

func printDumps(stdio mainer.Stdio, d driver.Dumps) {
	for _, s := range []string{d.Tokens, d.AST, d.TypedAST, d.HIR} {
		if s != "" {
			fmt.Fprint(stdio.Stdout, s)
		}
	}
}
