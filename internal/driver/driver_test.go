package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcsoda/lightc/internal/backend"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, src string) string {
	t.Helper()
	path := filepath.Join(dir, "prog.lc")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunDumpsShowHIR(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, `fn main() -> void { let x: int32 = 3 + 4 }`)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	_, err = Run(path, Options{ShowHIR: true})
	// The stub backend always fails; the pipeline up to lowering must have
	// succeeded, and the error must be the named backend seam failing.
	require.Error(t, err)
	require.True(t, errors.Is(err, backend.ErrUnimplemented))
}

func TestRunLexError(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, `let foo = 1b4`)
	_, err := Run(path, Options{})
	require.Error(t, err)
}

func TestRunCheckError(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, `fn main() -> void { let x: int32 = true }`)
	_, err := Run(path, Options{})
	require.Error(t, err)
}
