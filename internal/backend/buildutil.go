package backend

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// buildDirName is the fixed name of the per-invocation scratch directory,
// rooted at the working directory.
const buildDirName = ".build"

// ModuleName derives a module's name from its source file's base name,
// stripping the extension: "foo/bar.lc" -> "bar".
func ModuleName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PrepareBuildDir clears and recreates the .build directory rooted at dir,
// returning its path. Called once per compiler invocation.
func PrepareBuildDir(dir string) (string, error) {
	path := filepath.Join(dir, buildDirName)
	if err := os.RemoveAll(path); err != nil {
		return "", fmt.Errorf("backend: clearing build dir: %w", err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("backend: creating build dir: %w", err)
	}
	return path, nil
}

// CopyObjectToWorkingDir copies the object file at objectPath into dir,
// keeping its base name. Used for the `-c` (compile-only) flag.
func CopyObjectToWorkingDir(objectPath, dir string) (string, error) {
	data, err := os.ReadFile(objectPath)
	if err != nil {
		return "", fmt.Errorf("backend: reading object file: %w", err)
	}
	dest := filepath.Join(dir, filepath.Base(objectPath))
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("backend: writing object file: %w", err)
	}
	return dest, nil
}

// LinkExecutable invokes clang to link objectPath against the prebuilt
// runtime support object and libm, producing an executable at outPath.
// stdlibObjectPath is the path to a prebuilt `stdlib/stdlib.o` providing
// the runtime helpers the lowerer emits calls to (e.g. `ipow`, `pow`).
func LinkExecutable(objectPath, stdlibObjectPath, outPath string) error {
	cmd := exec.Command("clang", objectPath, stdlibObjectPath, "-lm", "-o", outPath)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("backend: linking %s: %w", outPath, err)
	}
	return nil
}
