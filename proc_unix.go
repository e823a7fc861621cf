//go:build !windows

package anvil

import (
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// Platform compiler defaults.
const defaultCompiler = "cc"

var defaultFlags = []string{"-Wall", "-Wextra"}

// spawnAttrs is a no-op on POSIX: os/exec performs fork+exec with the
// argument vector as-is.
func spawnAttrs(*exec.Cmd, []string) {}

// replaceProcess replaces the current process image with the executable
// at path via execve. On success it never returns; all subsequent logic
// runs in the new image under the same PID.
func replaceProcess(path string, argv []string) error {
	return unix.Exec(path, argv, os.Environ())
}

// selfOutputName derives the build driver's binary path from its source
// path: the file name with the extension stripped.
func selfOutputName(source string) string {
	return filenameNoExt(source)
}
