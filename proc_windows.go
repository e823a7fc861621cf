//go:build windows

package anvil

import (
	"os"
	"os/exec"
	"syscall"
)

// Platform compiler defaults.
const defaultCompiler = "gcc"

var defaultFlags []string

// spawnAttrs marshals the argument vector into the single command-line
// string CreateProcess expects, using our own quoting rules so the
// child parses back exactly the argv we were given.
func spawnAttrs(c *exec.Cmd, argv []string) {
	c.SysProcAttr = &syscall.SysProcAttr{CmdLine: commandLine(argv)}
}

// replaceProcess approximates exec on Windows: launch the new binary as
// a child inheriting our streams, then terminate this process. The
// caller observes the same contract — no code after a successful call
// runs in the old image.
func replaceProcess(path string, argv []string) error {
	c := exec.Command(path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.SysProcAttr = &syscall.SysProcAttr{CmdLine: commandLine(argv)}
	if err := c.Start(); err != nil {
		return err
	}
	os.Exit(0)
	return nil
}

// selfOutputName returns the fixed rebuild target name. The running
// binary keeps its on-disk file locked on Windows, so the fresh build
// is written next to it instead of over it.
func selfOutputName(string) string {
	return "build_new.exe"
}
