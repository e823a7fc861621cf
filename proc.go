package anvil

import (
	"os"
	"os/exec"
)

// Handle is an opaque reference to a spawned process. The zero value is
// invalid; Spawn returns it on process-creation failure. A handle may
// be waited on exactly once.
type Handle struct {
	cmd *exec.Cmd
}

// Valid reports whether the handle refers to a launched process that
// has not yet been waited on.
func (h Handle) Valid() bool { return h.cmd != nil }

// Group collects the handles of commands launched asynchronously but
// not yet awaited. A group must be confined to a single goroutine; the
// engine does no locking.
type Group struct {
	handles []Handle
}

// Len returns the number of outstanding handles.
func (g *Group) Len() int { return len(g.handles) }

func (g *Group) add(h Handle) {
	g.handles = append(g.handles, h)
}

// Spawn launches the command's executable with its argument list,
// inheriting the parent's standard streams and resolving the program
// through PATH. It returns once the child is launched, never blocking
// on its completion. On creation failure it logs a diagnostic and
// returns an invalid handle — failure is signalled by the handle, not
// by an error.
func (e *Engine) Spawn(cmd *Command) Handle {
	argv := cmd.Args()
	if len(argv) == 0 {
		e.Log.Warnf("spawn: empty command")
		return Handle{}
	}

	c := exec.Command(argv[0], argv[1:]...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	spawnAttrs(c, argv)

	e.Log.Cmdf("%s", cmd.String())
	if err := c.Start(); err != nil {
		e.Log.Warnf("spawn %s: %v", argv[0], err)
		return Handle{}
	}
	return Handle{cmd: c}
}

// Wait blocks until the process behind h terminates and reaps it,
// returning true only on a normal exit with status zero. A non-zero
// exit or signal termination is logged and reported as false. Waiting
// on an invalid handle returns false without blocking.
func (e *Engine) Wait(h Handle) bool {
	if !h.Valid() {
		return false
	}

	err := h.cmd.Wait()
	if err == nil {
		return true
	}

	if state := h.cmd.ProcessState; state != nil {
		if code := state.ExitCode(); code >= 0 {
			e.Log.Warnf("%s exited with status %d", h.cmd.Path, code)
		} else {
			// Killed by a signal; ExitCode is -1.
			e.Log.Warnf("%s terminated abnormally: %v", h.cmd.Path, state)
		}
	} else {
		e.Log.Warnf("wait %s: %v", h.cmd.Path, err)
	}
	return false
}

// WaitGroup waits on every handle in g in the order they were enqueued
// and returns true only if all of them succeeded. One failure does not
// stop the remaining waits — every handle is drained so no platform
// resource leaks. The group is empty when WaitGroup returns, success or
// not.
func (e *Engine) WaitGroup(g *Group) bool {
	ok := true
	for _, h := range g.handles {
		if !e.Wait(h) {
			ok = false
		}
	}
	g.handles = g.handles[:0]
	return ok
}
