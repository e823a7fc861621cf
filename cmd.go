package anvil

import "strings"

// initialCommandCap is the starting capacity of a command's argument
// storage; growth doubles from here.
const initialCommandCap = 8

// Command is a growable, ordered argument buffer describing one shell
// invocation. The first argument is the executable name. Commands are
// created empty, grown with Append, and consumed exactly once by Run or
// RunAlways: running a command is a move, and the buffer is invalid
// afterwards.
type Command struct {
	// Async marks the command to be launched without waiting. Run and
	// RunAlways enqueue the spawned handle onto Group instead of
	// blocking, and report success as soon as the process starts.
	Async bool
	// Group receives the handle of an async launch. Ignored when Async
	// is false.
	Group *Group

	// Source and Output, when both set, name the compile input and
	// output explicitly, bypassing the argument-scanning heuristic in
	// Run. DefaultCBuild and DefaultGoBuild set them.
	Source string
	Output string

	args []string
	n    int
}

// Append adds one or more arguments, preserving order. Storage doubles
// whenever length would exceed capacity.
func (c *Command) Append(args ...string) {
	c.grow(c.n + len(args))
	for _, a := range args {
		c.args[c.n] = a
		c.n++
	}
}

func (c *Command) grow(need int) {
	if need <= cap(c.args) {
		c.args = c.args[:cap(c.args)]
		return
	}
	newcap := cap(c.args)
	if newcap == 0 {
		newcap = initialCommandCap
	}
	for newcap < need {
		newcap *= 2
	}
	grown := make([]string, newcap)
	copy(grown, c.args[:c.n])
	c.args = grown
}

// Args returns the appended arguments in order.
func (c *Command) Args() []string {
	if c.args == nil {
		return nil
	}
	return c.args[:c.n]
}

// Len returns the number of appended arguments.
func (c *Command) Len() int { return c.n }

// Name returns the executable name (argument 0), or "" when empty.
func (c *Command) Name() string {
	if c.n == 0 {
		return ""
	}
	return c.args[0]
}

// Release frees the backing storage and resets length and capacity to
// zero. Safe to call more than once. Run and RunAlways release the
// command themselves; callers only need Release on commands they built
// but never ran.
func (c *Command) Release() {
	c.args = nil
	c.n = 0
}

// String renders the command the way a shell would receive it, quoting
// arguments that contain whitespace. Display only — process creation
// uses the argument vector, not this string.
func (c *Command) String() string {
	var b strings.Builder
	for i, a := range c.Args() {
		if i > 0 {
			b.WriteByte(' ')
		}
		if strings.ContainsAny(a, " \t") {
			b.WriteByte('"')
			b.WriteString(a)
			b.WriteByte('"')
		} else {
			b.WriteString(a)
		}
	}
	return b.String()
}
