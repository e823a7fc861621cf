package anvil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for the non-fatal failure modes. Fatal conditions
// (rebuild failure, self-replace failure) terminate the process through
// the logger instead of being returned.
var (
	// ErrInvalidCommand marks an empty or already-consumed command.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrSpawn marks a native process-creation failure.
	ErrSpawn = errors.New("process creation failed")
	// ErrCommand marks a process that ran but did not exit zero.
	ErrCommand = errors.New("command failed")
	// ErrBuildPaths marks a command whose source and output could not
	// be derived for the freshness check.
	ErrBuildPaths = errors.New("cannot derive source and output")
)

// Engine orchestrates incremental builds: it constructs compiler
// commands, consults the freshness oracle, spawns and waits on native
// processes, and can rebuild and replace its own driver. All
// configuration is explicit — construct with NewEngine and share
// nothing through globals.
//
// The engine is single-threaded and synchronous. Its only blocking
// operations are Wait and WaitGroup, neither of which has a timeout: a
// hung child hangs the wait indefinitely.
type Engine struct {
	Log *Logger

	// Compiler invoked by DefaultCBuild; NewEngine picks the platform
	// default (cc, or gcc on Windows).
	Compiler string
	// Flags appended to every DefaultCBuild command.
	Flags []string

	// replace is the process-image replacement primitive, swappable in
	// tests.
	replace func(path string, argv []string) error
}

// NewEngine creates an Engine with platform-default compiler settings.
func NewEngine(log *Logger) *Engine {
	return &Engine{
		Log:      log,
		Compiler: defaultCompiler,
		Flags:    append([]string(nil), defaultFlags...),
		replace:  replaceProcess,
	}
}

// DefaultCBuild builds the default C compile command:
// compiler [flags...] source -o output. An empty output derives from
// the source file name with its extension stripped.
func (e *Engine) DefaultCBuild(source, output string) *Command {
	cmd := &Command{}
	cmd.Append(e.Compiler)
	cmd.Append(e.Flags...)
	cmd.Append(source, "-o")
	if output == "" {
		output = filenameNoExt(source)
	}
	cmd.Append(output)
	cmd.Source = source
	cmd.Output = output
	return cmd
}

// DefaultGoBuild builds the command to compile a Go build driver:
// go build -o output source.
func (e *Engine) DefaultGoBuild(source, output string) *Command {
	if output == "" {
		output = filenameNoExt(source)
	}
	cmd := &Command{}
	cmd.Append("go", "build", "-o", output, source)
	cmd.Source = source
	cmd.Output = output
	return cmd
}

// Run executes cmd only if its output is stale with respect to its
// source. The source/output pair comes from the command's explicit
// Source/Output fields when set, otherwise from scanning the argument
// list (see buildPaths). The output's parent directory is created if
// missing. Run consumes the command: the buffer is released before Run
// returns, on every path.
func (e *Engine) Run(cmd *Command) error {
	defer cmd.Release()

	if cmd.Len() == 0 {
		e.Log.Warnf("run: %v", ErrInvalidCommand)
		return ErrInvalidCommand
	}

	source, output, err := cmd.buildPaths()
	if err != nil {
		e.Log.Warnf("run %s: %v", cmd.Name(), err)
		return err
	}

	if err := e.ensureDirFor(output); err != nil {
		return err
	}

	verdict, err := e.NeedsRebuild(output, source)
	if err != nil {
		e.Log.Warnf("run %s: %v", cmd.Name(), err)
		return err
	}
	if verdict == Fresh {
		e.Log.Debugf("up to date: %s", output)
		return nil
	}

	return e.RunAlways(cmd)
}

// RunAlways executes cmd unconditionally. Synchronous commands are
// waited on and their exit status reported. A command with Async set
// and a Group attached is enqueued and reported successful as soon as
// the process starts; the real result is only known when the group is
// awaited. RunAlways consumes the command on every path.
func (e *Engine) RunAlways(cmd *Command) error {
	defer cmd.Release()

	if cmd.Len() == 0 {
		e.Log.Warnf("run: %v", ErrInvalidCommand)
		return ErrInvalidCommand
	}

	if out := cmd.outputPath(); out != "" {
		if err := e.ensureDirFor(out); err != nil {
			return err
		}
	}

	h := e.Spawn(cmd)
	if !h.Valid() {
		return fmt.Errorf("%w: %s", ErrSpawn, cmd.Name())
	}

	if cmd.Async && cmd.Group != nil {
		cmd.Group.add(h)
		return nil
	}

	if !e.Wait(h) {
		return fmt.Errorf("%w: %s", ErrCommand, cmd.Name())
	}
	return nil
}

// AutoRebuild recompiles and restarts the running build driver when its
// source, or any of the extra dependency paths, is newer than the
// current binary. Call it first in main, before any irreversible side
// effect: on a successful rebuild the process image is replaced and no
// code after the call runs in the old binary.
//
// A compile or replace failure terminates the process — the driver
// cannot trust that its own logic is current. At most one
// rebuild-and-replace cycle happens per invocation; the fresh binary
// sees an up-to-date timestamp and continues past this call.
func (e *Engine) AutoRebuild(source string, deps ...string) {
	if source == "" {
		return
	}

	out := selfOutputName(source)

	if _, err := os.Stat(source); err != nil {
		e.Log.Errorf("no such file or directory (%s)", source)
		return
	}

	inputs := append([]string{source}, deps...)
	verdict, err := e.NeedsRebuild(out, inputs...)
	if err != nil {
		e.Log.Errorf("auto rebuild %s: %v", source, err)
		return
	}
	if verdict == Fresh {
		e.Log.Debugf("up to date: %s", out)
		return
	}

	e.Log.Debugf("rebuilding: %s -> %s", source, out)
	if err := e.RunAlways(e.driverBuild(source, out)); err != nil {
		e.Log.Errorf("rebuild failed: %v", err)
		return
	}

	e.Log.Debugf("restarting with updated build executable")
	if err := e.replace(execPath(out), []string{out}); err != nil {
		e.Log.Errorf("failed to restart build process: %v", err)
	}
}

// driverBuild picks the compile command for a build driver source by
// its extension.
func (e *Engine) driverBuild(source, output string) *Command {
	if strings.HasSuffix(source, ".go") {
		return e.DefaultGoBuild(source, output)
	}
	return e.DefaultCBuild(source, output)
}

// buildPaths resolves the (source, output) pair for the freshness
// check. Explicit Source/Output fields win. Otherwise the argument list
// is scanned: output is the argument after the first "-o", source is
// the first source-like argument before the "-o", falling back to the
// argument directly preceding it.
//
// The scan is a compatibility heuristic and can misfire on unusual
// argument orders; callers that know their paths should set the
// explicit fields.
func (c *Command) buildPaths() (source, output string, err error) {
	if c.Source != "" && c.Output != "" {
		return c.Source, c.Output, nil
	}

	argv := c.Args()
	oIdx := -1
	for i := 0; i < len(argv)-1; i++ {
		if argv[i] == "-o" {
			oIdx = i
			break
		}
	}
	if oIdx < 1 {
		return "", "", ErrBuildPaths
	}
	output = argv[oIdx+1]

	for j := 1; j < oIdx; j++ {
		if sourceLike(argv[j]) {
			return argv[j], output, nil
		}
	}
	// Fall back to the argument right before "-o".
	return argv[oIdx-1], output, nil
}

// outputPath returns the command's output path if one can be derived,
// or "" — RunAlways only needs it to pre-create the directory.
func (c *Command) outputPath() string {
	if c.Output != "" {
		return c.Output
	}
	_, out, err := c.buildPaths()
	if err != nil {
		return ""
	}
	return out
}

func sourceLike(arg string) bool {
	return strings.Contains(arg, ".c") || strings.HasSuffix(arg, ".go")
}

// ensureDirFor creates the parent directory of path if it is missing.
func (e *Engine) ensureDirFor(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		e.Log.Warnf("create directory %s: %v", dir, err)
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// filenameNoExt returns the base name of path without its extension,
// the default output name for a single-source build.
func filenameNoExt(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// execPath qualifies a bare file name with "./" so process-image
// replacement resolves it against the working directory, not PATH.
func execPath(out string) string {
	if strings.ContainsRune(out, filepath.Separator) {
		return out
	}
	return "." + string(filepath.Separator) + out
}
