package anvil

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefaultCBuild(t *testing.T) {
	e := newTestEngine(t)
	e.Compiler = "cc"
	e.Flags = []string{"-Wall", "-Wextra"}

	cmd := e.DefaultCBuild("src/main.c", "")
	want := []string{"cc", "-Wall", "-Wextra", "src/main.c", "-o", "main"}
	if !reflect.DeepEqual(cmd.Args(), want) {
		t.Errorf("args = %v, want %v", cmd.Args(), want)
	}
	if cmd.Source != "src/main.c" || cmd.Output != "main" {
		t.Errorf("source/output = %q/%q, want src/main.c/main", cmd.Source, cmd.Output)
	}
}

func TestDefaultCBuild_ExplicitOutput(t *testing.T) {
	e := newTestEngine(t)
	e.Compiler = "cc"
	e.Flags = nil

	cmd := e.DefaultCBuild("main.c", "bin/tool")
	want := []string{"cc", "main.c", "-o", "bin/tool"}
	if !reflect.DeepEqual(cmd.Args(), want) {
		t.Errorf("args = %v, want %v", cmd.Args(), want)
	}
	if cmd.Output != "bin/tool" {
		t.Errorf("output = %q, want bin/tool", cmd.Output)
	}
}

func TestDefaultGoBuild(t *testing.T) {
	e := newTestEngine(t)

	cmd := e.DefaultGoBuild("build.go", "")
	want := []string{"go", "build", "-o", "build", "build.go"}
	if !reflect.DeepEqual(cmd.Args(), want) {
		t.Errorf("args = %v, want %v", cmd.Args(), want)
	}
}

func TestBuildPaths(t *testing.T) {
	cases := []struct {
		name       string
		argv       []string
		src, out   string // explicit fields
		wantSrc    string
		wantOut    string
		wantErr bool
	}{
		{
			name:    "explicit fields win",
			argv:    []string{"make", "all"},
			src:     "main.c",
			out:     "main",
			wantSrc: "main.c",
			wantOut: "main",
		},
		{
			name:    "scan source before -o",
			argv:    []string{"cc", "-Wall", "main.c", "-o", "main"},
			wantSrc: "main.c",
			wantOut: "main",
		},
		{
			name:    "fallback to argument before -o",
			argv:    []string{"cc", "-Wall", "-o", "main"},
			wantSrc: "-Wall",
			wantOut: "main",
		},
		{
			name:       "no -o",
			argv:       []string{"cc", "main.c"},
			wantErr: true,
		},
		{
			name:       "-o first",
			argv:       []string{"-o", "main"},
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := &Command{Source: tc.src, Output: tc.out}
			cmd.Append(tc.argv...)

			src, out, err := cmd.buildPaths()
			if tc.wantErr {
				if !errors.Is(err, ErrBuildPaths) {
					t.Fatalf("err = %v, want ErrBuildPaths", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildPaths: %v", err)
			}
			if src != tc.wantSrc || out != tc.wantOut {
				t.Errorf("got %q/%q, want %q/%q", src, out, tc.wantSrc, tc.wantOut)
			}
		})
	}
}

func TestRun_FreshSkipsSpawn(t *testing.T) {
	dir := t.TempDir()
	e := newTestEngine(t)

	src := filepath.Join(dir, "main.c")
	out := filepath.Join(dir, "main")
	now := time.Now()
	writeFileAt(t, src, now.Add(-time.Hour))
	writeFileAt(t, out, now)

	// The program does not exist: a spawn attempt would fail loudly.
	cmd := &Command{Source: src, Output: out}
	cmd.Append("anvil-no-such-compiler", src, "-o", out)

	if err := e.Run(cmd); err != nil {
		t.Fatalf("Run on fresh output: %v", err)
	}
	if cmd.Len() != 0 {
		t.Errorf("command not consumed: len = %d", cmd.Len())
	}
}

func TestRun_StaleExecutes(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	e := newTestEngine(t)

	src := filepath.Join(dir, "main.c")
	out := filepath.Join(dir, "main")
	writeFileAt(t, src, time.Now())

	cmd := &Command{Source: src, Output: out}
	cmd.Append("true")
	if err := e.Run(cmd); err != nil {
		t.Fatalf("Run on stale output: %v", err)
	}
}

func TestRun_Empty(t *testing.T) {
	e := newTestEngine(t)
	if err := e.Run(&Command{}); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("err = %v, want ErrInvalidCommand", err)
	}
}

func TestRunAlways_SpawnFailure(t *testing.T) {
	e := newTestEngine(t)

	var cmd Command
	cmd.Append("anvil-no-such-binary-xyz")
	if err := e.RunAlways(&cmd); !errors.Is(err, ErrSpawn) {
		t.Errorf("err = %v, want ErrSpawn", err)
	}
	if cmd.Len() != 0 {
		t.Error("command not consumed after spawn failure")
	}
}

func TestRunAlways_FailingCommand(t *testing.T) {
	skipOnWindows(t)
	e := newTestEngine(t)

	var cmd Command
	cmd.Append("false")
	if err := e.RunAlways(&cmd); !errors.Is(err, ErrCommand) {
		t.Errorf("err = %v, want ErrCommand", err)
	}
}

func TestRunAlways_AsyncEnqueues(t *testing.T) {
	skipOnWindows(t)
	e := newTestEngine(t)

	var g Group
	cmd := &Command{Async: true, Group: &g}
	cmd.Append("false")

	// Async reports success at spawn time; the failure surfaces from
	// the group wait.
	if err := e.RunAlways(cmd); err != nil {
		t.Fatalf("RunAlways async: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("group len = %d, want 1", g.Len())
	}
	if e.WaitGroup(&g) {
		t.Error("WaitGroup = true, want false for failing child")
	}
}

// fatalEngine returns an engine whose Errorf path records the exit
// instead of terminating the test binary.
func fatalEngine(t *testing.T) (*Engine, *int) {
	t.Helper()
	e := newTestEngine(t)
	code := -1
	e.Log.exit = func(c int) { code = c }
	return e, &code
}

func TestAutoRebuild_Fresh(t *testing.T) {
	skipOnWindows(t) // the driver binary name differs on Windows
	t.Chdir(t.TempDir())
	e, code := fatalEngine(t)
	replaced := false
	e.replace = func(string, []string) error { replaced = true; return nil }

	now := time.Now()
	writeFileAt(t, "driver.c", now.Add(-time.Hour))
	writeFileAt(t, "driver", now)

	e.AutoRebuild("driver.c")
	if replaced {
		t.Error("fresh driver was replaced")
	}
	if *code != -1 {
		t.Errorf("exit(%d) called on fresh driver", *code)
	}
}

func TestAutoRebuild_StaleRebuildsAndReplaces(t *testing.T) {
	skipOnWindows(t)
	t.Chdir(t.TempDir())
	e, code := fatalEngine(t)
	e.Compiler = "true" // stands in for the C compiler
	e.Flags = nil

	var gotPath string
	var gotArgv []string
	e.replace = func(path string, argv []string) error {
		gotPath = path
		gotArgv = argv
		return nil
	}

	writeFileAt(t, "driver.c", time.Now())

	e.AutoRebuild("driver.c")
	if *code != -1 {
		t.Fatalf("exit(%d) called on successful rebuild", *code)
	}
	if gotPath != "./driver" {
		t.Errorf("replace path = %q, want ./driver", gotPath)
	}
	if !reflect.DeepEqual(gotArgv, []string{"driver"}) {
		t.Errorf("replace argv = %v, want [driver]", gotArgv)
	}
}

func TestAutoRebuild_MissingSource(t *testing.T) {
	t.Chdir(t.TempDir())
	e, code := fatalEngine(t)

	e.AutoRebuild("missing.c")
	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
}

func TestAutoRebuild_RebuildFailureIsFatal(t *testing.T) {
	skipOnWindows(t)
	t.Chdir(t.TempDir())
	e, code := fatalEngine(t)
	e.Compiler = "false" // compiler that always fails
	e.Flags = nil
	e.replace = func(string, []string) error {
		t.Fatal("replace called after failed rebuild")
		return nil
	}

	writeFileAt(t, "driver.c", time.Now())

	e.AutoRebuild("driver.c")
	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
}

func TestAutoRebuild_EmptySource(t *testing.T) {
	e, code := fatalEngine(t)
	e.AutoRebuild("")
	if *code != -1 {
		t.Errorf("exit(%d) called for empty source", *code)
	}
}

func TestFilenameNoExt(t *testing.T) {
	cases := map[string]string{
		"build.c":        "build",
		"dir/build.c":    "build",
		"build":          "build",
		"cmd/anvil/x.go": "x",
	}
	for in, want := range cases {
		if got := filenameNoExt(in); got != want {
			t.Errorf("filenameNoExt(%q) = %q, want %q", in, got, want)
		}
	}
}
