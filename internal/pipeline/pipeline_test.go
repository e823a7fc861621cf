package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/deixis/anvil"
	"github.com/deixis/anvil/internal/config"
	"github.com/deixis/anvil/internal/report"
)

// memStore collects saved results in order.
type memStore struct {
	saved []*report.BuildResult
}

func (m *memStore) Save(r *report.BuildResult) error { m.saved = append(m.saved, r); return nil }

func (m *memStore) Load(id string) (*report.BuildResult, error) {
	for _, r := range m.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memStore) List() ([]string, error) {
	ids := make([]string, len(m.saved))
	for i, r := range m.saved {
		ids[i] = r.ID
	}
	return ids, nil
}

func newTestPipeline(t *testing.T, compiler string, targets ...config.Target) (*Pipeline, *memStore) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("pipeline tests stand in true/false for the compiler")
	}
	engine := anvil.NewEngine(anvil.NewLogger(anvil.LoggerOptions{Level: anvil.LevelNone}))
	engine.Compiler = compiler
	engine.Flags = nil

	store := &memStore{}
	cfg := &config.Config{Targets: targets}
	return New(engine, cfg, store, t.TempDir()), store
}

func writeSource(t *testing.T, p *Pipeline, name string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(p.Root, name)
	if err := os.WriteFile(path, []byte("int main(void) { return 0; }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestBuild_StaleTargetRuns(t *testing.T) {
	p, store := newTestPipeline(t, "true", config.Target{Name: "app", Source: "main.c"})
	writeSource(t, p, "main.c", time.Now())

	results, err := p.Build(nil, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Status != report.StatusOK {
		t.Errorf("Status = %s, want ok", results[0].Status)
	}
	if results[0].ID == "" {
		t.Error("result has no ID")
	}
	if len(store.saved) != 1 {
		t.Errorf("store has %d results, want 1", len(store.saved))
	}
}

func TestBuild_FreshTargetSkipped(t *testing.T) {
	p, _ := newTestPipeline(t, "anvil-no-such-compiler", config.Target{Name: "app", Source: "main.c"})
	now := time.Now()
	writeSource(t, p, "main.c", now.Add(-time.Hour))
	writeSource(t, p, "main", now) // artifact newer than source

	results, err := p.Build(nil, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if results[0].Status != report.StatusFresh {
		t.Errorf("Status = %s, want fresh", results[0].Status)
	}
}

func TestBuild_AlwaysRebuildsFresh(t *testing.T) {
	p, _ := newTestPipeline(t, "true", config.Target{Name: "app", Source: "main.c"})
	now := time.Now()
	writeSource(t, p, "main.c", now.Add(-time.Hour))
	writeSource(t, p, "main", now)

	results, err := p.Build(nil, true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if results[0].Status != report.StatusOK {
		t.Errorf("Status = %s, want ok with always", results[0].Status)
	}
}

func TestBuild_FailingTargetStopsRun(t *testing.T) {
	p, store := newTestPipeline(t, "false",
		config.Target{Name: "one", Source: "one.c"},
		config.Target{Name: "two", Source: "two.c"},
	)
	writeSource(t, p, "one.c", time.Now())
	writeSource(t, p, "two.c", time.Now())

	results, err := p.Build(nil, false)
	if err == nil {
		t.Fatal("expected build error")
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1 (run stops at first failure)", len(results))
	}
	if results[0].Status != report.StatusFailed {
		t.Errorf("Status = %s, want failed", results[0].Status)
	}
	if results[0].Error == "" {
		t.Error("failed result carries no error text")
	}
	if len(store.saved) != 1 {
		t.Errorf("store has %d results, want 1", len(store.saved))
	}
}

func TestBuild_NamedSubset(t *testing.T) {
	p, _ := newTestPipeline(t, "true",
		config.Target{Name: "one", Source: "one.c"},
		config.Target{Name: "two", Source: "two.c"},
	)
	writeSource(t, p, "two.c", time.Now())

	results, err := p.Build([]string{"two"}, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(results) != 1 || results[0].Target != "two" {
		t.Errorf("results = %+v, want just target two", results)
	}
}

func TestBuild_UnknownTarget(t *testing.T) {
	p, _ := newTestPipeline(t, "true", config.Target{Name: "app", Source: "main.c"})
	if _, err := p.Build([]string{"ghost"}, false); err == nil {
		t.Fatal("expected error for unknown target")
	}
}

func TestBuild_NoTargetsConfigured(t *testing.T) {
	p, _ := newTestPipeline(t, "true")
	if _, err := p.Build(nil, false); err == nil {
		t.Fatal("expected error with no targets configured")
	}
}

func TestBuild_AsyncGroup(t *testing.T) {
	p, _ := newTestPipeline(t, "true",
		config.Target{Name: "one", Source: "one.c", Async: true},
		config.Target{Name: "two", Source: "two.c", Async: true},
	)
	writeSource(t, p, "one.c", time.Now())
	writeSource(t, p, "two.c", time.Now())

	results, err := p.Build(nil, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, r := range results {
		if r.Status != report.StatusSpawned {
			t.Errorf("target %s status = %s, want spawned", r.Target, r.Status)
		}
	}
}

func TestBuild_AsyncFailureSurfacesAtWait(t *testing.T) {
	p, _ := newTestPipeline(t, "false", config.Target{Name: "app", Source: "main.c", Async: true})
	writeSource(t, p, "main.c", time.Now())

	results, err := p.Build(nil, false)
	if !errors.Is(err, anvil.ErrCommand) {
		t.Fatalf("err = %v, want ErrCommand from group wait", err)
	}
	// The spawn itself succeeded, so the per-target status is spawned.
	if results[0].Status != report.StatusSpawned {
		t.Errorf("Status = %s, want spawned", results[0].Status)
	}
}

func TestStatus(t *testing.T) {
	p, _ := newTestPipeline(t, "true",
		config.Target{Name: "stale", Source: "stale.c"},
		config.Target{Name: "fresh", Source: "fresh.c"},
	)
	now := time.Now()
	writeSource(t, p, "stale.c", now)
	writeSource(t, p, "fresh.c", now.Add(-time.Hour))
	writeSource(t, p, "fresh", now)

	statuses, err := p.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("len = %d, want 2", len(statuses))
	}
	if statuses[0].Fresh {
		t.Error("stale target reported fresh")
	}
	if !statuses[1].Fresh {
		t.Error("fresh target reported stale")
	}
}
