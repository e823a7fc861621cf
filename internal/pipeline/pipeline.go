// Package pipeline drives configured build targets through the build
// engine and records the outcome of each.
package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/deixis/anvil"
	"github.com/deixis/anvil/internal/config"
	"github.com/deixis/anvil/internal/report"
)

// Pipeline builds the targets of one project.
type Pipeline struct {
	Engine *anvil.Engine
	Config *config.Config
	Store  report.Store
	Root   string // project root; target paths are relative to it
}

// New assembles a pipeline. The engine's compiler settings are taken
// as-is; apply config overrides before calling.
func New(engine *anvil.Engine, cfg *config.Config, store report.Store, root string) *Pipeline {
	return &Pipeline{Engine: engine, Config: cfg, Store: store, Root: root}
}

// Build compiles the named targets in declaration order, or every
// configured target when names is empty. Fresh targets are skipped
// unless always is set. Synchronous targets stop the run on failure;
// asynchronous ones are collected into a group that is always drained
// before Build returns. One result is recorded per target either way.
func (p *Pipeline) Build(names []string, always bool) ([]*report.BuildResult, error) {
	targets, err := p.resolve(names)
	if err != nil {
		return nil, err
	}

	var results []*report.BuildResult
	var group anvil.Group
	groupHasWork := false

	for _, t := range targets {
		res := &report.BuildResult{
			ID:        uuid.NewString(),
			Target:    t.Name,
			StartedAt: time.Now(),
		}

		cmd := p.command(t, &group)
		res.Argv = cmd.Args()
		res.Output = cmd.Output

		verdict, err := p.Engine.NeedsRebuild(cmd.Output, cmd.Source)
		if err != nil {
			cmd.Release()
			res.Status = report.StatusFailed
			res.Error = err.Error()
			results = p.record(results, res)
			p.drain(&group, groupHasWork)
			return results, fmt.Errorf("target %s: %w", t.Name, err)
		}
		if verdict == anvil.Fresh && !always {
			cmd.Release()
			res.Status = report.StatusFresh
			results = p.record(results, res)
			continue
		}

		if err := p.Engine.RunAlways(cmd); err != nil {
			res.Status = report.StatusFailed
			res.Error = err.Error()
			res.Duration = time.Since(res.StartedAt)
			results = p.record(results, res)
			p.drain(&group, groupHasWork)
			return results, fmt.Errorf("target %s: %w", t.Name, err)
		}

		if t.Async {
			res.Status = report.StatusSpawned
			groupHasWork = true
		} else {
			res.Status = report.StatusOK
		}
		res.Duration = time.Since(res.StartedAt)
		results = p.record(results, res)
	}

	if groupHasWork && !p.Engine.WaitGroup(&group) {
		return results, fmt.Errorf("async target group: %w", anvil.ErrCommand)
	}
	return results, nil
}

// TargetStatus is one row of a Status report.
type TargetStatus struct {
	Name   string `json:"name"`
	Output string `json:"output"`
	Fresh  bool   `json:"fresh"`
}

// Status reports the freshness of every configured target without
// building anything.
func (p *Pipeline) Status() ([]TargetStatus, error) {
	targets, err := p.resolve(nil)
	if err != nil {
		return nil, err
	}

	var out []TargetStatus
	for _, t := range targets {
		source, output := p.paths(t)
		verdict, err := p.Engine.NeedsRebuild(output, source)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", t.Name, err)
		}
		out = append(out, TargetStatus{
			Name:   t.Name,
			Output: output,
			Fresh:  verdict == anvil.Fresh,
		})
	}
	return out, nil
}

// resolve maps names to configured targets, or all targets for an
// empty names list.
func (p *Pipeline) resolve(names []string) ([]config.Target, error) {
	if len(names) == 0 {
		if len(p.Config.Targets) == 0 {
			return nil, fmt.Errorf("no targets configured")
		}
		return p.Config.Targets, nil
	}

	out := make([]config.Target, 0, len(names))
	for _, name := range names {
		t, ok := p.Config.FindTarget(name)
		if !ok {
			return nil, fmt.Errorf("unknown target %q", name)
		}
		out = append(out, t)
	}
	return out, nil
}

// command assembles the compile command for t in the default shape:
// compiler [flags...] source -o output.
func (p *Pipeline) command(t config.Target, group *anvil.Group) *anvil.Command {
	source, output := p.paths(t)

	cmd := &anvil.Command{Source: source, Output: output}
	cmd.Append(p.Engine.Compiler)
	cmd.Append(p.Config.TargetFlags(t)...)
	cmd.Append(source, "-o", output)

	if t.Async {
		cmd.Async = true
		cmd.Group = group
	}
	return cmd
}

// paths resolves a target's source and output relative to the project
// root.
func (p *Pipeline) paths(t config.Target) (source, output string) {
	source = filepath.Join(p.Root, t.Source)
	out := t.Output
	if out == "" {
		base := filepath.Base(t.Source)
		out = base[:len(base)-len(filepath.Ext(base))]
	}
	return source, filepath.Join(p.Root, out)
}

func (p *Pipeline) record(results []*report.BuildResult, res *report.BuildResult) []*report.BuildResult {
	if err := p.Store.Save(res); err != nil {
		p.Engine.Log.Warnf("save result %s: %v", res.ID, err)
	}
	return append(results, res)
}

// drain waits out any pending async work so a failed run does not leak
// children.
func (p *Pipeline) drain(group *anvil.Group, hasWork bool) {
	if hasWork {
		p.Engine.WaitGroup(group)
	}
}
