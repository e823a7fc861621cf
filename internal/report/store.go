// Package report persists the outcome of build runs so past runs can
// be inspected after the fact, from the CLI or over MCP.
package report

import "time"

// Status classifies the outcome of building one target.
type Status string

const (
	// StatusFresh means the target was already up to date and nothing ran.
	StatusFresh Status = "fresh"
	// StatusOK means the compile command ran and exited zero.
	StatusOK Status = "ok"
	// StatusFailed means the compile command could not be spawned or
	// exited nonzero.
	StatusFailed Status = "failed"
	// StatusSpawned means the target was started asynchronously; its
	// real outcome is folded into the group result.
	StatusSpawned Status = "spawned"
)

// BuildResult records one target build within a run.
type BuildResult struct {
	ID     string   `json:"id"`
	Target string   `json:"target"`
	Argv   []string `json:"argv,omitempty"`
	Status Status   `json:"status"`
	Output string   `json:"output,omitempty"` // artifact path
	Error  string   `json:"error,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Failed reports whether the build did not produce a good artifact.
func (r *BuildResult) Failed() bool { return r.Status == StatusFailed }

// Store persists and retrieves build results.
type Store interface {
	Save(result *BuildResult) error
	Load(id string) (*BuildResult, error)
	// List returns the IDs of all stored results, oldest first.
	List() ([]string, error)
}
