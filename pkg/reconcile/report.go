package reconcile

import (
	"time"

	"github.com/arthur-debert/steamshots/pkg/catalog"
)

// LinkChange is one symlink mutation as reported to the user, with
// absolute paths.
type LinkChange struct {
	Path      string
	Target    string
	OldTarget string
}

// Report is the full outcome of one reconciliation pass. It is assembled
// fresh each pass and never persisted.
type Report struct {
	PassID   string
	Start    time.Time
	Duration time.Duration
	DryRun   bool

	// Root is the destination root the pass ran against. Conflict and
	// failure paths are relative to it.
	Root string

	Accounts int
	Games    int

	Created    []LinkChange
	Retargeted []LinkChange
	Removed    []LinkChange
	Unchanged  int

	CreatedDirs []string
	RemovedDirs []string

	Conflicts []Conflict
	Failures  []Failure
	Issues    []catalog.Issue

	// WatchRoots are the directories a watch loop should subscribe to
	// after this pass, re-derived from the catalogue every time.
	WatchRoots []string
}

// Changed reports whether the pass mutated anything (or would have,
// under dry run).
func (r *Report) Changed() bool {
	return len(r.Created) > 0 || len(r.Retargeted) > 0 || len(r.Removed) > 0 ||
		len(r.CreatedDirs) > 0 || len(r.RemovedDirs) > 0
}

// Clean reports whether the pass finished without conflicts, failures or
// metadata issues.
func (r *Report) Clean() bool {
	return len(r.Conflicts) == 0 && len(r.Failures) == 0 && len(r.Issues) == 0
}

// Converged reports whether the tree already matched the desired state
// when the pass started.
func (r *Report) Converged() bool {
	return !r.Changed() && r.Clean()
}
