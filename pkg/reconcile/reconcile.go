package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/steamshots/pkg/catalog"
	"github.com/arthur-debert/steamshots/pkg/filesystem"
	"github.com/arthur-debert/steamshots/pkg/logging"
	"github.com/arthur-debert/steamshots/pkg/plan"
	"github.com/arthur-debert/steamshots/pkg/steam"
)

// Options configure a reconciliation pass.
type Options struct {
	// SteamRoot overrides platform probing when non-empty.
	SteamRoot string

	// DestinationRoot is the absolute path of the link farm root.
	DestinationRoot string

	// DryRun computes and reports changes without touching disk.
	DryRun bool
}

// Analysis is everything a pass knows before mutating anything: the
// located installation, the metadata catalogue, the desired state and the
// change set that separates it from what is on disk. The status command
// renders an Analysis directly, with no mutation step at all.
type Analysis struct {
	Installation steam.Installation
	Catalog      *catalog.Catalog
	Issues       []catalog.Issue
	Plan         *plan.Plan
	Observation  *Observation
	Changes      *ChangeSet
}

// Reconciler drives full passes: observe, diff, apply. It keeps no state
// between passes; every pass rebuilds its picture of the world from disk.
type Reconciler struct {
	logger   zerolog.Logger
	fs       filesystem.FS
	executor *Executor
	opts     Options
}

func New(opts Options) *Reconciler {
	return &Reconciler{
		logger:   logging.GetLogger("reconcile"),
		fs:       filesystem.NewOS(),
		executor: NewExecutor(opts.DryRun),
		opts:     opts,
	}
}

// Analyze runs the read-only half of a pass. A missing Steam installation
// is the one fatal condition; every degraded metadata source surfaces as
// an issue on the returned analysis instead.
func (r *Reconciler) Analyze() (*Analysis, error) {
	inst, err := steam.Locate(r.fs, r.opts.SteamRoot)
	if err != nil {
		return nil, err
	}

	cat, issues := catalog.NewBuilder(r.fs).Build(inst)
	desired := plan.Build(cat, r.opts.DestinationRoot)

	obs, err := Observe(r.fs, r.opts.DestinationRoot)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Installation: inst,
		Catalog:      cat,
		Issues:       issues,
		Plan:         desired,
		Observation:  obs,
		Changes:      Diff(desired, obs),
	}, nil
}

// Run performs one full reconciliation pass and reports what happened.
// Running it again immediately against unchanged inputs converges: the
// second report carries no changes.
func (r *Reconciler) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	analysis, err := r.Analyze()
	if err != nil {
		return nil, err
	}

	applied := r.executor.Apply(ctx, analysis.Plan, analysis.Changes)
	report := r.assemble(start, analysis, applied)

	r.logger.Info().
		Str("passID", report.PassID).
		Int("accounts", report.Accounts).
		Int("games", report.Games).
		Int("created", len(report.Created)).
		Int("retargeted", len(report.Retargeted)).
		Int("removed", len(report.Removed)).
		Int("unchanged", report.Unchanged).
		Int("conflicts", len(report.Conflicts)).
		Int("failures", len(report.Failures)).
		Bool("dryRun", report.DryRun).
		Dur("duration", report.Duration).
		Msg("Reconciliation pass finished")

	return report, nil
}

// Teardown reconciles against an empty desired state: every managed link
// under the destination is removed, along with account directories the
// removals empty out. It never reads Steam metadata, so it works even
// after Steam itself is uninstalled. Foreign files and links are left
// alone exactly as in a normal pass.
func (r *Reconciler) Teardown(ctx context.Context) (*Report, error) {
	start := time.Now()

	desired := &plan.Plan{Root: r.opts.DestinationRoot}
	obs, err := Observe(r.fs, r.opts.DestinationRoot)
	if err != nil {
		return nil, err
	}

	changes := Diff(desired, obs)
	applied := r.executor.Apply(ctx, desired, changes)

	report := &Report{
		PassID:    uuid.New().String(),
		Start:     start,
		Duration:  time.Since(start),
		DryRun:    r.opts.DryRun,
		Root:      r.opts.DestinationRoot,
		Unchanged: changes.Unchanged,
		Conflicts: changes.Conflicts,
		Failures:  applied.Failures,
	}
	bucketApplied(report, desired, applied)

	r.logger.Info().
		Str("passID", report.PassID).
		Int("removed", len(report.Removed)).
		Int("removedDirs", len(report.RemovedDirs)).
		Int("failures", len(report.Failures)).
		Bool("dryRun", report.DryRun).
		Dur("duration", report.Duration).
		Msg("Teardown pass finished")

	return report, nil
}

func (r *Reconciler) assemble(start time.Time, analysis *Analysis, applied *ApplyResult) *Report {
	report := &Report{
		PassID:     uuid.New().String(),
		Start:      start,
		Duration:   time.Since(start),
		DryRun:     r.opts.DryRun,
		Root:       r.opts.DestinationRoot,
		Accounts:   len(analysis.Catalog.Accounts),
		Games:      analysis.Catalog.GameCount(),
		Unchanged:  analysis.Changes.Unchanged,
		Conflicts:  analysis.Changes.Conflicts,
		Failures:   applied.Failures,
		Issues:     analysis.Issues,
		WatchRoots: analysis.Catalog.WatchRoots(),
	}
	bucketApplied(report, analysis.Plan, applied)
	return report
}

func bucketApplied(report *Report, p *plan.Plan, applied *ApplyResult) {
	for _, change := range applied.Applied {
		abs := p.AbsPath(change.RelPath)
		switch change.Kind {
		case CreateLink:
			report.Created = append(report.Created, LinkChange{Path: abs, Target: change.Target})
		case RetargetLink:
			report.Retargeted = append(report.Retargeted, LinkChange{
				Path:      abs,
				Target:    change.Target,
				OldTarget: change.OldTarget,
			})
		case RemoveLink:
			report.Removed = append(report.Removed, LinkChange{Path: abs, Target: change.Target})
		case CreateDir:
			report.CreatedDirs = append(report.CreatedDirs, abs)
		case RemoveDir:
			report.RemovedDirs = append(report.RemovedDirs, abs)
		}
	}
}
