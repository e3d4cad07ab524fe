package reconcile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/logging"
	"github.com/arthur-debert/steamshots/pkg/plan"
)

// Failure is one change that could not be applied. The pass keeps going;
// the next pass gets another chance at the same change.
type Failure struct {
	RelPath string
	Op      string
	Err     error
}

// ApplyResult records what a pass actually did.
type ApplyResult struct {
	Applied  []Change
	Failures []Failure
}

// Executor applies change sets through synthfs.
type Executor struct {
	logger zerolog.Logger
	fs     filesystem.FullFileSystem
	dryRun bool
}

// NewExecutor creates an executor rooted at the OS filesystem. With dryRun
// set it records every change as applied without touching disk.
func NewExecutor(dryRun bool) *Executor {
	osfs := filesystem.NewOSFileSystem("/")
	pathAwareFS := synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()

	return &Executor{
		logger: logging.GetLogger("reconcile.apply"),
		fs:     pathAwareFS,
		dryRun: dryRun,
	}
}

// Apply executes the change set in order. Each change runs as its own
// synthfs pipeline so one failed entry never blocks the rest of the pass.
func (e *Executor) Apply(ctx context.Context, p *plan.Plan, cs *ChangeSet) *ApplyResult {
	out := &ApplyResult{}
	if cs.Empty() {
		return out
	}

	sfs := synthfs.New()
	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	for _, change := range cs.Changes {
		abs := p.AbsPath(change.RelPath)

		if e.dryRun {
			e.logger.Info().
				Str("op", change.Kind.String()).
				Str("path", abs).
				Msg("Dry run, would apply")
			out.Applied = append(out.Applied, change)
			continue
		}

		op := e.buildOperation(sfs, change, abs)
		result, err := synthfs.RunWithOptions(ctx, e.fs, options, op)
		if err == nil {
			err = firstOperationError(result)
		}
		if err != nil {
			e.logger.Warn().
				Err(err).
				Str("op", change.Kind.String()).
				Str("path", abs).
				Msg("Change failed, continuing with the rest")
			out.Failures = append(out.Failures, Failure{
				RelPath: change.RelPath,
				Op:      change.Kind.String(),
				Err:     classifyFailure(change, abs, err),
			})
			continue
		}

		e.logger.Debug().
			Str("op", change.Kind.String()).
			Str("path", abs).
			Msg("Change applied")
		out.Applied = append(out.Applied, change)
	}

	return out
}

func (e *Executor) buildOperation(sfs *synthfs.SynthFS, change Change, abs string) synthfs.Operation {
	id := fmt.Sprintf("%s_%s_%d",
		change.Kind, filepath.Base(change.RelPath), time.Now().UnixNano())
	target := change.Target

	switch change.Kind {
	case CreateDir:
		return sfs.CreateDirWithID(id, abs, 0755)
	case CreateLink:
		return sfs.CreateSymlinkWithID(id, target, abs)
	case RetargetLink:
		return sfs.CustomOperationWithID(id, func(ctx context.Context, fs filesystem.FileSystem) error {
			if err := fs.Remove(abs); err != nil && !os.IsNotExist(err) {
				return err
			}
			return fs.Symlink(target, abs)
		})
	default:
		// RemoveLink and RemoveDir. Remove has os.Remove semantics: it
		// refuses non-empty directories, so nothing recursive can happen
		// here no matter what the diff computed.
		return sfs.CustomOperationWithID(id, func(ctx context.Context, fs filesystem.FileSystem) error {
			if err := fs.Remove(abs); err != nil && !os.IsNotExist(err) {
				return err
			}
			return nil
		})
	}
}

// classifyFailure assigns the error code for a failed change. A creation
// whose path now holds a non-link occupant lost a race with foreign data
// appearing between observe and apply; that is a conflict, not an IO fault.
func classifyFailure(change Change, abs string, err error) error {
	creating := change.Kind == CreateDir || change.Kind == CreateLink ||
		change.Kind == RetargetLink
	if creating {
		if info, statErr := os.Lstat(abs); statErr == nil && info.Mode()&os.ModeSymlink == 0 {
			return errors.Wrap(err, errors.ErrLinkConflict, "path became occupied")
		}
	}
	return errors.Wrap(err, errors.ErrFilesystemOp, "apply "+change.Kind.String())
}

func firstOperationError(result *synthfs.Result) error {
	if result == nil {
		return nil
	}
	for _, opResult := range result.GetOperations() {
		synthfsResult, ok := opResult.(synthfs.OperationResult)
		if !ok {
			continue
		}
		if synthfsResult.Status == synthfs.StatusSuccess {
			continue
		}
		if synthfsResult.Error != nil {
			return synthfsResult.Error
		}
		return fmt.Errorf("operation %s ended with status %v",
			synthfsResult.OperationID, synthfsResult.Status)
	}
	return nil
}
