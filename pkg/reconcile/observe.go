package reconcile

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/filesystem"
	"github.com/arthur-debert/steamshots/pkg/logging"
)

// EntryKind classifies what Lstat saw at a destination path.
type EntryKind int

const (
	KindSymlink EntryKind = iota
	KindDir
	KindOther
)

// Observed is one destination entry: its kind, and for symlinks the raw
// link target.
type Observed struct {
	Kind   EntryKind
	Target string
}

// Observation is the destination tree as read for one pass: the first level
// under the root, and the children of every first-level directory. The
// reconciler never looks deeper.
type Observation struct {
	RootMissing bool
	Level1      map[string]Observed
	Level2      map[string]map[string]Observed
}

// Observe reads the destination root. A missing root observes as empty;
// any other read failure at the root is a hard error, since diffing
// against a misread tree could plan destructive nonsense.
func Observe(fsys filesystem.FS, root string) (*Observation, error) {
	logger := logging.GetLogger("reconcile")

	// The root itself may be a symlink into another disk; follow it.
	info, err := fsys.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return &Observation{
				RootMissing: true,
				Level1:      map[string]Observed{},
				Level2:      map[string]map[string]Observed{},
			}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFilesystemOp,
			"failed to read destination root %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrFilesystemOp,
			"destination root %s is not a directory", root)
	}

	obs := &Observation{
		Level1: map[string]Observed{},
		Level2: map[string]map[string]Observed{},
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystemOp,
			"failed to list destination root %s", root)
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(root, name)

		got, ok := classify(fsys, path)
		if !ok {
			logger.Debug().Str("path", path).Msg("Could not classify entry, leaving it alone")
			obs.Level1[name] = Observed{Kind: KindOther}
			continue
		}
		obs.Level1[name] = got

		if got.Kind != KindDir {
			continue
		}

		children := map[string]Observed{}
		childEntries, err := fsys.ReadDir(path)
		if err != nil {
			// An unreadable directory has unknown contents; it will never
			// be removed and its children never touched.
			logger.Debug().Str("path", path).Err(err).Msg("Could not list directory")
			obs.Level2[name] = children
			continue
		}
		for _, child := range childEntries {
			childPath := filepath.Join(path, child.Name())
			childGot, ok := classify(fsys, childPath)
			if !ok {
				childGot = Observed{Kind: KindOther}
			}
			children[child.Name()] = childGot
		}
		obs.Level2[name] = children
	}

	return obs, nil
}

func classify(fsys filesystem.FS, path string) (Observed, bool) {
	info, err := fsys.Lstat(path)
	if err != nil {
		return Observed{}, false
	}
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := fsys.Readlink(path)
		if err != nil {
			return Observed{}, false
		}
		return Observed{Kind: KindSymlink, Target: target}, true
	case info.IsDir():
		return Observed{Kind: KindDir}, true
	default:
		return Observed{Kind: KindOther}, true
	}
}
