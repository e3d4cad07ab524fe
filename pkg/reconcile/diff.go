package reconcile

import (
	"path/filepath"
	"regexp"
	"sort"

	"github.com/arthur-debert/steamshots/pkg/logging"
	"github.com/arthur-debert/steamshots/pkg/plan"
)

// ChangeKind is one mutation the reconciler knows how to perform.
type ChangeKind int

const (
	RemoveLink ChangeKind = iota
	RemoveDir
	CreateDir
	CreateLink
	RetargetLink
)

func (k ChangeKind) String() string {
	switch k {
	case RemoveLink:
		return "remove_link"
	case RemoveDir:
		return "remove_dir"
	case CreateDir:
		return "create_dir"
	case CreateLink:
		return "create_link"
	case RetargetLink:
		return "retarget_link"
	}
	return "unknown"
}

// Change is one planned mutation, relative to the plan root.
type Change struct {
	Kind    ChangeKind
	RelPath string

	// Target is the link target for creates and retargets, and the removed
	// link's old target for removals.
	Target string

	// OldTarget is what a retargeted link pointed at before.
	OldTarget string
}

// Conflict is a desired path occupied by something that is not ours to
// replace. Conflicts are reported, never resolved by force.
type Conflict struct {
	RelPath string
	Reason  string
}

// ChangeSet is the ordered outcome of diffing desired against observed:
// stale links first, then emptied stale directories, then missing
// directories, then link creations and retargets.
type ChangeSet struct {
	Changes   []Change
	Conflicts []Conflict
	Unchanged int
}

// Empty reports whether the diff calls for no mutations at all.
func (cs *ChangeSet) Empty() bool {
	return len(cs.Changes) == 0
}

// managedTargetPattern recognizes link targets this tool plants: a
// screenshots directory under some account's 760/remote storage. Symlinks
// pointing anywhere else are someone else's and are never touched.
var managedTargetPattern = regexp.MustCompile(`[/\\]760[/\\]remote[/\\]\d+[/\\]screenshots$`)

func managedTarget(target string) bool {
	return managedTargetPattern.MatchString(target)
}

// Diff computes the change set that makes the observed tree match the plan.
// Pure: no filesystem access, deterministic output for identical inputs.
func Diff(p *plan.Plan, obs *Observation) *ChangeSet {
	logger := logging.GetLogger("reconcile")
	cs := &ChangeSet{}

	desiredDirs := make(map[string]bool, len(p.Dirs))
	for _, dir := range p.Dirs {
		desiredDirs[dir.RelPath] = true
	}

	// desired links grouped as dir -> name -> link
	desiredLinks := make(map[string]map[string]plan.Link, len(p.Dirs))
	for _, link := range p.Links {
		dir := filepath.Dir(link.RelPath)
		if desiredLinks[dir] == nil {
			desiredLinks[dir] = map[string]plan.Link{}
		}
		desiredLinks[dir][filepath.Base(link.RelPath)] = link
	}

	// Desired directories: create missing ones, flag occupied ones. A
	// missing destination root is created first, before anything under it.
	conflictedDirs := map[string]bool{}
	var createDirs []Change
	if obs.RootMissing && len(p.Dirs) > 0 {
		createDirs = append(createDirs, Change{Kind: CreateDir, RelPath: "."})
	}
	for _, dir := range sortedDirs(p.Dirs) {
		got, present := obs.Level1[dir.RelPath]
		switch {
		case !present:
			createDirs = append(createDirs, Change{Kind: CreateDir, RelPath: dir.RelPath})
		case got.Kind == KindDir:
			// already in place
		default:
			conflictedDirs[dir.RelPath] = true
			cs.Conflicts = append(cs.Conflicts, Conflict{
				RelPath: dir.RelPath,
				Reason:  "account directory path is occupied by " + describe(got),
			})
		}
	}

	// Desired links against what is there.
	var linkOps []Change
	for _, link := range p.Links {
		dir := filepath.Dir(link.RelPath)
		name := filepath.Base(link.RelPath)

		if conflictedDirs[dir] {
			cs.Conflicts = append(cs.Conflicts, Conflict{
				RelPath: link.RelPath,
				Reason:  "parent account directory path is occupied",
			})
			continue
		}

		got, present := obs.Level2[dir][name]
		switch {
		case !present:
			linkOps = append(linkOps, Change{Kind: CreateLink, RelPath: link.RelPath, Target: link.Target})
		case got.Kind == KindSymlink && got.Target == link.Target:
			cs.Unchanged++
		case got.Kind == KindSymlink:
			linkOps = append(linkOps, Change{
				Kind:      RetargetLink,
				RelPath:   link.RelPath,
				Target:    link.Target,
				OldTarget: got.Target,
			})
		default:
			cs.Conflicts = append(cs.Conflicts, Conflict{
				RelPath: link.RelPath,
				Reason:  "link path is occupied by " + describe(got),
			})
		}
	}

	// Stale links: ours by target shape, no longer desired.
	var removeLinks []Change
	staleRemoved := map[string]int{}
	for _, dirName := range sortedKeys(obs.Level2) {
		children := obs.Level2[dirName]
		for _, childName := range sortedKeys(children) {
			got := children[childName]
			if got.Kind != KindSymlink || !managedTarget(got.Target) {
				continue
			}
			if _, desired := desiredLinks[dirName][childName]; desired {
				continue
			}
			removeLinks = append(removeLinks, Change{
				Kind:    RemoveLink,
				RelPath: filepath.Join(dirName, childName),
				Target:  got.Target,
			})
			staleRemoved[dirName]++
		}
	}

	// Stale directories: a no-longer-desired directory goes only when
	// removing its stale links leaves it empty. Anything else stays.
	var removeDirs []Change
	for _, dirName := range sortedKeys(obs.Level1) {
		got := obs.Level1[dirName]
		if got.Kind != KindDir || desiredDirs[dirName] {
			continue
		}
		removed := staleRemoved[dirName]
		if removed == 0 {
			continue
		}
		if removed == len(obs.Level2[dirName]) {
			removeDirs = append(removeDirs, Change{Kind: RemoveDir, RelPath: dirName})
		} else {
			logger.Debug().Str("dir", dirName).Msg("Stale directory keeps foreign entries, leaving it")
		}
	}

	cs.Changes = append(cs.Changes, removeLinks...)
	cs.Changes = append(cs.Changes, removeDirs...)
	cs.Changes = append(cs.Changes, createDirs...)
	cs.Changes = append(cs.Changes, linkOps...)
	return cs
}

func describe(got Observed) string {
	switch got.Kind {
	case KindDir:
		return "a real directory"
	case KindSymlink:
		return "a foreign symlink"
	default:
		return "a file"
	}
}

func sortedDirs(dirs []plan.Dir) []plan.Dir {
	out := make([]plan.Dir, len(dirs))
	copy(out, dirs)
	sort.Slice(out, func(i, j int) bool { return out[i].RelPath < out[j].RelPath })
	return out
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
