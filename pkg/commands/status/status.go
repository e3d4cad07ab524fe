// Package status implements the status command: a read-only view of the
// screenshot farm showing each entry's state next to the metadata that
// produced it.
package status

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/steamshots/pkg/catalog"
	"github.com/arthur-debert/steamshots/pkg/commands/internal"
	"github.com/arthur-debert/steamshots/pkg/logging"
	"github.com/arthur-debert/steamshots/pkg/reconcile"
	"github.com/arthur-debert/steamshots/pkg/style"
)

// Options defines the options for the Status command.
type Options struct {
	// ConfigPath overrides the user config file location.
	ConfigPath string
	// Destination overrides the farm root completely.
	Destination string
	// Folder overrides the farm directory name under the pictures dir.
	Folder string
	// SteamRoot overrides Steam installation probing.
	SteamRoot string
}

// Result is the farm state broken down per account, ready for rendering.
type Result struct {
	// SteamRoot is the located Steam installation.
	SteamRoot string
	// Destination is the farm root the entries live under.
	Destination string
	// Accounts lists every account folder with its entries.
	Accounts []style.AccountStatus
	// Issues are the soft metadata failures from catalogue building.
	Issues []catalog.Issue
}

// Status analyzes the farm without mutating anything. Every desired entry
// is classified as linked, pending, stale or conflicting by comparing the
// desired state against what is on disk.
func Status(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.status")
	log.Debug().Str("command", "Status").Msg("Executing command")

	settings, err := internal.Resolve(internal.SetupOptions{
		ConfigPath:  opts.ConfigPath,
		Destination: opts.Destination,
		Folder:      opts.Folder,
		SteamRoot:   opts.SteamRoot,
	})
	if err != nil {
		return nil, err
	}

	rec := reconcile.New(reconcile.Options{
		SteamRoot:       settings.Config.Steam.Root,
		DestinationRoot: settings.DestinationRoot,
	})
	analysis, err := rec.Analyze()
	if err != nil {
		log.Error().Err(err).Msg("Status failed")
		return nil, err
	}

	result := &Result{
		SteamRoot:   analysis.Installation.Root,
		Destination: settings.DestinationRoot,
		Accounts:    accountStatuses(analysis),
		Issues:      analysis.Issues,
	}

	log.Info().Str("command", "Status").Msg("Command finished")
	return result, nil
}

// accountStatuses folds the desired plan and the pending change set into
// one per-account view. Desired entries classify as linked, pending or
// conflicting; removal changes surface as stale entries, including whole
// folders of accounts that have departed.
func accountStatuses(a *reconcile.Analysis) []style.AccountStatus {
	conflictByPath := make(map[string]string, len(a.Changes.Conflicts))
	for _, c := range a.Changes.Conflicts {
		conflictByPath[c.RelPath] = c.Reason
	}

	changeByPath := make(map[string]reconcile.Change)
	staleByDir := make(map[string][]reconcile.Change)
	for _, ch := range a.Changes.Changes {
		if ch.Kind == reconcile.RemoveLink {
			dir := filepath.Dir(ch.RelPath)
			staleByDir[dir] = append(staleByDir[dir], ch)
			continue
		}
		changeByPath[ch.RelPath] = ch
	}

	var out []style.AccountStatus
	desiredDirs := make(map[string]bool, len(a.Plan.Dirs))

	for _, dir := range a.Plan.Dirs {
		desiredDirs[dir.RelPath] = true
		as := style.AccountStatus{Name: dir.RelPath}

		for _, l := range a.Plan.Links {
			if filepath.Dir(l.RelPath) != dir.RelPath {
				continue
			}
			ls := style.LinkStatus{Name: filepath.Base(l.RelPath), Target: l.Target}
			if reason, ok := conflictByPath[l.RelPath]; ok {
				ls.Status = style.StatusConflict
				ls.Detail = reason
			} else if _, ok := changeByPath[l.RelPath]; ok {
				ls.Status = style.StatusPending
			} else {
				ls.Status = style.StatusLinked
			}
			as.Links = append(as.Links, ls)
		}

		for _, ch := range staleByDir[dir.RelPath] {
			as.Links = append(as.Links, style.LinkStatus{
				Name:   filepath.Base(ch.RelPath),
				Target: ch.Target,
				Status: style.StatusStale,
			})
		}

		as.Status = style.AggregateAccountStatus(as.Links)
		out = append(out, as)
	}

	// Account folders that only exist on disk: every entry is stale.
	staleDirs := make([]string, 0, len(staleByDir))
	for dir := range staleByDir {
		if !desiredDirs[dir] && dir != "." {
			staleDirs = append(staleDirs, dir)
		}
	}
	sort.Strings(staleDirs)

	for _, dir := range staleDirs {
		as := style.AccountStatus{Name: dir, Status: style.StatusStale}
		for _, ch := range staleByDir[dir] {
			as.Links = append(as.Links, style.LinkStatus{
				Name:   filepath.Base(ch.RelPath),
				Target: ch.Target,
				Status: style.StatusStale,
			})
		}
		out = append(out, as)
	}

	return out
}
