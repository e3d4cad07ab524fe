// Package link implements the link command: one reconciliation pass that
// builds or repairs the screenshot farm.
package link

import (
	"context"

	"github.com/arthur-debert/steamshots/pkg/commands/internal"
	"github.com/arthur-debert/steamshots/pkg/logging"
	"github.com/arthur-debert/steamshots/pkg/reconcile"
)

// Options defines the options for the Link command.
type Options struct {
	// ConfigPath overrides the user config file location.
	ConfigPath string
	// Destination overrides the farm root completely.
	Destination string
	// Folder overrides the farm directory name under the pictures dir.
	Folder string
	// SteamRoot overrides Steam installation probing.
	SteamRoot string
	// DryRun reports what would change without touching disk.
	DryRun bool
}

// Link runs one reconciliation pass and returns its report. Conflicts and
// per-entry failures ride on the report; only a missing Steam installation
// or an unreadable destination root comes back as an error.
func Link(ctx context.Context, opts Options) (*reconcile.Report, error) {
	log := logging.GetLogger("commands.link")
	log.Debug().Str("command", "Link").Msg("Executing command")

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
		DryRun:          opts.DryRun,
	})

	report, err := rec.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Link failed")
		return nil, err
	}

	log.Info().Str("command", "Link").Msg("Command finished")
	return report, nil
}
