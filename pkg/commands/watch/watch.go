// Package watch implements the watch command: continuous reconciliation
// driven by filesystem notifications on the Steam screenshot storage.
package watch

import (
	"context"
	"time"

	"github.com/arthur-debert/steamshots/pkg/commands/internal"
	"github.com/arthur-debert/steamshots/pkg/logging"
	"github.com/arthur-debert/steamshots/pkg/reconcile"
	"github.com/arthur-debert/steamshots/pkg/watcher"
)

// Options defines the options for the Watch command.
type Options struct {
	// ConfigPath overrides the user config file location.
	ConfigPath string
	// Destination overrides the farm root completely.
	Destination string
	// Folder overrides the farm directory name under the pictures dir.
	Folder string
	// SteamRoot overrides Steam installation probing.
	SteamRoot string
	// DryRun makes every pass report-only.
	DryRun bool
	// Debounce overrides the configured quiet window when positive.
	Debounce time.Duration
	// OnReport is invoked after every completed pass.
	OnReport func(*reconcile.Report)
	// OnState is invoked on watch loop state transitions.
	OnState func(watcher.State)
}

// Watch runs reconciliation passes until ctx is canceled: one immediately,
// then one after each debounced burst of changes in the watched storage
// directories. The initial pass failing is fatal; later pass failures are
// logged and watching continues.
func Watch(ctx context.Context, opts Options) error {
	log := logging.GetLogger("commands.watch")
	log.Debug().Str("command", "Watch").Msg("Executing command")

	settings, err := internal.Resolve(internal.SetupOptions{
		ConfigPath:  opts.ConfigPath,
		Destination: opts.Destination,
		Folder:      opts.Folder,
		SteamRoot:   opts.SteamRoot,
	})
	if err != nil {
		return err
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = settings.Config.Watch.Debounce
	}

	rec := reconcile.New(reconcile.Options{
		SteamRoot:       settings.Config.Steam.Root,
		DestinationRoot: settings.DestinationRoot,
		DryRun:          opts.DryRun,
	})

	w, err := watcher.New(rec.Run, watcher.Options{
		Debounce: debounce,
		OnReport: opts.OnReport,
		OnState:  opts.OnState,
	})
	if err != nil {
		return err
	}

	if err := w.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Watch failed")
		return err
	}

	log.Info().Str("command", "Watch").Msg("Command finished")
	return nil
}
