// Package unlink implements the unlink command: it tears the screenshot
// farm down by reconciling against an empty desired state.
package unlink

import (
	"context"

	"github.com/arthur-debert/steamshots/pkg/commands/internal"
	"github.com/arthur-debert/steamshots/pkg/logging"
	"github.com/arthur-debert/steamshots/pkg/reconcile"
)

// Options defines the options for the Unlink command.
type Options struct {
	// ConfigPath overrides the user config file location.
	ConfigPath string
	// Destination overrides the farm root completely.
	Destination string
	// Folder overrides the farm directory name under the pictures dir.
	Folder string
	// DryRun reports what would be removed without touching disk.
	DryRun bool
}

// Unlink removes every managed link under the destination along with the
// account directories those removals empty out. Steam is never consulted,
// so unlink keeps working after Steam itself is uninstalled. Anything the
// tool did not create stays exactly where it is.
func Unlink(ctx context.Context, opts Options) (*reconcile.Report, error) {
	log := logging.GetLogger("commands.unlink")
	log.Debug().Str("command", "Unlink").Msg("Executing command")

	settings, err := internal.Resolve(internal.SetupOptions{
		ConfigPath:  opts.ConfigPath,
		Destination: opts.Destination,
		Folder:      opts.Folder,
	})
	if err != nil {
		return nil, err
	}

	rec := reconcile.New(reconcile.Options{
		DestinationRoot: settings.DestinationRoot,
		DryRun:          opts.DryRun,
	})

	report, err := rec.Teardown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Unlink failed")
		return nil, err
	}

	log.Info().Str("command", "Unlink").Msg("Command finished")
	return report, nil
}
