// Package internal holds the setup step shared by all steamshots commands:
// loading configuration, applying flag overrides and resolving the
// destination root.
package internal

import (
	"github.com/arthur-debert/steamshots/pkg/config"
	"github.com/arthur-debert/steamshots/pkg/logging"
	"github.com/arthur-debert/steamshots/pkg/paths"
)

// SetupOptions are the flag-level overrides every command accepts.
type SetupOptions struct {
	// ConfigPath overrides the user config file location. Empty means the
	// default XDG path.
	ConfigPath string

	// Destination overrides the farm root completely, bypassing the
	// pictures directory lookup.
	Destination string

	// Folder overrides destination.folder from the config.
	Folder string

	// SteamRoot overrides steam.root from the config.
	SteamRoot string
}

// Settings is the resolved environment a command operates in.
type Settings struct {
	// Config is the merged configuration after overrides.
	Config *config.Config

	// DestinationRoot is the absolute path of the farm root.
	DestinationRoot string
}

// Resolve loads configuration, applies the overrides and computes the
// destination root from the pictures directory when no explicit
// destination was given.
func Resolve(opts SetupOptions) (*Settings, error) {
	log := logging.GetLogger("commands.setup")

	overrides := config.Overrides{}
	if opts.Folder != "" {
		overrides["destination.folder"] = opts.Folder
	}
	if opts.SteamRoot != "" {
		overrides["steam.root"] = opts.SteamRoot
	}

	cfg, err := config.LoadWithOverrides(opts.ConfigPath, overrides)
	if err != nil {
		return nil, err
	}

	dest := opts.Destination
	if dest == "" {
		p, err := paths.New(cfg.Destination.Pictures)
		if err != nil {
			return nil, err
		}
		dest = p.DestinationRoot(cfg.Destination.Folder)
	}

	log.Debug().
		Str("destination", dest).
		Str("steamRoot", cfg.Steam.Root).
		Msg("Resolved command settings")

	return &Settings{Config: cfg, DestinationRoot: dest}, nil
}
