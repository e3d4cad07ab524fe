package config

import (
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/steamshots/pkg/errors"
)

// Destination holds settings for where the screenshot farm is built
type Destination struct {
	// Pictures overrides the user's Pictures directory; empty means the
	// XDG user-dirs entry (with ~/Pictures as fallback)
	Pictures string `koanf:"pictures" toml:"pictures"`

	// Folder is the farm directory created under the pictures directory
	Folder string `koanf:"folder" toml:"folder"`
}

// Steam holds settings for locating the Steam installation
type Steam struct {
	// Root overrides the install root; empty means automatic probing
	Root string `koanf:"root" toml:"root"`
}

// Watch holds settings for watch mode
type Watch struct {
	// Debounce is the quiet window before a change burst triggers a pass
	Debounce time.Duration `koanf:"debounce" toml:"-"`
}

// Config is the root configuration structure
type Config struct {
	Destination Destination `koanf:"destination"`
	Steam       Steam       `koanf:"steam"`
	Watch       Watch       `koanf:"watch"`
}

// Validate checks constraints the loader cannot express
func (c *Config) Validate() error {
	if c.Destination.Folder == "" {
		return errors.New(errors.ErrConfigParse, "destination.folder must not be empty")
	}
	if c.Watch.Debounce <= 0 {
		return errors.Newf(errors.ErrConfigParse, "watch.debounce must be positive, got %s", c.Watch.Debounce)
	}
	return nil
}

// EffectiveTOML renders the merged configuration as TOML
func (c *Config) EffectiveTOML() ([]byte, error) {
	// Durations render as strings so the output round-trips through the loader
	view := struct {
		Destination Destination `toml:"destination"`
		Steam       Steam       `toml:"steam"`
		Watch       struct {
			Debounce string `toml:"debounce"`
		} `toml:"watch"`
	}{
		Destination: c.Destination,
		Steam:       c.Steam,
	}
	view.Watch.Debounce = c.Watch.Debounce.String()

	out, err := toml.Marshal(view)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
	}
	return out, nil
}
