package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	sserrors "github.com/arthur-debert/steamshots/pkg/errors"
)

// EnvPrefix is the prefix for environment variable overrides.
// STEAMSHOTS_WATCH_DEBOUNCE=5s maps to watch.debounce.
const EnvPrefix = "STEAMSHOTS_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// DefaultTOML returns the embedded default configuration file
func DefaultTOML() []byte {
	return defaultConfig
}

// Default returns the configuration with only the embedded defaults applied
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// The embedded defaults always parse; reaching this means the
		// user file or environment is broken, which Load reports to
		// callers that care.
		return &Config{}
	}
	return cfg
}

// Overrides are programmatic settings, keyed by dotted config path
// ("steam.root"). The command layer feeds flag values through here.
type Overrides map[string]interface{}

// Load builds the effective configuration:
//
//  1. embedded defaults
//  2. the user file (explicit path, or the XDG location when path is empty)
//  3. STEAMSHOTS_ environment variables
func Load(path string) (*Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with a final layer of programmatic overrides
// on top.
func LoadWithOverrides(path string, overrides Overrides) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, sserrors.Wrap(err, sserrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file
	explicit := path != ""
	if !explicit {
		path = userConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, sserrors.Wrapf(err, sserrors.ErrConfigParse, "failed to load config from %s", path)
			}
		} else if explicit {
			return nil, sserrors.Wrapf(err, sserrors.ErrConfigLoad, "config file not readable: %s", path)
		}
	}

	// 3. Environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, sserrors.Wrap(err, sserrors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Programmatic overrides (flag values)
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, sserrors.Wrap(err, sserrors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, sserrors.Wrap(err, sserrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// userConfigPath returns the default user config location. Resolved here
// rather than through pkg/paths so that config stays import-light.
func userConfigPath() string {
	if dir := os.Getenv("STEAMSHOTS_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "config.toml")
	}
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "steamshots", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "steamshots", "config.toml")
}
