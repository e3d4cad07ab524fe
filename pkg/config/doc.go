// Package config loads the steamshots configuration.
//
// Four layers merge in order, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, ~/.config/steamshots/config.toml by default
//  3. STEAMSHOTS_ environment variables, where the rest of the
//     variable name maps to a key path (STEAMSHOTS_WATCH_DEBOUNCE
//     sets watch.debounce)
//  4. programmatic overrides, which is how command flags land
//
// Durations accept Go syntax such as "2s" or "750ms".
package config
