// Package paths provides centralized path handling for steamshots.
//
// This package implements the XDG Base Directory specification and provides
// a consistent API for all path operations throughout the codebase.
// It handles:
//
//   - Pictures directory discovery (XDG user dirs with ~/Pictures fallback)
//   - Destination root construction for the screenshot farm
//   - XDG config and state locations for steamshots itself
//   - Path normalization and expansion
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - STEAMSHOTS_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/steamshots)
//   - XDG_STATE_HOME: Location for the log file (default: ~/.local/state)
//
// # Usage
//
//	import "github.com/arthur-debert/steamshots/pkg/paths"
//
//	// Create a new Paths instance
//	p, err := paths.New("")  // Auto-detect the Pictures directory
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Get various paths
//	dest := p.DestinationRoot("")       // /home/user/Pictures/Steam Screenshots
//	cfg := p.ConfigFilePath()           // $XDG_CONFIG_HOME/steamshots/config.toml
package paths
