// Package paths provides centralized path handling for steamshots.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/steamshots/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for steamshots
	EnvConfigDir = "STEAMSHOTS_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for steamshots-specific files
	AppDirName = "steamshots"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "steamshots.log"

	// DefaultFolderName is the destination folder created under Pictures
	DefaultFolderName = "Steam Screenshots"
)

// Paths provides centralized path management for steamshots
type Paths interface {
	PicturesDir() string
	UsedFallback() bool
	DestinationRoot(folderName string) string
	ConfigDir() string
	ConfigFilePath() string
	StateDir() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	// picturesDir is the user's Pictures directory
	picturesDir string

	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgState is the XDG state directory
	xdgState string

	// usedFallback indicates the XDG user dirs had no Pictures entry and
	// ~/Pictures was assumed (for warning display)
	usedFallback bool
}

// New creates a new Paths instance. If picturesDir is empty it is resolved
// from the XDG user directories, falling back to ~/Pictures.
func New(picturesDir string) (Paths, error) {
	p := &paths{}

	if picturesDir == "" {
		dir, usedFallback, err := findPicturesDir()
		if err != nil {
			return nil, err
		}
		p.picturesDir = dir
		p.usedFallback = usedFallback
	} else {
		p.picturesDir = expandHome(picturesDir)
	}

	absPictures, err := filepath.Abs(p.picturesDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for pictures dir")
	}
	p.picturesDir = absPictures

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// State directory - XDG doesn't provide StateHome, so we check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", AppDirName)
	}
}

// findPicturesDir resolves the user's Pictures directory:
// 1. the XDG user-dirs entry, when configured
// 2. ~/Pictures as fallback
func findPicturesDir() (string, bool, error) {
	if dir := xdg.UserDirs.Pictures; dir != "" {
		return dir, false, nil
	}

	home, err := GetHomeDirectory()
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrInvalidInput, "cannot resolve a pictures directory")
	}
	return filepath.Join(home, "Pictures"), true, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// PicturesDir returns the user's Pictures directory
func (p *paths) PicturesDir() string {
	return p.picturesDir
}

// UsedFallback returns true if ~/Pictures was assumed because the XDG user
// dirs carried no Pictures entry
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// DestinationRoot returns the screenshot farm root for the given folder name.
// An empty folder name selects the default.
func (p *paths) DestinationRoot(folderName string) string {
	if folderName == "" {
		folderName = DefaultFolderName
	}
	return filepath.Join(p.picturesDir, folderName)
}

// ConfigDir returns the XDG config directory for steamshots
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// ConfigFilePath returns the path to the user configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// StateDir returns the XDG state directory for steamshots
func (p *paths) StateDir() string {
	return p.xdgState
}

// LogFilePath returns the path to the steamshots log file
// Respects XDG_STATE_HOME if set
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	// Expand home directory
	expanded := expandHome(path)

	// Make absolute
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path")
	}

	// Clean the path
	return filepath.Clean(abs), nil
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get home directory")
	}
	return homeDir, nil
}

// IsWithin reports whether path sits inside parent after cleaning both.
func IsWithin(path, parent string) bool {
	path = filepath.Clean(path)
	parent = filepath.Clean(parent)

	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
