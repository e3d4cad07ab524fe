package steam

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/filesystem"
	"github.com/arthur-debert/steamshots/pkg/logging"
)

// Well-known locations inside an installation root.
const (
	loginUsersRelPath = "config/loginusers.vdf"
	userdataDirName   = "userdata"
	steamappsDirName  = "steamapps"

	// 760 is the pseudo-app Steam files screenshots under.
	remoteParent = "760"
	remoteChild  = "remote"

	shortcutsRelPath = "config/shortcuts.vdf"
)

// Installation is a located Steam root and its well-known paths.
type Installation struct {
	Root string
}

// LoginUsersPath returns config/loginusers.vdf.
func (i Installation) LoginUsersPath() string {
	return filepath.Join(i.Root, filepath.FromSlash(loginUsersRelPath))
}

// UserdataDir returns the userdata directory holding per-account state.
func (i Installation) UserdataDir() string {
	return filepath.Join(i.Root, userdataDirName)
}

// SteamappsDir returns the root library's steamapps directory.
func (i Installation) SteamappsDir() string {
	return filepath.Join(i.Root, steamappsDirName)
}

// AccountDir returns userdata/<id>.
func (i Installation) AccountDir(id uint32) string {
	return filepath.Join(i.UserdataDir(), strconv.FormatUint(uint64(id), 10))
}

// RemoteRoot returns userdata/<id>/760/remote, the parent of every
// screenshot directory the account owns.
func (i Installation) RemoteRoot(id uint32) string {
	return filepath.Join(i.AccountDir(id), remoteParent, remoteChild)
}

// ShortcutsPath returns userdata/<id>/config/shortcuts.vdf.
func (i Installation) ShortcutsPath(id uint32) string {
	return filepath.Join(i.AccountDir(id), filepath.FromSlash(shortcutsRelPath))
}

// ScreenshotsDir returns the screenshots directory for one app under the
// account's remote root.
func (i Installation) ScreenshotsDir(id uint32, appID uint64) string {
	return filepath.Join(i.RemoteRoot(id), strconv.FormatUint(appID, 10), "screenshots")
}

// Locate finds the Steam installation root.
//
// A non-empty override must name an existing directory; it is never silently
// ignored. Without an override the per-OS candidate list is probed and the
// first existing directory wins. No candidate existing is the one fatal
// discovery condition.
func Locate(fsys filesystem.FS, override string) (Installation, error) {
	logger := logging.GetLogger("steam")

	if override != "" {
		info, err := fsys.Stat(override)
		if err != nil {
			return Installation{}, errors.Wrapf(err, errors.ErrPlatformNotFound,
				"steam root %s does not exist", override).
				WithDetail("root", override)
		}
		if !info.IsDir() {
			return Installation{}, errors.Newf(errors.ErrPlatformNotFound,
				"steam root %s is not a directory", override).
				WithDetail("root", override)
		}
		logger.Debug().Str("root", override).Msg("Using explicit steam root")
		return Installation{Root: override}, nil
	}

	candidates := candidateRoots()
	for _, candidate := range candidates {
		info, err := fsys.Stat(candidate)
		if err != nil || !info.IsDir() {
			continue
		}
		logger.Debug().Str("root", candidate).Msg("Located steam root")
		return Installation{Root: candidate}, nil
	}

	return Installation{}, errors.New(errors.ErrPlatformNotFound,
		"no steam installation found").
		WithDetail("candidates", candidates)
}

// candidateRoots returns the per-OS probe list, most common install first.
func candidateRoots() []string {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		return []string{
			filepath.Join(home, "Library", "Application Support", "Steam"),
		}
	case "windows":
		return []string{
			`C:\Program Files (x86)\Steam`,
			`C:\Program Files\Steam`,
		}
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		return []string{
			filepath.Join(home, ".local", "share", "Steam"),
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".steam", "root"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", "data", "Steam"),
		}
	}
}
