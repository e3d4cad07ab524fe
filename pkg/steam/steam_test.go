package steam_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sserrors "github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/filesystem"
	"github.com/arthur-debert/steamshots/pkg/steam"
	"github.com/arthur-debert/steamshots/pkg/testutil"
)

func TestLocateExplicitRoot(t *testing.T) {
	root := testutil.NewSteamRoot(t)

	inst, err := steam.Locate(filesystem.NewOS(), root.Root)
	require.NoError(t, err)
	assert.Equal(t, root.Root, inst.Root)
}

func TestLocateExplicitRootMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := steam.Locate(filesystem.NewOS(), missing)
	require.Error(t, err)
	assert.True(t, sserrors.IsErrorCode(err, sserrors.ErrPlatformNotFound))
}

func TestLocateExplicitRootNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "steam")
	testutil.WriteFile(t, file, "not a directory")

	_, err := steam.Locate(filesystem.NewOS(), file)
	require.Error(t, err)
	assert.True(t, sserrors.IsErrorCode(err, sserrors.ErrPlatformNotFound))
}

func TestLocateProbesCandidates(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("candidate probing is exercised on linux")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	candidate := filepath.Join(home, ".steam", "steam")
	testutil.MkdirAll(t, candidate)

	inst, err := steam.Locate(filesystem.NewOS(), "")
	require.NoError(t, err)
	assert.Equal(t, candidate, inst.Root)
}

func TestLocateNothingFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("candidates are fixed paths on windows")
	}

	t.Setenv("HOME", t.TempDir())

	_, err := steam.Locate(filesystem.NewOS(), "")
	require.Error(t, err)
	assert.True(t, sserrors.IsErrorCode(err, sserrors.ErrPlatformNotFound))
}

func TestInstallationPaths(t *testing.T) {
	inst := steam.Installation{Root: filepath.Join("/", "opt", "steam")}

	assert.Equal(t,
		filepath.Join("/", "opt", "steam", "config", "loginusers.vdf"),
		inst.LoginUsersPath())
	assert.Equal(t,
		filepath.Join("/", "opt", "steam", "userdata"),
		inst.UserdataDir())
	assert.Equal(t,
		filepath.Join("/", "opt", "steam", "steamapps"),
		inst.SteamappsDir())
	assert.Equal(t,
		filepath.Join("/", "opt", "steam", "userdata", "123", "760", "remote"),
		inst.RemoteRoot(123))
	assert.Equal(t,
		filepath.Join("/", "opt", "steam", "userdata", "123", "config", "shortcuts.vdf"),
		inst.ShortcutsPath(123))
	assert.Equal(t,
		filepath.Join("/", "opt", "steam", "userdata", "123", "760", "remote", "440", "screenshots"),
		inst.ScreenshotsDir(123, 440))
}
