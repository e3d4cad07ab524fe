package link

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/testutil"
)

const steam64Base uint64 = 76561197960265728

func isolateUserConfig(t *testing.T) {
	t.Helper()
	t.Setenv("STEAMSHOTS_CONFIG_DIR", t.TempDir())
}

func steamWithOneGame(t *testing.T) *testutil.SteamRoot {
	t.Helper()
	env := testutil.NewSteamRoot(t)
	env.AddLoginUser(steam64Base+100, "Alice")
	env.AddInstalledApp(620, "Portal 2")
	env.AddScreenshots(100, 620, "shot.jpg")
	return env
}

func TestLinkBuildsFarm(t *testing.T) {
	isolateUserConfig(t)
	env := steamWithOneGame(t)
	dest := filepath.Join(t.TempDir(), "Steam Screenshots")

	report, err := Link(context.Background(), Options{
		Destination: dest,
		SteamRoot:   env.Root,
	})

	require.NoError(t, err)
	assert.Equal(t, dest, report.Root)
	assert.Len(t, report.Created, 1)
	testutil.AssertSymlinkTo(t, filepath.Join(dest, "Alice", "Portal 2"),
		filepath.Join(env.RemoteRoot(100), "620", "screenshots"))
}

func TestLinkDryRunTouchesNothing(t *testing.T) {
	isolateUserConfig(t)
	env := steamWithOneGame(t)
	dest := filepath.Join(t.TempDir(), "Steam Screenshots")

	report, err := Link(context.Background(), Options{
		Destination: dest,
		SteamRoot:   env.Root,
		DryRun:      true,
	})

	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Len(t, report.Created, 1)
	testutil.AssertNotExists(t, dest)
}

func TestLinkResolvesDestinationFromConfig(t *testing.T) {
	isolateUserConfig(t)
	env := steamWithOneGame(t)
	pictures := t.TempDir()
	t.Setenv("STEAMSHOTS_DESTINATION_PICTURES", pictures)

	report, err := Link(context.Background(), Options{
		Folder:    "Shots",
		SteamRoot: env.Root,
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(pictures, "Shots"), report.Root)
	testutil.AssertIsDir(t, filepath.Join(pictures, "Shots", "Alice"))
}

func TestLinkFailsWithoutSteam(t *testing.T) {
	isolateUserConfig(t)

	_, err := Link(context.Background(), Options{
		Destination: filepath.Join(t.TempDir(), "dest"),
		SteamRoot:   filepath.Join(t.TempDir(), "nope"),
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlatformNotFound))
}
