package unlink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/steamshots/pkg/commands/link"
	"github.com/arthur-debert/steamshots/pkg/testutil"
)

const steam64Base uint64 = 76561197960265728

func isolateUserConfig(t *testing.T) {
	t.Helper()
	t.Setenv("STEAMSHOTS_CONFIG_DIR", t.TempDir())
}

func linkedFarm(t *testing.T) (env *testutil.SteamRoot, dest string) {
	t.Helper()
	env = testutil.NewSteamRoot(t)
	env.AddLoginUser(steam64Base+100, "Alice")
	env.AddInstalledApp(400, "Portal 2")
	env.AddInstalledApp(620, "Portal")
	env.AddScreenshots(100, 400, "1.jpg")
	env.AddScreenshots(100, 620, "2.jpg")

	dest = filepath.Join(t.TempDir(), "Steam Screenshots")
	_, err := link.Link(context.Background(), link.Options{Destination: dest, SteamRoot: env.Root})
	require.NoError(t, err)
	return env, dest
}

func TestUnlinkRemovesFarm(t *testing.T) {
	isolateUserConfig(t)
	_, dest := linkedFarm(t)
	testutil.WriteFile(t, filepath.Join(dest, "notes.txt"), "keep me")

	report, err := Unlink(context.Background(), Options{Destination: dest})

	require.NoError(t, err)
	assert.Len(t, report.Removed, 2)
	assert.Equal(t, []string{filepath.Join(dest, "Alice")}, report.RemovedDirs)

	testutil.AssertNotExists(t, filepath.Join(dest, "Alice"))
	testutil.AssertIsFile(t, filepath.Join(dest, "notes.txt"))
}

func TestUnlinkWorksAfterSteamIsGone(t *testing.T) {
	isolateUserConfig(t)
	env, dest := linkedFarm(t)
	require.NoError(t, os.RemoveAll(env.Root))

	report, err := Unlink(context.Background(), Options{Destination: dest})

	require.NoError(t, err)
	assert.Len(t, report.Removed, 2)
	testutil.AssertNotExists(t, filepath.Join(dest, "Alice"))
}

func TestUnlinkDryRun(t *testing.T) {
	isolateUserConfig(t)
	env, dest := linkedFarm(t)

	report, err := Unlink(context.Background(), Options{Destination: dest, DryRun: true})

	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Len(t, report.Removed, 2)
	testutil.AssertSymlinkTo(t, filepath.Join(dest, "Alice", "Portal 2"),
		filepath.Join(env.RemoteRoot(100), "400", "screenshots"))
}

func TestUnlinkMissingDestination(t *testing.T) {
	isolateUserConfig(t)

	report, err := Unlink(context.Background(), Options{
		Destination: filepath.Join(t.TempDir(), "never-created"),
	})

	require.NoError(t, err)
	assert.True(t, report.Converged())
}
