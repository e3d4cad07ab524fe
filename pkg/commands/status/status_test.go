package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/steamshots/pkg/commands/link"
	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/style"
	"github.com/arthur-debert/steamshots/pkg/testutil"
)

const steam64Base uint64 = 76561197960265728

func isolateUserConfig(t *testing.T) {
	t.Helper()
	t.Setenv("STEAMSHOTS_CONFIG_DIR", t.TempDir())
}

func aliceWorld(t *testing.T) *testutil.SteamRoot {
	t.Helper()
	env := testutil.NewSteamRoot(t)
	env.AddLoginUser(steam64Base+100, "Alice")
	env.AddInstalledApp(400, "Portal 2")
	env.AddInstalledApp(620, "Portal")
	env.AddScreenshots(100, 400, "1.jpg")
	env.AddScreenshots(100, 620, "2.jpg")
	return env
}

func TestStatusFreshWorldIsAllPending(t *testing.T) {
	isolateUserConfig(t)
	env := aliceWorld(t)
	dest := filepath.Join(t.TempDir(), "Steam Screenshots")

	result, err := Status(Options{Destination: dest, SteamRoot: env.Root})

	require.NoError(t, err)
	assert.Equal(t, env.Root, result.SteamRoot)
	assert.Equal(t, dest, result.Destination)
	require.Len(t, result.Accounts, 1)

	alice := result.Accounts[0]
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, style.StatusPending, alice.Status)
	require.Len(t, alice.Links, 2)
	assert.Equal(t, "Portal 2", alice.Links[0].Name)
	assert.Equal(t, style.StatusPending, alice.Links[0].Status)
	assert.Equal(t, "Portal", alice.Links[1].Name)

	// Status is read-only: the farm must not have been created.
	testutil.AssertNotExists(t, dest)
}

func TestStatusLinkedWorld(t *testing.T) {
	isolateUserConfig(t)
	env := aliceWorld(t)
	dest := filepath.Join(t.TempDir(), "Steam Screenshots")

	_, err := link.Link(context.Background(), link.Options{Destination: dest, SteamRoot: env.Root})
	require.NoError(t, err)

	result, err := Status(Options{Destination: dest, SteamRoot: env.Root})

	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	assert.Equal(t, style.StatusLinked, result.Accounts[0].Status)
	for _, ls := range result.Accounts[0].Links {
		assert.Equal(t, style.StatusLinked, ls.Status)
	}
}

func TestStatusReportsConflict(t *testing.T) {
	isolateUserConfig(t)
	env := aliceWorld(t)
	dest := filepath.Join(t.TempDir(), "Steam Screenshots")
	testutil.MkdirAll(t, filepath.Join(dest, "Alice", "Portal 2"))

	result, err := Status(Options{Destination: dest, SteamRoot: env.Root})

	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	alice := result.Accounts[0]
	assert.Equal(t, style.StatusConflict, alice.Status)

	byName := map[string]style.LinkStatus{}
	for _, ls := range alice.Links {
		byName[ls.Name] = ls
	}
	assert.Equal(t, style.StatusConflict, byName["Portal 2"].Status)
	assert.Contains(t, byName["Portal 2"].Detail, "occupied")
	assert.Equal(t, style.StatusPending, byName["Portal"].Status)
}

func TestStatusShowsDepartedAccountAsStale(t *testing.T) {
	isolateUserConfig(t)
	env := aliceWorld(t)
	dest := filepath.Join(t.TempDir(), "Steam Screenshots")

	_, err := link.Link(context.Background(), link.Options{Destination: dest, SteamRoot: env.Root})
	require.NoError(t, err)

	// The account disappears from Steam but its folder stays on disk.
	require.NoError(t, os.RemoveAll(filepath.Join(env.Root, "userdata", "100")))

	result, err := Status(Options{Destination: dest, SteamRoot: env.Root})

	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	assert.Equal(t, "Alice", result.Accounts[0].Name)
	assert.Equal(t, style.StatusStale, result.Accounts[0].Status)
	for _, ls := range result.Accounts[0].Links {
		assert.Equal(t, style.StatusStale, ls.Status)
	}
}

func TestStatusFailsWithoutSteam(t *testing.T) {
	isolateUserConfig(t)

	_, err := Status(Options{
		Destination: filepath.Join(t.TempDir(), "dest"),
		SteamRoot:   filepath.Join(t.TempDir(), "nope"),
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlatformNotFound))
}
