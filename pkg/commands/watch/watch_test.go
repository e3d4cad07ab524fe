package watch

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/reconcile"
	"github.com/arthur-debert/steamshots/pkg/testutil"
)

const steam64Base uint64 = 76561197960265728

func isolateUserConfig(t *testing.T) {
	t.Helper()
	t.Setenv("STEAMSHOTS_CONFIG_DIR", t.TempDir())
}

func TestWatchReconcilesOnStorageChanges(t *testing.T) {
	isolateUserConfig(t)
	env := testutil.NewSteamRoot(t)
	env.AddLoginUser(steam64Base+100, "Alice")
	env.AddInstalledApp(620, "Portal 2")
	env.AddScreenshots(100, 620, "shot.jpg")
	dest := filepath.Join(t.TempDir(), "Steam Screenshots")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reports := make(chan *reconcile.Report, 8)
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, Options{
			Destination: dest,
			SteamRoot:   env.Root,
			Debounce:    50 * time.Millisecond,
			OnReport:    func(rep *reconcile.Report) { reports <- rep },
		})
	}()

	select {
	case rep := <-reports:
		assert.Len(t, rep.Created, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the initial pass")
	}
	testutil.AssertSymlinkTo(t, filepath.Join(dest, "Alice", "Portal 2"),
		filepath.Join(env.RemoteRoot(100), "620", "screenshots"))

	// A new game starts storing screenshots while we watch.
	env.AddInstalledApp(400, "Portal")
	env.AddScreenshots(100, 400, "new.jpg")

	deadline := time.After(10 * time.Second)
	for {
		select {
		case rep := <-reports:
			if len(rep.Created) == 1 {
				testutil.AssertSymlinkTo(t, filepath.Join(dest, "Alice", "Portal"),
					filepath.Join(env.RemoteRoot(100), "400", "screenshots"))
				cancel()
				require.NoError(t, <-done)
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the follow-up pass")
		}
	}
}

func TestWatchCancelStopsCleanly(t *testing.T) {
	isolateUserConfig(t)
	env := testutil.NewSteamRoot(t)
	env.AddLoginUser(steam64Base+100, "Alice")
	dest := filepath.Join(t.TempDir(), "Steam Screenshots")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Options{Destination: dest, SteamRoot: env.Root})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for shutdown")
	}
}

func TestWatchFailsFastWithoutSteam(t *testing.T) {
	isolateUserConfig(t)

	err := Watch(context.Background(), Options{
		Destination: filepath.Join(t.TempDir(), "dest"),
		SteamRoot:   filepath.Join(t.TempDir(), "nope"),
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlatformNotFound))
}
