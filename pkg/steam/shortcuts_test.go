package steam_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	wcvdf "github.com/wakeful-cloud/vdf"

	sserrors "github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/filesystem"
	"github.com/arthur-debert/steamshots/pkg/steam"
	"github.com/arthur-debert/steamshots/pkg/testutil"
)

const (
	secondLifeExe  = "\"/Applications/Second Life Viewer.app\""
	secondLifeName = "Second Life"
	nfsExe         = "\"/home/deck/.local/share/Steam/steamapps/compatdata/3127109556/pfx/drive_c/Program Files (x86)/EA GAMES/Need for Speed Most Wanted/speed.exe\""
	nfsName        = "Need for Speed: Most Wanted"
)

func TestBigPictureID(t *testing.T) {
	tests := []struct {
		name    string
		exe     string
		appName string
		want    uint64
	}{
		{
			name:    "second life",
			exe:     secondLifeExe,
			appName: secondLifeName,
			want:    18291777663678808064,
		},
		{
			name:    "nfs most wanted",
			exe:     nfsExe,
			appName: nfsName,
			want:    14897979843084812288,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, steam.BigPictureID(tt.exe, tt.appName))
		})
	}
}

func TestShortcutMatches(t *testing.T) {
	secondLife := steam.Shortcut{AppID: 2931025216, AppName: secondLifeName, Exe: secondLifeExe}
	nfs := steam.Shortcut{AppID: 3127109556, AppName: nfsName, Exe: nfsExe}

	tests := []struct {
		name     string
		shortcut steam.Shortcut
		titleKey uint64
		want     bool
	}{
		{"raw 32-bit id", secondLife, 2931025216, true},
		{"masked id", nfs, 3127109556 & 0x7fffff, true},
		{"big picture id", secondLife, 18291777663678808064, true},
		{"no match", secondLife, 12345, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shortcut.Matches(tt.titleKey))
		})
	}
}

func TestReadShortcuts(t *testing.T) {
	root := testutil.NewSteamRoot(t)
	root.AddShortcut(100, testutil.ShortcutFixture{
		AppID: 2931025216, AppName: secondLifeName, Exe: secondLifeExe,
	})
	root.AddShortcut(100, testutil.ShortcutFixture{
		AppID: 3127109556, AppName: nfsName, Exe: nfsExe,
	})

	shortcuts, err := steam.ReadShortcuts(filesystem.NewOS(), root.ShortcutsPath(100))
	require.NoError(t, err)

	require.Len(t, shortcuts, 2)
	assert.Equal(t, steam.Shortcut{AppID: 2931025216, AppName: secondLifeName, Exe: secondLifeExe}, shortcuts[0])
	assert.Equal(t, steam.Shortcut{AppID: 3127109556, AppName: nfsName, Exe: nfsExe}, shortcuts[1])
}

// Field name casing drifted between Steam versions.
func TestReadShortcutsCapitalizedFields(t *testing.T) {
	data, err := wcvdf.WriteVdf(wcvdf.Map{
		"shortcuts": wcvdf.Map{
			"0": wcvdf.Map{
				"appid":   uint32(123),
				"AppName": "Caps",
				"Exe":     "\"/bin/caps\"",
			},
		},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "shortcuts.vdf")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	shortcuts, err := steam.ReadShortcuts(filesystem.NewOS(), path)
	require.NoError(t, err)

	require.Len(t, shortcuts, 1)
	assert.Equal(t, uint32(123), shortcuts[0].AppID)
	assert.Equal(t, "Caps", shortcuts[0].AppName)
	assert.Equal(t, "\"/bin/caps\"", shortcuts[0].Exe)
}

func TestReadShortcutsMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "shortcuts.vdf")

	_, err := steam.ReadShortcuts(filesystem.NewOS(), missing)
	require.Error(t, err)
	assert.True(t, sserrors.IsErrorCode(err, sserrors.ErrMetadataParse))
}

func TestReadShortcutsCorrupt(t *testing.T) {
	root := testutil.NewSteamRoot(t)
	root.CorruptShortcuts(100)

	_, err := steam.ReadShortcuts(filesystem.NewOS(), root.ShortcutsPath(100))
	require.Error(t, err)
	assert.True(t, sserrors.IsErrorCode(err, sserrors.ErrMetadataParse))
}

func TestReadShortcutsEmptyFile(t *testing.T) {
	root := testutil.NewSteamRoot(t)
	path := root.ShortcutsPath(100)
	testutil.WriteFile(t, path, "")

	_, err := steam.ReadShortcuts(filesystem.NewOS(), path)
	require.Error(t, err)
	assert.True(t, sserrors.IsErrorCode(err, sserrors.ErrMetadataParse))
}
