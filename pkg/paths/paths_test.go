package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/steamshots/pkg/paths"
)

func TestNewWithExplicitPicturesDir(t *testing.T) {
	tmp := t.TempDir()

	p, err := paths.New(tmp)
	require.NoError(t, err)

	assert.Equal(t, tmp, p.PicturesDir())
	assert.False(t, p.UsedFallback())
}

func TestDestinationRoot(t *testing.T) {
	tmp := t.TempDir()
	p, err := paths.New(tmp)
	require.NoError(t, err)

	tests := []struct {
		name       string
		folderName string
		want       string
	}{
		{
			name:       "default folder name",
			folderName: "",
			want:       filepath.Join(tmp, "Steam Screenshots"),
		},
		{
			name:       "custom folder name",
			folderName: "Captures",
			want:       filepath.Join(tmp, "Captures"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.DestinationRoot(tt.folderName))
		})
	}
}

func TestConfigDirOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(paths.EnvConfigDir, tmp)

	p, err := paths.New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, tmp, p.ConfigDir())
	assert.Equal(t, filepath.Join(tmp, "config.toml"), p.ConfigFilePath())
}

func TestLogFilePathRespectsStateHome(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	p, err := paths.New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(state, "steamshots", "steamshots.log"), p.LogFilePath())
}

func TestNormalizePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	p, err := paths.New(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "tilde expansion", in: "~/Pictures", want: filepath.Join(home, "Pictures")},
		{name: "cleans dot segments", in: "/a/b/../c", want: "/a/c"},
		{name: "empty path errors", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.NormalizePath(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare tilde", in: "~", want: home},
		{name: "tilde slash", in: "~/x", want: filepath.Join(home, "x")},
		{name: "tilde user untouched", in: "~other/x", want: "~other/x"},
		{name: "plain path untouched", in: "/tmp/x", want: "/tmp/x"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.ExpandHome(tt.in))
		})
	}
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		parent string
		want   bool
	}{
		{name: "direct child", path: "/a/b/c", parent: "/a/b", want: true},
		{name: "same dir", path: "/a/b", parent: "/a/b", want: true},
		{name: "outside", path: "/a/other", parent: "/a/b", want: false},
		{name: "parent of parent", path: "/a", parent: "/a/b", want: false},
		{name: "sibling with shared prefix", path: "/a/bc", parent: "/a/b", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.IsWithin(tt.path, tt.parent))
		})
	}
}
