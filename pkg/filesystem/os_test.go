package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/steamshots/pkg/filesystem"
)

func TestOSLstatDistinguishesSymlinks(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "target")
	require.NoError(t, os.MkdirAll(target, 0755))

	link := filepath.Join(tmp, "link")
	require.NoError(t, os.Symlink(target, link))

	fsys := filesystem.NewOS()

	linkInfo, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, linkInfo.Mode()&os.ModeSymlink, "Lstat must report the link itself")

	statInfo, err := fsys.Stat(link)
	require.NoError(t, err)
	assert.True(t, statInfo.IsDir(), "Stat must follow the link to the directory")

	got, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestOSReadDir(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "400"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "stray.txt"), []byte("x"), 0644))

	fsys := filesystem.NewOS()
	entries, err := fsys.ReadDir(tmp)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	names := []string{entries[0].Name(), entries[1].Name()}
	assert.Contains(t, names, "400")
	assert.Contains(t, names, "stray.txt")
}
