// pkg/testutil/fs.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Filesystem setup helpers and assertions for reconciler tests

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MkdirAll creates a directory tree, failing the test on error.
func MkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
}

// WriteFile writes a file, creating parents as needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	MkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// Symlink creates a symlink, creating the parent directory as needed.
func Symlink(t *testing.T, target, link string) {
	t.Helper()
	MkdirAll(t, filepath.Dir(link))
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Failed to symlink %s -> %s: %v", link, target, err)
	}
}

// AssertSymlinkTo asserts that link is a symlink pointing at target.
func AssertSymlinkTo(t *testing.T, link, target string) {
	t.Helper()
	info, err := os.Lstat(link)
	if err != nil {
		t.Errorf("Expected symlink at %s: %v", link, err)
		return
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("Expected %s to be a symlink, got mode %v", link, info.Mode())
		return
	}
	got, err := os.Readlink(link)
	if err != nil {
		t.Errorf("Failed to read link %s: %v", link, err)
		return
	}
	if got != target {
		t.Errorf("Symlink %s points at %s, expected %s", link, got, target)
	}
}

// AssertIsDir asserts that path is a real directory (not a symlink).
func AssertIsDir(t *testing.T, path string) {
	t.Helper()
	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected directory at %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory, got mode %v", path, info.Mode())
	}
}

// AssertIsFile asserts that path is a regular file.
func AssertIsFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected file at %s: %v", path, err)
		return
	}
	if !info.Mode().IsRegular() {
		t.Errorf("Expected %s to be a regular file, got mode %v", path, info.Mode())
	}
}

// AssertNotExists asserts that nothing exists at path, symlinks included.
func AssertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("Expected nothing at %s, but it exists", path)
	} else if !os.IsNotExist(err) {
		t.Errorf("Failed to check %s: %v", path, err)
	}
}
