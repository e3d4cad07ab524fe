// pkg/testutil/steamroot.go
// DEPENDENCIES: github.com/wakeful-cloud/vdf (binary shortcuts encoding)
// PURPOSE: Build synthetic Steam installations for tests

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	wcvdf "github.com/wakeful-cloud/vdf"
)

// ShortcutFixture describes one non-Steam game entry for the shortcuts file.
type ShortcutFixture struct {
	AppID   uint32
	AppName string
	Exe     string
}

// SteamRoot builds a synthetic Steam installation under a temp directory.
// Mutators rewrite the affected metadata file on every call, so tests can
// layer them in any order.
type SteamRoot struct {
	Root string

	t         *testing.T
	users     map[uint64]string            // steamID64 -> persona name
	libraries []string                     // extra library roots
	shortcuts map[uint32][]ShortcutFixture // account id -> entries
}

// NewSteamRoot creates an empty installation with the well-known
// config/, userdata/ and steamapps/ directories in place.
func NewSteamRoot(t *testing.T) *SteamRoot {
	t.Helper()

	root := filepath.Join(t.TempDir(), "Steam")
	for _, dir := range []string{
		filepath.Join(root, "config"),
		filepath.Join(root, "userdata"),
		filepath.Join(root, "steamapps"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	return &SteamRoot{
		Root:      root,
		t:         t,
		users:     make(map[uint64]string),
		shortcuts: make(map[uint32][]ShortcutFixture),
	}
}

// AddLoginUser registers a config/loginusers.vdf entry and rewrites the file.
func (s *SteamRoot) AddLoginUser(steamID64 uint64, persona string) {
	s.t.Helper()
	s.users[steamID64] = persona
	s.writeLoginUsers()
}

// CorruptLoginUsers replaces config/loginusers.vdf with unparsable content:
// an unclosed map and an unterminated quoted token.
func (s *SteamRoot) CorruptLoginUsers() {
	s.t.Helper()
	s.writeFile(s.loginUsersPath(), []byte("\"users\"\n{\n\t\"761\"\n\t{\n\t\t\"PersonaName"))
}

// RemoveLoginUsers deletes config/loginusers.vdf.
func (s *SteamRoot) RemoveLoginUsers() {
	s.t.Helper()
	if err := os.Remove(s.loginUsersPath()); err != nil && !os.IsNotExist(err) {
		s.t.Fatalf("Failed to remove loginusers.vdf: %v", err)
	}
}

// AddAccount creates userdata/<id>/760/remote without any games.
func (s *SteamRoot) AddAccount(id uint32) {
	s.t.Helper()
	if err := os.MkdirAll(s.RemoteRoot(id), 0o755); err != nil {
		s.t.Fatalf("Failed to create remote root for %d: %v", id, err)
	}
}

// AddAccountWithoutRemote creates userdata/<id> only, the shape of an
// account that never took a screenshot.
func (s *SteamRoot) AddAccountWithoutRemote(id uint32) {
	s.t.Helper()
	dir := filepath.Join(s.Root, "userdata", strconv.FormatUint(uint64(id), 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.t.Fatalf("Failed to create userdata dir for %d: %v", id, err)
	}
}

// RemoteRoot returns userdata/<id>/760/remote.
func (s *SteamRoot) RemoteRoot(id uint32) string {
	return filepath.Join(s.Root, "userdata", strconv.FormatUint(uint64(id), 10), "760", "remote")
}

// AddScreenshots creates remote/<appID>/screenshots plus the named shot
// files, and returns the screenshots directory path.
func (s *SteamRoot) AddScreenshots(account uint32, appID uint64, shots ...string) string {
	s.t.Helper()
	s.AddAccount(account)

	dir := filepath.Join(s.RemoteRoot(account), strconv.FormatUint(appID, 10), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.t.Fatalf("Failed to create screenshots dir: %v", err)
	}
	for _, shot := range shots {
		s.writeFile(filepath.Join(dir, shot), []byte("not a real jpeg"))
	}
	return dir
}

// AddRemoteChild creates an arbitrary child of the remote root with no
// screenshots subdirectory underneath.
func (s *SteamRoot) AddRemoteChild(account uint32, name string) {
	s.t.Helper()
	s.AddAccount(account)
	if err := os.MkdirAll(filepath.Join(s.RemoteRoot(account), name), 0o755); err != nil {
		s.t.Fatalf("Failed to create remote child %s: %v", name, err)
	}
}

// AddInstalledApp writes an app manifest into the root library.
func (s *SteamRoot) AddInstalledApp(appID uint64, installDir string) {
	s.t.Helper()
	s.AddInstalledAppIn(s.Root, appID, installDir)
}

// AddInstalledAppIn writes an app manifest into the given library root.
func (s *SteamRoot) AddInstalledAppIn(libraryRoot string, appID uint64, installDir string) {
	s.t.Helper()

	steamapps := filepath.Join(libraryRoot, "steamapps")
	if err := os.MkdirAll(steamapps, 0o755); err != nil {
		s.t.Fatalf("Failed to create steamapps dir: %v", err)
	}

	var b strings.Builder
	b.WriteString("\"AppState\"\n{\n")
	fmt.Fprintf(&b, "\t\"appid\"\t\t\"%d\"\n", appID)
	fmt.Fprintf(&b, "\t\"name\"\t\t\"%s\"\n", installDir)
	fmt.Fprintf(&b, "\t\"StateFlags\"\t\t\"4\"\n")
	fmt.Fprintf(&b, "\t\"installdir\"\t\t\"%s\"\n", installDir)
	b.WriteString("}\n")

	name := fmt.Sprintf("appmanifest_%d.acf", appID)
	s.writeFile(filepath.Join(steamapps, name), []byte(b.String()))
}

// CorruptAppManifest writes a manifest with no installdir field into the
// root library, the shape a half-written update leaves behind.
func (s *SteamRoot) CorruptAppManifest(appID uint64) {
	s.t.Helper()
	name := fmt.Sprintf("appmanifest_%d.acf", appID)
	content := fmt.Sprintf("\"AppState\"\n{\n\t\"appid\"\t\t\"%d\"\n}\n", appID)
	s.writeFile(filepath.Join(s.Root, "steamapps", name), []byte(content))
}

// AddLibrary creates a second library root, records it in
// steamapps/libraryfolders.vdf (modern shape) and returns its path.
func (s *SteamRoot) AddLibrary() string {
	s.t.Helper()

	lib := filepath.Join(s.t.TempDir(), "SteamLibrary")
	if err := os.MkdirAll(filepath.Join(lib, "steamapps"), 0o755); err != nil {
		s.t.Fatalf("Failed to create library root: %v", err)
	}
	s.libraries = append(s.libraries, lib)
	s.writeLibraryFolders()
	return lib
}

// WriteLegacyLibraryFolders writes the pre-2021 flat libraryfolders.vdf
// shape, where numeric keys map directly to path strings.
func (s *SteamRoot) WriteLegacyLibraryFolders(paths ...string) {
	s.t.Helper()

	var b strings.Builder
	b.WriteString("\"LibraryFolders\"\n{\n")
	b.WriteString("\t\"TimeNextStatsReport\"\t\t\"1660000000\"\n")
	b.WriteString("\t\"ContentStatsID\"\t\t\"-1588700000000000000\"\n")
	for i, p := range paths {
		fmt.Fprintf(&b, "\t\"%d\"\t\t\"%s\"\n", i+1, p)
	}
	b.WriteString("}\n")

	s.writeFile(filepath.Join(s.Root, "steamapps", "libraryfolders.vdf"), []byte(b.String()))
}

// AddShortcut registers a shortcuts.vdf entry for the account and rewrites
// the binary file.
func (s *SteamRoot) AddShortcut(account uint32, sc ShortcutFixture) {
	s.t.Helper()
	s.shortcuts[account] = append(s.shortcuts[account], sc)
	s.writeShortcuts(account)
}

// CorruptShortcuts writes garbage bytes as the account's shortcuts.vdf.
func (s *SteamRoot) CorruptShortcuts(account uint32) {
	s.t.Helper()
	s.writeFile(s.ShortcutsPath(account), []byte{0xff, 0xfe, 0x01, 0x00})
}

// ShortcutsPath returns userdata/<id>/config/shortcuts.vdf.
func (s *SteamRoot) ShortcutsPath(account uint32) string {
	return filepath.Join(s.Root, "userdata", strconv.FormatUint(uint64(account), 10), "config", "shortcuts.vdf")
}

func (s *SteamRoot) loginUsersPath() string {
	return filepath.Join(s.Root, "config", "loginusers.vdf")
}

func (s *SteamRoot) writeLoginUsers() {
	s.t.Helper()

	ids := make([]uint64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	b.WriteString("\"users\"\n{\n")
	for _, id := range ids {
		fmt.Fprintf(&b, "\t\"%d\"\n\t{\n", id)
		fmt.Fprintf(&b, "\t\t\"AccountName\"\t\t\"user%d\"\n", uint32(id))
		fmt.Fprintf(&b, "\t\t\"PersonaName\"\t\t\"%s\"\n", s.users[id])
		b.WriteString("\t\t\"RememberPassword\"\t\t\"1\"\n")
		b.WriteString("\t\t\"MostRecent\"\t\t\"0\"\n")
		b.WriteString("\t\t\"Timestamp\"\t\t\"1660000000\"\n")
		b.WriteString("\t}\n")
	}
	b.WriteString("}\n")

	s.writeFile(s.loginUsersPath(), []byte(b.String()))
}

func (s *SteamRoot) writeLibraryFolders() {
	s.t.Helper()

	var b strings.Builder
	b.WriteString("\"libraryfolders\"\n{\n")
	for i, root := range append([]string{s.Root}, s.libraries...) {
		fmt.Fprintf(&b, "\t\"%d\"\n\t{\n", i)
		fmt.Fprintf(&b, "\t\t\"path\"\t\t\"%s\"\n", root)
		b.WriteString("\t\t\"label\"\t\t\"\"\n")
		b.WriteString("\t}\n")
	}
	b.WriteString("}\n")

	s.writeFile(filepath.Join(s.Root, "steamapps", "libraryfolders.vdf"), []byte(b.String()))
}

func (s *SteamRoot) writeShortcuts(account uint32) {
	s.t.Helper()

	entries := wcvdf.Map{}
	for i, sc := range s.shortcuts[account] {
		entries[strconv.Itoa(i)] = wcvdf.Map{
			"appid":    sc.AppID,
			"appname":  sc.AppName,
			"exe":      sc.Exe,
			"StartDir": "./",
			"tags":     wcvdf.Map{},
		}
	}

	data, err := wcvdf.WriteVdf(wcvdf.Map{"shortcuts": entries})
	if err != nil {
		s.t.Fatalf("Failed to encode shortcuts.vdf: %v", err)
	}
	s.writeFile(s.ShortcutsPath(account), data)
}

func (s *SteamRoot) writeFile(path string, data []byte) {
	s.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.t.Fatalf("Failed to write %s: %v", path, err)
	}
}
