package steam

import (
	"hash/crc32"
	"sort"
	"strconv"
	"strings"

	wcvdf "github.com/wakeful-cloud/vdf"

	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/filesystem"
)

// Shortcut is one non-Steam game entry from shortcuts.vdf.
type Shortcut struct {
	AppID   uint32
	AppName string
	Exe     string
}

// shortcutMask strips the flag bits Steam sets on modern shortcut ids.
const shortcutMask = 0x7fffff

// ReadShortcuts parses the binary userdata/<id>/config/shortcuts.vdf.
// Callers treat any error here as "no shortcuts for this account"; Steam
// itself tolerates a missing or damaged file the same way.
func ReadShortcuts(fsys filesystem.FS, path string) ([]Shortcut, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMetadataParse,
			"failed to read %s", path)
	}

	parsed, err := wcvdf.ReadVdf(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMetadataParse,
			"failed to parse %s", path)
	}

	var table wcvdf.Map
	for key, value := range parsed {
		if strings.EqualFold(key, "shortcuts") {
			if m, ok := value.(wcvdf.Map); ok {
				table = m
			}
			break
		}
	}
	if table == nil {
		return nil, errors.Newf(errors.ErrMetadataParse,
			"no shortcuts table in %s", path)
	}

	// Entries are keyed "0", "1", ... in the file.
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	out := make([]Shortcut, 0, len(keys))
	for _, key := range keys {
		entry, ok := table[key].(wcvdf.Map)
		if !ok {
			continue
		}
		out = append(out, Shortcut{
			AppID:   entryUint32(entry, "appid"),
			AppName: entryString(entry, "appname"),
			Exe:     entryString(entry, "exe"),
		})
	}
	return out, nil
}

// Matches reports whether this shortcut owns the screenshot directory named
// by titleKey: the raw 32-bit id, the masked id, or the legacy big-picture
// id all count.
func (s Shortcut) Matches(titleKey uint64) bool {
	if uint64(s.AppID) == titleKey {
		return true
	}
	if uint64(s.AppID&shortcutMask) == titleKey {
		return true
	}
	return BigPictureID(s.Exe, s.AppName) == titleKey
}

// BigPictureID computes the legacy big-picture app id for a shortcut, the
// id older Steam builds name the shortcut's screenshot directory after.
// The checksum input is the raw exe string, surrounding quotes included,
// concatenated with the app name.
func BigPictureID(exe, appName string) uint64 {
	crc := crc32.ChecksumIEEE([]byte(exe + appName))
	return uint64(crc|0x80000000)<<32 | 0x02000000
}

// Shortcut field names vary in case between Steam versions, so lookups are
// case-insensitive.
func entryString(m wcvdf.Map, name string) string {
	for key, value := range m {
		if strings.EqualFold(key, name) {
			if s, ok := value.(string); ok {
				return s
			}
		}
	}
	return ""
}

func entryUint32(m wcvdf.Map, name string) uint32 {
	for key, value := range m {
		if !strings.EqualFold(key, name) {
			continue
		}
		switch n := value.(type) {
		case uint32:
			return n
		case uint64:
			return uint32(n)
		case int:
			return uint32(n)
		case string:
			if parsed, err := strconv.ParseUint(n, 10, 32); err == nil {
				return uint32(parsed)
			}
		}
	}
	return 0
}
