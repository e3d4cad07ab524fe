package steam

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/andygrunwald/vdf"

	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/filesystem"
	"github.com/arthur-debert/steamshots/pkg/logging"
)

// LoginUser is one entry of config/loginusers.vdf.
type LoginUser struct {
	SteamID64   uint64
	PersonaName string
}

// AccountID converts a 64-bit steam id to the 32-bit account id that names
// the user's userdata directory.
func AccountID(steamID64 uint64) uint32 {
	return uint32(steamID64)
}

// ReadLoginUsers parses config/loginusers.vdf and returns its entries keyed
// by account id. The file is display-name material only; account enumeration
// never depends on it.
func ReadLoginUsers(fsys filesystem.FS, path string) (map[uint32]LoginUser, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAccountDiscovery,
			"failed to read %s", path)
	}

	parsed, err := vdf.NewParser(bytes.NewReader(data)).Parse()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAccountDiscovery,
			"failed to parse %s", path)
	}

	users, ok := parsed["users"].(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrAccountDiscovery,
			"no users table in %s", path)
	}

	logger := logging.GetLogger("steam")
	out := make(map[uint32]LoginUser, len(users))
	for idStr, entryRaw := range users {
		steamID64, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			logger.Debug().Str("key", idStr).Msg("Skipping non-numeric loginusers key")
			continue
		}

		persona := ""
		if entry, ok := entryRaw.(map[string]interface{}); ok {
			if v, ok := entry["PersonaName"].(string); ok {
				persona = v
			}
		}

		out[AccountID(steamID64)] = LoginUser{
			SteamID64:   steamID64,
			PersonaName: persona,
		}
	}
	return out, nil
}

// ListAccountIDs enumerates userdata/ and returns each child directory whose
// name parses as an account id, sorted ascending.
func ListAccountIDs(fsys filesystem.FS, userdataDir string) ([]uint32, error) {
	entries, err := fsys.ReadDir(userdataDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAccountDiscovery,
			"failed to list %s", userdataDir)
	}

	logger := logging.GetLogger("steam")
	ids := make([]uint32, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id, err := strconv.ParseUint(entry.Name(), 10, 32)
		if err != nil {
			logger.Debug().Str("name", entry.Name()).Msg("Skipping non-numeric userdata child")
			continue
		}
		ids = append(ids, uint32(id))
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
