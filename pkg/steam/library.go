package steam

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"

	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/filesystem"
	"github.com/arthur-debert/steamshots/pkg/logging"
)

const (
	libraryFoldersName = "libraryfolders.vdf"
	manifestPrefix     = "appmanifest_"
	manifestSuffix     = ".acf"
)

// InstalledApps maps app id to install folder basename across every library
// the installation knows about. Failures below the whole-scan level are
// soft: the map holds whatever parsed and the slice holds what did not.
func InstalledApps(fsys filesystem.FS, inst Installation) (map[uint64]string, []error) {
	logger := logging.GetLogger("steam")

	var soft []error
	libraries, err := libraryDirs(fsys, inst)
	if err != nil {
		soft = append(soft, err)
	}

	apps := make(map[uint64]string)
	for _, steamapps := range libraries {
		entries, err := fsys.ReadDir(steamapps)
		if err != nil {
			// Listed libraries live on removable drives; absence is normal.
			logger.Debug().Str("dir", steamapps).Err(err).Msg("Skipping unreadable library")
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() ||
				!strings.HasPrefix(name, manifestPrefix) ||
				!strings.HasSuffix(name, manifestSuffix) {
				continue
			}
			idStr := strings.TrimSuffix(strings.TrimPrefix(name, manifestPrefix), manifestSuffix)
			fallbackID, err := strconv.ParseUint(idStr, 10, 64)
			if err != nil {
				continue
			}

			path := filepath.Join(steamapps, name)
			data, err := fsys.ReadFile(path)
			if err != nil {
				soft = append(soft, errors.Wrapf(err, errors.ErrMetadataParse,
					"failed to read %s", path))
				continue
			}

			appID, installDir, err := readAppManifest(data, fallbackID)
			if err != nil {
				soft = append(soft, errors.Wrapf(err, errors.ErrMetadataParse,
					"failed to parse %s", path))
				continue
			}
			apps[appID] = installDir
		}
	}
	return apps, soft
}

// libraryDirs returns every steamapps directory to scan: the root's own plus
// one per libraryfolders.vdf entry, deduplicated. The root library always
// counts, even when the folders file is missing or broken.
func libraryDirs(fsys filesystem.FS, inst Installation) ([]string, error) {
	rootApps := inst.SteamappsDir()
	dirs := []string{rootApps}
	seen := map[string]bool{rootApps: true}

	path := filepath.Join(rootApps, libraryFoldersName)
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dirs, nil
		}
		return dirs, errors.Wrapf(err, errors.ErrMetadataParse,
			"failed to read %s", path)
	}

	parsed, err := vdf.NewParser(bytes.NewReader(data)).Parse()
	if err != nil {
		return dirs, errors.Wrapf(err, errors.ErrMetadataParse,
			"failed to parse %s", path)
	}

	// The top-level key is "libraryfolders" on current installs and
	// "LibraryFolders" on old ones.
	var table map[string]interface{}
	for _, value := range parsed {
		if m, ok := value.(map[string]interface{}); ok {
			table = m
			break
		}
	}
	if table == nil {
		return dirs, errors.Newf(errors.ErrMetadataParse,
			"no library table in %s", path)
	}

	keys := make([]string, 0, len(table))
	for key := range table {
		if _, err := strconv.Atoi(key); err == nil {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	for _, key := range keys {
		var root string
		switch v := table[key].(type) {
		case string:
			// legacy shape: the value is the path itself
			root = v
		case map[string]interface{}:
			if p, ok := v["path"].(string); ok {
				root = p
			}
		}
		if root == "" {
			continue
		}
		steamapps := filepath.Join(root, steamappsDirName)
		if !seen[steamapps] {
			seen[steamapps] = true
			dirs = append(dirs, steamapps)
		}
	}
	return dirs, nil
}

// readAppManifest extracts the app id and install folder basename from one
// appmanifest_<id>.acf. The filename-derived id backs up a missing or
// damaged appid field.
func readAppManifest(data []byte, fallbackID uint64) (uint64, string, error) {
	parsed, err := vdf.NewParser(bytes.NewReader(data)).Parse()
	if err != nil {
		return 0, "", err
	}

	var state map[string]interface{}
	for _, value := range parsed {
		if m, ok := value.(map[string]interface{}); ok {
			state = m
			break
		}
	}
	if state == nil {
		return 0, "", errors.New(errors.ErrMetadataParse, "no AppState table")
	}

	appID := fallbackID
	if v, ok := state["appid"].(string); ok {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			appID = id
		}
	}

	installDir, _ := state["installdir"].(string)
	if installDir == "" {
		return 0, "", errors.New(errors.ErrMetadataParse, "no installdir field")
	}
	return appID, filepath.Base(installDir), nil
}
