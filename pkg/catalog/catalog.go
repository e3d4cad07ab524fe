package catalog

import (
	"path/filepath"
	"sort"
	"strconv"

	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/filesystem"
	"github.com/arthur-debert/steamshots/pkg/logging"
	"github.com/arthur-debert/steamshots/pkg/steam"
)

// Game is one screenshot directory owned by an account.
type Game struct {
	// TitleKey is the app id parsed from the storage child's name.
	TitleKey uint64

	// Name is the display name the farm uses for this game's link.
	Name string

	// SourcePath is the absolute screenshots directory the link targets.
	SourcePath string
}

// Account is one platform user profile with local screenshot storage.
type Account struct {
	ID         uint32
	Name       string
	RemoteRoot string
	Games      []Game
}

// Catalog is the full model for one pass. It is rebuilt from disk every
// pass; nothing is carried over.
type Catalog struct {
	Installation steam.Installation
	Accounts     []Account
}

// Issue is a soft, per-entity failure collected while building. Issues ride
// along in the pass report; they never stop a pass.
type Issue struct {
	Code errors.ErrorCode
	Path string
	Err  error
}

func (i Issue) String() string {
	if i.Path == "" {
		return string(i.Code) + ": " + i.Err.Error()
	}
	return string(i.Code) + " " + i.Path + ": " + i.Err.Error()
}

// GameCount returns the number of games across all accounts.
func (c *Catalog) GameCount() int {
	n := 0
	for _, account := range c.Accounts {
		n += len(account.Games)
	}
	return n
}

// WatchRoots returns the directories a watcher must subscribe to: every
// account's storage root plus every game's parent directory, so both new
// apps and new screenshot folders raise events.
func (c *Catalog) WatchRoots() []string {
	var roots []string
	for _, account := range c.Accounts {
		roots = append(roots, account.RemoteRoot)
		for _, game := range account.Games {
			roots = append(roots, filepath.Dir(game.SourcePath))
		}
	}
	return roots
}

// Builder assembles catalogues from an installation's on-disk state.
type Builder struct {
	fs filesystem.FS
}

// NewBuilder returns a builder reading through the given filesystem.
func NewBuilder(fsys filesystem.FS) *Builder {
	return &Builder{fs: fsys}
}

// Build reads the installation fresh and assembles the catalogue. Soft
// failures are returned as issues alongside whatever was built; only the
// caller's inability to locate the installation at all is fatal, and that
// happens before Build.
func (b *Builder) Build(inst steam.Installation) (*Catalog, []Issue) {
	logger := logging.GetLogger("catalog")
	var issues []Issue

	ids, err := steam.ListAccountIDs(b.fs, inst.UserdataDir())
	if err != nil {
		issues = append(issues, Issue{
			Code: errors.GetErrorCode(err),
			Path: inst.UserdataDir(),
			Err:  err,
		})
		return &Catalog{Installation: inst}, issues
	}

	users, err := steam.ReadLoginUsers(b.fs, inst.LoginUsersPath())
	if err != nil {
		// Names degrade to account ids; enumeration is unaffected.
		issues = append(issues, Issue{
			Code: errors.GetErrorCode(err),
			Path: inst.LoginUsersPath(),
			Err:  err,
		})
	}

	installed, soft := steam.InstalledApps(b.fs, inst)
	for _, err := range soft {
		issues = append(issues, Issue{Code: errors.GetErrorCode(err), Err: err})
	}

	accounts := make([]Account, 0, len(ids))
	for _, id := range ids {
		account, accountIssues := b.buildAccount(inst, id, users, installed)
		issues = append(issues, accountIssues...)
		if account != nil {
			accounts = append(accounts, *account)
		}
	}

	logger.Debug().
		Int("accounts", len(accounts)).
		Int("issues", len(issues)).
		Msg("Catalogue built")

	return &Catalog{Installation: inst, Accounts: accounts}, issues
}

// buildAccount assembles one account, or nil when the account has no
// screenshot storage at all.
func (b *Builder) buildAccount(inst steam.Installation, id uint32, users map[uint32]steam.LoginUser, installed map[uint64]string) (*Account, []Issue) {
	logger := logging.GetLogger("catalog")

	remote := inst.RemoteRoot(id)
	if info, err := b.fs.Stat(remote); err != nil || !info.IsDir() {
		logger.Info().Uint32("account", id).Msg("Account has no screenshot storage, skipping")
		return nil, nil
	}

	name := strconv.FormatUint(uint64(id), 10)
	if user, ok := users[id]; ok && user.PersonaName != "" {
		name = user.PersonaName
	}

	var issues []Issue
	shortcuts, err := steam.ReadShortcuts(b.fs, inst.ShortcutsPath(id))
	if err != nil {
		// No shortcuts file is the everyday case and stays quiet. A file
		// that exists but does not parse is worth surfacing.
		if _, statErr := b.fs.Stat(inst.ShortcutsPath(id)); statErr == nil {
			issues = append(issues, Issue{
				Code: errors.GetErrorCode(err),
				Path: inst.ShortcutsPath(id),
				Err:  err,
			})
		} else {
			logger.Debug().Uint32("account", id).Msg("Account has no shortcuts file")
		}
		shortcuts = nil
	}

	entries, err := b.fs.ReadDir(remote)
	if err != nil {
		issues = append(issues, Issue{
			Code: errors.ErrAccountDiscovery,
			Path: remote,
			Err: errors.Wrapf(err, errors.ErrAccountDiscovery,
				"failed to enumerate account storage"),
		})
		return nil, issues
	}

	games := make([]Game, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		titleKey, err := strconv.ParseUint(entry.Name(), 10, 64)
		if err != nil {
			logger.Debug().
				Uint32("account", id).
				Str("name", entry.Name()).
				Msg("Skipping non-numeric storage child")
			continue
		}

		source := inst.ScreenshotsDir(id, titleKey)
		if info, err := b.fs.Stat(source); err != nil || !info.IsDir() {
			logger.Debug().
				Uint32("account", id).
				Uint64("app", titleKey).
				Msg("Storage child has no screenshots directory, skipping")
			continue
		}

		games = append(games, Game{
			TitleKey:   titleKey,
			Name:       resolveName(titleKey, installed, shortcuts),
			SourcePath: source,
		})
	}

	sort.Slice(games, func(i, j int) bool { return games[i].TitleKey < games[j].TitleKey })

	return &Account{
		ID:         id,
		Name:       name,
		RemoteRoot: remote,
		Games:      games,
	}, issues
}

// resolveName picks the display name for a title key: install folder
// basename for installed apps, the configured title for shortcuts, and the
// numeric key as text otherwise. The numeric form is a normal outcome, not
// an error.
func resolveName(titleKey uint64, installed map[uint64]string, shortcuts []steam.Shortcut) string {
	if dir, ok := installed[titleKey]; ok {
		return dir
	}
	for _, shortcut := range shortcuts {
		if shortcut.Matches(titleKey) {
			if shortcut.AppName != "" {
				return shortcut.AppName
			}
			break
		}
	}
	return strconv.FormatUint(titleKey, 10)
}
