package plan

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/steamshots/pkg/catalog"
)

// Dir is one desired account directory, relative to the plan root.
type Dir struct {
	RelPath   string
	AccountID uint32
}

// Link is one desired symlink: RelPath under the plan root, pointing at the
// absolute Target.
type Link struct {
	RelPath   string
	Target    string
	AccountID uint32
	TitleKey  uint64
}

// Plan is the desired state of the destination tree for one catalogue.
type Plan struct {
	Root  string
	Dirs  []Dir
	Links []Link
}

// AbsPath resolves a relative entry path against the plan root.
func (p *Plan) AbsPath(rel string) string {
	return filepath.Join(p.Root, rel)
}

// Build computes the desired tree for the catalogue under root. It is a
// pure function: the result depends only on the arguments, never on disk
// state or prior passes.
//
// Accounts with no games produce no directory. Display names are sanitized
// into single path components; when two entries at the same level sanitize
// to the same name, every member of the colliding group gets a " [<id>]"
// suffix (and, should the suffixed names collide with yet another entry,
// the suffixing repeats until all names are distinct).
func Build(cat *catalog.Catalog, root string) *Plan {
	accounts := make([]catalog.Account, 0, len(cat.Accounts))
	for _, account := range cat.Accounts {
		if len(account.Games) > 0 {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })

	accountNames := make([]string, len(accounts))
	accountIDs := make([]string, len(accounts))
	for i, account := range accounts {
		id := strconv.FormatUint(uint64(account.ID), 10)
		accountNames[i] = sanitizeName(account.Name, id)
		accountIDs[i] = id
	}
	accountNames = disambiguate(accountNames, accountIDs)

	p := &Plan{Root: root}
	for i, account := range accounts {
		dirName := accountNames[i]
		p.Dirs = append(p.Dirs, Dir{RelPath: dirName, AccountID: account.ID})

		games := make([]catalog.Game, len(account.Games))
		copy(games, account.Games)
		sort.Slice(games, func(a, b int) bool { return games[a].TitleKey < games[b].TitleKey })

		gameNames := make([]string, len(games))
		gameIDs := make([]string, len(games))
		for j, game := range games {
			key := strconv.FormatUint(game.TitleKey, 10)
			gameNames[j] = sanitizeName(game.Name, key)
			gameIDs[j] = key
		}
		gameNames = disambiguate(gameNames, gameIDs)

		for j, game := range games {
			p.Links = append(p.Links, Link{
				RelPath:   filepath.Join(dirName, gameNames[j]),
				Target:    game.SourcePath,
				AccountID: account.ID,
				TitleKey:  game.TitleKey,
			})
		}
	}
	return p
}

// sanitizeName normalizes a display name into a single path component.
// Separators and NUL become '-', surrounding whitespace goes, and anything
// that ends up empty or directory-traversal shaped falls back to the id.
func sanitizeName(name, fallback string) string {
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '-'
		}
		return r
	}, name)

	trimmed := strings.TrimSpace(replaced)
	if trimmed == "" || trimmed == "." || trimmed == ".." {
		return fallback
	}
	return trimmed
}

// disambiguate suffixes every member of a colliding name group with its id,
// repeating until all names are distinct. Each round splits every colliding
// group completely (ids are unique), so the loop terminates.
func disambiguate(names, ids []string) []string {
	out := make([]string, len(names))
	copy(out, names)

	for {
		groups := make(map[string][]int, len(out))
		for i, name := range out {
			groups[name] = append(groups[name], i)
		}

		collided := false
		for _, members := range groups {
			if len(members) < 2 {
				continue
			}
			collided = true
			for _, i := range members {
				out[i] += " [" + ids[i] + "]"
			}
		}
		if !collided {
			return out
		}
	}
}
