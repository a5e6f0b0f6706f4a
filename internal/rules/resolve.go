// resolve.go
package rules

import (
	"strings"

	"github.com/xtding233/arena-odds/internal/arena"
	"github.com/xtding233/arena-odds/internal/card"
)

// Resolve turns a merged RawConfig into engine rules. Sections the config leaves
// out keep their built-in values.
func Resolve(cfg RawConfig) (arena.Rules, error) {
	r := arena.DefaultRules()
	if len(cfg.Tables.Regular) > 0 {
		r.Regular = toTable("regular", cfg.Tables.Regular)
	}
	if len(cfg.Tables.Special) > 0 {
		r.Special = toTable("special", cfg.Tables.Special)
	}
	for k, v := range cfg.ClassPick {
		if v != nil {
			r.ClassPick[card.Rarity(strings.ToUpper(k))] = *v
		}
	}
	if err := r.Validate(); err != nil {
		return arena.Rules{}, err
	}
	return r, nil
}

func toTable(name string, entries []EntryConfig) arena.PickTable {
	t := arena.PickTable{Name: name, Entries: make([]arena.TableEntry, 0, len(entries))}
	for _, e := range entries {
		t.Entries = append(t.Entries, arena.TableEntry{
			Rarity: card.Rarity(strings.ToUpper(e.Rarity)),
			Weight: e.Weight,
		})
	}
	return t
}
