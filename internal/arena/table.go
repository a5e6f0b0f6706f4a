package arena

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/xtding233/arena-odds/internal/card"
)

const (
	// DraftPicks is the number of picks in a full draft.
	DraftPicks = 30
	// CardsPerPick is how many cards each pick offers.
	CardsPerPick = 3
)

// specialPicks are the 1-based pick numbers that use the special table.
var specialPicks = [...]int{1, 10, 20, 30}

// IsSpecialPick reports whether 1-based pick n uses the special table.
func IsSpecialPick(n int) bool {
	for _, s := range specialPicks {
		if n == s {
			return true
		}
	}
	return false
}

var ErrInvalidTable = errors.New("invalid pick table")

// sumTolerance bounds how far a table's weights may drift from 1.
const sumTolerance = 1e-9

// TableEntry is one rarity tier of a pick table and its weight.
type TableEntry struct {
	Rarity card.Rarity
	Weight float64
}

// PickTable is a categorical distribution over rarities. Entries are walked in order
// when a rarity is drawn, so the order is part of the table.
type PickTable struct {
	Name    string
	Entries []TableEntry
}

// RegularTable is used for every pick that is not special.
var RegularTable = PickTable{
	Name: "regular",
	Entries: []TableEntry{
		{card.RarityCommon, 0.9},
		{card.RarityRare, 0.08},
		{card.RarityEpic, 0.016},
		{card.RarityLegendary, 0.004},
	},
}

// SpecialTable is used for picks 1, 10, 20 and 30: rare or better only.
var SpecialTable = PickTable{
	Name: "special",
	Entries: []TableEntry{
		{card.RarityRare, 0.8},
		{card.RarityEpic, 0.16},
		{card.RarityLegendary, 0.04},
	},
}

// DefaultClassPick is the chance, per rarity, that a card slot is filled from the
// class pool rather than the neutral pool.
var DefaultClassPick = map[card.Rarity]float64{
	card.RarityCommon:    0.3,
	card.RarityRare:      0.2,
	card.RarityEpic:      0.3,
	card.RarityLegendary: 0.08,
}

// Prob returns the weight of r, 0 when the table has no such entry.
func (t PickTable) Prob(r card.Rarity) float64 {
	for _, e := range t.Entries {
		if e.Rarity == r {
			return e.Weight
		}
	}
	return 0
}

// Sum of all weights.
func (t PickTable) Sum() float64 {
	var s float64
	for _, e := range t.Entries {
		s += e.Weight
	}
	return s
}

// Validate checks the table is a proper distribution over draft rarities.
func (t PickTable) Validate() error {
	var errs []string
	if len(t.Entries) == 0 {
		errs = append(errs, "no entries")
	}
	seen := make(map[card.Rarity]bool, len(t.Entries))
	for _, e := range t.Entries {
		if !isDraftRarity(e.Rarity) {
			errs = append(errs, fmt.Sprintf("rarity %q is not a draft rarity", e.Rarity))
		}
		if seen[e.Rarity] {
			errs = append(errs, fmt.Sprintf("rarity %s listed twice", e.Rarity))
		}
		seen[e.Rarity] = true
		if validateProb(e.Weight) != nil {
			errs = append(errs, fmt.Sprintf("weight of %s must be in [0,1]", e.Rarity))
		}
	}
	if s := t.Sum(); math.Abs(s-1) > sumTolerance {
		errs = append(errs, fmt.Sprintf("weights sum to %g, want 1", s))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w %s: %s", ErrInvalidTable, t.Name, strings.Join(errs, "; "))
	}
	return nil
}

func isDraftRarity(r card.Rarity) bool {
	for _, d := range DraftRarities() {
		if r == d {
			return true
		}
	}
	return false
}

// Rules bundles the probability tables a draft is run with.
type Rules struct {
	Regular   PickTable
	Special   PickTable
	ClassPick map[card.Rarity]float64
}

// DefaultRules returns the standard arena odds.
func DefaultRules() Rules {
	cp := make(map[card.Rarity]float64, len(DefaultClassPick))
	for r, p := range DefaultClassPick {
		cp[r] = p
	}
	return Rules{Regular: RegularTable, Special: SpecialTable, ClassPick: cp}
}

// TableFor returns the table used by 1-based pick n.
func (r Rules) TableFor(n int) PickTable {
	if IsSpecialPick(n) {
		return r.Special
	}
	return r.Regular
}

// Validate checks both tables and that every reachable rarity has a class pick
// probability.
func (r Rules) Validate() error {
	if err := r.Regular.Validate(); err != nil {
		return err
	}
	if err := r.Special.Validate(); err != nil {
		return err
	}
	for _, t := range []PickTable{r.Regular, r.Special} {
		for _, e := range t.Entries {
			p, ok := r.ClassPick[e.Rarity]
			if !ok {
				return fmt.Errorf("%w: no class pick probability for %s", ErrInvalidTable, e.Rarity)
			}
			if err := validateProb(p); err != nil {
				return fmt.Errorf("class pick probability for %s: %w", e.Rarity, err)
			}
		}
	}
	return nil
}
