package card

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Predicate selects the cards a caller is hoping to be offered.
type Predicate func(Record) bool

// Any matches every card.
func Any(Record) bool { return true }

// All matches when every predicate matches. All() matches everything.
func All(ps ...Predicate) Predicate {
	return func(r Record) bool {
		for _, p := range ps {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// OneOf matches when at least one predicate matches. OneOf() matches nothing.
func OneOf(ps ...Predicate) Predicate {
	return func(r Record) bool {
		for _, p := range ps {
			if p(r) {
				return true
			}
		}
		return false
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(r Record) bool { return !p(r) }
}

// HasRarity matches the given tiers. FREE and COMMON are treated as the same tier.
func HasRarity(rs ...Rarity) Predicate {
	want := make(map[Rarity]bool, len(rs))
	for _, r := range rs {
		want[mergeFree(r)] = true
	}
	return func(c Record) bool { return want[mergeFree(c.Rarity)] }
}

func mergeFree(r Rarity) Rarity {
	if r == RarityFree {
		return RarityCommon
	}
	return r
}

// CostAtMost matches cards with a known mana cost <= n.
func CostAtMost(n int) Predicate {
	return func(r Record) bool { return r.Cost != nil && *r.Cost <= n }
}

// CostAtLeast matches cards with a known mana cost >= n.
func CostAtLeast(n int) Predicate {
	return func(r Record) bool { return r.Cost != nil && *r.Cost >= n }
}

func OfType(ts ...Type) Predicate {
	return func(r Record) bool {
		for _, t := range ts {
			if r.Type == t {
				return true
			}
		}
		return false
	}
}

// HasMechanic is case-insensitive.
func HasMechanic(m string) Predicate {
	m = strings.ToUpper(m)
	return func(r Record) bool {
		for _, have := range r.Mechanics {
			if strings.ToUpper(have) == m {
				return true
			}
		}
		return false
	}
}

func IDIn(ids ...string) Predicate {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(r Record) bool { return set[r.ID] }
}

// OwnedBy matches class cards of c, or neutral cards when c is ClassNeutral.
func OwnedBy(c Class) Predicate {
	return func(r Record) bool { return r.Class == c }
}

// ParsePredicate builds a predicate from query parameters. Every supplied filter must
// match; repeated values of the same filter are alternatives. No filters matches all.
//
//	rarity=LEGENDARY&rarity=EPIC  type=SPELL  max_cost=2  min_cost=1
//	mechanic=TAUNT  id=EX1_001  owner=class|neutral
func ParsePredicate(q url.Values, class Class) (Predicate, error) {
	var ps []Predicate

	if vs := q["rarity"]; len(vs) > 0 {
		rs := make([]Rarity, 0, len(vs))
		for _, v := range vs {
			r, ok := ParseRarity(v)
			if !ok {
				return nil, fmt.Errorf("invalid rarity %q", v)
			}
			rs = append(rs, r)
		}
		ps = append(ps, HasRarity(rs...))
	}
	if vs := q["type"]; len(vs) > 0 {
		ts := make([]Type, 0, len(vs))
		for _, v := range vs {
			ts = append(ts, Type(strings.ToUpper(v)))
		}
		ps = append(ps, OfType(ts...))
	}
	if v := q.Get("max_cost"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid max_cost %q", v)
		}
		ps = append(ps, CostAtMost(n))
	}
	if v := q.Get("min_cost"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid min_cost %q", v)
		}
		ps = append(ps, CostAtLeast(n))
	}
	if vs := q["mechanic"]; len(vs) > 0 {
		ms := make([]Predicate, 0, len(vs))
		for _, v := range vs {
			ms = append(ms, HasMechanic(v))
		}
		ps = append(ps, OneOf(ms...))
	}
	if vs := q["id"]; len(vs) > 0 {
		ps = append(ps, IDIn(vs...))
	}
	switch strings.ToLower(q.Get("owner")) {
	case "":
	case "class":
		ps = append(ps, OwnedBy(class))
	case "neutral":
		ps = append(ps, OwnedBy(ClassNeutral))
	default:
		return nil, fmt.Errorf("invalid owner %q", q.Get("owner"))
	}

	return All(ps...), nil
}
