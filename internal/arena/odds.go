package arena

import (
	"math"

	"github.com/xtding233/arena-odds/internal/card"
)

// Two-urn model of one pick: every slot is filled from the hero (class) urn with
// probability p, else from the neutral urn; each urn is sampled without replacement.
// An urn of total T holds S matching cards.

// noMatch is the hypergeometric probability that draws cards taken from an urn of
// total cards, matching of them successes, contain no success. Zero draws always
// miss; more draws than cards is impossible and scores 0.
func noMatch(total, matching, draws int) float64 {
	if draws <= 0 {
		return 1
	}
	if draws > total {
		return 0
	}
	misses := total - matching
	pr := 1.0
	for i := 0; i < draws; i++ {
		if misses-i <= 0 {
			return 0
		}
		pr *= float64(misses-i) / float64(total-i)
	}
	return pr
}

// choose is the binomial coefficient as a float.
func choose(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	c := 1.0
	for i := 1; i <= k; i++ {
		c = c * float64(n-k+i) / float64(i)
	}
	return c
}

// binomialPMF is P(X = k) for X ~ Binomial(n, p), exact at p = 0 and p = 1.
func binomialPMF(n int, p float64, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	switch {
	case p <= 0:
		if k == 0 {
			return 1
		}
		return 0
	case p >= 1:
		if k == n {
			return 1
		}
		return 0
	}
	return choose(n, k) * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
}

// ZeroMatchProbability is the chance that none of the CardsPerPick cards of one pick
// match, given the hero urn (heroTotal, heroMatching), the neutral urn
// (neutralTotal, neutralMatching) and the per-slot probability classP of using the
// hero urn. Each hero/neutral split j, CardsPerPick-j is weighted binomially.
func ZeroMatchProbability(heroTotal, heroMatching int, classP float64, neutralTotal, neutralMatching int) float64 {
	var pr float64
	for j := 0; j <= CardsPerPick; j++ {
		split := binomialPMF(CardsPerPick, classP, j)
		if split == 0 {
			continue
		}
		pr += split *
			noMatch(heroTotal, heroMatching, j) *
			noMatch(neutralTotal, neutralMatching, CardsPerPick-j)
	}
	return clamp01(pr)
}

// AtLeastOneProbability is 1 - ZeroMatchProbability.
func AtLeastOneProbability(heroTotal, heroMatching int, classP float64, neutralTotal, neutralMatching int) float64 {
	return clamp01(1 - ZeroMatchProbability(heroTotal, heroMatching, classP, neutralTotal, neutralMatching))
}

// UrnCounts are the card counts of one rarity for one hero class.
type UrnCounts struct {
	HeroTotal       int `json:"hero_total"`
	HeroMatching    int `json:"hero_matching"`
	NeutralTotal    int `json:"neutral_total"`
	NeutralMatching int `json:"neutral_matching"`
}

// Model predicts, without drawing anything, how often picks offer a matching card.
type Model struct {
	rules  Rules
	counts map[card.Rarity]UrnCounts
}

// NewModel counts, per rarity, the class and neutral cards and how many of them
// satisfy pred.
func NewModel(rules Rules, class card.Class, cards []card.Record, pred card.Predicate) (*Model, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if class == card.ClassNeutral {
		return nil, ErrNoHeroClass
	}
	if pred == nil {
		pred = card.Any
	}
	classPart, neutralPart := SplitByOwner(class, cards)
	counts := make(map[card.Rarity]UrnCounts, 4)
	for _, r := range DraftRarities() {
		counts[r] = UrnCounts{
			HeroTotal:       classPart[r].Size(),
			HeroMatching:    classPart[r].Count(pred),
			NeutralTotal:    neutralPart[r].Size(),
			NeutralMatching: neutralPart[r].Count(pred),
		}
	}
	return &Model{rules: rules, counts: counts}, nil
}

// Counts returns the urn sizes for r.
func (m *Model) Counts(r card.Rarity) UrnCounts { return m.counts[r] }

// RaritySuccess is the chance a pick of rarity r offers at least one match.
// A class with no cards of r always gets neutral cards, as the sampler does.
func (m *Model) RaritySuccess(r card.Rarity) float64 {
	c := m.counts[r]
	classP := m.rules.ClassPick[r]
	if c.HeroTotal == 0 {
		classP = 0
	}
	return AtLeastOneProbability(c.HeroTotal, c.HeroMatching, classP, c.NeutralTotal, c.NeutralMatching)
}

// SuccessProbability is the chance a single pick drawn with t offers a match.
func (m *Model) SuccessProbability(t PickTable) float64 {
	var pr float64
	for _, e := range t.Entries {
		if e.Weight <= 0 {
			continue
		}
		pr += e.Weight * m.RaritySuccess(e.Rarity)
	}
	return clamp01(pr)
}

// RegularSuccess is SuccessProbability of the regular table.
func (m *Model) RegularSuccess() float64 { return m.SuccessProbability(m.rules.Regular) }

// SpecialSuccess is SuccessProbability of the special table.
func (m *Model) SpecialSuccess() float64 { return m.SuccessProbability(m.rules.Special) }
