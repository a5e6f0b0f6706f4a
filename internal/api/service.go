package api

import (
	"fmt"

	"github.com/xtding233/arena-odds/internal/arena"
	"github.com/xtding233/arena-odds/internal/card"
)

// CardSource hands out the draftable cards of a locale.
type CardSource interface {
	Get(locale string) ([]card.Record, error)
}

// RulesSource resolves a named ruleset.
type RulesSource interface {
	Load(ruleset string) (arena.Rules, error)
}

// Service answers draft and odds questions against the configured card data and rules.
type Service struct {
	cards   CardSource
	rules   RulesSource
	locale  string
	ruleset string
	seed    uint64
}

// NewService wires the data sources. A zero seed draws from crypto/rand.
func NewService(cards CardSource, rules RulesSource, locale, ruleset string, seed uint64) *Service {
	return &Service{cards: cards, rules: rules, locale: locale, ruleset: ruleset, seed: seed}
}

// Odds is the analytic answer for one class, predicate and horizon.
type Odds struct {
	Class        card.Class                      `json:"class"`
	N            int                             `json:"n"`
	RegularP     float64                         `json:"regular_p"`
	SpecialP     float64                         `json:"special_p"`
	RegularPicks int                             `json:"regular_picks"`
	SpecialPicks int                             `json:"special_picks"`
	PMF          []float64                       `json:"pmf"`
	Expectation  float64                         `json:"expectation"`
	Variance     float64                         `json:"variance"`
	StdDev       float64                         `json:"stddev"`
	Counts       map[card.Rarity]arena.UrnCounts `json:"counts"`
}

// CrossVal sets the analytic per-pick rates beside simulated ones.
type CrossVal struct {
	Class     card.Class     `json:"class"`
	RegularP  float64        `json:"regular_p"`
	SpecialP  float64        `json:"special_p"`
	Empirical arena.Estimate `json:"empirical"`
}

// rng returns a source for one request. Seeded sources are not shared between
// requests since they are not safe for concurrent use.
func (s *Service) rng(seed *uint64) arena.RandomSource {
	switch {
	case seed != nil:
		return arena.NewSeededRNG(*seed)
	case s.seed != 0:
		return arena.NewSeededRNG(s.seed)
	default:
		return arena.DefaultRNG()
	}
}

func (s *Service) load() (arena.Rules, []card.Record, error) {
	rules, err := s.rules.Load(s.ruleset)
	if err != nil {
		return arena.Rules{}, nil, fmt.Errorf("load rules %s: %w", s.ruleset, err)
	}
	cards, err := s.cards.Get(s.locale)
	if err != nil {
		return arena.Rules{}, nil, fmt.Errorf("load cards %s: %w", s.locale, err)
	}
	return rules, cards, nil
}

// Draft simulates one full draft for class.
func (s *Service) Draft(class card.Class, seed *uint64) (arena.Draft, error) {
	rules, cards, err := s.load()
	if err != nil {
		return arena.Draft{}, err
	}
	sim, err := arena.NewSimulator(rules, s.rng(seed))
	if err != nil {
		return arena.Draft{}, err
	}
	return sim.Draft(class, cards)
}

// Odds computes the success distribution over the next n picks.
func (s *Service) Odds(class card.Class, pred card.Predicate, n int) (Odds, error) {
	rules, cards, err := s.load()
	if err != nil {
		return Odds{}, err
	}
	m, err := arena.NewModel(rules, class, cards, pred)
	if err != nil {
		return Odds{}, err
	}
	d, err := m.Distribution(n)
	if err != nil {
		return Odds{}, err
	}
	counts := make(map[card.Rarity]arena.UrnCounts, 4)
	for _, r := range arena.DraftRarities() {
		counts[r] = m.Counts(r)
	}
	return Odds{
		Class:        class,
		N:            d.N,
		RegularP:     d.PRegular,
		SpecialP:     d.PSpecial,
		RegularPicks: d.Regular,
		SpecialPicks: d.Special,
		PMF:          d.Values(),
		Expectation:  d.Expectation(),
		Variance:     d.Variance(),
		StdDev:       d.StdDev(),
		Counts:       counts,
	}, nil
}

// CrossValidate runs trials simulated drafts and reports them next to the model.
func (s *Service) CrossValidate(class card.Class, pred card.Predicate, trials int, seed *uint64) (CrossVal, error) {
	rules, cards, err := s.load()
	if err != nil {
		return CrossVal{}, err
	}
	m, err := arena.NewModel(rules, class, cards, pred)
	if err != nil {
		return CrossVal{}, err
	}
	sim, err := arena.NewSimulator(rules, s.rng(seed))
	if err != nil {
		return CrossVal{}, err
	}
	est, err := sim.EstimateSuccess(class, cards, pred, trials)
	if err != nil {
		return CrossVal{}, err
	}
	return CrossVal{
		Class:     class,
		RegularP:  m.RegularSuccess(),
		SpecialP:  m.SpecialSuccess(),
		Empirical: est,
	}, nil
}
