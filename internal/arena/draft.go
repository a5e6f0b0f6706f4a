package arena

import (
	"fmt"

	"github.com/xtding233/arena-odds/internal/card"
)

// Pick is one offer of CardsPerPick cards, all of the same rarity.
type Pick struct {
	Number  int           `json:"number"` // 1-based
	Special bool          `json:"special"`
	Rarity  card.Rarity   `json:"rarity"`
	Cards   []card.Record `json:"cards"`
}

// Draft is the ordered sequence of picks offered to one hero class.
type Draft struct {
	Class card.Class `json:"class"`
	Picks []Pick     `json:"picks"`
}

// Simulator runs drafts under a fixed set of rules.
type Simulator struct {
	rules   Rules
	sampler *Sampler
	rng     RandomSource
}

// NewSimulator validates rules and uses DefaultRNG when rng is nil.
func NewSimulator(rules Rules, rng RandomSource) (*Simulator, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Simulator{rules: rules, sampler: NewSampler(rules.ClassPick, rng), rng: rng}, nil
}

// Rules returns the rules the simulator was built with.
func (s *Simulator) Rules() Rules { return s.rules }

// Draft simulates a full draft for class from the given card collection.
// Cards owned by other classes are ignored.
func (s *Simulator) Draft(class card.Class, cards []card.Record) (Draft, error) {
	if class == card.ClassNeutral {
		return Draft{}, ErrNoHeroClass
	}
	classPart, neutralPart := SplitByOwner(class, cards)
	return s.draft(class, classPart, neutralPart)
}

// draft assumes both partitions start fully available and leaves them that way.
func (s *Simulator) draft(class card.Class, classPart, neutralPart Partition) (Draft, error) {
	d := Draft{Class: class, Picks: make([]Pick, 0, DraftPicks)}
	for n := 1; n <= DraftPicks; n++ {
		pick, err := s.pick(n, classPart, neutralPart)
		if err != nil {
			return Draft{}, fmt.Errorf("%s draft, pick %d: %w", class, n, err)
		}
		d.Picks = append(d.Picks, pick)
	}
	return d, nil
}

// pick draws one offer. Cards are unique within the offer; every pool is reset
// afterwards so depletion never carries into the next pick.
func (s *Simulator) pick(n int, classPart, neutralPart Partition) (Pick, error) {
	defer func() {
		classPart.Reset()
		neutralPart.Reset()
	}()

	rarity := s.sampler.DrawRarity(s.rules.TableFor(n))
	p := Pick{
		Number:  n,
		Special: IsSpecialPick(n),
		Rarity:  rarity,
		Cards:   make([]card.Record, 0, CardsPerPick),
	}
	for i := 0; i < CardsPerPick; i++ {
		c, err := s.sampler.DrawCard(rarity, classPart, neutralPart)
		if err != nil {
			return Pick{}, err
		}
		p.Cards = append(p.Cards, c)
	}
	return p, nil
}

// SimulateDraft runs one draft with DefaultRules.
func SimulateDraft(class card.Class, cards []card.Record, rng RandomSource) (Draft, error) {
	s, err := NewSimulator(DefaultRules(), rng)
	if err != nil {
		return Draft{}, err
	}
	return s.Draft(class, cards)
}
