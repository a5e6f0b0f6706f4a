package arena

import (
	"fmt"

	"github.com/xtding233/arena-odds/internal/card"
)

// Sampler performs the two-stage draw of a single card slot:
// a rarity from a pick table, then the class or neutral pool of that rarity.
type Sampler struct {
	classPick map[card.Rarity]float64
	rng       RandomSource
}

// NewSampler uses DefaultRNG when rng is nil.
func NewSampler(classPick map[card.Rarity]float64, rng RandomSource) *Sampler {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Sampler{classPick: classPick, rng: rng}
}

// DrawRarity picks a tier from t: q is uniform in [0,1) and the first entry whose
// cumulative weight is strictly greater than q wins. Should rounding leave q at or
// above the final cumulative weight, the last tier with nonzero weight is used.
func (s *Sampler) DrawRarity(t PickTable) card.Rarity {
	q := s.rng.Float64()
	var cum float64
	var last card.Rarity
	for _, e := range t.Entries {
		if e.Weight <= 0 {
			continue
		}
		cum += e.Weight
		last = e.Rarity
		if q < cum {
			return e.Rarity
		}
	}
	return last
}

// DrawCard fills one slot of the given rarity. The class pool is preferred with the
// rarity's class pick probability, falling back to the neutral pool when the class
// pool is exhausted. An empty neutral pool at that point is ErrPrecondition.
// The drawn card is removed from its pool.
func (s *Sampler) DrawCard(rarity card.Rarity, classPart, neutralPart Partition) (card.Record, error) {
	fromClass, err := Draw(s.classPick[rarity], s.rng)
	if err != nil {
		return card.Record{}, fmt.Errorf("class pick probability for %s: %w", rarity, err)
	}
	if cp := classPart[rarity]; fromClass && cp != nil && cp.Len() > 0 {
		return cp.Draw(s.rng)
	}
	np := neutralPart[rarity]
	if np == nil || np.Len() == 0 {
		return card.Record{}, fmt.Errorf("%w: no %s cards left in class or neutral pool", ErrPrecondition, rarity)
	}
	return np.Draw(s.rng)
}
