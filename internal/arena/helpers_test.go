package arena

import (
	"fmt"

	"github.com/xtding233/arena-odds/internal/card"
)

// scriptedRNG replays fixed values; it panics when a script runs dry so a test
// that consumes more randomness than expected fails loudly.
type scriptedRNG struct {
	floats []float64
	ints   []int
}

func (s *scriptedRNG) Float64() float64 {
	if len(s.floats) == 0 {
		panic("scriptedRNG: out of floats")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRNG) IntN(n int) int {
	if len(s.ints) == 0 {
		panic("scriptedRNG: out of ints")
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

// collection builds perRarity class cards for each hero class given and perRarity
// neutral cards, for every draft rarity. Ids are "<owner>-<rarity>-<i>".
func collection(perRarity int, classes ...card.Class) []card.Record {
	var cards []card.Record
	owners := append([]card.Class{card.ClassNeutral}, classes...)
	for _, owner := range owners {
		for _, r := range DraftRarities() {
			for i := 0; i < perRarity; i++ {
				cost := i % 10
				cards = append(cards, card.Record{
					ID:          fmt.Sprintf("%s-%s-%d", owner, r, i),
					Class:       owner,
					Rarity:      r,
					Type:        card.TypeMinion,
					Cost:        &cost,
					Collectible: true,
				})
			}
		}
	}
	return cards
}
