package arena

import (
	"errors"
	"testing"

	"github.com/xtding233/arena-odds/internal/card"
)

func TestSimulateDraftShape(t *testing.T) {
	cards := collection(10, card.ClassMage, card.ClassWarrior)
	d, err := SimulateDraft(card.ClassMage, cards, NewSeededRNG(2024))
	if err != nil {
		t.Fatal(err)
	}
	if d.Class != card.ClassMage || len(d.Picks) != DraftPicks {
		t.Fatalf("draft class=%s picks=%d", d.Class, len(d.Picks))
	}
	for i, p := range d.Picks {
		if p.Number != i+1 {
			t.Fatalf("pick %d numbered %d", i+1, p.Number)
		}
		if p.Special != IsSpecialPick(p.Number) {
			t.Fatalf("pick %d special=%v", p.Number, p.Special)
		}
		if p.Special && p.Rarity == card.RarityCommon {
			t.Fatalf("special pick %d offered commons", p.Number)
		}
		if len(p.Cards) != CardsPerPick {
			t.Fatalf("pick %d has %d cards", p.Number, len(p.Cards))
		}
		seen := make(map[string]bool)
		for _, c := range p.Cards {
			if seen[c.ID] {
				t.Fatalf("pick %d offered %s twice", p.Number, c.ID)
			}
			seen[c.ID] = true
			if c.Rarity != p.Rarity {
				t.Fatalf("pick %d is %s but offered %s card %s", p.Number, p.Rarity, c.Rarity, c.ID)
			}
			if c.Class != card.ClassMage && !c.Neutral() {
				t.Fatalf("mage draft offered %s card %s", c.Class, c.ID)
			}
		}
	}
}

// Exactly three cards per rarity and owner: every pick empties a pool, so the
// draft only completes if pools are reset between picks.
func TestSimulateDraftResetsBetweenPicks(t *testing.T) {
	cards := collection(CardsPerPick)
	d, err := SimulateDraft(card.ClassPriest, cards, NewSeededRNG(1))
	if err != nil {
		t.Fatalf("draft should complete with pools reset each pick: %v", err)
	}
	if len(d.Picks) != DraftPicks {
		t.Fatalf("got %d picks", len(d.Picks))
	}
}

func TestSimulateDraftIsReproducible(t *testing.T) {
	cards := collection(8, card.ClassHunter)
	a, err := SimulateDraft(card.ClassHunter, cards, NewSeededRNG(99))
	if err != nil {
		t.Fatal(err)
	}
	b, err := SimulateDraft(card.ClassHunter, cards, NewSeededRNG(99))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Picks {
		for j := range a.Picks[i].Cards {
			if a.Picks[i].Cards[j].ID != b.Picks[i].Cards[j].ID {
				t.Fatalf("pick %d card %d differs: %s vs %s", i+1, j, a.Picks[i].Cards[j].ID, b.Picks[i].Cards[j].ID)
			}
		}
	}
}

func TestSimulateDraftFailsFastOnEmptyBucket(t *testing.T) {
	rules := DefaultRules()
	rules.Regular = PickTable{Name: "commons", Entries: []TableEntry{{card.RarityCommon, 1}}}
	sim, err := NewSimulator(rules, NewSeededRNG(3))
	if err != nil {
		t.Fatal(err)
	}

	var cards []card.Record
	for _, c := range collection(5, card.ClassShaman) {
		if c.Rarity != card.RarityCommon {
			cards = append(cards, c)
		}
	}
	_, err = sim.Draft(card.ClassShaman, cards)
	if !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition, got %v", err)
	}
}

func TestSimulateDraftRejectsNeutral(t *testing.T) {
	if _, err := SimulateDraft(card.ClassNeutral, collection(3), nil); !errors.Is(err, ErrNoHeroClass) {
		t.Fatalf("expected ErrNoHeroClass, got %v", err)
	}
}

func TestNewSimulatorRejectsBadRules(t *testing.T) {
	rules := DefaultRules()
	rules.Special.Entries = nil
	if _, err := NewSimulator(rules, nil); !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("expected ErrInvalidTable, got %v", err)
	}
}
