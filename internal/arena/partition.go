package arena

import "github.com/xtding233/arena-odds/internal/card"

// DraftRarities are the tiers a pick can land on, FREE having been merged into COMMON.
func DraftRarities() []card.Rarity {
	return []card.Rarity{card.RarityCommon, card.RarityRare, card.RarityEpic, card.RarityLegendary}
}

// Partition maps each draft rarity to the pool of cards of that tier.
type Partition map[card.Rarity]*Pool

// PartitionByRarity groups cards by rarity. FREE cards join the COMMON pool and FREE
// never appears as a key; every other tier is present even when empty.
func PartitionByRarity(cards []card.Record) Partition {
	groups := make(map[card.Rarity][]card.Record, 4)
	for _, c := range cards {
		r := c.Rarity
		if r == card.RarityFree {
			r = card.RarityCommon
		}
		groups[r] = append(groups[r], c)
	}
	part := make(Partition, 4)
	for _, r := range DraftRarities() {
		part[r] = NewPool(groups[r])
	}
	return part
}

// SplitByOwner partitions the cards owned by class and the neutral cards separately.
// Cards of other classes are ignored.
func SplitByOwner(class card.Class, cards []card.Record) (classPart, neutralPart Partition) {
	var own, neutral []card.Record
	for _, c := range cards {
		switch c.Class {
		case class:
			own = append(own, c)
		case card.ClassNeutral:
			neutral = append(neutral, c)
		}
	}
	return PartitionByRarity(own), PartitionByRarity(neutral)
}

// Reset restores every pool in the partition.
func (p Partition) Reset() {
	for _, pool := range p {
		pool.Reset()
	}
}
