package card

import "strings"

// Rarity is a card's scarcity tier.
type Rarity string

const (
	RarityFree      Rarity = "FREE"
	RarityCommon    Rarity = "COMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// AllRarities returns every rarity from lowest to highest, FREE included.
func AllRarities() []Rarity {
	return []Rarity{RarityFree, RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// Valid reports whether r is one of the known tiers.
func (r Rarity) Valid() bool {
	switch r {
	case RarityFree, RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// ParseRarity is case-insensitive.
func ParseRarity(s string) (Rarity, bool) {
	r := Rarity(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Class is the owner class of a card. ClassNeutral marks cards any class can draft.
type Class string

const (
	ClassNeutral Class = ""
	ClassDruid   Class = "DRUID"
	ClassHunter  Class = "HUNTER"
	ClassMage    Class = "MAGE"
	ClassPaladin Class = "PALADIN"
	ClassPriest  Class = "PRIEST"
	ClassRogue   Class = "ROGUE"
	ClassShaman  Class = "SHAMAN"
	ClassWarlock Class = "WARLOCK"
	ClassWarrior Class = "WARRIOR"
)

// HeroClasses lists the classes that can enter an arena draft.
func HeroClasses() []Class {
	return []Class{
		ClassDruid, ClassHunter, ClassMage, ClassPaladin, ClassPriest,
		ClassRogue, ClassShaman, ClassWarlock, ClassWarrior,
	}
}

// ParseClass accepts any hero class name; "NEUTRAL" and "" are not hero classes.
func ParseClass(s string) (Class, bool) {
	c := Class(strings.ToUpper(strings.TrimSpace(s)))
	for _, h := range HeroClasses() {
		if c == h {
			return c, true
		}
	}
	return "", false
}

func (c Class) String() string {
	if c == ClassNeutral {
		return "NEUTRAL"
	}
	return string(c)
}

// Type is the card type tag.
type Type string

const (
	TypeMinion      Type = "MINION"
	TypeSpell       Type = "SPELL"
	TypeWeapon      Type = "WEAPON"
	TypeHero        Type = "HERO"
	TypeHeroPower   Type = "HERO_POWER"
	TypeEnchantment Type = "ENCHANTMENT"
)

// Record is one card definition as handed over by the card database.
type Record struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Class       Class    `json:"class,omitempty" yaml:"class,omitempty"`
	Rarity      Rarity   `json:"rarity" yaml:"rarity"`
	Type        Type     `json:"type" yaml:"type"`
	Cost        *int     `json:"cost,omitempty" yaml:"cost,omitempty"`
	Collectible bool     `json:"collectible" yaml:"collectible"`
	Mechanics   []string `json:"mechanics,omitempty" yaml:"mechanics,omitempty"`
}

// Neutral reports whether the card has no owner class.
func (r Record) Neutral() bool { return r.Class == ClassNeutral }
