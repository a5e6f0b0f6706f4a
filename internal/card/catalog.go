package card

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrEmptyCatalog = errors.New("card catalog has no cards")

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "enUS"

// Paths resolves catalog files under a data directory.
type Paths struct {
	BaseDir string // e.g. /var/lib/arena-odds
}

// CatalogPath returns BaseDir/cards/<locale>.yaml.
func (p Paths) CatalogPath(locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}
	return filepath.Join(p.BaseDir, "cards", locale+".yaml")
}

// Catalog is the on-disk card list. JSON is accepted too, since YAML parses it.
type Catalog struct {
	Version string   `yaml:"version"`
	Locale  string   `yaml:"locale"`
	Cards   []Record `yaml:"cards"`
}

// LoadCatalog reads and validates one catalog file.
func LoadCatalog(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(b)
}

// ParseCatalog decodes a catalog document and normalizes tag casing.
func ParseCatalog(b []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(b, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if len(cat.Cards) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}

	var errs []string
	seen := make(map[string]bool, len(cat.Cards))
	for i := range cat.Cards {
		c := &cat.Cards[i]
		c.Rarity = Rarity(strings.ToUpper(string(c.Rarity)))
		c.Type = Type(strings.ToUpper(string(c.Type)))
		if strings.EqualFold(string(c.Class), "NEUTRAL") {
			c.Class = ClassNeutral
		} else {
			c.Class = Class(strings.ToUpper(string(c.Class)))
		}

		if c.ID == "" {
			errs = append(errs, fmt.Sprintf("cards[%d]: id is required", i))
			continue
		}
		if seen[c.ID] {
			errs = append(errs, fmt.Sprintf("cards[%d]: duplicate id %s", i, c.ID))
		}
		seen[c.ID] = true
		if !c.Rarity.Valid() {
			errs = append(errs, fmt.Sprintf("cards[%d] %s: unknown rarity %q", i, c.ID, c.Rarity))
		}
	}
	if len(errs) > 0 {
		return Catalog{}, fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return cat, nil
}

// Draftable keeps the cards that can be offered in an arena draft:
// collectible and not a hero card.
func Draftable(cards []Record) []Record {
	out := make([]Record, 0, len(cards))
	for _, c := range cards {
		if c.Collectible && c.Type != TypeHero {
			out = append(out, c)
		}
	}
	return out
}
