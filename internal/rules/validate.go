package rules

import (
	"fmt"
	"math"
	"strings"

	"github.com/xtding233/arena-odds/internal/card"
)

// ValidateRaw checks semantic constraints of a RawConfig. Omitted sections are fine;
// Resolve fills them from the built-in rules.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	errs = append(errs, validateTable("tables.regular", cfg.Tables.Regular)...)
	errs = append(errs, validateTable("tables.special", cfg.Tables.Special)...)

	for k, v := range cfg.ClassPick {
		if !isDraftRarity(k) {
			errs = append(errs, fmt.Sprintf("class_pick.%s: unknown rarity", k))
			continue
		}
		if v == nil {
			errs = append(errs, fmt.Sprintf("class_pick.%s must be set", k))
		} else if *v < 0 || *v > 1 {
			errs = append(errs, fmt.Sprintf("class_pick.%s must be in [0,1]", k))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("rules validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateTable(name string, entries []EntryConfig) []string {
	if len(entries) == 0 {
		return nil
	}
	var errs []string
	seen := make(map[string]bool, len(entries))
	var sum float64
	for i, e := range entries {
		r := strings.ToUpper(e.Rarity)
		if !isDraftRarity(r) {
			errs = append(errs, fmt.Sprintf("%s[%d].rarity %q must be one of COMMON, RARE, EPIC, LEGENDARY", name, i, e.Rarity))
		}
		if seen[r] {
			errs = append(errs, fmt.Sprintf("%s[%d].rarity %s is repeated", name, i, r))
		}
		seen[r] = true
		if e.Weight < 0 || e.Weight > 1 {
			errs = append(errs, fmt.Sprintf("%s[%d].weight must be in [0,1]", name, i))
		}
		sum += e.Weight
	}
	if math.Abs(sum-1) > 1e-9 {
		errs = append(errs, fmt.Sprintf("%s weights sum to %g, must sum to 1", name, sum))
	}
	return errs
}

func isDraftRarity(s string) bool {
	switch card.Rarity(s) {
	case card.RarityCommon, card.RarityRare, card.RarityEpic, card.RarityLegendary:
		return true
	}
	return false
}
