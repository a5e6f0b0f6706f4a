// types.go
package rules

// RawConfig is a rules file as loaded from YAML. Every field is optional so that
// a ruleset file only needs to state what it changes.
type RawConfig struct {
	Version   string              `yaml:"version"`
	Tables    TablesConfig        `yaml:"tables"`
	ClassPick map[string]*float64 `yaml:"class_pick,omitempty"`
	Notes     string              `yaml:"notes,omitempty"`
}

// TablesConfig holds the rarity odds per pick kind. Entry order is the draw order.
type TablesConfig struct {
	Regular []EntryConfig `yaml:"regular,omitempty"`
	Special []EntryConfig `yaml:"special,omitempty"`
}

type EntryConfig struct {
	Rarity string  `yaml:"rarity"`
	Weight float64 `yaml:"weight"`
}
