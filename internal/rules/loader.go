package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/arena-odds/internal/arena"
)

// DefaultRuleset names the base rules file.
const DefaultRuleset = "default"

// Paths helper for default/ruleset files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/data
}

func (p Paths) Dir() string {
	return filepath.Join(p.BaseDir, "rules")
}
func (p Paths) DefaultPath() string {
	return filepath.Join(p.Dir(), DefaultRuleset+".yaml")
}
func (p Paths) RulesetPath(ruleset string) string {
	return filepath.Join(p.Dir(), ruleset+".yaml")
}

// Loader reads YAML rules and merges default → ruleset.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: ruleset name
}

// NewLoader creates a rules loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the file layout the loader reads from.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → ruleset (ruleset optional).
// It returns the merged RawConfig (without validation).
func (l *Loader) LoadMerged(ruleset string) (RawConfig, error) {
	if ruleset == "" {
		ruleset = DefaultRuleset
	}
	l.mu.RLock()
	if cfg, ok := l.cache[ruleset]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default rules: %w", err)
	}
	merged := defCfg
	if ruleset != DefaultRuleset {
		path := l.paths.RulesetPath(ruleset)
		if _, err := os.Stat(path); err != nil {
			return RawConfig{}, fmt.Errorf("ruleset %q: %w", ruleset, err)
		}
		rsCfg, err := readYAML(path)
		if err != nil {
			return RawConfig{}, fmt.Errorf("read ruleset %q: %w", ruleset, err)
		}
		merged = mergeRaw(defCfg, rsCfg)
	}

	l.mu.Lock()
	l.cache[ruleset] = merged
	l.mu.Unlock()

	return merged, nil
}

// Load returns validated engine rules for ruleset.
func (l *Loader) Load(ruleset string) (arena.Rules, error) {
	raw, err := l.LoadMerged(ruleset)
	if err != nil {
		return arena.Rules{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return arena.Rules{}, err
	}
	return Resolve(raw)
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	if len(cfg.ClassPick) > 0 {
		cp := make(map[string]*float64, len(cfg.ClassPick))
		for k, v := range cfg.ClassPick {
			cp[strings.ToUpper(k)] = v
		}
		cfg.ClassPick = cp
	}
	return cfg, nil
}

// mergeRaw overlays b on a: non-empty scalars and tables in b win, tables are
// replaced whole, class_pick is merged per rarity.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	if len(b.Tables.Regular) > 0 {
		out.Tables.Regular = append([]EntryConfig(nil), b.Tables.Regular...)
	}
	if len(b.Tables.Special) > 0 {
		out.Tables.Special = append([]EntryConfig(nil), b.Tables.Special...)
	}

	if len(b.ClassPick) > 0 {
		cp := make(map[string]*float64, len(a.ClassPick)+len(b.ClassPick))
		for k, v := range a.ClassPick {
			cp[k] = v
		}
		for k, v := range b.ClassPick {
			if v != nil {
				cp[k] = v
			}
		}
		out.ClassPick = cp
	}

	return out
}
