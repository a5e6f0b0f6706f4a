package card

import "sync"

// LoadFunc produces the full card list for a locale. It is expected to be expensive.
type LoadFunc func(locale string) ([]Record, error)

// DraftableCache memoizes the draftable card list per locale for the life of the
// process. The first Get for a locale runs the loader exactly once, even under
// concurrent callers; failed loads are not cached.
type DraftableCache struct {
	load LoadFunc

	mu    sync.RWMutex
	cache map[string][]Record
}

// NewDraftableCache wraps load. The composition root owns the returned cache.
func NewDraftableCache(load LoadFunc) *DraftableCache {
	return &DraftableCache{
		load:  load,
		cache: make(map[string][]Record),
	}
}

// CatalogLoader loads <locale>.yaml from the data directory.
func CatalogLoader(p Paths) LoadFunc {
	return func(locale string) ([]Record, error) {
		cat, err := LoadCatalog(p.CatalogPath(locale))
		if err != nil {
			return nil, err
		}
		return cat.Cards, nil
	}
}

// Get returns the draftable cards for locale. Callers must not mutate the slice.
func (c *DraftableCache) Get(locale string) ([]Record, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	c.mu.RLock()
	cards, ok := c.cache[locale]
	c.mu.RUnlock()
	if ok {
		return cards, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// another caller may have populated it while we waited
	if cards, ok := c.cache[locale]; ok {
		return cards, nil
	}
	all, err := c.load(locale)
	if err != nil {
		return nil, err
	}
	cards = Draftable(all)
	c.cache[locale] = cards
	return cards, nil
}
