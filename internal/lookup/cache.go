package lookup

import "github.com/arcanaland/deckview/internal/card"

// Result is a cached lookup outcome. A nil Card marks a name Scryfall could not resolve.
type Result struct {
	Card *card.Card
	Err  error
}

// Found reports whether the lookup produced a card
func (r Result) Found() bool {
	return r.Card != nil
}

// Cache stores lookup results keyed by the requested name, in insertion order.
// It lives for one session and is never evicted. It is not safe for concurrent use;
// the loader resolves names from a single goroutine.
type Cache struct {
	entries map[string]Result
	order   []string
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Result)}
}

// Get returns the cached result for a name
func (c *Cache) Get(name string) (Result, bool) {
	r, ok := c.entries[name]
	return r, ok
}

// Set stores a result. The first insertion fixes the name's position.
func (c *Cache) Set(name string, r Result) {
	if _, ok := c.entries[name]; !ok {
		c.order = append(c.order, name)
	}
	c.entries[name] = r
}

// Names returns cached names in insertion order
func (c *Cache) Names() []string {
	return append([]string(nil), c.order...)
}

func (c *Cache) Len() int {
	return len(c.order)
}
