package chat

import (
	"strings"
	"sync"
)

type entry struct {
	title      string
	hasTitle   bool
	summary    string
	hasSummary bool
}

// Cache remembers lookup results for the lifetime of a session. Entries are
// write-once: the first stored value for a key is the one every later
// request sees, so a resolved query never hits the network twice.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// normalizeKey folds queries so that "Go", "go" and " go " share one entry.
// Titles are already canonical and are stored as-is.
func normalizeKey(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func (c *Cache) Title(query string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[normalizeKey(query)]
	if !ok || !e.hasTitle {
		return "", false
	}
	return e.title, true
}

func (c *Cache) SetTitle(query, title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.lookup(normalizeKey(query))
	if e.hasTitle {
		return
	}
	e.title = title
	e.hasTitle = true
}

func (c *Cache) Summary(title string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[title]
	if !ok || !e.hasSummary {
		return "", false
	}
	return e.summary, true
}

func (c *Cache) SetSummary(title, summary string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.lookup(title)
	if e.hasSummary {
		return
	}
	e.summary = summary
	e.hasSummary = true
}

// Len reports the number of distinct keys held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}
