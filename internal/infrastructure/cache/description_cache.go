// Package cache keeps localized schema descriptions so metadata requests
// don't re-resolve every label.
package cache

import (
	"sync"

	"malladmin/internal/metadata"
)

// Loader produces the description for a kind in a locale.
type Loader func(kind, locale string) (metadata.Description, error)

// InvalidationListener is called after a kind is dropped from the cache.
// An empty kind means everything was dropped.
type InvalidationListener func(kind string)

type key struct {
	kind   string
	locale string
}

// DescriptionCache is a thread-safe read-through cache of descriptions.
type DescriptionCache struct {
	load Loader

	mu      sync.RWMutex
	entries map[key]metadata.Description

	listeners   []InvalidationListener
	listenersMu sync.RWMutex
}

// NewDescriptionCache creates an empty cache backed by load.
func NewDescriptionCache(load Loader) *DescriptionCache {
	return &DescriptionCache{
		load:    load,
		entries: make(map[key]metadata.Description),
	}
}

// Get returns the cached description, loading it on a miss.
// Failed loads are not cached.
func (c *DescriptionCache) Get(kind, locale string) (metadata.Description, error) {
	k := key{kind: kind, locale: locale}

	c.mu.RLock()
	d, ok := c.entries[k]
	c.mu.RUnlock()
	if ok {
		return d, nil
	}

	d, err := c.load(kind, locale)
	if err != nil {
		return metadata.Description{}, err
	}

	c.mu.Lock()
	c.entries[k] = d
	c.mu.Unlock()
	return d, nil
}

// Len returns the number of cached entries.
func (c *DescriptionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Invalidate drops every locale of kind, or everything when kind is empty.
func (c *DescriptionCache) Invalidate(kind string) {
	c.mu.Lock()
	if kind == "" {
		c.entries = make(map[key]metadata.Description)
	} else {
		for k := range c.entries {
			if k.kind == kind {
				delete(c.entries, k)
			}
		}
	}
	c.mu.Unlock()

	c.listenersMu.RLock()
	listeners := c.listeners
	c.listenersMu.RUnlock()
	for _, l := range listeners {
		l(kind)
	}
}

// OnInvalidate registers a listener.
func (c *DescriptionCache) OnInvalidate(l InvalidationListener) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	c.listeners = append(c.listeners, l)
}
