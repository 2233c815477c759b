package geometry

import "sync"

type sizeKey struct {
	w, h int
}

// Cache memoizes Fields by dimension pair
// Fields depend only on (width, height), never on image content
type Cache struct {
	mu     sync.RWMutex
	fields map[sizeKey]*Fields
}

// NewCache creates an empty field cache
func NewCache() *Cache {
	return &Cache{
		fields: make(map[sizeKey]*Fields),
	}
}

// Get returns cached fields for the dimensions, building them on first request
func (c *Cache) Get(width, height int) (*Fields, error) {
	key := sizeKey{width, height}

	c.mu.RLock()
	if f, ok := c.fields[key]; ok {
		c.mu.RUnlock()
		return f, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have built it while the write lock was pending
	if f, ok := c.fields[key]; ok {
		return f, nil
	}

	f, err := Build(width, height)
	if err != nil {
		return nil, err
	}
	c.fields[key] = f
	return f, nil
}

// Len returns the number of cached dimension pairs
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.fields)
}
