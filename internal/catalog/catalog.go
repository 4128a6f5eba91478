// Package catalog is the showcase's in-memory product list.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/pthm/hxui/pagination"
)

// Item is one catalog entry.
type Item struct {
	ID    int
	SKU   string
	Name  string
	Price int // cents
}

var (
	adjectives = []string{"Compact", "Sturdy", "Quiet", "Bright", "Nimble", "Classic", "Modular"}
	nouns      = []string{"Lamp", "Kettle", "Desk", "Chair", "Shelf", "Clock", "Speaker", "Fan"}
)

// Catalog holds a deterministic list of items. It is safe for concurrent
// use.
type Catalog struct {
	mu    sync.RWMutex
	items []Item
}

// New returns a catalog of n generated items. The same n always yields the
// same items.
func New(n int) *Catalog {
	c := &Catalog{}
	c.Resize(n)
	return c
}

// Resize regenerates the catalog with n items.
func (c *Catalog) Resize(n int) {
	items := make([]Item, max(0, n))
	for i := range items {
		id := i + 1
		items[i] = Item{
			ID:    id,
			SKU:   fmt.Sprintf("SKU-%05d", id),
			Name:  adjectives[i%len(adjectives)] + " " + nouns[(i/len(adjectives))%len(nouns)],
			Price: 499 + (id*137)%9500,
		}
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}

// Count returns the number of items.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items), nil
}

// Window returns a copy of the items on the page st describes.
func (c *Catalog) Window(st pagination.State) []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Item(nil), pagination.Slice(c.items, st)...)
}

// FormatPrice renders cents as dollars.
func FormatPrice(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
