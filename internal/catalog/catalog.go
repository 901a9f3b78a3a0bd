package catalog

import (
	"context"
	"fmt"
)

// Catalog is the in-memory view of the product catalog. It is built once
// at startup and read-only afterwards, so lookups need no locking.
type Catalog struct {
	byID  map[int64]Product
	items []Product
}

// Load reads every product from the repository and builds the catalog.
func Load(ctx context.Context, repo Repository) (*Catalog, error) {
	products, err := repo.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	items := make([]Product, 0, len(products))
	for _, p := range products {
		items = append(items, *p)
	}

	return New(items), nil
}

// New builds a catalog from a fixed product list.
func New(products []Product) *Catalog {
	c := &Catalog{
		byID:  make(map[int64]Product, len(products)),
		items: make([]Product, 0, len(products)),
	}
	for _, p := range products {
		if _, exists := c.byID[p.ID]; exists {
			continue
		}
		c.byID[p.ID] = p
		c.items = append(c.items, p)
	}
	return c
}

// Lookup returns the product with the given id. A miss is an expected
// condition (stale UI intents reference removed products) and must be
// treated by callers as a no-op, never a failure.
func (c *Catalog) Lookup(id int64) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Products returns all products in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.items))
	copy(out, c.items)
	return out
}

// ByCategory returns the products belonging to the given category,
// preserving catalog order.
func (c *Catalog) ByCategory(cat Category) []Product {
	var out []Product
	for _, p := range c.items {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}
