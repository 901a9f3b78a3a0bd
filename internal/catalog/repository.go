package catalog

import (
	"context"
	"errors"
)

// ErrProductNotFound is returned when a lookup references an id that is
// not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// Repository defines read access to the persisted product catalog.
type Repository interface {
	GetAllProducts(ctx context.Context) ([]*Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	Close() error
}
