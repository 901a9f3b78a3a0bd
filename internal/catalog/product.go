package catalog

import "github.com/shopspring/decimal"

// Category groups products for the bulk discount rule.
type Category string

const (
	CategorySnacks Category = "snacks"
	CategoryFood   Category = "food"
	CategoryDrinks Category = "drinks"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategorySnacks, CategoryFood, CategoryDrinks:
		return true
	}
	return false
}

// Product is an immutable catalog entry. Products are loaded once at
// startup and never mutated afterwards.
type Product struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal
	Category  Category
	ImageURL  string
}
