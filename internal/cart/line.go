package cart

// Line is one cart entry: a product reference and how many of it the
// session holds. Invariants maintained by the store: at most one Line
// per product id, quantity always >= 1, insertion order of the first
// add preserved for stable display.
type Line struct {
	ProductID int64
	Quantity  int
}
