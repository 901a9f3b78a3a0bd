package cart

import "errors"

// ErrInvalidIndex is returned by RemoveAt when the position does not
// reference an existing cart line.
var ErrInvalidIndex = errors.New("invalid cart line index")

// WatchFunc is invoked after every cart mutation with the session id and
// a snapshot of its lines. The empty slice means the cart was cleared.
type WatchFunc func(sessionID string, lines []Line)

// Store defines the interface for per-session cart storage.
//
// Invalid references (a product id with no line, a session that does not
// exist) and non-positive quantities are no-ops by policy: such calls
// originate from stale UI state, not user error, and must never fail.
type Store interface {
	// Lines returns the session's cart lines in insertion order.
	Lines(sessionID string) []Line

	// Add merges quantity into an existing line for the product or
	// appends a new line at the end. quantity <= 0 is a no-op.
	Add(sessionID string, productID int64, quantity int)

	// Increment raises the line's quantity by one.
	Increment(sessionID string, productID int64)

	// Decrement lowers the line's quantity by one. Decrementing a
	// quantity-1 line removes it from the cart.
	Decrement(sessionID string, productID int64)

	// Remove deletes the line for the given product id.
	Remove(sessionID string, productID int64)

	// RemoveAt deletes the line at the given position. Unlike the
	// product-keyed operations it reports ErrInvalidIndex, since a
	// positional miss means the caller holds a stale view.
	RemoveAt(sessionID string, index int) error

	// Clear drops the session's cart entirely.
	Clear(sessionID string)

	// ItemCount returns the sum of all line quantities.
	ItemCount(sessionID string) int

	// Touch marks the session active, deferring idle expiry.
	Touch(sessionID string)

	// Watch registers a callback invoked synchronously after each
	// mutation.
	Watch(fn WatchFunc)

	// Close shuts down the store and any background processes.
	Close() error
}
