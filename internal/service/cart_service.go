package service

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/snackshop/storefront/internal/cart"
	"github.com/snackshop/storefront/internal/catalog"
	"github.com/snackshop/storefront/internal/pricing"
)

// CartService accepts user intents, validates product references against
// the catalog, mutates the cart store, and recomputes the quote
// synchronously after every mutation. Callers always get back a view
// that reflects the mutation they just made; there is no observable
// state between the two.
type CartService struct {
	catalog *catalog.Catalog
	store   cart.Store
	logger  *zap.Logger
	now     func() time.Time
	sfg     singleflight.Group // Prevents duplicate quote work for the same session
}

// CartView is the cart plus its freshly computed quote.
type CartView struct {
	Lines []cart.Line
	Quote pricing.Quote
}

func NewCartService(cat *catalog.Catalog, store cart.Store, logger *zap.Logger) *CartService {
	return &CartService{
		catalog: cat,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the time source. Pricing itself takes time as a
// parameter; this only controls what the service passes in.
func (s *CartService) WithClock(now func() time.Time) *CartService {
	s.now = now
	return s
}

// AddToCart adds quantity of a product to the session's cart. Unknown
// products and non-positive quantities are no-ops: such intents come
// from stale UI state and must not fail.
func (s *CartService) AddToCart(sessionID string, productID int64, quantity int) CartView {
	if quantity <= 0 {
		s.logger.Debug("ignoring add with non-positive quantity",
			zap.Int64("product_id", productID), zap.Int("quantity", quantity))
		return s.view(sessionID)
	}
	if _, ok := s.catalog.Lookup(productID); !ok {
		s.logger.Debug("ignoring add for unknown product", zap.Int64("product_id", productID))
		return s.view(sessionID)
	}

	s.logger.Info("adding item",
		zap.String("session_id", sessionID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity))
	s.store.Add(sessionID, productID, quantity)
	return s.view(sessionID)
}

func (s *CartService) Increment(sessionID string, productID int64) CartView {
	s.logger.Info("incrementing item",
		zap.String("session_id", sessionID), zap.Int64("product_id", productID))
	s.store.Increment(sessionID, productID)
	return s.view(sessionID)
}

func (s *CartService) Decrement(sessionID string, productID int64) CartView {
	s.logger.Info("decrementing item",
		zap.String("session_id", sessionID), zap.Int64("product_id", productID))
	s.store.Decrement(sessionID, productID)
	return s.view(sessionID)
}

func (s *CartService) Remove(sessionID string, productID int64) CartView {
	s.logger.Info("removing item",
		zap.String("session_id", sessionID), zap.Int64("product_id", productID))
	s.store.Remove(sessionID, productID)
	return s.view(sessionID)
}

func (s *CartService) Clear(sessionID string) CartView {
	s.logger.Info("clearing cart", zap.String("session_id", sessionID))
	s.store.Clear(sessionID)
	return s.view(sessionID)
}

// View returns the current cart and quote without mutating anything.
// Concurrent reads for the same session share one computation.
func (s *CartService) View(sessionID string) CartView {
	v, _, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		return s.view(sessionID), nil
	})
	return v.(CartView)
}

func (s *CartService) view(sessionID string) CartView {
	lines := s.store.Lines(sessionID)
	return CartView{
		Lines: lines,
		Quote: pricing.Compute(s.catalog, lines, s.now()),
	}
}
