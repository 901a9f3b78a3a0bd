package cart

import (
	"sync"
	"time"
)

const (
	// DefaultSessionTTL is how long an idle session's cart is kept
	// before the timeout clear drops it.
	DefaultSessionTTL = 15 * time.Minute

	// CleanupInterval is how often the background cleanup runs
	CleanupInterval = 30 * time.Second
)

// MemoryStore implements Store with in-memory storage. Carts are
// memory-only by design: they vanish on restart and on session timeout.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*session // sessionID -> cart state
	ttl      time.Duration

	watchMu  sync.RWMutex
	watchers []WatchFunc

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

type session struct {
	lines      []Line
	lastActive time.Time
}

// NewMemoryStore creates a new in-memory cart store. A ttl of zero
// selects DefaultSessionTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	s := &MemoryStore{
		sessions:    make(map[string]*session),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	// Start background cleanup goroutine
	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// cleanupLoop periodically drops sessions idle beyond the TTL.
func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions(time.Now())
		case <-s.stopCleanup:
			return
		}
	}
}

// expireSessions removes every session whose last activity is older than
// the TTL and notifies watchers of the cleared carts.
func (s *MemoryStore) expireSessions(now time.Time) {
	s.mu.Lock()
	var expired []string
	for id, sess := range s.sessions {
		if now.Sub(sess.lastActive) > s.ttl {
			delete(s.sessions, id)
			expired = append(expired, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		s.notify(id, nil)
	}
}

func (s *MemoryStore) Lines(sessionID string) []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[sessionID]
	if !exists {
		return nil
	}
	return snapshotLines(sess.lines)
}

func (s *MemoryStore) Add(sessionID string, productID int64, quantity int) {
	if quantity <= 0 {
		return
	}

	s.mu.Lock()
	sess := s.session(sessionID)
	sess.lastActive = time.Now()

	if line := findLine(sess.lines, productID); line != nil {
		line.Quantity += quantity
	} else {
		sess.lines = append(sess.lines, Line{ProductID: productID, Quantity: quantity})
	}
	snapshot := snapshotLines(sess.lines)
	s.mu.Unlock()

	s.notify(sessionID, snapshot)
}

func (s *MemoryStore) Increment(sessionID string, productID int64) {
	s.mu.Lock()
	sess, exists := s.sessions[sessionID]
	if !exists {
		s.mu.Unlock()
		return
	}
	line := findLine(sess.lines, productID)
	if line == nil {
		s.mu.Unlock()
		return
	}

	sess.lastActive = time.Now()
	line.Quantity++
	snapshot := snapshotLines(sess.lines)
	s.mu.Unlock()

	s.notify(sessionID, snapshot)
}

// Decrement lowers the quantity by one. A line at quantity 1 is pruned
// rather than left at zero, so quantity stays >= 1 on every stored line.
func (s *MemoryStore) Decrement(sessionID string, productID int64) {
	s.mu.Lock()
	sess, exists := s.sessions[sessionID]
	if !exists {
		s.mu.Unlock()
		return
	}
	line := findLine(sess.lines, productID)
	if line == nil {
		s.mu.Unlock()
		return
	}

	sess.lastActive = time.Now()
	if line.Quantity > 1 {
		line.Quantity--
	} else {
		sess.lines = removeLine(sess.lines, productID)
	}
	snapshot := snapshotLines(sess.lines)
	s.mu.Unlock()

	s.notify(sessionID, snapshot)
}

func (s *MemoryStore) Remove(sessionID string, productID int64) {
	s.mu.Lock()
	sess, exists := s.sessions[sessionID]
	if !exists || findLine(sess.lines, productID) == nil {
		s.mu.Unlock()
		return
	}

	sess.lastActive = time.Now()
	sess.lines = removeLine(sess.lines, productID)
	snapshot := snapshotLines(sess.lines)
	s.mu.Unlock()

	s.notify(sessionID, snapshot)
}

func (s *MemoryStore) RemoveAt(sessionID string, index int) error {
	s.mu.Lock()
	sess, exists := s.sessions[sessionID]
	if !exists || index < 0 || index >= len(sess.lines) {
		s.mu.Unlock()
		return ErrInvalidIndex
	}

	sess.lastActive = time.Now()
	sess.lines = append(sess.lines[:index], sess.lines[index+1:]...)
	snapshot := snapshotLines(sess.lines)
	s.mu.Unlock()

	s.notify(sessionID, snapshot)
	return nil
}

func (s *MemoryStore) Clear(sessionID string) {
	s.mu.Lock()
	_, exists := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if exists {
		s.notify(sessionID, nil)
	}
}

func (s *MemoryStore) ItemCount(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[sessionID]
	if !exists {
		return 0
	}

	count := 0
	for _, line := range sess.lines {
		count += line.Quantity
	}
	return count
}

// Touch refreshes the session's idle timer without mutating the cart.
// Any qualifying user activity resets the timeout clear.
func (s *MemoryStore) Touch(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, exists := s.sessions[sessionID]; exists {
		sess.lastActive = time.Now()
	}
}

func (s *MemoryStore) Watch(fn WatchFunc) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// Close stops the background cleanup and waits for it to finish
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}

// notify runs outside the store lock so watchers may read the store.
func (s *MemoryStore) notify(sessionID string, lines []Line) {
	s.watchMu.RLock()
	watchers := s.watchers
	s.watchMu.RUnlock()

	for _, fn := range watchers {
		fn(sessionID, lines)
	}
}

// session returns the cart state for the id, creating it on first use.
// Callers must hold the write lock.
func (s *MemoryStore) session(sessionID string) *session {
	sess, exists := s.sessions[sessionID]
	if !exists {
		sess = &session{lastActive: time.Now()}
		s.sessions[sessionID] = sess
	}
	return sess
}

func findLine(lines []Line, productID int64) *Line {
	for i := range lines {
		if lines[i].ProductID == productID {
			return &lines[i]
		}
	}
	return nil
}

func removeLine(lines []Line, productID int64) []Line {
	for i, line := range lines {
		if line.ProductID == productID {
			return append(lines[:i], lines[i+1:]...)
		}
	}
	return lines
}

func snapshotLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
