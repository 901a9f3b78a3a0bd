package cart

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *MemoryStore {
	store := NewMemoryStore(0)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMemoryStore_Add_MergesSameProduct(t *testing.T) {
	store := setupStore(t)

	store.Add("s1", 11, 3)
	store.Add("s1", 11, 2)

	lines := store.Lines("s1")
	require.Len(t, lines, 1)
	assert.Equal(t, int64(11), lines[0].ProductID)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestMemoryStore_Add_PreservesInsertionOrder(t *testing.T) {
	store := setupStore(t)

	store.Add("s1", 3, 1)
	store.Add("s1", 1, 1)
	store.Add("s1", 2, 1)
	store.Add("s1", 1, 4) // merge must not reorder

	lines := store.Lines("s1")
	require.Len(t, lines, 3)
	assert.Equal(t, int64(3), lines[0].ProductID)
	assert.Equal(t, int64(1), lines[1].ProductID)
	assert.Equal(t, int64(2), lines[2].ProductID)
}

func TestMemoryStore_Add_NonPositiveQuantityIsNoop(t *testing.T) {
	store := setupStore(t)

	store.Add("s1", 1, 0)
	store.Add("s1", 1, -3)

	assert.Empty(t, store.Lines("s1"))
	assert.Equal(t, 0, store.ItemCount("s1"))
}

func TestMemoryStore_IncrementDecrement(t *testing.T) {
	store := setupStore(t)
	store.Add("s1", 1, 2)

	store.Increment("s1", 1)
	require.Equal(t, 3, store.Lines("s1")[0].Quantity)

	store.Decrement("s1", 1)
	require.Equal(t, 2, store.Lines("s1")[0].Quantity)

	// Unknown product and unknown session are no-ops
	store.Increment("s1", 99)
	store.Decrement("nope", 1)
	assert.Equal(t, 2, store.Lines("s1")[0].Quantity)
}

func TestMemoryStore_DecrementToZero_PrunesLine(t *testing.T) {
	store := setupStore(t)
	store.Add("s1", 1, 1)
	store.Add("s1", 2, 5)

	store.Decrement("s1", 1)

	lines := store.Lines("s1")
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ProductID)
}

func TestMemoryStore_Remove(t *testing.T) {
	store := setupStore(t)
	store.Add("s1", 1, 1)
	store.Add("s1", 2, 1)

	store.Remove("s1", 1)

	lines := store.Lines("s1")
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ProductID)

	// Removing an absent product is a no-op
	store.Remove("s1", 99)
	assert.Len(t, store.Lines("s1"), 1)
}

func TestMemoryStore_RemoveAt(t *testing.T) {
	store := setupStore(t)
	store.Add("s1", 1, 1)
	store.Add("s1", 2, 1)
	store.Add("s1", 3, 1)

	require.NoError(t, store.RemoveAt("s1", 1))

	lines := store.Lines("s1")
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].ProductID)
	assert.Equal(t, int64(3), lines[1].ProductID)

	assert.ErrorIs(t, store.RemoveAt("s1", 5), ErrInvalidIndex)
	assert.ErrorIs(t, store.RemoveAt("s1", -1), ErrInvalidIndex)
	assert.ErrorIs(t, store.RemoveAt("missing", 0), ErrInvalidIndex)
}

func TestMemoryStore_Clear(t *testing.T) {
	store := setupStore(t)
	store.Add("s1", 1, 4)

	store.Clear("s1")

	assert.Empty(t, store.Lines("s1"))
	assert.Equal(t, 0, store.ItemCount("s1"))
}

func TestMemoryStore_ItemCount(t *testing.T) {
	store := setupStore(t)
	store.Add("s1", 1, 4)
	store.Add("s1", 2, 7)

	assert.Equal(t, 11, store.ItemCount("s1"))
	assert.Equal(t, 0, store.ItemCount("other"))
}

func TestMemoryStore_SessionsAreIsolated(t *testing.T) {
	store := setupStore(t)
	store.Add("s1", 1, 1)
	store.Add("s2", 2, 2)

	require.Len(t, store.Lines("s1"), 1)
	require.Len(t, store.Lines("s2"), 1)
	assert.Equal(t, int64(1), store.Lines("s1")[0].ProductID)
	assert.Equal(t, int64(2), store.Lines("s2")[0].ProductID)
}

func TestMemoryStore_ExpireSessions(t *testing.T) {
	store := setupStore(t)
	store.Add("idle", 1, 1)
	store.Add("active", 2, 1)

	// Age the idle session past the TTL, then re-touch the active one
	store.mu.Lock()
	store.sessions["idle"].lastActive = time.Now().Add(-2 * store.ttl)
	store.mu.Unlock()
	store.Touch("active")

	store.expireSessions(time.Now())

	assert.Empty(t, store.Lines("idle"))
	assert.Len(t, store.Lines("active"), 1)
}

func TestMemoryStore_TouchDefersExpiry(t *testing.T) {
	store := setupStore(t)
	store.Add("s1", 1, 1)

	store.mu.Lock()
	store.sessions["s1"].lastActive = time.Now().Add(-2 * store.ttl)
	store.mu.Unlock()

	// Activity resets the idle timer before the cleanup fires
	store.Touch("s1")
	store.expireSessions(time.Now())

	assert.Len(t, store.Lines("s1"), 1)
}

func TestMemoryStore_WatchersNotifiedOnMutation(t *testing.T) {
	store := setupStore(t)

	var (
		mu    sync.Mutex
		calls []int
	)
	store.Watch(func(sessionID string, lines []Line) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, len(lines))
	})

	store.Add("s1", 1, 2)
	store.Add("s1", 2, 1)
	store.Remove("s1", 1)
	store.Clear("s1")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 1, 0}, calls)
}

func TestMemoryStore_WatchersNotNotifiedOnNoop(t *testing.T) {
	store := setupStore(t)

	notified := 0
	store.Watch(func(string, []Line) { notified++ })

	store.Add("s1", 1, 0)
	store.Increment("s1", 42)
	store.Remove("s1", 42)
	store.Clear("s1") // nothing to clear

	assert.Equal(t, 0, notified)
}
