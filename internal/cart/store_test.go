package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingSlot wraps a slot and counts Save calls, so tests can prove a
// view never echoes a write back while applying an external update.
type countingSlot struct {
	Slot

	mu    sync.Mutex
	saves int
}

func (s *countingSlot) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.Slot.Save(ctx, data)
}

func (s *countingSlot) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func newTestStore(t *testing.T, slot Slot, bus *Bus) *Store {
	t.Helper()
	s := NewStore(context.Background(), slot, bus, zap.NewNop())
	t.Cleanup(s.Close)
	return s
}

func TestStore_QuantityClampInvariant(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemSlot(), nil)

	ops := []func(){
		func() { s.Add(ctx, "a", 1) },
		func() { s.Add(ctx, "a", 500) },
		func() { s.SetQuantity(ctx, "b", 99) },
		func() { s.SetQuantity(ctx, "b", 100) },
		func() { s.Add(ctx, "c", -5) },
		func() { s.SetQuantity(ctx, "c", 1) },
		func() { s.Add(ctx, "a", 1) },
	}

	for _, op := range ops {
		op()
		for id, qty := range s.Snapshot() {
			assert.GreaterOrEqual(t, qty, MinQty, "id %s", id)
			assert.LessOrEqual(t, qty, MaxQty, "id %s", id)
		}
	}

	snap := s.Snapshot()
	assert.Equal(t, MaxQty, snap["a"])
	assert.Equal(t, MaxQty, snap["b"])
	assert.Equal(t, 1, snap["c"])
}

func TestStore_AddAccumulates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemSlot(), nil)

	s.Add(ctx, "x", 1)
	s.Add(ctx, "x", 2)

	assert.Equal(t, map[string]int{"x": 3}, s.Snapshot())
	assert.Equal(t, 3, s.ItemCount())
}

func TestStore_SetQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemSlot(), nil)

	s.Add(ctx, "x", 5)
	s.SetQuantity(ctx, "x", 0)
	_, present := s.Snapshot()["x"]
	assert.False(t, present)

	s.Add(ctx, "y", 2)
	s.SetQuantity(ctx, "y", -3)
	_, present = s.Snapshot()["y"]
	assert.False(t, present)
}

func TestStore_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemSlot(), nil)

	s.Add(ctx, "a", 1)
	s.Add(ctx, "b", 2)

	s.Remove(ctx, "a")
	assert.Equal(t, map[string]int{"b": 2}, s.Snapshot())

	s.Clear(ctx)
	assert.Empty(t, s.Snapshot())
	assert.Zero(t, s.ItemCount())
}

func TestStore_EntriesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemSlot(), nil)

	s.Add(ctx, "c", 1)
	s.Add(ctx, "a", 1)
	s.Add(ctx, "b", 1)
	s.Add(ctx, "a", 1) // bump, no reorder

	got := s.Entries()
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ProductID)
	assert.Equal(t, "a", got[1].ProductID)
	assert.Equal(t, "b", got[2].ProductID)
	assert.Equal(t, 2, got[1].Qty)
}

func TestStore_CorruptSlotLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	slot := NewMemSlot()
	require.NoError(t, slot.Save(ctx, []byte("{not json")))

	s := newTestStore(t, slot, nil)
	assert.Empty(t, s.Snapshot())
}

func TestStore_LoadDropsNonPositiveAndClamps(t *testing.T) {
	ctx := context.Background()
	slot := NewMemSlot()
	require.NoError(t, slot.Save(ctx, []byte(`{"a": 0, "b": -4, "c": 1000, "d": 2}`)))

	s := newTestStore(t, slot, nil)
	assert.Equal(t, map[string]int{"c": MaxQty, "d": 2}, s.Snapshot())
}

func TestStore_CrossViewConvergence(t *testing.T) {
	ctx := context.Background()
	slot := &countingSlot{Slot: NewMemSlot()}
	bus := NewBus()

	v1 := newTestStore(t, slot, bus)
	v2 := newTestStore(t, slot, bus)

	v1.Add(ctx, "x", 1)

	// Bus delivery is synchronous, so v2 has already re-read the slot.
	assert.Equal(t, map[string]int{"x": 1}, v2.Snapshot())

	// Exactly one persistence write: v2 applying the external update must
	// not echo a write of its own.
	assert.Equal(t, 1, slot.count())

	v2.SetQuantity(ctx, "x", 7)
	assert.Equal(t, map[string]int{"x": 7}, v1.Snapshot())
	assert.Equal(t, 2, slot.count())
}

func TestStore_ClearPropagates(t *testing.T) {
	ctx := context.Background()
	slot := NewMemSlot()
	bus := NewBus()

	v1 := newTestStore(t, slot, bus)
	v2 := newTestStore(t, slot, bus)

	v1.Add(ctx, "x", 3)
	require.Equal(t, map[string]int{"x": 3}, v2.Snapshot())

	v2.Clear(ctx)
	assert.Empty(t, v1.Snapshot())
}
