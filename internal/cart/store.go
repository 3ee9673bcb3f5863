package cart

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MinQty = 1
	MaxQty = 99
)

// Entry is one cart position. Entries keep the order items were first
// added in; the durable form is an unordered mapping, so a reloaded cart
// falls back to id order.
type Entry struct {
	ProductID string
	Qty       int
}

// Store owns the canonical id -> quantity mapping for one view of the
// cart. Every mutation persists the whole state to the slot and then
// notifies other views on the bus. A view receiving a notice from
// another origin re-reads the slot and replaces its state wholesale; it
// never re-persists while doing so, and it ignores its own notices.
type Store struct {
	viewID string
	slot   Slot
	bus    *Bus
	log    *zap.Logger

	mu    sync.Mutex
	items map[string]int
	order []string

	unsub func()
}

func NewStore(ctx context.Context, slot Slot, bus *Bus, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Store{
		viewID: uuid.NewString(),
		slot:   slot,
		bus:    bus,
		log:    log,
		items:  map[string]int{},
	}

	s.mu.Lock()
	s.loadLocked(ctx)
	s.mu.Unlock()

	if bus != nil {
		s.unsub = bus.Subscribe(func(n Notice) {
			if n.Origin == s.viewID {
				return
			}
			s.applyExternal(context.Background())
		})
	}

	return s
}

// Close detaches the store from the bus.
func (s *Store) Close() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

// ViewID identifies this store instance on the bus.
func (s *Store) ViewID() string { return s.viewID }

func (s *Store) Add(ctx context.Context, id string, qty int) {
	s.mu.Lock()
	s.setLocked(id, s.items[id]+qty)
	data := s.encodeLocked()
	s.persistLocked(ctx, data)
	s.mu.Unlock()

	s.notify()
}

func (s *Store) SetQuantity(ctx context.Context, id string, qty int) {
	s.mu.Lock()
	if qty <= 0 {
		s.removeLocked(id)
	} else {
		s.setLocked(id, qty)
	}
	data := s.encodeLocked()
	s.persistLocked(ctx, data)
	s.mu.Unlock()

	s.notify()
}

func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	s.removeLocked(id)
	data := s.encodeLocked()
	s.persistLocked(ctx, data)
	s.mu.Unlock()

	s.notify()
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = map[string]int{}
	s.order = nil
	data := s.encodeLocked()
	s.persistLocked(ctx, data)
	s.mu.Unlock()

	s.notify()
}

// Snapshot returns a copy of the quantity mapping.
func (s *Store) Snapshot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.items))
	for id, qty := range s.items {
		out[id] = qty
	}
	return out
}

// Entries returns the cart positions in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, Entry{ProductID: id, Qty: s.items[id]})
	}
	return out
}

// ItemCount is the total quantity across all positions.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, qty := range s.items {
		n += qty
	}
	return n
}

func (s *Store) setLocked(id string, qty int) {
	if _, present := s.items[id]; !present {
		s.order = append(s.order, id)
	}
	s.items[id] = clamp(qty, MinQty, MaxQty)
}

func (s *Store) removeLocked(id string) {
	if _, present := s.items[id]; !present {
		return
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store) encodeLocked() []byte {
	data, err := json.Marshal(s.items)
	if err != nil {
		// A map[string]int cannot fail to marshal; keep the slot untouched.
		s.log.Error("encode cart failed", zap.Error(err))
		return nil
	}
	return data
}

func (s *Store) persistLocked(ctx context.Context, data []byte) {
	if s.slot == nil || data == nil {
		return
	}
	if err := s.slot.Save(ctx, data); err != nil {
		// Persistence is best-effort; the in-memory state stays valid.
		s.log.Warn("persist cart failed", zap.Error(err))
	}
}

func (s *Store) notify() {
	if s.bus != nil {
		s.bus.Publish(Notice{Origin: s.viewID})
	}
}

// loadLocked replaces state from the slot. Absent or malformed data is
// treated as an empty cart, never surfaced as an error.
func (s *Store) loadLocked(ctx context.Context) {
	s.items = map[string]int{}
	s.order = nil

	if s.slot == nil {
		return
	}

	data, ok, err := s.slot.Load(ctx)
	if err != nil {
		s.log.Warn("load cart failed", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.Warn("stored cart unparseable, starting empty", zap.Error(err))
		return
	}

	ids := make([]string, 0, len(raw))
	for id, qty := range raw {
		if qty <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		s.order = append(s.order, id)
		s.items[id] = clamp(raw[id], MinQty, MaxQty)
	}
}

func (s *Store) applyExternal(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
