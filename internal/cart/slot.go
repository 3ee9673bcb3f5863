package cart

import (
	"context"
	"sync"
)

// Slot is the single named durable location holding the JSON-serialized
// cart mapping. Writes are last-write-wins; readers always see a whole
// snapshot, never a partial one.
type Slot interface {
	// Load returns the stored bytes and whether anything was stored.
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, data []byte) error
}

// MemSlot keeps the cart in process memory. It backs tests and lets two
// stores share a medium without touching disk.
type MemSlot struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

func NewMemSlot() *MemSlot { return &MemSlot{} }

func (s *MemSlot) Load(ctx context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.set {
		return nil, false, nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, true, nil
}

func (s *MemSlot) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.set = true
	return nil
}
