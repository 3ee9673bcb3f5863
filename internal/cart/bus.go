package cart

import "sync"

// Notice tells other views of the same cart that the durable copy changed.
// Origin identifies the view that wrote, so it can ignore its own echo.
type Notice struct {
	Origin string
}

// Bus is an in-process observer channel between cart views. Delivery is
// synchronous: by the time Publish returns every subscriber has seen the
// notice.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(Notice)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Notice))}
}

// Subscribe registers a handler and returns its cancel func.
func (b *Bus) Subscribe(fn func(Notice)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *Bus) Publish(n Notice) {
	b.mu.RLock()
	handlers := make([]func(Notice), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(n)
	}
}
