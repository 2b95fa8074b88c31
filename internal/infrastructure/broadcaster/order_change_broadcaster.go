package broadcaster

import (
	"sync"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
)

// OrderChangeBroadcaster fans every published change out to all current subscribers.
// Callbacks run on the publisher's goroutine, one after another.
type OrderChangeBroadcaster struct {
	mutex     sync.Mutex
	nextID    uint64
	callbacks map[uint64]domain.OrderChangeCallback
}

func NewOrderChangeBroadcaster() *OrderChangeBroadcaster {
	return &OrderChangeBroadcaster{
		callbacks: make(map[uint64]domain.OrderChangeCallback),
	}
}

// Subscribe registers callback; the returned func removes it and is safe to call more than once.
func (b *OrderChangeBroadcaster) Subscribe(callback domain.OrderChangeCallback) func() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	id := b.nextID
	b.nextID++
	b.callbacks[id] = callback

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mutex.Lock()
			defer b.mutex.Unlock()
			delete(b.callbacks, id)
		})
	}
}

func (b *OrderChangeBroadcaster) Broadcast(change domain.OrderChange) {
	b.mutex.Lock()
	callbacks := make([]domain.OrderChangeCallback, 0, len(b.callbacks))
	for _, cb := range b.callbacks {
		callbacks = append(callbacks, cb)
	}
	b.mutex.Unlock()

	for _, cb := range callbacks {
		cb(change)
	}
}

func (b *OrderChangeBroadcaster) Subscribers() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return len(b.callbacks)
}
