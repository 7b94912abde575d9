// Package bus carries conversation turns from whoever produced them (a
// scripted runner, the simulated backend, a user intent) to whoever reacts
// to them, without either side knowing the other.
package bus

import (
	"sync"

	"wutonggo/pkg/model"
)

// Listener receives every turn published after it subscribed.
type Listener func(model.Turn)

type subscription struct {
	id int
	fn Listener
}

// Bus is a synchronous fan-out channel for conversation turns. A turn
// published with no subscribers is dropped. Listeners run on the publishing
// goroutine, in subscription order; a listener that panics is not isolated.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

func New() *Bus {
	return &Bus{}
}

// Subscribe registers a listener and returns its unsubscribe function.
// Unsubscribing is idempotent and safe to call from inside the listener.
func (b *Bus) Subscribe(fn Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the turn to every current subscriber. The subscriber
// list is snapshotted first, so a listener unsubscribing itself (or others)
// mid-fan-out neither skips nor double-invokes anyone.
func (b *Bus) Publish(turn model.Turn) {
	b.mu.Lock()
	snapshot := make([]subscription, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, s := range snapshot {
		s.fn(turn)
	}
}

// Len returns the number of active subscribers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
