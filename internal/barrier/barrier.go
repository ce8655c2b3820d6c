// Package barrier provides a reusable rendezvous point for a fixed set of
// workers.
package barrier

import "sync"

// Barrier blocks participants until all of them have arrived, releases them
// together, and resets itself for the next rendezvous. Unlike sync.WaitGroup
// it can be reused an unlimited number of times by the same participants.
//
// Waiters block on a predicate over the generation counter, not on the
// arrival count: a waiter woken while a later generation is already filling
// up would otherwise re-block against stale state.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	expected   int
	arrived    int
	generation uint64
}

// New creates a barrier for n participants. Panics if n < 1; the participant
// count is fixed at construction and validated by the caller's config before
// any worker exists.
func New(n int) *Barrier {
	if n < 1 {
		panic("barrier: participant count must be >= 1")
	}
	b := &Barrier{expected: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Arrive blocks until all participants of the current generation have
// arrived, then releases them all. The last arriver resets the count, bumps
// the generation, and wakes the rest. With a single participant it returns
// immediately.
func (b *Barrier) Arrive() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.arrived++
	if b.arrived == b.expected {
		b.arrived = 0
		b.generation++
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
}
