package timeline

import (
	"sync"
	"time"
)

// Scheduler owns a set of pending one-shot timers bound to one component.
// A component holding N scheduled callbacks tears all N down with a single
// CancelAll; there is no per-timer bookkeeping at the call site.
type Scheduler struct {
	mu     sync.Mutex
	clock  Clock
	nextID int
	timers map[int]Timer
}

// NewScheduler creates a scheduler driven by the given clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{
		clock:  clock,
		timers: make(map[int]Timer),
	}
}

// After schedules fn to run once after d. The callback is deregistered
// before it runs, so fn may schedule follow-up timers on the same scheduler.
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.timers[id] = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.timers[id]
		delete(s.timers, id)
		s.mu.Unlock()
		// A CancelAll that lost the race against the underlying timer
		// firing has already removed the entry; honor the cancellation.
		if !live {
			return
		}
		fn()
	})
}

// CancelAll stops every pending timer. Idempotent.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// Pending returns the number of timers that have not fired or been cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Clock returns the clock the scheduler was built with, so a component can
// derive timestamps from the same time source it schedules on.
func (s *Scheduler) Clock() Clock { return s.clock }
