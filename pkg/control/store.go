// Package control tracks what the conversation machinery is doing right
// now: idle, waiting for the simulated backend, or playing a script.
package control

import "sync"

// Mode is the single activity state. The original two independent flags
// (playing, waitingForAi) could be asserted together by racing call sites;
// collapsing them into one enum makes that state unrepresentable.
type Mode int

const (
	ModeIdle Mode = iota
	ModeWaiting
	ModePlaying
)

func (m Mode) String() string {
	switch m {
	case ModeWaiting:
		return "waiting"
	case ModePlaying:
		return "playing"
	default:
		return "idle"
	}
}

// Store is the control status store: current mode, the label of the last
// navigation that was carried out, and a monotonically increasing interrupt
// token. Bumping the token tells dependent script runners to discard their
// timers and recompute from scratch.
type Store struct {
	mu             sync.RWMutex
	mode           Mode
	lastNavigation string
	interruptToken uint64
	listeners      []func()
}

func NewStore() *Store {
	return &Store{}
}

// OnChange registers fn to run after every mutation. Listeners run on the
// mutating goroutine with no lock held.
func (s *Store) OnChange(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
	i := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if i < len(s.listeners) {
			s.listeners[i] = nil
		}
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	snapshot := make([]func(), len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.RUnlock()
	for _, fn := range snapshot {
		if fn != nil {
			fn()
		}
	}
}

// SetMode sets the activity mode.
func (s *Store) SetMode(m Mode) {
	s.mu.Lock()
	changed := s.mode != m
	s.mode = m
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Mode returns the current activity mode.
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetLastNavigation records the label of the navigation that just happened.
func (s *Store) SetLastNavigation(label string) {
	s.mu.Lock()
	s.lastNavigation = label
	s.mu.Unlock()
	s.notify()
}

// LastNavigation returns the most recent navigation label, or "".
func (s *Store) LastNavigation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastNavigation
}

// Reset clears mode and navigation and bumps the interrupt token, forcing
// dependent runners to tear down and, if configured, restart.
func (s *Store) Reset() {
	s.mu.Lock()
	s.mode = ModeIdle
	s.lastNavigation = ""
	s.interruptToken++
	s.mu.Unlock()
	s.notify()
}

// InterruptToken returns the current token value.
func (s *Store) InterruptToken() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interruptToken
}
