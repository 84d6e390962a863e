package player

import "sync"

// subscription delivers state snapshots to one subscriber in commit order.
// Only one goroutine runs fn at a time. A snapshot committed while fn is
// running is queued, and a newer one replaces it, so the subscriber never
// sees an older state after a newer one and always ends on the latest.
type subscription struct {
	fn func(State)

	mu      sync.Mutex
	running bool
	last    uint64 // highest seq handed to fn or queued
	pending *State
	removed bool
}

func (s *subscription) deliver(seq uint64, state State) {
	s.mu.Lock()
	if s.removed || seq <= s.last {
		s.mu.Unlock()
		return
	}
	s.last = seq
	if s.running {
		s.pending = &state
		s.mu.Unlock()
		return
	}
	s.running = true

	for {
		s.mu.Unlock()
		s.fn(state)
		s.mu.Lock()

		if s.pending == nil || s.removed {
			s.pending = nil
			s.running = false
			s.mu.Unlock()
			return
		}
		state = *s.pending
		s.pending = nil
	}
}

func (s *subscription) remove() {
	s.mu.Lock()
	s.removed = true
	s.pending = nil
	s.mu.Unlock()
}
