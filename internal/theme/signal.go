package theme

import (
	"sync"
)

// FixedSource is a SignalSource whose value is set programmatically. It
// serves as the OS signal stand-in on headless deployments, where the
// system preference comes from configuration, and as the change-event
// source in tests.
type FixedSource struct {
	mu          sync.Mutex
	mode        Mode
	subscribers map[int]func(Mode)
	nextID      int
}

// NewFixedSource returns a source reporting the given mode.
func NewFixedSource(mode Mode) *FixedSource {
	return &FixedSource{
		mode:        mode,
		subscribers: make(map[int]func(Mode)),
	}
}

// Current returns the source's current mode.
func (s *FixedSource) Current() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Subscribe registers a change listener and returns its cancel function.
func (s *FixedSource) Subscribe(fn func(Mode)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Set changes the reported mode and notifies subscribers.
func (s *FixedSource) Set(mode Mode) {
	s.mu.Lock()
	s.mode = mode
	fns := make([]func(Mode), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(mode)
	}
}
