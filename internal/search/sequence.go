package search

import "sync"

// Sequencer issues increasing tokens per field so a caller can drop
// responses that were overtaken by a newer request for the same field.
type Sequencer struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{latest: make(map[string]uint64)}
}

// Next issues a token for field, superseding every earlier one.
func (s *Sequencer) Next(field string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[field]++
	return s.latest[field]
}

// IsLatest reports whether token is still the newest issued for field.
func (s *Sequencer) IsLatest(field string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[field] == token
}
