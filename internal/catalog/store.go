package catalog

import "hotrodebabi/internal/domain"

// Store is the immutable in-memory accommodation catalog. Entries are loaded
// once and never mutated; every read hands out a fresh slice header so
// callers can reorder results freely.
type Store struct {
	items []domain.Accommodation
}

func NewStore(items []domain.Accommodation) *Store {
	cp := make([]domain.Accommodation, len(items))
	copy(cp, items)
	return &Store{items: cp}
}

// Default returns a store over the bundled dataset.
func Default() *Store { return NewStore(seed) }

// All returns every accommodation in insertion order.
func (s *Store) All() []domain.Accommodation {
	out := make([]domain.Accommodation, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }
