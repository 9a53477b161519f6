package models

import "sync"

// ResultStore is the append-only history of every accepted record.
type ResultStore struct {
	mu      sync.RWMutex
	results []RawResult
	index   map[HistoricalKey]struct{}
}

// NewResultStore indexes previously persisted records as they are. Duplicates
// already present in the history are kept.
func NewResultStore(results []RawResult) *ResultStore {
	s := &ResultStore{
		results: make([]RawResult, 0, len(results)),
		index:   make(map[HistoricalKey]struct{}, len(results)),
	}
	for _, r := range results {
		s.results = append(s.results, r)
		s.index[NewHistoricalKey(r)] = struct{}{}
	}
	return s
}

func (s *ResultStore) Contains(key HistoricalKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[key]
	return ok
}

// FilterNew returns the candidates whose key is absent from the store, keeping
// only the first occurrence of a key inside the batch. The store is not modified.
func (s *ResultStore) FilterNew(candidates []RawResult) []RawResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[HistoricalKey]struct{}, len(candidates))
	fresh := make([]RawResult, 0, len(candidates))
	for _, r := range candidates {
		key := NewHistoricalKey(r)
		if _, ok := s.index[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, r)
	}
	return fresh
}

// Append adds the records whose key is not yet stored and returns how many were added.
func (s *ResultStore) Append(records []RawResult) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, r := range records {
		key := NewHistoricalKey(r)
		if _, ok := s.index[key]; ok {
			continue
		}
		s.index[key] = struct{}{}
		s.results = append(s.results, r)
		added++
	}
	return added
}

// All returns a copy of the history in insertion order.
func (s *ResultStore) All() []RawResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RawResult, len(s.results))
	copy(out, s.results)
	return out
}

func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
