package config

import "sort"

// store keeps every ingested entry per key in ingestion order. It is filled
// during construction only and read without locking afterwards.
type store struct {
	entries map[string][]Entry
}

func newStore() *store {
	return &store{entries: make(map[string][]Entry)}
}

func (s *store) add(key, value string, src Source) {
	s.entries[key] = append(s.entries[key], Entry{Value: value, Source: src})
}

func (s *store) contains(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// first returns the earliest entry recorded for key from src.
func (s *store) first(key string, src Source) (Entry, bool) {
	for _, entry := range s.entries[key] {
		if entry.Source == src {
			return entry, true
		}
	}
	return Entry{}, false
}

// list returns a copy so callers cannot reach the stored slice.
func (s *store) list(key string) []Entry {
	src := s.entries[key]
	if len(src) == 0 {
		return nil
	}

	out := make([]Entry, len(src))
	copy(out, src)
	return out
}

func (s *store) keys() []string {
	out := make([]string, 0, len(s.entries))
	for key := range s.entries {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func (s *store) len() int {
	return len(s.entries)
}
