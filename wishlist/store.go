// Package wishlist holds the in-memory wishlist: product snapshots keyed by
// ID with boolean presence. Mutations notify subscribers synchronously.
package wishlist

import "sync"

// Entry is a product snapshot saved to the wishlist. At most one entry
// exists per product ID.
type Entry struct {
	ID       string  `json:"id"`
	Title    string  `json:"title,omitempty"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
}

// Subscriber receives a snapshot of the wishlist after every committed mutation.
type Subscriber func(entries []Entry)

// Store is the wishlist state container. Display order is insertion order.
type Store struct {
	lock        sync.RWMutex
	entries     []Entry
	subscribers []Subscriber
}

// NewStore creates a wishlist store seeded with the given entries,
// dropping duplicates by ID.
func NewStore(initial []Entry) *Store {
	entries := make([]Entry, 0, len(initial))
	seen := make(map[string]struct{}, len(initial))
	for _, entry := range initial {
		if entry.ID == "" {
			continue
		}
		if _, ok := seen[entry.ID]; ok {
			continue
		}
		seen[entry.ID] = struct{}{}
		entries = append(entries, entry)
	}
	return &Store{entries: entries}
}

// Subscribe registers a subscriber. Subscribers run synchronously, in
// registration order, after each mutation commits.
func (s *Store) Subscribe(fn Subscriber) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Toggle removes the entry when an entry with the same ID is present,
// otherwise appends it. Exactly one of the two happens per call.
func (s *Store) Toggle(entry Entry) {
	s.lock.Lock()
	for i := range s.entries {
		if s.entries[i].ID == entry.ID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.notifyLocked()
			return
		}
	}
	s.entries = append(s.entries, entry)
	s.notifyLocked()
}

// Clear empties the wishlist.
func (s *Store) Clear() {
	s.lock.Lock()
	s.entries = nil
	s.notifyLocked()
}

// Contains reports whether an entry with the given ID is present.
func (s *Store) Contains(id string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	for _, entry := range s.entries {
		if entry.ID == id {
			return true
		}
	}
	return false
}

// Entries returns a copy of the current entries in display order.
func (s *Store) Entries() []Entry {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]Entry(nil), s.entries...)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.entries)
}

// notifyLocked snapshots the entries, releases the write lock and invokes
// the subscribers. Must be called with the write lock held.
func (s *Store) notifyLocked() {
	snapshot := append([]Entry(nil), s.entries...)
	subscribers := append([]Subscriber(nil), s.subscribers...)
	s.lock.Unlock()
	for _, fn := range subscribers {
		fn(snapshot)
	}
}
