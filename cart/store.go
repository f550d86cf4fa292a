// Package cart holds the in-memory shopping cart: an ordered list of line
// items keyed by product ID. Mutations notify subscribers synchronously so
// the owning application can mirror the state to durable storage.
package cart

import "sync"

// LineItem is one product's entry in the cart. Qty is always >= 1; a
// decrement that would reach 0 removes the line instead.
type LineItem struct {
	ID    string  `json:"id"`
	Title string  `json:"title,omitempty"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
	Qty   int     `json:"qty"`
}

// Subscriber receives a snapshot of the cart after every committed mutation.
type Subscriber func(items []LineItem)

// Store is the cart state container. Display order is insertion order.
type Store struct {
	lock        sync.RWMutex
	items       []LineItem
	subscribers []Subscriber
}

// NewStore creates a cart store seeded with the given items. Entries with
// a non-positive quantity are clamped to 1 on the way in, and duplicate
// lines for the same product ID are merged so the cart holds at most one
// line per product.
func NewStore(initial []LineItem) *Store {
	items := make([]LineItem, 0, len(initial))
	index := make(map[string]int, len(initial))
	for _, item := range initial {
		if item.ID == "" {
			continue
		}
		if item.Qty < 1 {
			item.Qty = 1
		}
		if i, ok := index[item.ID]; ok {
			items[i].Qty += item.Qty
			continue
		}
		index[item.ID] = len(items)
		items = append(items, item)
	}
	return &Store{items: items}
}

// Subscribe registers a subscriber. Subscribers run synchronously, in
// registration order, after each mutation commits.
func (s *Store) Subscribe(fn Subscriber) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// AddItem increments the quantity of an existing line by one, or inserts
// the item at the end of the cart. The incoming quantity is only honoured
// on insert (defaulting to 1 when unset).
func (s *Store) AddItem(item LineItem) {
	s.lock.Lock()
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Qty++
			s.notifyLocked()
			return
		}
	}
	if item.Qty < 1 {
		item.Qty = 1
	}
	s.items = append(s.items, item)
	s.notifyLocked()
}

// RemoveItem decrements the quantity of the line with the given ID, deleting
// the line when its quantity reaches zero. Unknown IDs are a no-op.
func (s *Store) RemoveItem(id string) {
	s.lock.Lock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if s.items[i].Qty > 1 {
			s.items[i].Qty--
		} else {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		s.notifyLocked()
		return
	}
	s.lock.Unlock()
}

// SetQuantity sets the quantity of an existing line, clamping to a minimum
// of 1. Unknown IDs are a no-op.
func (s *Store) SetQuantity(id string, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.lock.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Qty = qty
			s.notifyLocked()
			return
		}
	}
	s.lock.Unlock()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lock.Lock()
	s.items = nil
	s.notifyLocked()
}

// Items returns a copy of the current line items in display order.
func (s *Store) Items() []LineItem {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]LineItem(nil), s.items...)
}

// Len returns the number of distinct lines in the cart.
func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.items)
}

// TotalQuantity returns the sum of all line quantities.
func (s *Store) TotalQuantity() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	total := 0
	for _, item := range s.items {
		total += item.Qty
	}
	return total
}

// Subtotal returns the price-weighted sum of all lines.
func (s *Store) Subtotal() float64 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Qty)
	}
	return total
}

// notifyLocked snapshots the items, releases the write lock and invokes the
// subscribers. Must be called with the write lock held; the lock is released
// before subscribers run so they may read the store.
func (s *Store) notifyLocked() {
	snapshot := append([]LineItem(nil), s.items...)
	subscribers := append([]Subscriber(nil), s.subscribers...)
	s.lock.Unlock()
	for _, fn := range subscribers {
		fn(snapshot)
	}
}
