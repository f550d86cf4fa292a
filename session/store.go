// Package session holds the client-side authentication session state and
// its login lifecycle: anonymous -> authenticating -> authenticated, falling
// back to anonymous with an error message on failure.
package session

import "sync"

// User is the authenticated user's profile as returned by the backend.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Session is the observable auth state. IsAuthenticated is true iff User
// is non-nil.
type Session struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	Error           string `json:"error,omitempty"`
}

// Anonymous is the zero session: no user, not loading, no error.
func Anonymous() Session {
	return Session{}
}

// Subscriber receives the session after every committed transition.
type Subscriber func(s Session)

// Store is the auth session state container.
type Store struct {
	lock        sync.RWMutex
	current     Session
	subscribers []Subscriber
}

// NewStore creates a session store seeded with the given session. A seed
// claiming authentication without a user is reset to anonymous.
func NewStore(initial Session) *Store {
	if initial.User == nil {
		initial = Anonymous()
	} else {
		initial.IsAuthenticated = true
		initial.IsLoading = false
	}
	return &Store{current: initial}
}

// Subscribe registers a subscriber. Subscribers run synchronously, in
// registration order, after each transition commits.
func (s *Store) Subscribe(fn Subscriber) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// LoginStart transitions to the authenticating state, clearing any
// previous error.
func (s *Store) LoginStart() {
	s.lock.Lock()
	s.current.IsLoading = true
	s.current.Error = ""
	s.notifyLocked()
}

// LoginSuccess transitions to the authenticated state.
func (s *Store) LoginSuccess(user User) {
	s.lock.Lock()
	s.current = Session{User: &user, IsAuthenticated: true}
	s.notifyLocked()
}

// LoginFailure transitions back to anonymous, recording the failure message.
func (s *Store) LoginFailure(message string) {
	s.lock.Lock()
	s.current = Session{Error: message}
	s.notifyLocked()
}

// Logout resets the session to anonymous from any state.
func (s *Store) Logout() {
	s.lock.Lock()
	s.current = Anonymous()
	s.notifyLocked()
}

// Current returns the current session.
func (s *Store) Current() Session {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.current
}

// notifyLocked snapshots the session, releases the write lock and invokes
// the subscribers. Must be called with the write lock held.
func (s *Store) notifyLocked() {
	snapshot := s.current
	subscribers := append([]Subscriber(nil), s.subscribers...)
	s.lock.Unlock()
	for _, fn := range subscribers {
		fn(snapshot)
	}
}
