// Package session remembers per-device state the old browser client
// kept in localStorage: the person's name, the reference to their
// already-submitted order for today, and the legacy full-order snapshot
// from the flow that predated the remote store.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Legacy is the old single-order snapshot, kept for clients migrating
// from the localStorage-only flow.
type Legacy struct {
	Name      string    `json:"name"`
	Items     []string  `json:"items"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one device's remembered state.
type Session struct {
	ID      string  `json:"id"`
	Name    string  `json:"name,omitempty"`
	OrderID string  `json:"order_id,omitempty"`
	Legacy  *Legacy `json:"legacy,omitempty"`
}

// Store holds sessions in memory, keyed by the session cookie.
type Store struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]Session)}
}

// Ensure returns the session for id, creating it (and a fresh id when
// none was presented) as needed.
func (s *Store) Ensure(id string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.New().String()
	}
	sess, ok := s.sessions[id]
	if !ok {
		sess = Session{ID: id}
		s.sessions[id] = sess
	}
	return sess
}

// Remember stores the name and existing-order reference after a
// successful submission.
func (s *Store) Remember(id, name, orderID string, legacy *Legacy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[id]
	sess.ID = id
	sess.Name = name
	sess.OrderID = orderID
	if legacy != nil {
		sess.Legacy = legacy
	}
	s.sessions[id] = sess
}

// ClearOrder drops the existing-order reference so the next submission
// inserts instead of updating. The name stays remembered; the remote
// row is untouched.
func (s *Store) ClearOrder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	sess.OrderID = ""
	s.sessions[id] = sess
}

// ForgetOrderEverywhere clears any session holding a reference to
// orderID, so a deleted row is not updated back into existence.
func (s *Store) ForgetOrderEverywhere(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.OrderID == orderID {
			sess.OrderID = ""
			s.sessions[id] = sess
		}
	}
}
