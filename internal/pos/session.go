package pos

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned for operations against an unknown or
	// already closed session.
	ErrSessionNotFound = errors.New("pos session not found")

	// ErrNoSale is returned when a receipt is requested before any sale has
	// been captured in the session.
	ErrNoSale = errors.New("no sale has been captured in this session")
)

// Session models one POS terminal: a live cart plus the last captured sale.
// All mutations go through the cart's own lock; the lastSale pointer is
// guarded separately because Checkout and LastSale can race across requests.
type Session struct {
	ID       uuid.UUID
	OpenedAt time.Time
	cart     *Cart
	saleMu   sync.Mutex
	lastSale *Sale
}

// Cart returns the session's live cart.
func (s *Session) Cart() *Cart {
	return s.cart
}

// Checkout finalizes the live cart into a sale and retains it as the
// session's last sale. On ErrEmptyCart the previously retained sale is kept.
func (s *Session) Checkout() (*Sale, error) {
	sale, err := Finalize(s.cart)
	if err != nil {
		return nil, err
	}

	s.saleMu.Lock()
	s.lastSale = sale
	s.saleMu.Unlock()
	return sale, nil
}

// LastSale returns the most recently captured sale, or ErrNoSale if the
// session has not checked out yet.
func (s *Session) LastSale() (*Sale, error) {
	s.saleMu.Lock()
	defer s.saleMu.Unlock()

	if s.lastSale == nil {
		return nil, ErrNoSale
	}
	return s.lastSale, nil
}

// SessionManager tracks the open terminal sessions. Sessions are fully
// independent of one another; the manager's lock only protects the map.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewSessionManager creates an empty session registry.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Open creates a new session with an empty cart and registers it.
func (m *SessionManager) Open() *Session {
	session := &Session{
		ID:       uuid.New(),
		OpenedAt: time.Now(),
		cart:     NewCart(),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	return session
}

// Get looks up an open session by id.
func (m *SessionManager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close tears down a session. Closing an unknown session returns
// ErrSessionNotFound.
func (m *SessionManager) Close(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}
