package inventory

import "sync"

// Session holds the per-user state that outlives a single request.
type Session struct {
	Insertion *Insertion
	Selection *Selection
}

type SessionManager struct {
	mu           sync.Mutex
	sessions     map[string]*Session
	newInsertion func(userID string) *Insertion
}

func NewSessionManager(newInsertion func(userID string) *Insertion) *SessionManager {
	return &SessionManager{
		sessions:     make(map[string]*Session),
		newInsertion: newInsertion,
	}
}

// Get returns the session of userID, creating it on first use.
func (m *SessionManager) Get(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		s = &Session{
			Insertion: m.newInsertion(userID),
			Selection: NewSelection(),
		}
		m.sessions[userID] = s
	}
	return s
}
