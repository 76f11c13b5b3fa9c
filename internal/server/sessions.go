package server

import (
	"sync"

	"github.com/evergreen-digital/contract-handover/internal/export"
	"github.com/evergreen-digital/contract-handover/internal/wizard"
	"github.com/google/uuid"
)

// session pairs one wizard controller with its lock and the artifact from
// its most recent submission. Requests for a session are serialized by the
// lock; the wizard controller is not safe for concurrent use.
type session struct {
	mu         sync.Mutex
	controller *wizard.Controller
	artifact   *export.Artifact
}

// sessionStore is an in-memory registry of active form sessions. Sessions
// are not persisted; a restart drops them.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

func (s *sessionStore) create(controller *wizard.Controller) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{controller: controller}
	s.mu.Unlock()
	return id
}

func (s *sessionStore) get(id string) (*session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	return sess, ok
}

func (s *sessionStore) delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
