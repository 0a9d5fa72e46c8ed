package session

import (
	"sync"

	"authflow/internal/models"
)

// Store is the in-memory IStore. The lock only keeps reads and writes whole;
// concurrent writers still overwrite each other (last writer wins).
type Store struct {
	mu   sync.RWMutex
	mfa  *models.MFAState
	auth *models.AuthSession
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SetMfa(result models.OtpVerificationResult) {
	state := models.NewMFAState(result)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mfa = &state
}

func (s *Store) ReconnectMfa(state models.MFAState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mfa = &state
}

func (s *Store) MFA() (models.MFAState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mfa == nil {
		return models.MFAState{}, false
	}
	return *s.mfa, true
}

func (s *Store) ClearMfa() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mfa = nil
}

func (s *Store) SetAuth(session models.AuthSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = &session
}

func (s *Store) Auth() (models.AuthSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.auth == nil {
		return models.AuthSession{}, false
	}
	return *s.auth, true
}

func (s *Store) ClearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = nil
}
