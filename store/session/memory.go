package session

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/store"
)

// NewMemory returns an in-process session store. Sessions vanish on restart;
// use the database-backed store for anything beyond a single-node setup.
func NewMemory() core.SessionStore {
	return &memoryStore{sessions: map[string]*core.PaymentSession{}}
}

type memoryStore struct {
	mux sync.RWMutex

	// keyed by quote id: the finish request identifies its session by the
	// quote it wants to pay.
	sessions map[string]*core.PaymentSession
}

func (s *memoryStore) Create(_ context.Context, session *core.PaymentSession) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	clone := *session
	s.sessions[session.QuoteID] = &clone
	return nil
}

func (s *memoryStore) FindQuote(_ context.Context, quoteID string) (*core.PaymentSession, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	session, ok := s.sessions[quoteID]
	if !ok {
		return nil, sql.ErrNoRows
	}

	clone := *session
	return &clone, nil
}

func (s *memoryStore) Consume(_ context.Context, session *core.PaymentSession) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	stored, ok := s.sessions[session.QuoteID]
	if !ok || stored.ID != session.ID {
		return sql.ErrNoRows
	}

	if stored.Consumed {
		return store.ErrConsumed
	}

	stored.Consumed = true
	session.Consumed = true
	return nil
}

func (s *memoryStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	var n int64
	for quoteID, session := range s.sessions {
		if session.Consumed || session.ExpiresAt.Before(before) {
			delete(s.sessions, quoteID)
			n++
		}
	}

	return n, nil
}
