package memory

import (
	"context"
	"sync"
	"time"

	"chapchap-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionStore is the in-memory store.SessionStore adapter, used by tests and
// local development. Entries expire after an hour of inactivity.
type SessionStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewSessionStore() *SessionStore {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionStore{cache: c}
}

func (s *SessionStore) Load(_ context.Context, sessionId string) (*store.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, found := s.cache.Get(sessionId)
	if !found {
		return nil, store.ErrNotFound
	}

	// Hand out a copy; the cached snapshot is only mutated through Save.
	state := &store.SessionState{SessionId: sessionId, Stage: store.StageInit}
	stored := x.(*store.SessionState)
	*state = *stored
	return state, nil
}

func (s *SessionStore) Save(_ context.Context, sessionId string, update store.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &store.SessionState{SessionId: sessionId, Stage: store.StageInit}
	if x, found := s.cache.Get(sessionId); found {
		*state = *x.(*store.SessionState)
	}

	if err := store.Apply(state, update); err != nil {
		return err
	}

	s.cache.Set(sessionId, state, cache.DefaultExpiration)
	return nil
}

func (s *SessionStore) Clear(_ context.Context, sessionId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Delete(sessionId)
	return nil
}
