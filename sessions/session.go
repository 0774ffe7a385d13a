// Package sessions holds the signed-in user for one console page load.
//
// A Session is rehydrated from its credential store when it is created, so a
// reload never needs a fresh login. Establish and Terminate write through to
// the store before changing the in-memory user, keeping both copies in step.
package sessions

import (
	"context"
	"sync"

	"github.com/jrsteele09/ims-console/credstore"
	"github.com/jrsteele09/ims-console/users"
	"github.com/rs/zerolog/log"
)

// Observer is called after the current user changes. ok is false when the
// session became absent.
type Observer func(profile users.Profile, ok bool)

// Session is the single owner of the current user profile
type Session struct {
	store credstore.Store

	mu        sync.RWMutex
	profile   users.Profile
	present   bool
	nextID    int
	observers map[int]Observer
}

// New creates a session rehydrated from store. Anything the store cannot
// load is treated as no session.
func New(store credstore.Store) *Session {
	s := &Session{
		store:     store,
		observers: make(map[int]Observer),
	}
	if _, profile, err := store.Load(); err == nil {
		s.profile = profile
		s.present = true
	}
	return s
}

// Establish persists the pair and makes profile the current user
func (s *Session) Establish(profile users.Profile, token string) {
	if err := s.store.Save(token, profile); err != nil {
		log.Warn().Err(err).Str("user_id", profile.ID).Msg("Establish: failed to persist session")
	}

	s.mu.Lock()
	s.profile = profile
	s.present = true
	observers := s.snapshotObservers()
	s.mu.Unlock()

	notify(observers, profile, true)
}

// Terminate clears the store and drops the current user. Terminating an
// absent session only re-clears the store. It never issues requests.
func (s *Session) Terminate() {
	if err := s.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("Terminate: failed to clear credential store")
	}

	s.mu.Lock()
	if !s.present {
		s.mu.Unlock()
		return
	}
	s.profile = users.Profile{}
	s.present = false
	observers := s.snapshotObservers()
	s.mu.Unlock()

	notify(observers, users.Profile{}, false)
}

// CurrentUser returns the signed-in profile, if any
func (s *Session) CurrentUser() (users.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, s.present
}

// Subscribe registers o for user changes and returns a function removing it
func (s *Session) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = o
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// snapshotObservers must be called with s.mu held
func (s *Session) snapshotObservers() []Observer {
	out := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		out = append(out, o)
	}
	return out
}

func notify(observers []Observer, profile users.Profile, ok bool) {
	for _, o := range observers {
		o(profile, ok)
	}
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session carried by ctx, or nil
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
