// Package credstore persists the identity token and the last-known user
// profile. Both halves are saved and cleared together; a missing or
// unreadable half reads back as ErrAbsent.
package credstore

import (
	"context"

	"github.com/jrsteele09/ims-console/internal/errors"
	"github.com/jrsteele09/ims-console/users"
)

const (
	// TokenKey holds the raw bearer token
	TokenKey = "ims_token"
	// ProfileKey holds the serialized user profile
	ProfileKey = "ims_user"
)

// ErrAbsent is returned by Load when no complete session is persisted
var ErrAbsent = errors.ErrSessionAbsent

// Store is durable, synchronous key/value persistence for one session pair
type Store interface {
	// Save writes both values, replacing anything stored before
	Save(token string, profile users.Profile) error

	// Load returns the persisted pair or ErrAbsent
	Load() (string, users.Profile, error)

	// Clear removes both values; clearing an empty store is a no-op
	Clear() error
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying store
func NewContext(ctx context.Context, store Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, store)
}

// FromContext returns the store carried by ctx, or nil
func FromContext(ctx context.Context) Store {
	store, _ := ctx.Value(ctxKey{}).(Store)
	return store
}
