package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore defines operations on the server-held session records.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	Get(ctx context.Context, token uuid.UUID) (Session, error)
	Delete(ctx context.Context, token uuid.UUID) error
}

// SessionCodec wraps the opaque session token for transport in a cookie and
// recovers it, rejecting values that were not issued by this server.
type SessionCodec interface {
	Issue(token uuid.UUID) (string, error)
	Parse(value string) (uuid.UUID, error)
}

// Session maps an opaque client-held token to an authenticated user.
// Gating decisions use UserID; Username is kept for template rendering.
type Session struct {
	Token     uuid.UUID
	UserID    uuid.UUID
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given moment.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
