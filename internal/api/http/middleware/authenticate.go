package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkwellhq/inkwell-server/internal/logger"
	"github.com/inkwellhq/inkwell-server/internal/model"
)

// SessionResolver resolves an opaque session token to a live session.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token uuid.UUID) (model.Session, error)
}

const sessionContextKey = "inkwell/session"

// Authenticate resolves the session cookie on every request and optionally
// gates routes on its presence.
type Authenticate struct {
	resolver   SessionResolver
	codec      model.SessionCodec
	cookieName string
	logger     *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware.
func NewAuthenticate(
	resolver SessionResolver,
	codec model.SessionCodec,
	cookieName string,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		resolver:   resolver,
		codec:      codec,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Resolve reads the session cookie, verifies it and attaches the session to
// the request context. Requests without a valid session pass through
// anonymously; gating happens in RequireSession.
func (m *Authenticate) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(m.cookieName)
		if err != nil {
			c.Next()
			return
		}

		token, err := m.codec.Parse(value)
		if err != nil {
			m.logger.Debug("Authenticate middleware: rejecting session cookie",
				"error", err.Error())
			c.Next()
			return
		}

		session, err := m.resolver.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				m.logger.Error("Authenticate middleware: failed to resolve session",
					"error", err.Error())
			}
			c.Next()
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// RequireSession redirects anonymous requests to redirectTo and stops the
// chain.
func (m *Authenticate) RequireSession(redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFromContext(c); !ok {
			c.Redirect(http.StatusFound, redirectTo)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionFromContext returns the session Resolve attached, if any.
func SessionFromContext(c *gin.Context) (model.Session, bool) {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return model.Session{}, false
	}
	session, ok := value.(model.Session)
	return session, ok
}

// SetSession attaches a session to the request context. Exported for handler
// tests.
func SetSession(c *gin.Context, session model.Session) {
	c.Set(sessionContextKey, session)
}
