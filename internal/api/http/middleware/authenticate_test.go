package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell-server/internal/model"
	"github.com/inkwellhq/inkwell-server/internal/testutil"
	"github.com/inkwellhq/inkwell-server/internal/token"
)

type fakeResolver struct {
	session model.Session
	err     error
}

func (f *fakeResolver) CurrentUser(_ context.Context, token uuid.UUID) (model.Session, error) {
	if f.err != nil {
		return model.Session{}, f.err
	}
	if f.session.Token != token {
		return model.Session{}, model.ErrNotFound
	}
	return f.session, nil
}

const cookieName = "test_session"

func newTestRouter(resolver SessionResolver, codec model.SessionCodec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthenticate(resolver, codec, cookieName, testutil.MakeNoopLogger())

	e := gin.New()
	e.Use(m.Resolve())
	e.GET("/open", func(c *gin.Context) {
		if session, ok := SessionFromContext(c); ok {
			c.String(http.StatusOK, session.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	e.GET("/gated", m.RequireSession("/login"), func(c *gin.Context) {
		session, _ := SessionFromContext(c)
		c.String(http.StatusOK, session.Username)
	})
	return e
}

func TestAuthenticate_Resolve_ValidCookie(t *testing.T) {
	codec := token.NewCodec("testsecret", time.Hour)
	session := model.Session{Token: uuid.New(), UserID: uuid.New(), Username: "alice"}
	e := newTestRouter(&fakeResolver{session: session}, codec)

	value, err := codec.Issue(session.Token)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: value})
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}

func TestAuthenticate_RequireSession_NoCookie(t *testing.T) {
	codec := token.NewCodec("testsecret", time.Hour)
	e := newTestRouter(&fakeResolver{}, codec)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAuthenticate_Resolve_TamperedCookie(t *testing.T) {
	codec := token.NewCodec("testsecret", time.Hour)
	session := model.Session{Token: uuid.New(), Username: "alice"}
	e := newTestRouter(&fakeResolver{session: session}, codec)

	value, err := codec.Issue(session.Token)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: value + "x"})
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code, "a tampered cookie is an anonymous request")
}

func TestAuthenticate_Resolve_StaleSession(t *testing.T) {
	// Cookie verifies but the server-side session is gone.
	codec := token.NewCodec("testsecret", time.Hour)
	e := newTestRouter(&fakeResolver{session: model.Session{Token: uuid.New()}}, codec)

	value, err := codec.Issue(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: value})
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAuthenticate_Resolve_ResolverError(t *testing.T) {
	codec := token.NewCodec("testsecret", time.Hour)
	e := newTestRouter(&fakeResolver{err: errors.New("store failure")}, codec)

	value, err := codec.Issue(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: value})
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String(), "resolver failure degrades to anonymous")
}

func TestAuthenticate_OpenRouteStaysOpen(t *testing.T) {
	codec := token.NewCodec("testsecret", time.Hour)
	e := newTestRouter(&fakeResolver{}, codec)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}
