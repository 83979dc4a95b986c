package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lodgekit/pkg/session"
)

const knownID = "6f1c0b52-8f3e-4c1a-9d55-0c3b7e2a9f10"

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.DefaultCookieName {
			return c
		}
	}
	return nil
}

func TestManager_Middleware(t *testing.T) {
	t.Parallel()

	mgr := session.NewFromConfig(session.Config{TTL: time.Hour})

	var got string
	handler := mgr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = session.MustIDFromContext(r.Context())
	}))

	t.Run("issues a new id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		_, err := uuid.Parse(got)
		require.NoError(t, err)

		c := sessionCookie(t, rec)
		require.NotNil(t, c)
		assert.Equal(t, got, c.Value)
		assert.Equal(t, 3600, c.MaxAge)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.Equal(t, got, rec.Header().Get(session.DefaultHeaderName))
	})

	t.Run("reuses cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: knownID})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, knownID, got)
		assert.Nil(t, sessionCookie(t, rec), "existing session must not be reissued")
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		other := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(session.DefaultHeaderName, other)
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: knownID})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, other, got)
	})

	t.Run("malformed id is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "../../etc/passwd"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.NotEqual(t, "../../etc/passwd", got)
		require.NotNil(t, sessionCookie(t, rec))
		assert.Equal(t, got, sessionCookie(t, rec).Value)
	})
}

func TestManager_Get(t *testing.T) {
	t.Parallel()

	mgr := session.New()

	_, err := mgr.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(session.DefaultHeaderName, "not-a-uuid")
	_, err = mgr.Get(req)
	assert.ErrorIs(t, err, session.ErrInvalidSession)

	req.Header.Set(session.DefaultHeaderName, knownID)
	id, err := mgr.Get(req)
	require.NoError(t, err)
	assert.Equal(t, knownID, id)
}

func TestManager_End(t *testing.T) {
	t.Parallel()

	var ended []string
	mgr := session.New(session.WithOnEnd(func(_ context.Context, id string) {
		ended = append(ended, id)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/session", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: knownID})
	rec := httptest.NewRecorder()
	require.NoError(t, mgr.End(rec, req))

	assert.Equal(t, []string{knownID}, ended)
	c := sessionCookie(t, rec)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)

	rec = httptest.NewRecorder()
	require.NoError(t, mgr.End(rec, httptest.NewRequest(http.MethodDelete, "/session", nil)))
	assert.Len(t, ended, 1, "no callback without a session")
}

func TestManager_IDGenerator(t *testing.T) {
	t.Parallel()

	mgr := session.New(session.WithIDGenerator(func() string { return knownID }))
	id, err := mgr.Ensure(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, knownID, id)
}

func TestContext(t *testing.T) {
	t.Parallel()

	_, ok := session.IDFromContext(context.Background())
	assert.False(t, ok)
	assert.Panics(t, func() { session.MustIDFromContext(context.Background()) })

	ctx := session.WithID(context.Background(), knownID)
	id, ok := session.IDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, knownID, id)

	extract := session.LoggerExtractor()
	_, ok = extract(context.Background())
	assert.False(t, ok)
	attr, ok := extract(ctx)
	require.True(t, ok)
	assert.Equal(t, "session_id", attr.Key)
	assert.Equal(t, knownID, attr.Value.String())
}
