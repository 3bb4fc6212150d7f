package app_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d9705996/hubclient/internal/app"
	"github.com/d9705996/hubclient/internal/config"
	"github.com/d9705996/hubclient/internal/route"
	"github.com/d9705996/hubclient/internal/session"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func testConfig(t *testing.T, driver, baseURL string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		API: config.APIConfig{BaseURL: baseURL},
		Session: config.SessionConfig{
			Driver: driver,
			File:   filepath.Join(dir, "session.json"),
			DBFile: filepath.Join(dir, "session.db"),
		},
	}
}

func authServer(t *testing.T, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestNew_SelectsStorageByDriver(t *testing.T) {
	for _, driver := range []string{"memory", "file", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			a, err := app.New(testConfig(t, driver, "http://api.test/v1"), discard())
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, a.Close()) })

			assert.Equal(t, "http://api.test/v1", a.API.BaseURL())
			assert.Equal(t, route.Home, a.Nav.Current().Page)
			assert.False(t, a.Session.IsAuthenticated())

			checks := a.Checks()
			assert.Contains(t, checks, "api")
			if driver == "sqlite" {
				assert.Contains(t, checks, "session_storage")
				assert.NoError(t, checks["session_storage"].Ping(context.Background()))
			} else {
				assert.NotContains(t, checks, "session_storage")
			}
		})
	}
}

func TestNew_WithLocation(t *testing.T) {
	a, err := app.New(testConfig(t, "memory", "http://api.test"), discard(), app.WithLocation("/resources/fractions"))
	require.NoError(t, err)
	assert.Equal(t, route.Resource, a.Nav.Current().Page)
	assert.Equal(t, "fractions", a.Nav.Current().Param("slug"))
}

func TestNew_CorruptStoredUser(t *testing.T) {
	st := session.NewMemoryStorage()
	require.NoError(t, st.Set(session.UserKey, "{not json"))

	_, err := app.New(testConfig(t, "memory", "http://api.test"), discard(), app.WithStorage(st))
	require.Error(t, err)
}

func TestSignIn_StoresTokenAndUser(t *testing.T) {
	base := authServer(t, `{"authentication_token":{"token":"abc","expiry":"x"},"user":{"id":1}}`)
	st := session.NewMemoryStorage()
	a, err := app.New(testConfig(t, "memory", base), discard(), app.WithStorage(st))
	require.NoError(t, err)

	env, err := a.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abc", env.String("authentication_token", "token"))
	assert.Equal(t, "abc", a.Token())

	raw, ok, err := st.Get(session.UserKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":1}`, raw)

	require.NoError(t, a.SignOut())
	assert.Empty(t, a.Token())
	assert.Equal(t, 0, st.Len())
}

func TestSignIn_WithoutUserMember(t *testing.T) {
	base := authServer(t, `{"authentication_token":{"token":"abc"}}`)
	a, err := app.New(testConfig(t, "memory", base), discard())
	require.NoError(t, err)

	_, err = a.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.True(t, a.Session.IsAuthenticated())
	assert.Nil(t, a.Session.User())
}

func TestSignIn_MissingToken(t *testing.T) {
	base := authServer(t, `{"authentication_token":{}}`)
	a, err := app.New(testConfig(t, "memory", base), discard())
	require.NoError(t, err)

	_, err = a.SignIn(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	assert.False(t, a.Session.IsAuthenticated())
}
