package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/firetemplate/items-api/internal/models"
	"github.com/firetemplate/items-api/internal/revocation"
	"github.com/firetemplate/items-api/internal/verify"
	"github.com/firetemplate/items-api/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// staticSource accepts a single token.
type staticSource struct{ token string }

func (staticSource) Name() string { return "static" }

func (s staticSource) Verify(_ context.Context, raw string) (*models.Caller, error) {
	if raw != s.token {
		return nil, errors.New("unknown token")
	}
	return &models.Caller{UID: "user1", Source: "static", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func newLogoutEngine(store *revocation.Store) *gin.Engine {
	chain := verify.NewChain(store, staticSource{token: "access-1"})
	g := gin.New()
	g.Use(middleware.ErrorMapper())
	api := g.Group("/api")
	NewAuthHandler(store).Register(api, middleware.TokenAuth(chain))
	api.GET("/whoami", middleware.TokenAuth(chain), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return g
}

func call(g *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestLogout_RevokesToken(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	store := revocation.NewStore(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	g := newLogoutEngine(store)

	require.Equal(t, http.StatusNoContent, call(g, http.MethodGet, "/api/whoami", "access-1").Code)

	w := call(g, http.MethodPost, "/api/auth/logout", "access-1")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Logged out","revoked":true}`, w.Body.String())

	w = call(g, http.MethodGet, "/api/whoami", "access-1")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"detail":"Invalid authentication token"}`, w.Body.String())

	// the denylist entry expires with the token
	m.FastForward(2 * time.Hour)
	require.Equal(t, http.StatusNoContent, call(g, http.MethodGet, "/api/whoami", "access-1").Code)
}

func TestLogout_WithoutRedis(t *testing.T) {
	g := newLogoutEngine(revocation.NewStore(nil))
	w := call(g, http.MethodPost, "/api/auth/logout", "access-1")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Logged out","revoked":false}`, w.Body.String())
	require.Equal(t, http.StatusNoContent, call(g, http.MethodGet, "/api/whoami", "access-1").Code)
}

func TestLogout_RequiresToken(t *testing.T) {
	g := newLogoutEngine(revocation.NewStore(nil))
	require.Equal(t, http.StatusUnauthorized, call(g, http.MethodPost, "/api/auth/logout", "").Code)
}
