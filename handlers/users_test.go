package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/firetemplate/items-api/internal/models"
	"github.com/firetemplate/items-api/internal/users"
	"github.com/firetemplate/items-api/internal/verify"
	"github.com/firetemplate/items-api/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type directoryStub struct {
	err  error
	name *string
}

func (directoryStub) Ready() bool { return true }

func (d directoryStub) GetProfile(_ context.Context, uid string) (*models.Profile, error) {
	if d.err != nil {
		return nil, d.err
	}
	name := "U"
	if d.name != nil {
		name = *d.name
	}
	return models.NewProfile(uid, "u@example.com", name), nil
}

func newUsersEngine(dir users.Directory) *gin.Engine {
	g := gin.New()
	g.Use(middleware.ErrorMapper())
	auth := middleware.TokenAuth(verify.NewChain(nil, staticSource{token: "access-1"}))
	RegisterUserRoutes(g, users.NewService(dir, users.NewMemoryProfileRepository()), auth)
	return g
}

func TestUsersMe(t *testing.T) {
	w := call(newUsersEngine(directoryStub{}), http.MethodGet, "/users/me", "access-1")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"uid":"user1","email":"u@example.com","display_name":"U"}`, w.Body.String())
}

func TestUsersMe_UnnamedAccountReportsNullDisplayName(t *testing.T) {
	empty := ""
	w := call(newUsersEngine(directoryStub{name: &empty}), http.MethodGet, "/users/me", "access-1")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"uid":"user1","email":"u@example.com","display_name":null}`, w.Body.String())
}

func TestUsersMe_NotFound(t *testing.T) {
	w := call(newUsersEngine(directoryStub{err: errors.New("no user record")}), http.MethodGet, "/users/me", "access-1")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"detail":"User not found"}`, w.Body.String())
}

func TestUsersMe_RequiresToken(t *testing.T) {
	w := call(newUsersEngine(directoryStub{}), http.MethodGet, "/users/me?token=bogus", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
