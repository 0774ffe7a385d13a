package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/ims-console/gateway"
	"github.com/jrsteele09/ims-console/internal/errors"
	"github.com/jrsteele09/ims-console/users"
	"github.com/stretchr/testify/require"
)

func newLoginAPI(t *testing.T, reply func(req gateway.LoginRequest) (int, any)) *gateway.Gateway {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		var req gateway.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		status, body := reply(req)
		writeJSON(w, status, body)
	}))
	t.Cleanup(srv.Close)

	g, err := gateway.New(srv.URL + "/api")
	require.NoError(t, err)
	return g
}

func TestLogin_Success(t *testing.T) {
	g := newLoginAPI(t, func(req gateway.LoginRequest) (int, any) {
		require.Equal(t, "ada@example.com", req.Email)
		require.True(t, req.RememberMe)
		return http.StatusOK, map[string]any{
			"success": true,
			"token":   "tok-9",
			"user":    map[string]any{"_id": "u-1", "name": "Ada", "email": "ada@example.com", "role": "admin"},
		}
	})

	resp, err := g.Login(context.Background(), gateway.LoginRequest{Email: "ada@example.com", Password: "pw", RememberMe: true})
	require.NoError(t, err)
	require.Equal(t, "tok-9", resp.Token)
	require.Equal(t, users.Profile{ID: "u-1", Name: "Ada", Email: "ada@example.com", Role: users.RoleAdministrator}, resp.User)
}

func TestLogin_Rejected(t *testing.T) {
	g := newLoginAPI(t, func(gateway.LoginRequest) (int, any) {
		return http.StatusUnauthorized, map[string]any{"success": false, "error": "Wrong Password"}
	})

	_, err := g.Login(context.Background(), gateway.LoginRequest{Email: "a@b.c", Password: "x"})
	require.ErrorIs(t, err, errors.ErrInvalidCredentials)
	var credErr *gateway.CredentialsError
	require.ErrorAs(t, err, &credErr)
	require.Equal(t, "Wrong Password", credErr.Message)
}

func TestLogin_UnknownRole(t *testing.T) {
	g := newLoginAPI(t, func(gateway.LoginRequest) (int, any) {
		return http.StatusOK, map[string]any{
			"success": true,
			"token":   "tok",
			"user":    map[string]any{"_id": "u-3", "name": "Zed", "role": "auditor"},
		}
	})

	_, err := g.Login(context.Background(), gateway.LoginRequest{Email: "z@b.c", Password: "x"})
	require.ErrorIs(t, err, errors.ErrUnknownRole)
}

func TestLogin_MissingToken(t *testing.T) {
	g := newLoginAPI(t, func(gateway.LoginRequest) (int, any) {
		return http.StatusOK, map[string]any{
			"success": true,
			"user":    map[string]any{"_id": "u-1", "name": "Ada", "role": "Administrator"},
		}
	})

	_, err := g.Login(context.Background(), gateway.LoginRequest{Email: "a@b.c", Password: "x"})
	require.ErrorIs(t, err, errors.ErrAPI)
}
