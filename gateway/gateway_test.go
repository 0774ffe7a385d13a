package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/ims-console/credstore"
	"github.com/jrsteele09/ims-console/gateway"
	"github.com/jrsteele09/ims-console/internal/errors"
	"github.com/jrsteele09/ims-console/users"
	"github.com/stretchr/testify/require"
)

var operator = users.Profile{ID: "u-2", Name: "Olu", Role: users.RoleOperator}

type recorded struct {
	mu      sync.Mutex
	headers []string
}

func (r *recorded) add(h string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.headers = append(r.headers, h)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newAPI serves /ok, /expired (sentinel 401), /denied (plain 401) and /fail
func newAPI(t *testing.T, rec *recorded) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ok", func(w http.ResponseWriter, r *http.Request) {
		rec.add(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "value": "hello"})
	})
	mux.HandleFunc("/api/expired", func(w http.ResponseWriter, r *http.Request) {
		rec.add(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": gateway.SentinelTokenInvalid})
	})
	mux.HandleFunc("/api/denied", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Unauthorized"})
	})
	mux.HandleFunc("/api/forbidden", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "message": gateway.SentinelTokenInvalid})
	})
	mux.HandleFunc("/api/fail", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "Server error"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func signedIn(t *testing.T) (context.Context, *credstore.Memory) {
	t.Helper()
	store := credstore.NewMemory()
	require.NoError(t, store.Save("tok-1", operator))
	return credstore.NewContext(context.Background(), store), store
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, base := range []string{"", "localhost:5000", "://bad"} {
		_, err := gateway.New(base)
		require.ErrorIs(t, err, errors.ErrInvalidBaseURL, base)
	}
}

func TestGateway_AttachesBearer(t *testing.T) {
	rec := &recorded{}
	srv := newAPI(t, rec)
	g, err := gateway.New(srv.URL + "/api/")
	require.NoError(t, err)

	ctx, _ := signedIn(t)
	var out struct {
		Value string `json:"value"`
	}
	require.NoError(t, g.Get(ctx, "/ok", &out))
	require.Equal(t, "hello", out.Value)
	require.Equal(t, []string{"Bearer tok-1"}, rec.headers)
}

func TestGateway_NoTokenStripsAuthorization(t *testing.T) {
	rec := &recorded{}
	srv := newAPI(t, rec)
	g, err := gateway.New(srv.URL + "/api")
	require.NoError(t, err)

	ctx := credstore.NewContext(context.Background(), credstore.NewMemory())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/ok", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer smuggled")

	resp, err := g.HTTPClient().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.NoError(t, g.Get(context.Background(), "ok", nil))
	require.Equal(t, []string{"", ""}, rec.headers)
}

func TestGateway_SentinelClearsStoreAndNotifies(t *testing.T) {
	srv := newAPI(t, &recorded{})
	var calls atomic.Int32
	g, err := gateway.New(srv.URL+"/api", gateway.WithOnAuthInvalid(func(context.Context) {
		calls.Add(1)
	}))
	require.NoError(t, err)

	ctx, store := signedIn(t)
	err = g.Get(ctx, "/expired", nil)
	require.ErrorIs(t, err, gateway.ErrSessionInvalidated)

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.Invalidated())
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, _, err = store.Load()
	require.ErrorIs(t, err, credstore.ErrAbsent)
	require.EqualValues(t, 1, calls.Load())
}

func TestGateway_OtherFailuresKeepSession(t *testing.T) {
	srv := newAPI(t, &recorded{})
	var calls atomic.Int32
	g, err := gateway.New(srv.URL+"/api", gateway.WithOnAuthInvalid(func(context.Context) {
		calls.Add(1)
	}))
	require.NoError(t, err)

	for _, path := range []string{"/denied", "/forbidden", "/fail"} {
		ctx, store := signedIn(t)
		err := g.Get(ctx, path, nil)
		require.Error(t, err, path)
		require.NotErrorIs(t, err, gateway.ErrSessionInvalidated, path)
		require.ErrorIs(t, err, errors.ErrAPI, path)

		token, _, loadErr := store.Load()
		require.NoError(t, loadErr, path)
		require.Equal(t, "tok-1", token, path)
	}
	require.Zero(t, calls.Load())
}

func TestGateway_EnvelopeFailureMessage(t *testing.T) {
	srv := newAPI(t, &recorded{})
	g, err := gateway.New(srv.URL + "/api")
	require.NoError(t, err)

	err = g.Get(context.Background(), "/fail", nil)
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Server error", apiErr.Message)
	require.Equal(t, http.StatusOK, apiErr.StatusCode)
}

func TestGateway_NetworkErrorKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	var calls atomic.Int32
	g, err := gateway.New(base, gateway.WithOnAuthInvalid(func(context.Context) { calls.Add(1) }))
	require.NoError(t, err)

	ctx, store := signedIn(t)
	err = g.Get(ctx, "/ok", nil)
	require.Error(t, err)

	var apiErr *gateway.APIError
	require.False(t, errors.As(err, &apiErr))
	_, _, err = store.Load()
	require.NoError(t, err)
	require.Zero(t, calls.Load())
}

func TestGateway_ConcurrentSentinels(t *testing.T) {
	srv := newAPI(t, &recorded{})
	var calls atomic.Int32
	g, err := gateway.New(srv.URL+"/api", gateway.WithOnAuthInvalid(func(context.Context) {
		calls.Add(1)
	}))
	require.NoError(t, err)

	ctx, store := signedIn(t)
	errs := make(chan error, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- g.Get(ctx, "/expired", nil)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.ErrorIs(t, err, gateway.ErrSessionInvalidated)
	}

	_, _, err = store.Load()
	require.ErrorIs(t, err, credstore.ErrAbsent)
	require.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestGateway_StoreResolver(t *testing.T) {
	rec := &recorded{}
	srv := newAPI(t, rec)
	store := credstore.NewMemory()
	require.NoError(t, store.Save("fixed", operator))

	g, err := gateway.New(srv.URL+"/api", gateway.WithStoreResolver(func(context.Context) credstore.Store {
		return store
	}))
	require.NoError(t, err)

	require.NoError(t, g.Get(context.Background(), "/ok", nil))
	require.Equal(t, []string{"Bearer fixed"}, rec.headers)
}
