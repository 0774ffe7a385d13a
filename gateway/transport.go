package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/jrsteele09/ims-console/credstore"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// SentinelTokenInvalid is the message the inventory API sends with a 401
// when the bearer token is no longer valid. Only this exact message ends the
// session; any other 401 is an ordinary error.
const SentinelTokenInvalid = "Unauthorized - Token Invalid or Expired"

// maxSentinelPeek bounds how much of a 401 body is inspected
const maxSentinelPeek = 64 << 10

// authTransport attaches the stored bearer token to every request and ends
// the session on a sentinel rejection, whoever issued the request.
type authTransport struct {
	base          http.RoundTripper
	resolveStore  func(context.Context) credstore.Store
	onAuthInvalid func(context.Context)
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	store := t.resolveStore(ctx)

	out := req.Clone(ctx)
	out.Header.Del("Authorization")
	if store != nil {
		if token, _, err := store.Load(); err == nil {
			(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(out)
		}
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && isSentinelRejection(resp) {
		t.invalidate(ctx, store, req)
	}
	return resp, nil
}

// invalidate may run concurrently for several responses; clearing an empty
// store and navigating to a page already being navigated to are both no-ops.
func (t *authTransport) invalidate(ctx context.Context, store credstore.Store, req *http.Request) {
	log.Warn().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Msg("gateway: token rejected by API, ending session")

	if store != nil {
		if err := store.Clear(); err != nil {
			log.Warn().Err(err).Msg("gateway: failed to clear credential store")
		}
	}
	if t.onAuthInvalid != nil {
		t.onAuthInvalid(ctx)
	}
}

// isSentinelRejection reads the head of resp.Body and puts it back so the
// caller still sees the full body.
func isSentinelRejection(resp *http.Response) bool {
	if resp.Body == nil {
		return false
	}
	head, err := io.ReadAll(io.LimitReader(resp.Body, maxSentinelPeek))
	resp.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), resp.Body), resp.Body}
	if err != nil {
		return false
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(head, &body); err != nil {
		return false
	}
	return body.Message == SentinelTokenInvalid
}
