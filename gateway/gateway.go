// Package gateway is the single HTTP client the console uses to talk to the
// inventory API. Every request carries the stored bearer token, and every
// response is checked for the sentinel rejection that ends the session.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/ims-console/credstore"
	"github.com/jrsteele09/ims-console/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "ims-console"
	maxResponseBody  = 10 << 20
)

type options struct {
	httpClient    *http.Client
	timeout       time.Duration
	onAuthInvalid func(context.Context)
	resolveStore  func(context.Context) credstore.Store
	userAgent     string
}

type Option func(*options)

// WithHTTPClient uses c as the base client. c is copied, not modified.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithOnAuthInvalid sets the callback run after a sentinel rejection has
// cleared the credential store. It receives the context of the rejected request.
func WithOnAuthInvalid(f func(context.Context)) Option {
	return func(o *options) { o.onAuthInvalid = f }
}

// WithStoreResolver sets how the credential store for a request is found.
// The default reads it from the request context.
func WithStoreResolver(f func(context.Context) credstore.Store) Option {
	return func(o *options) { o.resolveStore = f }
}

func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// Gateway is safe for concurrent use
type Gateway struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// New creates a gateway for the API rooted at baseURL
func New(baseURL string, opts ...Option) (*Gateway, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidBaseURL, baseURL)
	}

	o := options{
		timeout:      defaultTimeout,
		resolveStore: credstore.FromContext,
		userAgent:    defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	client := &http.Client{}
	if o.httpClient != nil {
		copied := *o.httpClient
		client = &copied
	}
	if client.Timeout == 0 {
		client.Timeout = o.timeout
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	client.Transport = &authTransport{
		base:          base,
		resolveStore:  o.resolveStore,
		onAuthInvalid: o.onAuthInvalid,
	}

	return &Gateway{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    client,
		userAgent: o.userAgent,
	}, nil
}

// BaseURL returns the API root the gateway was configured with
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// HTTPClient returns the client carrying the gateway's transport, for
// requests the JSON helpers do not cover.
func (g *Gateway) HTTPClient() *http.Client {
	return g.client
}

func (g *Gateway) Get(ctx context.Context, path string, out any) error {
	return g.Do(ctx, http.MethodGet, path, nil, out)
}

func (g *Gateway) Post(ctx context.Context, path string, in, out any) error {
	return g.Do(ctx, http.MethodPost, path, in, out)
}

func (g *Gateway) Put(ctx context.Context, path string, in, out any) error {
	return g.Do(ctx, http.MethodPut, path, in, out)
}

func (g *Gateway) Delete(ctx context.Context, path string, out any) error {
	return g.Do(ctx, http.MethodDelete, path, nil, out)
}

// envelope is the status wrapper the API puts around every JSON reply
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// Do sends in as JSON (when non-nil) and decodes the reply into out (when
// non-nil). Transport failures are returned unchanged; API failures are
// returned as *APIError.
func (g *Gateway) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+"/"+strings.TrimLeft(path, "/"), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", g.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("path", path).Msg("gateway: request failed")
		return err
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("gateway: response")

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	var env envelope
	_ = json.Unmarshal(data, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Path: path, Message: env.text()}
	}
	if env.Success != nil && !*env.Success {
		return &APIError{StatusCode: resp.StatusCode, Path: path, Message: env.text()}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("invalid response from %s: %w", path, err)
		}
	}
	return nil
}
