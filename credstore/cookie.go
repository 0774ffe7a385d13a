package credstore

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/jrsteele09/ims-console/users"
	"github.com/rs/zerolog/log"
)

var _ Store = (*CookieStore)(nil)

// CookieOptions controls the attributes of the credential cookies
type CookieOptions struct {
	Secure     bool
	RememberMe time.Duration // MaxAge used when the login asked to be remembered
}

// CookieStore keeps the session pair in two host-only cookies of the
// console origin. It is bound to a single request: reads see the incoming
// cookies overlaid with any writes made since, and Commit emits the final
// Set-Cookie headers.
type CookieStore struct {
	mu    sync.Mutex
	w     http.ResponseWriter
	codec *ProfileCodec
	opts  CookieOptions

	token      string
	profile    string
	hadCookies bool
	remember   bool
	dirty      bool
	committed  bool
}

// NewCookieStore reads the credential cookies of r. Set-Cookie headers are
// written to w on Commit.
func NewCookieStore(w http.ResponseWriter, r *http.Request, codec *ProfileCodec, opts CookieOptions) *CookieStore {
	s := &CookieStore{
		w:     w,
		codec: codec,
		opts:  opts,
	}
	if c, err := r.Cookie(TokenKey); err == nil {
		s.hadCookies = true
		if v, err := url.QueryUnescape(c.Value); err == nil {
			s.token = v
		}
	}
	if c, err := r.Cookie(ProfileKey); err == nil {
		s.hadCookies = true
		s.profile = c.Value
	}
	return s
}

// RememberMe makes the next Save outlive the browser session
func (s *CookieStore) RememberMe(remember bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remember = remember
}

func (s *CookieStore) Save(token string, profile users.Profile) error {
	encoded, err := s.codec.Encode(profile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.profile = encoded
	s.dirty = true
	return nil
}

func (s *CookieStore) Load() (string, users.Profile, error) {
	s.mu.Lock()
	token, raw := s.token, s.profile
	s.mu.Unlock()

	if token == "" || raw == "" {
		return "", users.Profile{}, ErrAbsent
	}
	profile, err := s.codec.Decode(raw)
	if err != nil {
		log.Debug().Err(err).Msg("credstore: profile cookie treated as absent")
		return "", users.Profile{}, ErrAbsent
	}
	return token, profile, nil
}

func (s *CookieStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" && s.profile == "" && !s.hadCookies {
		return nil
	}
	s.token = ""
	s.profile = ""
	s.dirty = true
	return nil
}

// Commit writes the pending cookie changes. It must run before the response
// header is written; calls after the first are no-ops.
func (s *CookieStore) Commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty || s.committed {
		return
	}
	s.committed = true

	if s.token == "" || s.profile == "" {
		s.setCookie(TokenKey, "", -1)
		s.setCookie(ProfileKey, "", -1)
		return
	}

	maxAge := 0 // browser session
	if s.remember && s.opts.RememberMe > 0 {
		maxAge = int(s.opts.RememberMe.Seconds())
	}
	s.setCookie(TokenKey, url.QueryEscape(s.token), maxAge)
	s.setCookie(ProfileKey, s.profile, maxAge)
}

func (s *CookieStore) setCookie(name, value string, maxAge int) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// IsSecureRequest reports whether r arrived over https, directly or via a proxy
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
