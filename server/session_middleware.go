package server

import (
	"bytes"
	"net/http"

	"github.com/jrsteele09/ims-console/credstore"
	"github.com/jrsteele09/ims-console/routing"
	"github.com/jrsteele09/ims-console/sessions"
	"github.com/rs/zerolog"
)

const noticeSessionExpired = "Session expired, please log in again."

// bufferedResponse holds a screen's output until the page load is known not
// to have been redirected
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header)}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) flushTo(w http.ResponseWriter) {
	for k, v := range b.header {
		if k == "Set-Cookie" {
			for _, c := range v {
				w.Header().Add(k, c)
			}
			continue
		}
		w.Header()[k] = v
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	w.WriteHeader(b.status)
	_, _ = b.body.WriteTo(w)
}

// SessionMiddleware starts a page load: it rehydrates the session from the
// credential cookies and carries the store, session and navigator in the
// request context. A navigation forced while the screen ran replaces
// whatever the screen rendered.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := credstore.NewCookieStore(w, r, s.codec, credstore.CookieOptions{
			Secure:     credstore.IsSecureRequest(r),
			RememberMe: s.rememberMe,
		})
		sess := sessions.New(store)
		if _, ok := sess.CurrentUser(); !ok {
			// scrub half-present or tampered cookies
			_ = store.Clear()
		}
		nav := routing.NewNavigator()

		ctx := credstore.NewContext(r.Context(), store)
		ctx = sessions.NewContext(ctx, sess)
		ctx = routing.NewContext(ctx, nav)

		buf := newBufferedResponse()
		next(buf, r.WithContext(ctx))

		target, forced := nav.Target()
		store.Commit()
		if !forced {
			buf.flushTo(w)
			return
		}

		zerolog.Ctx(ctx).Info().Str("path", r.URL.Path).Str("target", target).Msg("forced navigation")
		if target == routing.PathLogin {
			setFlash(w, r, noticeSessionExpired)
		}
		redirectSuccess(w, r, target)
	}
}
