package server

import (
	"net/http"
	"net/url"

	"github.com/jrsteele09/ims-console/gateway"
	"github.com/jrsteele09/ims-console/internal/errors"
	"github.com/jrsteele09/ims-console/inventory"
	"github.com/rs/zerolog"
)

const (
	msgUnreachable = "Cannot reach inventory API"
	msgGeneric     = "Something went wrong"
)

// screenError turns a failed API call into the message shown on screen. A
// rejected session yields "" since the page load is already being redirected.
func screenError(r *http.Request, err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, gateway.ErrSessionInvalidated) {
		return ""
	}
	zerolog.Ctx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("API call failed")

	var valErr *inventory.ValidationError
	var apiErr *gateway.APIError
	var urlErr *url.Error
	switch {
	case errors.As(err, &valErr):
		return valErr.Message
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgGeneric
	case errors.As(err, &urlErr):
		return msgUnreachable
	default:
		return msgGeneric
	}
}

// actionFailed sends a form submission back to the screen at path with the
// error shown
func actionFailed(w http.ResponseWriter, r *http.Request, path string, err error) {
	msg := screenError(r, err)
	if msg == "" {
		return
	}
	redirectWithError(w, r, path, msg)
}
