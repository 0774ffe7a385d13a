package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/ims-console/credstore"
	"github.com/jrsteele09/ims-console/gateway"
	"github.com/jrsteele09/ims-console/internal/config"
	"github.com/jrsteele09/ims-console/inventory"
	"github.com/jrsteele09/ims-console/routing"
	"github.com/jrsteele09/ims-console/sessions"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	appName    string
	mux        *http.ServeMux
	routes     []string
	gateway    *gateway.Gateway
	inventory  *inventory.Client
	codec      *credstore.ProfileCodec
	rememberMe time.Duration
	pages      map[string]*template.Template
	layout     *template.Template
}

// NewGateway builds the shared API client. A sentinel rejection on any call
// ends the session of the page load that made it.
func NewGateway(cfg config.GatewayConfig, opts ...gateway.Option) (*gateway.Gateway, error) {
	opts = append([]gateway.Option{
		gateway.WithTimeout(cfg.GetAPITimeout()),
		gateway.WithOnAuthInvalid(ForceLogout),
	}, opts...)
	return gateway.New(cfg.GetAPIBaseURL(), opts...)
}

// ForceLogout terminates the session carried by ctx and sends the page load
// to the login screen
func ForceLogout(ctx context.Context) {
	if sess := sessions.FromContext(ctx); sess != nil {
		sess.Terminate()
	}
	if nav := routing.FromContext(ctx); nav != nil {
		nav.Navigate(routing.PathLogin)
	}
}

func New(cfg config.Config, gw *gateway.Gateway) (*Server, error) {
	secret := cfg.GetProfileSecret()
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
		log.Warn().Msg("IMS_PROFILE_SECRET not set, sessions will not survive a restart")
	}

	s := &Server{
		env:        cfg.GetEnv(),
		appName:    cfg.GetAppName(),
		mux:        http.NewServeMux(),
		gateway:    gw,
		inventory:  inventory.NewClient(gw),
		codec:      credstore.NewProfileCodec(secret),
		rememberMe: cfg.GetRememberMeMaxAge(),
	}

	if err := s.parseTemplates(); err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func logError(method, path, error string) {
	log.Error().Msgf("[%-19s] %s %s", colourMethod(method), path, Red+error+ResetColor)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}
