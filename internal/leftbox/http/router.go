// Package http wires the service layer to the public HTTP surface.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/realtime"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/service"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/store"
	"github.com/aussiebroadwan/leftbox/pkg/httpx"
	"github.com/aussiebroadwan/leftbox/pkg/jwtx"
	"github.com/aussiebroadwan/leftbox/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	UserService    *service.UserService
	SessionService *service.SessionService
	BoxService     *service.BoxService
	Hub            *realtime.Hub
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerBoxes()
	r.registerRealtime()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	registerHandler := &RegisterHandler{UserService: r.UserService}
	loginHandler := &LoginHandler{SessionService: r.SessionService}
	logoutHandler := &LogoutHandler{SessionService: r.SessionService}
	sessionsHandler := &SessionsHandler{SessionService: r.SessionService, UserService: r.UserService}
	usersHandler := &UsersHandler{UserService: r.UserService}

	// Credential endpoints take strict limits keyed by IP: they are the
	// brute-force surface.
	r.Mux.Handle("POST /register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /sessions",
		httpx.Chain(sessionsHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /{id}/logout",
		httpx.Chain(logoutHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /users",
		httpx.Chain(usersHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerBoxes() {
	h := &BoxHandler{BoxService: r.BoxService}

	r.Mux.Handle("POST /boxes",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.OptionalAuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /boxes/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /boxes/{id}/files",
		httpx.Chain(http.HandlerFunc(h.HandleUpload),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRealtime() {
	r.Mux.Handle("GET /ws", r.Hub.Handler(r.logger))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
