package handlers

import (
	"net/http"

	"github.com/vedran77/contacts/internal/logging"
	"github.com/vedran77/contacts/internal/service"
	"github.com/vedran77/contacts/internal/transport/http/middleware"
)

// RouterDeps carries everything NewRouter mounts. WS and RateLimiter are
// optional.
type RouterDeps struct {
	Auth        *service.AuthService
	Users       *service.UserService
	Contacts    *service.ContactService
	Tokens      middleware.TokenValidator
	WS          http.Handler
	RateLimiter *middleware.RateLimiter
	CORSOrigin  string
	Log         logging.Logger
}

// NewRouter builds the full HTTP handler: routes under /api/v1, the same
// routes under the legacy /api prefix, and the middleware stack.
func NewRouter(deps RouterDeps) http.Handler {
	authHandler := NewAuthHandler(deps.Auth, deps.Log)
	userHandler := NewUserHandler(deps.Users, deps.Log)
	contactHandler := NewContactHandler(deps.Contacts, deps.Log)

	auth := middleware.Auth(deps.Tokens, deps.Log)
	protected := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	for _, prefix := range []string{"/api/v1", "/api"} {
		mux.HandleFunc("POST "+prefix+"/auth/register", authHandler.Register)
		mux.HandleFunc("POST "+prefix+"/auth/login", authHandler.Login)

		// Protected - Auth
		mux.Handle("POST "+prefix+"/auth/logout", protected(authHandler.Logout))
		mux.Handle("GET "+prefix+"/auth/logout", protected(authHandler.Logout))

		// Protected - Users
		mux.Handle("GET "+prefix+"/users", protected(userHandler.List))
		mux.Handle("GET "+prefix+"/users/me", protected(userHandler.Me))
		mux.Handle("GET "+prefix+"/users/{id}", protected(userHandler.Get))
		mux.Handle("PUT "+prefix+"/users", protected(userHandler.Update))
		mux.Handle("DELETE "+prefix+"/users", protected(userHandler.Delete))

		// Protected - Contacts
		mux.Handle("POST "+prefix+"/contacts", protected(contactHandler.Create))
		mux.Handle("GET "+prefix+"/contacts", protected(contactHandler.List))
		mux.Handle("GET "+prefix+"/contacts/{id}", protected(contactHandler.Get))
		mux.Handle("PUT "+prefix+"/contacts/{id}", protected(contactHandler.Update))
		mux.Handle("DELETE "+prefix+"/contacts/{id}", protected(contactHandler.Delete))

		// WebSocket authenticates from the query string itself
		if deps.WS != nil {
			mux.Handle("GET "+prefix+"/ws", deps.WS)
		}
	}

	mws := []func(http.Handler) http.Handler{
		middleware.RequestLog(deps.Log),
		middleware.Recover(deps.Log),
		middleware.CORS(deps.CORSOrigin),
		middleware.SecurityHeaders,
	}
	if deps.RateLimiter != nil {
		mws = append(mws, middleware.RateLimit(deps.RateLimiter, deps.Log))
	}
	return middleware.Chain(mux, mws...)
}
