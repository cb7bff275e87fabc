package ws

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/vedran77/contacts/internal/logging"
	"github.com/vedran77/contacts/internal/transport/http/middleware"
	"github.com/vedran77/contacts/internal/transport/http/respond"
	"nhooyr.io/websocket"
)

// TokenValidator verifies a session token and returns its subject.
type TokenValidator interface {
	Validate(token string) (uuid.UUID, error)
}

// ServeWS upgrades to WebSocket after validating the session token.
// Browsers cannot set headers on the upgrade, so ?token= is accepted as well
// as the Authorization header. An origin of "*" accepts any origin.
func ServeWS(hub *Hub, tokens TokenValidator, origin string, log logging.Logger) http.HandlerFunc {
	opts := &websocket.AcceptOptions{}
	if origin == "*" {
		opts.InsecureSkipVerify = true
	} else {
		opts.OriginPatterns = []string{origin}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.URL.Query().Get("token")
		if tokenStr == "" {
			tokenStr, _ = middleware.BearerToken(r)
		}

		userID, err := tokens.Validate(tokenStr)
		if err != nil {
			respond.Error(w, r, log, middleware.ErrNotAuthorized)
			return
		}

		conn, err := websocket.Accept(w, r, opts)
		if err != nil {
			log.Warn(r.Context(), "ws accept failed", "error", err)
			return
		}

		// the request context ends when the handler returns
		ctx, cancel := context.WithCancel(context.Background())
		client := NewClient(hub, conn, userID, log)
		hub.Register(client)

		go func() {
			client.WritePump(ctx)
			cancel()
		}()
		go func() {
			client.ReadPump(ctx)
			cancel()
		}()
	}
}
