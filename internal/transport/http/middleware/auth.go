package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/vedran77/contacts/internal/apperr"
	"github.com/vedran77/contacts/internal/logging"
	"github.com/vedran77/contacts/internal/transport/http/respond"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// ErrNotAuthorized is the only rejection the client sees, whatever the
// cause: missing header, wrong scheme, bad signature or expired token.
var ErrNotAuthorized = apperr.Unauthenticated("Not authorized")

// TokenValidator verifies a token and returns its subject.
type TokenValidator interface {
	Validate(token string) (uuid.UUID, error)
}

func Auth(tokens TokenValidator, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := BearerToken(r)
			if !ok {
				respond.Error(w, r, log, ErrNotAuthorized)
				return
			}

			userID, err := tokens.Validate(tokenStr)
			if err != nil {
				log.Debug(r.Context(), "token rejected", "path", r.URL.Path)
				respond.Error(w, r, log, ErrNotAuthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the credential from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// GetUserID returns the authenticated user id, or uuid.Nil when the request
// did not pass through Auth.
func GetUserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(UserIDKey).(uuid.UUID)
	return id
}
