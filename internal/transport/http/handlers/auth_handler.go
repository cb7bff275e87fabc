package handlers

import (
	"net/http"

	"github.com/vedran77/contacts/internal/logging"
	"github.com/vedran77/contacts/internal/service"
	"github.com/vedran77/contacts/internal/transport/http/middleware"
)

type AuthHandler struct {
	authService *service.AuthService
	log         logging.Logger
}

func NewAuthHandler(authService *service.AuthService, log logging.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp, err := h.authService.Register(r.Context(), input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":         resp.User,
		"access_token": resp.AccessToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":         resp.User,
		"access_token": resp.AccessToken,
	})
}

// Logout only acknowledges. Tokens are not stored, so the client discards
// its copy and the token lapses at expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.log.Info(r.Context(), "user logged out", "user_id", middleware.GetUserID(r.Context()))
	writeJSON(w, http.StatusOK, map[string]any{"message": "Logged out"})
}
