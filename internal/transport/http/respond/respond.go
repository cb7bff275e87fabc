// Package respond writes JSON responses. Error is the single place where a
// failure becomes a client-visible response.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/vedran77/contacts/internal/apperr"
	"github.com/vedran77/contacts/internal/logging"
)

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// OK writes {"success": true, ...fields}.
func OK(w http.ResponseWriter, status int, fields map[string]any) {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	JSON(w, status, body)
}

// Error normalizes err into {"success": false, "message": ...}. Internal
// failures are logged with their detail and reported generically.
func Error(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	status, body := apperr.Normalize(err)
	if status >= http.StatusInternalServerError {
		log.Error(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	JSON(w, status, body)
}
