package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/vedran77/contacts/internal/apperr"
	"github.com/vedran77/contacts/internal/logging"
	"github.com/vedran77/contacts/internal/transport/http/respond"
)

const maxBodyBytes = 1 << 20

var (
	errInvalidBody = apperr.Validation("Invalid request body")
	errInvalidID   = apperr.Validation("Invalid ID")
)

func writeJSON(w http.ResponseWriter, status int, fields map[string]any) {
	respond.OK(w, status, fields)
}

func writeError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	respond.Error(w, r, log, err)
}

// decodeJSON reads a bounded body holding exactly one JSON object whose
// fields all belong to dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errInvalidBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}
