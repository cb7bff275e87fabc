package handlers

import (
	"fmt"
	"net/http"

	"github.com/vedran77/contacts/internal/logging"
	"github.com/vedran77/contacts/internal/service"
	"github.com/vedran77/contacts/internal/transport/http/middleware"
)

type ContactHandler struct {
	contactService *service.ContactService
	log            logging.Logger
}

func NewContactHandler(contactService *service.ContactService, log logging.Logger) *ContactHandler {
	return &ContactHandler{contactService: contactService, log: log}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateContactInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	c, err := h.contactService.Create(r.Context(), middleware.GetUserID(r.Context()), input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("Contact registered with ID: %s", c.ID),
		"contact": c,
	})
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactService.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	c, err := h.contactService.Get(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contact": c})
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var input service.UpdateContactInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	c, err := h.contactService.Update(r.Context(), middleware.GetUserID(r.Context()), id, input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Contact with ID %s was modified", c.ID),
		"contact": c,
	})
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.contactService.Delete(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Contact with ID %s was deleted", id),
	})
}
