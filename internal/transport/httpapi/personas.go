package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sandevgo/companion/internal/core"
	"github.com/sandevgo/companion/pkg/log"
)

type personaRequest struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) handleCreatePersona(w http.ResponseWriter, r *http.Request) {
	var req personaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Description == "" {
		writeError(w, r, http.StatusBadRequest, "name and description are required")
		return
	}

	p, err := h.personas.CreateCustom(r.Context(), req.UserID, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrPersonaLimit):
			writeError(w, r, http.StatusConflict, err.Error())
		case errors.Is(err, core.ErrUserRequired):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			log.FromCtx(r.Context()).Error().Err(err).Msg("persona create failed")
			writeError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, r, http.StatusCreated, p)
}

func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, core.ErrUserRequired.Error())
		return
	}

	personas, err := h.personas.List(r.Context(), userID)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("persona list failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if personas == nil {
		personas = []core.Persona{}
	}

	writeJSON(w, r, http.StatusOK, map[string][]core.Persona{"personas": personas})
}
