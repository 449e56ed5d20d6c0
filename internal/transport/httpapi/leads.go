package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/sandevgo/companion/internal/core"
	"github.com/sandevgo/companion/pkg/log"
)

type leadRequest struct {
	Token          string `json:"token"`
	PreferredStyle string `json:"preferred_style"`
	ConnectionType string `json:"connection_type"`
	Topics         string `json:"topics"`
	Tone           string `json:"tone"`
	MatchName      string `json:"match_name"`
	Language       string `json:"language"`
}

type leadResponse struct {
	Success bool        `json:"success"`
	Data    []core.Lead `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) handleLeads(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, leadResponse{Success: false, Error: "invalid request body"})
		return
	}

	saved, err := h.leads.Insert(r.Context(), core.Lead{
		Token:          req.Token,
		PreferredStyle: req.PreferredStyle,
		ConnectionType: req.ConnectionType,
		Topics:         req.Topics,
		Tone:           req.Tone,
		MatchName:      req.MatchName,
		Language:       req.Language,
	})
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("lead capture failed")
		writeJSON(w, r, http.StatusInternalServerError, leadResponse{Success: false, Error: "failed to save lead"})
		return
	}

	writeJSON(w, r, http.StatusOK, leadResponse{Success: true, Data: []core.Lead{saved}})
}
