package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/sandevgo/companion/internal/core"
	"github.com/sandevgo/companion/internal/service/chat"
	"github.com/sandevgo/companion/pkg/log"
)

type chatRequest struct {
	UserID      string `json:"user_id"`
	Message     string `json:"message"`
	Personality string `json:"personality,omitempty"`
	UserName    string `json:"user_name,omitempty"`
}

type chatResponse struct {
	Message string `json:"message"`
}

// upstreamApology is what the end user sees when the model call fails. The
// real failure goes to the log; resending the message retries the turn.
const upstreamApology = "I'm having trouble answering right now. Please send that again in a moment. 💕"

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.chat.Turn(r.Context(), chat.TurnRequest{
		UserID:      req.UserID,
		Message:     req.Message,
		Personality: req.Personality,
		UserName:    req.UserName,
	})
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("chat turn failed")
		switch {
		case core.IsInput(err):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case core.IsUpstream(err):
			writeError(w, r, http.StatusBadGateway, upstreamApology)
		default:
			writeError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, chatResponse{Message: reply})
}
