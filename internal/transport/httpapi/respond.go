package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/sandevgo/companion/pkg/log"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

// writeError emits the flat {error} envelope the chat client consumes.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, map[string]string{"error": message})
}
