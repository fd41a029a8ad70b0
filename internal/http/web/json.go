package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/autentke/autentke/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// JSONError writes err as a JSON body with its mapped status.
func JSONError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}

	JSON(w, status, errorResponse{Error: apperr.Message(err), Kind: apperr.KindOf(err).String()})
}
