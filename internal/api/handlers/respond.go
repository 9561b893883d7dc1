package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Mateuus/Applio/internal/apierr"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps a domain error onto its HTTP status and the
// {"detail": ...} body every failure path returns.
func writeError(w http.ResponseWriter, err error) {
	status := apierr.Status(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	writeDetail(w, status, err.Error())
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
