package api

import (
	"encoding/json"
	"net/http"
)

// envelope is the wire shape shared by every endpoint.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondResult(w http.ResponseWriter, result any) {
	writeJSON(w, http.StatusOK, envelope{"success": true, "result": result})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"success": false, "error": message})
}

// respondTypedError reports a failed analysis with a machine-readable kind
// alongside the human-readable message.
func respondTypedError(w http.ResponseWriter, status int, message, errorType string) {
	writeJSON(w, status, envelope{"success": false, "error": message, "error_type": errorType})
}
