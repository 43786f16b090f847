// Package handlers implements the REST API endpoints. Every response uses
// the same JSON envelope: {"success": bool, "data": ... | "error": ...},
// with pagination fields added on list endpoints.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope is the uniform JSON response shape.
type envelope map[string]any

// respondJSON writes any payload with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondData writes a success envelope around data.
func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, envelope{"success": true, "data": data})
}

// respondError writes the error envelope with a single message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{"success": false, "error": message})
}

// respondFieldErrors writes a 400 validation envelope carrying per-field
// messages alongside the generic error string.
func respondFieldErrors(w http.ResponseWriter, fields map[string]string) {
	respondJSON(w, http.StatusBadRequest, envelope{
		"success": false,
		"error":   "Validation failed",
		"errors":  fields,
	})
}

// respondServerError logs the underlying error and hides it from the caller.
func respondServerError(w http.ResponseWriter, op string, err error) {
	slog.Error(op, "error", err)
	respondError(w, http.StatusInternalServerError, "Server error")
}

// decodeJSON parses the request body into dst, reporting a 400 on bad input.
// Returns false if the response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
