package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"spendbook/internal/core"
)

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithDomainError maps domain errors to status codes. Anything
// unrecognized is treated as a persistence failure.
func respondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, core.ErrCategoryNotFound):
		respondWithError(w, http.StatusNotFound, "unknown category")
	case errors.Is(err, core.ErrInvalidAmount):
		respondWithError(w, http.StatusUnprocessableEntity, "invalid amount")
	case errors.Is(err, core.ErrInvalidDate):
		respondWithError(w, http.StatusBadRequest, "invalid date")
	case errors.Is(err, core.ErrEmptyName):
		respondWithError(w, http.StatusBadRequest, "name is required")
	default:
		respondWithError(w, http.StatusInternalServerError, "storage failure")
	}
}
