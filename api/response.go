package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/inference-sim/cpusched/sim"
)

// Response is the standard JSON envelope.
type Response struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
}

// APIError is the error body of a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned to clients.
const (
	CodeInvalidInput     = "invalid_input"
	CodeInvalidQuantum   = "invalid_quantum"
	CodeEmptyProcessSet  = "empty_process_set"
	CodeInvalidAlgorithm = "invalid_algorithm"
	CodeInternal         = "internal"
)

func respondOK(w http.ResponseWriter, r *http.Request, data any) {
	respondJSON(w, r, http.StatusOK, data, nil)
}

func respondCreated(w http.ResponseWriter, r *http.Request, data any) {
	respondJSON(w, r, http.StatusCreated, data, nil)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, nil, &APIError{Code: code, Message: message})
}

// respondSimError maps the simulator's error taxonomy onto HTTP statuses.
// All of them are the caller's to fix, so they surface as 400s.
func respondSimError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sim.ErrInvalidQuantum):
		respondError(w, r, http.StatusBadRequest, CodeInvalidQuantum, err.Error())
	case errors.Is(err, sim.ErrEmptyProcessSet):
		respondError(w, r, http.StatusBadRequest, CodeEmptyProcessSet, err.Error())
	case errors.Is(err, sim.ErrInvalidInput):
		respondError(w, r, http.StatusBadRequest, CodeInvalidInput, err.Error())
	default:
		respondError(w, r, http.StatusInternalServerError, CodeInternal, err.Error())
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data any, apiErr *APIError) {
	resp := Response{
		RequestID: RequestIDFromContext(r.Context()),
		Timestamp: time.Now().UTC(),
		Data:      data,
		Error:     apiErr,
	}
	if apiErr != nil {
		resp.Status = "error"
	} else {
		resp.Status = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
