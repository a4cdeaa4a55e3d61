package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint answers with. Data is set on
// success, Errors carries field-level validation messages.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes the envelope with the given status code. Responses
// may carry session tokens, so they are never cached.
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// ResponseFailure writes an unsuccessful envelope.
func ResponseFailure(w http.ResponseWriter, code int, message string, errors any) {
	ResponseJSON(w, code, false, message, nil, errors)
}

func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseFailure(w, http.StatusBadRequest, message, errors)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseFailure(w, http.StatusUnauthorized, message, nil)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseFailure(w, http.StatusForbidden, message, nil)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseFailure(w, http.StatusNotFound, message, nil)
}

func ResponseConflict(w http.ResponseWriter, message string) {
	ResponseFailure(w, http.StatusConflict, message, nil)
}

func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	ResponseFailure(w, http.StatusTooManyRequests, message, nil)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseFailure(w, http.StatusInternalServerError, message, nil)
}

// ResponseServiceUnavailable reports a failed dependency. data lists which
// checks failed.
func ResponseServiceUnavailable(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusServiceUnavailable, false, message, data, nil)
}
