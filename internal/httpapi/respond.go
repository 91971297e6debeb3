package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/internai/internai/internal/model"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func jsonOK(w http.ResponseWriter, v any) {
	jsonStatus(w, http.StatusOK, v)
}

func jsonStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, message string, err error) {
	body := errorBody{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	jsonStatus(w, status, body)
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrUpstream):
		return http.StatusBadGateway
	default:
		// not configured, malformed upstream output and anything unexpected
		return http.StatusInternalServerError
	}
}

// fail writes err with the status its class maps to, message as the summary
// and err's text as the detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := statusFor(err)
	if errors.Is(err, model.ErrNotConfigured) {
		message = "AI service configuration error"
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error(message, "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	jsonError(w, status, message, err)
}
