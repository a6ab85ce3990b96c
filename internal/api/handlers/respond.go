package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lovico/lovico-server/internal/domain"
	"github.com/lovico/lovico-server/internal/schema"
	"github.com/lovico/lovico-server/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps the access-layer error taxonomy onto HTTP statuses.
// Everything unrecognized is an internal error; details stay in the log,
// not the response.
func writeError(w http.ResponseWriter, err error) {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrParentMessageMismatch):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrUsernameExists):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidSession):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAccountDisabled):
		writeMessage(w, http.StatusForbidden, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
