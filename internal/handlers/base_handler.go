// Package handlers contains the HTTP layer: request decoding, error
// translation and response encoding
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goshop/backend/internal/middlewares"
	"github.com/goshop/backend/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// HandleError translates a domain error to an HTTP response. Validation and
// duplicate errors keep their message; anything unexpected is logged with
// the request ID and answered with a generic 500 so internal details never
// reach the client.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case models.IsValidationError(err),
		errors.Is(err, models.ErrUserExists),
		errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrInvalidOTP),
		errors.Is(err, models.ErrAlreadySubscribed),
		errors.Is(err, models.ErrDuplicateEntry):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, "not found")
	default:
		h.Logger.Error("request failed",
			zap.String("request_id", middlewares.GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
