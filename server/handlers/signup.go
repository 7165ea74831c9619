package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mergington/activities/metrics"
	"github.com/mergington/activities/registry"
)

// SignupHandler handles requests to sign a student up for an activity.
type SignupHandler struct {
	logger  *slog.Logger
	service SignupService
	metrics *metrics.Metrics
}

// NewSignupHandler creates a new SignupHandler.
func NewSignupHandler(logger *slog.Logger, service SignupService, m *metrics.Metrics) *SignupHandler {
	return &SignupHandler{
		logger:  logger,
		service: service,
		metrics: m,
	}
}

// ServeHTTP implements http.Handler.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	activity := r.PathValue("activity")
	email, ok := requireEmail(w, r)
	if !ok {
		return
	}

	msg, err := h.service.SignUp(activity, email)
	switch {
	case errors.Is(err, registry.ErrActivityNotFound):
		h.metrics.Rejections.WithLabelValues("activity_not_found").Inc()
		writeJSON(w, http.StatusNotFound, DetailResponse{
			Detail: "Activity not found",
		})
	case errors.Is(err, registry.ErrAlreadySignedUp):
		h.metrics.Rejections.WithLabelValues("already_signed_up").Inc()
		writeJSON(w, http.StatusBadRequest, DetailResponse{
			Detail: "Student already signed up for this activity",
		})
	case err != nil:
		h.logger.Error("signup failed", "activity", activity, "error", err)
		writeJSON(w, http.StatusInternalServerError, DetailResponse{
			Detail: err.Error(),
		})
	default:
		h.metrics.Signups.WithLabelValues(activity).Inc()
		h.logger.Info("signup recorded", "activity", activity, "email", email)
		writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
	}
}
