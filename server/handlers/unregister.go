package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mergington/activities/metrics"
	"github.com/mergington/activities/registry"
)

// UnregisterHandler handles requests to remove a student from an
// activity roster.
type UnregisterHandler struct {
	logger  *slog.Logger
	service UnregisterService
	metrics *metrics.Metrics
}

// NewUnregisterHandler creates a new UnregisterHandler.
func NewUnregisterHandler(logger *slog.Logger, service UnregisterService, m *metrics.Metrics) *UnregisterHandler {
	return &UnregisterHandler{
		logger:  logger,
		service: service,
		metrics: m,
	}
}

// ServeHTTP implements http.Handler.
func (h *UnregisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	activity := r.PathValue("activity")
	email, ok := requireEmail(w, r)
	if !ok {
		return
	}

	msg, err := h.service.Unregister(activity, email)
	switch {
	case errors.Is(err, registry.ErrActivityNotFound):
		h.metrics.Rejections.WithLabelValues("activity_not_found").Inc()
		writeJSON(w, http.StatusNotFound, DetailResponse{
			Detail: "Activity not found",
		})
	case errors.Is(err, registry.ErrNotSignedUp):
		h.metrics.Rejections.WithLabelValues("not_signed_up").Inc()
		writeJSON(w, http.StatusBadRequest, DetailResponse{
			Detail: "Student is not registered for this activity",
		})
	case err != nil:
		h.logger.Error("unregister failed", "activity", activity, "error", err)
		writeJSON(w, http.StatusInternalServerError, DetailResponse{
			Detail: err.Error(),
		})
	default:
		h.metrics.Unregisters.WithLabelValues(activity).Inc()
		h.logger.Info("unregister recorded", "activity", activity, "email", email)
		writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
	}
}
