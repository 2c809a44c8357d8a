package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/gamebeacon/internal/history"
	"github.com/iudanet/gamebeacon/internal/reconciler"
	"github.com/iudanet/gamebeacon/pkg/api"
)

const (
	defaultEventsLimit = 50
	maxEventsLimit     = 500
)

// StatusSource provides the current status. reconciler.Reconciler implements it.
type StatusSource interface {
	Status() reconciler.Status
}

// StatusHandler serves the listing status and the event journal.
type StatusHandler struct {
	source   StatusSource
	recorder history.Recorder
	logger   *slog.Logger
}

// NewStatusHandler создает handler статуса. recorder may be nil.
func NewStatusHandler(source StatusSource, recorder history.Recorder, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{
		source:   source,
		recorder: recorder,
		logger:   logger,
	}
}

// Status обрабатывает GET /api/v1/status
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.source.Status(), h.logger)
}

// Events обрабатывает GET /api/v1/events?limit=N
func (h *StatusHandler) Events(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:   "bad_request",
				Message: "limit must be a positive integer",
			}, h.logger)
			return
		}
		limit = min(n, maxEventsLimit)
	}

	if h.recorder == nil {
		writeJSON(w, http.StatusOK, []*history.Event{}, h.logger)
		return
	}

	events, err := h.recorder.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to read events", "error", err)
		writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{
			Error: "internal_error",
		}, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, events, h.logger)
}
