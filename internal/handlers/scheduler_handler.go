package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/interfaces"
)

// SchedulerHandler exposes orchestrator control endpoints
type SchedulerHandler struct {
	orchestrator interfaces.Orchestrator
	logger       arbor.ILogger
}

// NewSchedulerHandler creates a new scheduler handler
func NewSchedulerHandler(orchestrator interfaces.Orchestrator, logger arbor.ILogger) *SchedulerHandler {
	return &SchedulerHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// RefreshHandler enqueues an immediate corpus and market refresh
// POST /api/refresh
func (h *SchedulerHandler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if err := h.orchestrator.RefreshNow(); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "started",
		"message": "Refresh triggered",
	})
}

// SettingsHandler reads or updates the shared refresh interval
// GET /api/settings, POST /api/settings
func (h *SchedulerHandler) SettingsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.writeSettings(w)

	case http.MethodPost:
		var body struct {
			IntervalMinutes int `json:"interval_minutes"`
		}
		if !DecodeJSON(w, r, &body) {
			return
		}

		if err := h.orchestrator.SetInterval(body.IntervalMinutes); err != nil {
			WriteServiceError(w, err)
			return
		}

		h.logger.Info().Int("interval_minutes", body.IntervalMinutes).Msg("Refresh interval updated")
		h.writeSettings(w)

	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *SchedulerHandler) writeSettings(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"interval_minutes": h.orchestrator.CurrentInterval(),
		"next_run":         h.orchestrator.NextRunTime(),
		"is_running":       h.orchestrator.IsRunning(),
	})
}
