package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/common"
	"github.com/ternarybob/auspex/internal/interfaces"
)

// StatusHandler reports overall application state
type StatusHandler struct {
	corpus       interfaces.CorpusService
	orchestrator interfaces.Orchestrator
	logger       arbor.ILogger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(corpus interfaces.CorpusService, orchestrator interfaces.Orchestrator, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		corpus:       corpus,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// GetStatusHandler returns version, corpus sizes, and scheduler state
// GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":        common.GetVersion(),
		"news_records":   len(h.corpus.News()),
		"market_records": len(h.corpus.Market()),
		"scheduler": map[string]interface{}{
			"is_running":       h.orchestrator.IsRunning(),
			"interval_minutes": h.orchestrator.CurrentInterval(),
			"next_run":         h.orchestrator.NextRunTime(),
			"jobs":             h.orchestrator.JobStatuses(),
		},
	})
}
