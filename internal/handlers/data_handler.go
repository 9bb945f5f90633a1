package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/interfaces"
)

// DataHandler serves the corpus dump and aggregate stats endpoints
type DataHandler struct {
	corpus interfaces.CorpusService
	logger arbor.ILogger
}

// NewDataHandler creates a new data handler
func NewDataHandler(corpus interfaces.CorpusService, logger arbor.ILogger) *DataHandler {
	return &DataHandler{
		corpus: corpus,
		logger: logger,
	}
}

// GetDataHandler returns the current news corpus snapshot
// GET /api/data
func (h *DataHandler) GetDataHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	records := h.corpus.News()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}

// GetStatsHandler returns aggregate corpus statistics
// GET /api/stats
func (h *DataHandler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, h.corpus.Stats())
}
