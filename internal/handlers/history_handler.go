package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/interfaces"
)

const dateLayout = "2006-01-02"

// HistoryHandler serves the historical scrape endpoint. Collected records
// are returned to the caller and never replace the live corpus.
type HistoryHandler struct {
	collector interfaces.CollectorService
	logger    arbor.ILogger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(collector interfaces.CollectorService, logger arbor.ILogger) *HistoryHandler {
	return &HistoryHandler{
		collector: collector,
		logger:    logger,
	}
}

// ScrapeHistoryHandler collects records for a historical date window
// POST /api/scrape-history
func (h *HistoryHandler) ScrapeHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var body struct {
		StartDate string   `json:"start_date"`
		EndDate   string   `json:"end_date"`
		Topics    []string `json:"topics"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	start, err := time.Parse(dateLayout, body.StartDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, body.EndDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	records, err := h.collector.CollectRange(r.Context(), start, end, body.Topics)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	h.logger.Info().
		Str("start", body.StartDate).
		Str("end", body.EndDate).
		Int("records", len(records)).
		Msg("Historical scrape completed")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}
