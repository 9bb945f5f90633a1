package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/interfaces"
	"github.com/ternarybob/auspex/internal/models"
	"github.com/ternarybob/auspex/internal/services/analysis"
)

// ReportHandler serves the feasibility and stock report endpoints. Reports
// are computed synchronously over the current corpus snapshot; an empty
// corpus yields a valid zero-count report.
type ReportHandler struct {
	corpus   interfaces.CorpusService
	gazette  interfaces.GazetteService
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewReportHandler creates a new report handler
func NewReportHandler(corpus interfaces.CorpusService, gazette interfaces.GazetteService, logger arbor.ILogger) *ReportHandler {
	return &ReportHandler{
		corpus:   corpus,
		gazette:  gazette,
		validate: validator.New(),
		logger:   logger,
	}
}

// FeasibilityHandler computes a company feasibility report
// POST /api/feasibility
func (h *ReportHandler) FeasibilityHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var qc models.QueryContext
	if !DecodeJSON(w, r, &qc) {
		return
	}
	if err := h.validate.Struct(qc); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	if qc.Location == "" {
		qc.Location = models.LocationGeneral
	}
	if qc.Investment == "" {
		qc.Investment = models.InvestmentMedium
	}

	report := analysis.BuildFeasibilityReport(h.corpus.News(), qc)

	h.logger.Info().
		Str("sector", qc.Sector).
		Str("location", qc.Location).
		Str("risk_level", string(report.RiskLevel)).
		Int("data_points", report.DataPoints).
		Msg("Feasibility report generated")

	WriteJSON(w, http.StatusOK, report)
}

// StockHandler computes a stock-market signal report
// POST /api/stock
func (h *ReportHandler) StockHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var sqc models.StockQueryContext
	if !DecodeJSON(w, r, &sqc) {
		return
	}
	if err := h.validate.Struct(sqc); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	if sqc.RiskProfile == "" {
		sqc.RiskProfile = models.RiskProfileNeutral
	}
	if sqc.Horizon == "" {
		sqc.Horizon = "short_term"
	}

	// A failed scrape degrades to the internal regulatory fallback
	var external []models.GazetteEntry
	if h.gazette != nil {
		entries, err := h.gazette.Fetch(r.Context())
		if err != nil {
			h.logger.Warn().Err(err).Msg("Gazette scrape failed, using internal fallback")
		} else {
			external = entries
		}
	}

	report := analysis.BuildStockReport(h.corpus.News(), h.corpus.Market(), sqc, external)

	h.logger.Info().
		Str("risk_profile", sqc.RiskProfile).
		Str("action", report.RecommendedAction).
		Int("data_points", report.DataPoints).
		Msg("Stock report generated")

	WriteJSON(w, http.StatusOK, report)
}
