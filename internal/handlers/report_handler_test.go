package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/auspex/internal/common"
	"github.com/ternarybob/auspex/internal/models"
)

type fakeCorpus struct {
	news   []models.TextRecord
	market []models.TextRecord
}

func (f *fakeCorpus) News() []models.TextRecord                                { return f.news }
func (f *fakeCorpus) Market() []models.TextRecord                              { return f.market }
func (f *fakeCorpus) Stats() models.CorpusStats                                { return models.CorpusStats{TotalRecords: len(f.news)} }
func (f *fakeCorpus) ReplaceNews(context.Context, []models.TextRecord) error   { return nil }
func (f *fakeCorpus) ReplaceMarket(context.Context, []models.TextRecord) error { return nil }

type fakeGazette struct {
	entries []models.GazetteEntry
	err     error
}

func (f *fakeGazette) Fetch(context.Context) ([]models.GazetteEntry, error) {
	return f.entries, f.err
}

func newsRecord(link, tag, text string, sentiment, impact float64) models.TextRecord {
	return models.TextRecord{
		Title:          strings.ToUpper(text[:1]) + text[1:],
		Link:           link,
		Published:      time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC),
		CleanedText:    text,
		SentimentScore: sentiment,
		ImpactScore:    impact,
		OperationalTag: tag,
	}
}

func testCorpus() *fakeCorpus {
	return &fakeCorpus{
		news: []models.TextRecord{
			newsRecord("https://example.com/1", "energy", "fuel prices cut as power supply stabilizes", 0.4, 2),
			newsRecord("https://example.com/2", "economic", "cse shares rally on strong earnings from listed banks", 0.5, 1),
			newsRecord("https://example.com/3", "transport", "port strike disrupts cargo shipping lines", -0.6, -3),
		},
	}
}

func TestFeasibilityHandler(t *testing.T) {
	handler := NewReportHandler(testCorpus(), &fakeGazette{}, common.GetLogger())

	body := `{"name":"SolarCo","sector":"energy","location":"colombo","investment":"high"}`
	req := httptest.NewRequest(http.MethodPost, "/api/feasibility", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.FeasibilityHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.FeasibilityReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.NotZero(t, report.DataPoints)
	assert.NotEmpty(t, report.RiskLevel)
	assert.NotEmpty(t, report.ReportText)
}

func TestFeasibilityHandler_MissingSector(t *testing.T) {
	handler := NewReportHandler(testCorpus(), &fakeGazette{}, common.GetLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/feasibility", strings.NewReader(`{"name":"X"}`))
	rec := httptest.NewRecorder()

	handler.FeasibilityHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeasibilityHandler_EmptyCorpus(t *testing.T) {
	handler := NewReportHandler(&fakeCorpus{}, &fakeGazette{}, common.GetLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/feasibility", strings.NewReader(`{"sector":"energy"}`))
	rec := httptest.NewRecorder()

	handler.FeasibilityHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.FeasibilityReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Zero(t, report.DataPoints)
	assert.Equal(t, models.RiskLow, report.RiskLevel)
}

func TestFeasibilityHandler_MethodNotAllowed(t *testing.T) {
	handler := NewReportHandler(testCorpus(), &fakeGazette{}, common.GetLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/feasibility", nil)
	rec := httptest.NewRecorder()

	handler.FeasibilityHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStockHandler(t *testing.T) {
	gazette := &fakeGazette{entries: []models.GazetteEntry{
		{Date: "2026-02-06", Title: "Import Controls Order", Link: "https://gov.example/1"},
		{Date: "2026-02-05", Title: "Fuel Pricing Formula", Link: "https://gov.example/2"},
	}}
	handler := NewReportHandler(testCorpus(), gazette, common.GetLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/stock", strings.NewReader(`{"risk_profile":"conservative"}`))
	rec := httptest.NewRecorder()

	handler.StockHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.StockReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.NotEmpty(t, report.RecommendedAction)
	require.Len(t, report.GazetteMatches, 2)
	assert.Equal(t, "Import Controls Order", report.GazetteMatches[0].Title)
}

func TestStockHandler_InvalidRiskProfile(t *testing.T) {
	handler := NewReportHandler(testCorpus(), &fakeGazette{}, common.GetLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/stock", strings.NewReader(`{"risk_profile":"yolo"}`))
	rec := httptest.NewRecorder()

	handler.StockHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStockHandler_GazetteFailureDegrades(t *testing.T) {
	handler := NewReportHandler(testCorpus(), &fakeGazette{err: common.ErrUpstreamFailure}, common.GetLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/stock", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.StockHandler(rec, req)
	// Scrape failure falls back to the internal regulatory correlation
	assert.Equal(t, http.StatusOK, rec.Code)
}
