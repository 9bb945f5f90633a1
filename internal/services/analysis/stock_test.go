package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/auspex/internal/models"
)

func TestRecommendedAction(t *testing.T) {
	tests := []struct {
		name      string
		sentiment float64
		expected  string
	}{
		{"strong positive accumulates", 0.5, models.ActionAccumulate},
		{"just above 0.1 accumulates", 0.11, models.ActionAccumulate},
		{"exactly 0.1 holds", 0.1, models.ActionHold},
		{"mild negative holds", -0.15, models.ActionHold},
		{"exactly -0.2 holds", -0.2, models.ActionHold},
		{"below -0.2 stays cash", -0.21, models.ActionStayCash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, recommendedAction(tt.sentiment))
		})
	}
}

func TestBuildStockReport(t *testing.T) {
	market := []models.TextRecord{
		{
			Title:          "Sampath Bank beats earnings estimates",
			Link:           "https://example.com/samp",
			CleanedText:    "sampath bank beats earnings estimates at the colombo stock exchange",
			SentimentScore: 0.7,
			ImpactScore:    2,
		},
		{
			Title:          "Hayleys declares interim dividend",
			Link:           "https://example.com/hayl",
			CleanedText:    "hayleys declares interim dividend for shareholders",
			SentimentScore: 0.3,
			ImpactScore:    1,
		},
	}

	report := BuildStockReport(nil, market, models.StockQueryContext{RiskProfile: models.RiskProfileNeutral}, nil)

	assert.Equal(t, models.ActionAccumulate, report.RecommendedAction)
	assert.Equal(t, 2, report.DataPoints)
	assert.Greater(t, report.MarketSentiment, 0.1)

	require.NotEmpty(t, report.EntitySignals)
	assert.Equal(t, "SAMP", report.EntitySignals[0].Ticker)
	assert.Equal(t, models.SignalBuy, report.EntitySignals[0].Signal)

	require.NotEmpty(t, report.Events)
	assert.Equal(t, "Earnings", report.Events[0].Event)
	assert.NotEmpty(t, report.ReportText)
}

func TestBuildStockReport_FallsBackToNewsPool(t *testing.T) {
	news := []models.TextRecord{
		{
			Title:          "CSE turnover dips",
			Link:           "https://example.com/cse",
			CleanedText:    "cse turnover dips as investor activity slows",
			SentimentScore: -0.3,
			ImpactScore:    -1,
		},
		{
			Title:          "Harvest festival",
			Link:           "https://example.com/festival",
			CleanedText:    "harvest festival celebrated nationwide",
			SentimentScore: 0.6,
		},
	}

	report := BuildStockReport(news, nil, models.StockQueryContext{}, nil)

	// Only the market-keyword record forms the pool
	assert.Equal(t, 1, report.DataPoints)
	assert.InDelta(t, -0.3, report.MarketSentiment, 1e-9)
	assert.Equal(t, models.ActionStayCash, report.RecommendedAction)
}

func TestBuildStockReport_EmptyCorpus(t *testing.T) {
	report := BuildStockReport(nil, nil, models.StockQueryContext{}, nil)

	assert.Zero(t, report.MarketSentiment)
	assert.Equal(t, models.ActionHold, report.RecommendedAction)
	assert.Empty(t, report.EntitySignals)
	assert.Empty(t, report.Events)
	assert.Equal(t, 0, report.DataPoints)
	assert.NotEmpty(t, report.ReportText)
}

func TestBuildStockReport_ExternalGazettePriority(t *testing.T) {
	news := []models.TextRecord{
		{Title: "Tax circular issued", Link: "https://example.com/internal", CleanedText: "ministry circular on economic tax policy"},
	}
	external := []models.GazetteEntry{
		{Date: "2026-02-01", Title: "Gazette 2220/01", Link: "https://gazette.example/1"},
		{Date: "2026-02-02", Title: "Gazette 2220/02", Link: "https://gazette.example/2"},
	}

	report := BuildStockReport(news, nil, models.StockQueryContext{}, external)

	// Two or more external entries suppress the internal fallback
	require.Len(t, report.GazetteMatches, 2)
	assert.Equal(t, "Gazette 2220/01", report.GazetteMatches[0].Title)
}

func TestBuildStockReport_GazetteFallbackWhenExternalThin(t *testing.T) {
	news := []models.TextRecord{
		{Title: "Tax circular issued", Link: "https://example.com/internal", CleanedText: "ministry circular on economic tax policy"},
	}
	external := []models.GazetteEntry{
		{Date: "2026-02-01", Title: "Gazette 2220/01", Link: "https://gazette.example/1"},
	}

	report := BuildStockReport(news, nil, models.StockQueryContext{}, external)

	require.Len(t, report.GazetteMatches, 2)
	assert.Equal(t, "Gazette 2220/01", report.GazetteMatches[0].Title)
	assert.Equal(t, "Tax circular issued", report.GazetteMatches[1].Title)
}

func TestMergeGazetteEntries_DropsDuplicateLinks(t *testing.T) {
	external := []models.GazetteEntry{{Title: "A", Link: "x"}}
	fallback := []models.GazetteEntry{{Title: "A again", Link: "x"}, {Title: "B", Link: "y"}}

	merged := mergeGazetteEntries(external, fallback)

	require.Len(t, merged, 2)
	assert.Equal(t, "A", merged[0].Title)
	assert.Equal(t, "B", merged[1].Title)
}
