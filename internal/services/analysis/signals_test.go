package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/auspex/internal/models"
)

func TestTopOpportunitiesAndThreats(t *testing.T) {
	records := []models.TextRecord{
		{Title: "A", Link: "a", SentimentScore: 0.9},
		{Title: "B", Link: "b", SentimentScore: -0.7},
		{Title: "C", Link: "c", SentimentScore: 0.3},
		{Title: "D", Link: "d", SentimentScore: -0.1},
		{Title: "E", Link: "e", SentimentScore: 0.6},
		{Title: "F", Link: "f", SentimentScore: 0.0},
		{Title: "G", Link: "g", SentimentScore: -0.9},
	}

	opportunities := TopOpportunities(records)
	require.Len(t, opportunities, 5)
	assert.Equal(t, []string{"A", "E", "C", "F", "D"}, opportunities)

	threats := TopThreats(records)
	require.Len(t, threats, 5)
	assert.Equal(t, []string{"G", "B", "D", "F", "C"}, threats)
}

func TestTopOpportunities_StableTies(t *testing.T) {
	records := []models.TextRecord{
		{Title: "First", Link: "1", SentimentScore: 0.5},
		{Title: "Second", Link: "2", SentimentScore: 0.5},
		{Title: "Third", Link: "3", SentimentScore: 0.5},
	}

	assert.Equal(t, []string{"First", "Second", "Third"}, TopOpportunities(records))
}

func TestTopOpportunities_EmptyPlaceholder(t *testing.T) {
	assert.Equal(t, []string{NoDataPlaceholder}, TopOpportunities(nil))
	assert.Equal(t, []string{NoDataPlaceholder}, TopThreats(nil))
}

func TestEntitySignals_Thresholds(t *testing.T) {
	tests := []struct {
		name      string
		sentiment float64
		profile   string
		expected  models.Signal
	}{
		{"strong positive is Buy", 0.5, models.RiskProfileNeutral, models.SignalBuy},
		{"just above 0.1 is Buy", 0.11, models.RiskProfileNeutral, models.SignalBuy},
		{"exactly 0.1 is Hold", 0.1, models.RiskProfileNeutral, models.SignalHold},
		{"exactly -0.1 is Hold", -0.1, models.RiskProfileNeutral, models.SignalHold},
		{"below -0.1 is Sell", -0.2, models.RiskProfileNeutral, models.SignalSell},
		{"conservative downgrades weak Buy", 0.3, models.RiskProfileConservative, models.SignalHold},
		{"conservative keeps strong Buy", 0.4, models.RiskProfileConservative, models.SignalBuy},
		{"aggressive keeps weak Buy", 0.3, models.RiskProfileAggressive, models.SignalBuy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []models.TextRecord{
				{
					Title:          "John Keells quarterly update",
					Link:           "https://example.com/jkh",
					CleanedText:    "john keells reports quarterly results",
					SentimentScore: tt.sentiment,
				},
			}

			signals := EntitySignals(records, tt.profile)
			require.Len(t, signals, 1)
			assert.Equal(t, "JKH", signals[0].Ticker)
			assert.Equal(t, tt.expected, signals[0].Signal)
		})
	}
}

func TestEntitySignals_FirstRecordWins(t *testing.T) {
	records := []models.TextRecord{
		{Title: "Dialog early report", Link: "1", CleanedText: "dialog axiata expands coverage", SentimentScore: 0.2},
		{Title: "Dialog later report", Link: "2", CleanedText: "dialog axiata faces outage", SentimentScore: -0.5},
	}

	signals := EntitySignals(records, models.RiskProfileNeutral)
	require.Len(t, signals, 1)
	assert.Equal(t, "Dialog early report", signals[0].Headline)
	assert.Equal(t, models.SignalBuy, signals[0].Signal)
}

func TestEntitySignals_SortedDescendingBySentiment(t *testing.T) {
	records := []models.TextRecord{
		{Link: "1", CleanedText: "hayleys exports dip", SentimentScore: -0.4},
		{Link: "2", CleanedText: "sampath bank posts record profit", SentimentScore: 0.8},
		{Link: "3", CleanedText: "dialog axiata steady quarter", SentimentScore: 0.1},
	}

	signals := EntitySignals(records, models.RiskProfileNeutral)
	require.Len(t, signals, 3)
	assert.Equal(t, "SAMP", signals[0].Ticker)
	assert.Equal(t, "DIAL", signals[1].Ticker)
	assert.Equal(t, "HAYL", signals[2].Ticker)
}

func TestSectorScores(t *testing.T) {
	records := []models.TextRecord{
		{Link: "1", CleanedText: "tourism arrivals hit record levels", SentimentScore: 0.8, ImpactScore: 2},
		{Link: "2", CleanedText: "hotel occupancy climbs", SentimentScore: 0.6},
		{Link: "3", CleanedText: "fuel shortage hits power generation", SentimentScore: -0.7, ImpactScore: -3},
	}

	scores, top := SectorScores(records, "")
	assert.Equal(t, "tourism", top)

	bySector := map[string]models.SectorPerformance{}
	for _, s := range scores {
		bySector[s.Sector] = s
	}
	require.Contains(t, bySector, "tourism")
	require.Contains(t, bySector, "energy")
	assert.Equal(t, 2, bySector["tourism"].Records)
	assert.Equal(t, 1, bySector["energy"].Records)
	assert.Greater(t, bySector["tourism"].Sentiment, bySector["energy"].Sentiment)
}

func TestSectorScores_FocusSectorLimitsScope(t *testing.T) {
	records := []models.TextRecord{
		{Link: "1", CleanedText: "tourism arrivals hit record levels", SentimentScore: 0.8},
		{Link: "2", CleanedText: "fuel shortage hits power generation", SentimentScore: -0.7},
	}

	scores, top := SectorScores(records, "energy")
	require.Len(t, scores, 1)
	assert.Equal(t, "energy", scores[0].Sector)
	assert.Equal(t, "energy", top)
}

func TestEventMentions_FirstMatchWinsAndCap(t *testing.T) {
	pool := []models.TextRecord{
		// Contains both "dividend" and "earnings": dividend listed first wins
		{Title: "Combined", Link: "1", CleanedText: "dividend declared alongside strong earnings"},
		{Title: "Rights", Link: "2", CleanedText: "rights issue announced"},
		{Title: "Quiet", Link: "3", CleanedText: "no corporate actions here"},
		{Title: "E1", Link: "4", CleanedText: "earnings season begins"},
		{Title: "E2", Link: "5", CleanedText: "agm scheduled for march"},
		{Title: "E3", Link: "6", CleanedText: "ipo oversubscribed"},
		{Title: "E4", Link: "7", CleanedText: "another dividend announced"},
	}

	mentions := EventMentions(pool, nil)
	require.Len(t, mentions, 5)
	assert.Equal(t, "Dividend", mentions[0].Event)
	assert.Equal(t, "Combined", mentions[0].Title)
	assert.Equal(t, "Rights Issue", mentions[1].Event)
}

func TestEventMentions_FallsBackToCorpusWindow(t *testing.T) {
	corpus := make([]models.TextRecord, 0, 120)
	for i := 0; i < 110; i++ {
		corpus = append(corpus, models.TextRecord{
			Title:       fmt.Sprintf("Filler %d", i),
			Link:        fmt.Sprintf("https://example.com/%d", i),
			CleanedText: "routine coverage",
		})
	}
	// Past the 100-record scan window, must not be found
	corpus = append(corpus, models.TextRecord{
		Title:       "Late dividend",
		Link:        "https://example.com/late",
		CleanedText: "dividend announced late",
	})

	mentions := EventMentions(nil, corpus)
	assert.Empty(t, mentions)
}

func TestRegulatoryMatches(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	corpus := []models.TextRecord{
		{Title: "Energy levy gazetted", Link: "1", CleanedText: "new gazette sets fuel levy", Published: now},
		{Title: "Parliament debates budget", Link: "2", CleanedText: "parliament debates tax policy", Published: now},
		{Title: "Cricket results", Link: "3", CleanedText: "national team wins series", Published: now},
	}

	// Energy keywords intersect only the levy record
	matches := RegulatoryMatches(corpus, sectorKeywords["energy"], 10)
	require.Len(t, matches, 1)
	assert.Equal(t, "Energy levy gazetted", matches[0].Title)
	assert.Equal(t, "2026-02-01", matches[0].Date)
}

func TestRegulatoryMatches_EconomicDefaultAndCap(t *testing.T) {
	corpus := make([]models.TextRecord, 0, 8)
	for i := 0; i < 8; i++ {
		corpus = append(corpus, models.TextRecord{
			Title:       fmt.Sprintf("Circular %d", i),
			Link:        fmt.Sprintf("https://example.com/circular/%d", i),
			CleanedText: "ministry circular on economic policy",
		})
	}

	matches := RegulatoryMatches(corpus, nil, 5)
	assert.Len(t, matches, 5)
}
