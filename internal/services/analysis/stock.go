package analysis

import (
	"fmt"
	"strings"

	"github.com/ternarybob/auspex/internal/models"
)

const stockGazetteLimit = 5

// minExternalGazetteEntries is the point below which the external scrape is
// considered too thin and the internal regulatory fallback is merged in
const minExternalGazetteEntries = 2

// Recommended action bands on market sentiment
const (
	accumulateThreshold = 0.1
	stayCashThreshold   = -0.2
)

// BuildStockReport composes the stock-market signal summary. The market
// snapshot supplies the analysis pool; when it is empty the pool falls back
// to market-keyword matches over the news corpus. External gazette entries
// take priority over the internal regulatory correlation, which is merged
// in only when the scrape yields fewer than two items.
func BuildStockReport(news, market []models.TextRecord, sqc models.StockQueryContext, external []models.GazetteEntry) models.StockReport {
	pool := market
	if len(pool) == 0 {
		pool = filterByKeywords(news, marketKeywords)
	}
	pool = models.DedupeByLink(pool)

	// Entity and sector scans read the widest view available so a listing
	// covered only in general news still yields a signal.
	combined := models.DedupeByLink(append(append([]models.TextRecord{}, pool...), news...))

	sentiment := WeightedSentiment(pool)
	action := recommendedAction(sentiment)
	sectors, topSector := SectorScores(combined, sqc.FocusSector)

	gazette := external
	if len(gazette) < minExternalGazetteEntries {
		focusKWs := SectorKeywordsFor(sqc.FocusSector)
		gazette = mergeGazetteEntries(gazette, RegulatoryMatches(news, focusKWs, stockGazetteLimit))
	}

	return models.StockReport{
		MarketSentiment:   round2(sentiment),
		RecommendedAction: action,
		EntitySignals:     EntitySignals(combined, sqc.RiskProfile),
		SectorPerformance: sectors,
		TopSector:         topSector,
		Events:            EventMentions(pool, news),
		GazetteMatches:    gazette,
		ReportText:        stockNarrative(sqc, sentiment, action, topSector, len(pool)),
		DataPoints:        len(pool),
	}
}

func recommendedAction(sentiment float64) string {
	switch {
	case sentiment > accumulateThreshold:
		return models.ActionAccumulate
	case sentiment < stayCashThreshold:
		return models.ActionStayCash
	default:
		return models.ActionHold
	}
}

// mergeGazetteEntries appends fallback entries after the external ones,
// dropping link duplicates
func mergeGazetteEntries(external, fallback []models.GazetteEntry) []models.GazetteEntry {
	seen := make(map[string]struct{}, len(external))
	merged := make([]models.GazetteEntry, 0, len(external)+len(fallback))
	for _, e := range external {
		seen[e.Link] = struct{}{}
		merged = append(merged, e)
	}
	for _, e := range fallback {
		if _, ok := seen[e.Link]; ok {
			continue
		}
		seen[e.Link] = struct{}{}
		merged = append(merged, e)
	}
	return merged
}

func stockNarrative(sqc models.StockQueryContext, sentiment float64, action, topSector string, dataPoints int) string {
	var b strings.Builder

	b.WriteString("**Market Signal Summary**\n")
	fmt.Fprintf(&b, "**Horizon**: %s | **Profile**: %s | Data Points: %d\n\n", sqc.Horizon, sqc.RiskProfile, dataPoints)

	b.WriteString("### Market Conditions\n")
	switch {
	case sentiment > positiveSentimentBand:
		fmt.Fprintf(&b, "Market sentiment is **Positive (%.2f)**. Momentum favors selective accumulation. ", sentiment)
	case sentiment < negativeSentimentBand:
		fmt.Fprintf(&b, "Market sentiment is **Negative (%.2f)**. Coverage points to sustained selling pressure. ", sentiment)
	default:
		fmt.Fprintf(&b, "Market sentiment is **Neutral (%.2f)**. No clear directional bias in current coverage. ", sentiment)
	}

	fmt.Fprintf(&b, "\n\n### Recommended Action: %s\n", action)
	switch sqc.RiskProfile {
	case models.RiskProfileConservative:
		b.WriteString("Conservative profile applied: only high-conviction positive signals are actionable; prefer staged entries. ")
	case models.RiskProfileAggressive:
		b.WriteString("Aggressive profile applied: signals are taken at face value; size positions with strict stop levels. ")
	default:
		b.WriteString("Neutral profile applied: follow the signal list with standard position sizing. ")
	}

	if topSector != "" {
		fmt.Fprintf(&b, "\n\n### Sector Watch\nStrongest coverage sentiment in **%s**.", titleCase(topSector))
	}

	return b.String()
}
