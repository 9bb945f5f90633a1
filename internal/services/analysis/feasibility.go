package analysis

import (
	"fmt"
	"strings"

	"github.com/ternarybob/auspex/internal/models"
)

const feasibilityGazetteLimit = 10

// Sentiment narrative bands: above 0.1 positive, below -0.1 negative
const (
	positiveSentimentBand = 0.1
	negativeSentimentBand = -0.1
)

// BuildFeasibilityReport runs the full feasibility pipeline over a corpus
// snapshot: relevance filter, weighted sentiment, risk tier, top movers,
// advisories, regulatory correlation, narrative, and chart series. An empty
// corpus produces a valid zero-count report, never an error.
func BuildFeasibilityReport(corpus []models.TextRecord, qc models.QueryContext) models.FeasibilityReport {
	relevant := FilterRelevant(corpus, qc)

	sentiment := WeightedSentiment(relevant)
	riskLevel := ClassifyRisk(relevant, qc.Investment)

	threatRecords := rankRecords(relevant, func(a, b models.TextRecord) bool {
		return a.SentimentScore < b.SentimentScore
	})

	return models.FeasibilityReport{
		SentimentScore: round2(sentiment),
		RiskLevel:      riskLevel,
		ReportText:     feasibilityNarrative(qc, sentiment, riskLevel, len(relevant)),
		Opportunities:  TopOpportunities(relevant),
		Threats:        TopThreats(relevant),
		Advisories:     GenerateAdvisories(riskLevel, threatRecords, qc),
		GazetteMatches: RegulatoryMatches(corpus, SectorKeywordsFor(qc.Sector), feasibilityGazetteLimit),
		Charts:         buildChartData(relevant),
		DataPoints:     len(relevant),
	}
}

func feasibilityNarrative(qc models.QueryContext, sentiment float64, riskLevel models.RiskLevel, dataPoints int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Feasibility Assessment for %s**\n", qc.Name)
	fmt.Fprintf(&b, "**Scenario**: %s scale entity in %s, focused on %s market.\n",
		titleCase(qc.Scale), titleCase(qc.Location), qc.TargetMarket)
	fmt.Fprintf(&b, "**Sector**: %s | Data Points: %d\n\n", titleCase(qc.Sector), dataPoints)

	b.WriteString("### Market Conditions\n")
	switch {
	case sentiment > positiveSentimentBand:
		fmt.Fprintf(&b, "The market sentiment is **Positive (%.2f)**. Data indicates favorable momentum. ", sentiment)
	case sentiment < negativeSentimentBand:
		fmt.Fprintf(&b, "The market sentiment is **Negative (%.2f)**. The sector faces significant headwinds. ", sentiment)
	default:
		fmt.Fprintf(&b, "The market sentiment is **Neutral (%.2f)**. ", sentiment)
	}

	fmt.Fprintf(&b, "\n\n### Risk Profile: %s\n", riskLevel)
	switch riskLevel {
	case models.RiskHigh:
		b.WriteString("High risk detected. Volatility is significant. Careful capital allocation required. ")
	case models.RiskMedium:
		b.WriteString("Moderate risk key. Standard risk mitigation recommended. ")
	default:
		b.WriteString("Low risk environment. Good conditions for entry. ")
	}

	if loc := strings.ToLower(qc.Location); loc != "" && loc != models.LocationGeneral {
		fmt.Fprintf(&b, "\n\n### Location Analysis: %s\n", titleCase(qc.Location))
		b.WriteString("Regional news has been factored into this assessment. Check for specific local weather or infrastructure alerts.")
	}

	return b.String()
}

// buildChartData produces the sentiment distribution histogram over the
// ±0.1 bands and a trailing 15-point sentiment trend
func buildChartData(records []models.TextRecord) models.ChartData {
	var pos, neu, neg int
	for _, rec := range records {
		switch {
		case rec.SentimentScore > positiveSentimentBand:
			pos++
		case rec.SentimentScore < negativeSentimentBand:
			neg++
		default:
			neu++
		}
	}

	tail := records
	if len(tail) > 15 {
		tail = tail[len(tail)-15:]
	}
	trend := models.TrendData{
		Labels: make([]string, 0, len(tail)),
		Data:   make([]float64, 0, len(tail)),
	}
	for i, rec := range tail {
		trend.Labels = append(trend.Labels, fmt.Sprintf("%d", i+1))
		trend.Data = append(trend.Data, rec.SentimentScore)
	}

	return models.ChartData{
		SentimentDist: []int{pos, neu, neg},
		Trend:         trend,
	}
}

// titleCase capitalizes the first letter of each space-separated word
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
