package analysis

import (
	"sort"

	"github.com/ternarybob/auspex/internal/models"
)

// NoDataPlaceholder fills opportunity/threat lists when nothing matched
const NoDataPlaceholder = "No specific data found."

const (
	topListSize     = 5
	maxEventEntries = 5
	eventScanWindow = 100
)

// Entity signal thresholds on per-record sentiment
const (
	buyThreshold             = 0.1
	sellThreshold            = -0.1
	conservativeBuyThreshold = 0.4
)

// TopOpportunities returns the titles of the five highest-sentiment records.
// Ties keep input order. Empty input yields a single placeholder entry.
func TopOpportunities(records []models.TextRecord) []string {
	return topTitles(records, func(a, b models.TextRecord) bool {
		return a.SentimentScore > b.SentimentScore
	})
}

// TopThreats returns the titles of the five lowest-sentiment records
func TopThreats(records []models.TextRecord) []string {
	return topTitles(records, func(a, b models.TextRecord) bool {
		return a.SentimentScore < b.SentimentScore
	})
}

func topTitles(records []models.TextRecord, less func(a, b models.TextRecord) bool) []string {
	ranked := rankRecords(records, less)
	if len(ranked) == 0 {
		return []string{NoDataPlaceholder}
	}
	titles := make([]string, 0, len(ranked))
	for _, rec := range ranked {
		titles = append(titles, rec.Title)
	}
	return titles
}

// rankRecords returns the top-N records under the given ordering without
// mutating the input
func rankRecords(records []models.TextRecord, less func(a, b models.TextRecord) bool) []models.TextRecord {
	sorted := make([]models.TextRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	if len(sorted) > topListSize {
		sorted = sorted[:topListSize]
	}
	return sorted
}

// EntitySignals derives a trading signal per watched listing: the first
// record (in corpus order) mentioning any alias supplies the sentiment.
// Buy above 0.1, Sell below -0.1, Hold between. A conservative profile
// downgrades Buy to Hold unless sentiment reaches 0.4. Results sorted
// descending by sentiment.
func EntitySignals(records []models.TextRecord, riskProfile string) []models.EntitySignal {
	signals := make([]models.EntitySignal, 0, len(watchedEntities))

	for _, entity := range watchedEntities {
		for _, rec := range records {
			if !containsAny(rec.CleanedText, entity.Aliases) {
				continue
			}

			signal := models.SignalHold
			switch {
			case rec.SentimentScore > buyThreshold:
				signal = models.SignalBuy
			case rec.SentimentScore < sellThreshold:
				signal = models.SignalSell
			}
			if signal == models.SignalBuy && riskProfile == models.RiskProfileConservative && rec.SentimentScore < conservativeBuyThreshold {
				signal = models.SignalHold
			}

			signals = append(signals, models.EntitySignal{
				Ticker:    entity.Ticker,
				Name:      entity.Name,
				Signal:    signal,
				Sentiment: rec.SentimentScore,
				Headline:  rec.Title,
			})
			break
		}
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Sentiment > signals[j].Sentiment
	})
	return signals
}

// SectorScores computes the weighted sentiment of every sector in scope
// (all sectors, or the single mapped focus sector) and returns the rankings
// together with the top sector name. Sectors with no matching records are
// omitted.
func SectorScores(records []models.TextRecord, focusSector string) ([]models.SectorPerformance, string) {
	sectors := sectorNames
	if focus := SectorKeywordsFor(focusSector); focus != nil {
		sectors = []string{focusSector}
	}

	performance := make([]models.SectorPerformance, 0, len(sectors))
	var topSector string
	var topScore float64

	for _, sector := range sectors {
		matched := filterByKeywords(records, sectorKeywords[sector])
		if len(matched) == 0 {
			continue
		}

		score := WeightedSentiment(matched)
		performance = append(performance, models.SectorPerformance{
			Sector:    sector,
			Sentiment: round2(score),
			Records:   len(matched),
		})
		if topSector == "" || score > topScore {
			topSector = sector
			topScore = score
		}
	}

	return performance, topSector
}

// EventMentions scans a bounded pool for corporate-action keywords. The pool
// is the market-filtered subset, or the first 100 corpus records when that
// subset is empty. One entry per record, first keyword wins, capped at 5.
func EventMentions(pool, corpus []models.TextRecord) []models.EventMention {
	if len(pool) == 0 {
		pool = corpus
		if len(pool) > eventScanWindow {
			pool = pool[:eventScanWindow]
		}
	}

	mentions := make([]models.EventMention, 0, maxEventEntries)
	for _, rec := range pool {
		for _, ev := range eventKeywords {
			if !containsAny(rec.CleanedText, []string{ev.Keyword}) {
				continue
			}
			mentions = append(mentions, models.EventMention{
				Event: ev.Name,
				Title: rec.Title,
				Link:  rec.Link,
			})
			break
		}
		if len(mentions) >= maxEventEntries {
			break
		}
	}
	return mentions
}

// RegulatoryMatches correlates regulatory-keyword records with the active
// sector's keywords ("economic" when the sector is unmapped). This is the
// internal fallback behind the live gazette scrape; output capped at limit.
func RegulatoryMatches(corpus []models.TextRecord, sectorKWs []string, limit int) []models.GazetteEntry {
	if len(sectorKWs) == 0 {
		sectorKWs = []string{"economic"}
	}

	entries := make([]models.GazetteEntry, 0, limit)
	for _, rec := range corpus {
		if !containsAny(rec.CleanedText, regulatoryKeywords) {
			continue
		}
		if !containsAny(rec.CleanedText, sectorKWs) {
			continue
		}

		date := "Unknown Date"
		if !rec.Published.IsZero() {
			date = rec.Published.Format("2006-01-02")
		}
		entries = append(entries, models.GazetteEntry{
			Date:   date,
			Title:  rec.Title,
			Link:   rec.Link,
			Source: rec.Source,
		})
		if len(entries) >= limit {
			break
		}
	}
	return entries
}
