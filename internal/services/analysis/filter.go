package analysis

import (
	"strings"

	"github.com/ternarybob/auspex/internal/models"
)

// FilterRelevant selects the subset of the corpus relevant to a feasibility
// query. The passes are a recall-biased union, not an intersection:
// downstream top/bottom-N ranking narrows the result, so the filter favors
// not missing signal over precision.
//
// Passes, in order:
//  1. Sector: tag or body contains a sector keyword; unmapped sector keeps
//     the whole corpus.
//  2. Location (skipped for "general"): when any already-selected record
//     mentions the location, union in every corpus record mentioning it,
//     whatever its sector. A regional event is relevant regardless of tag.
//  3. Description: whitespace tokens longer than 4 characters, OR-matched
//     against the body.
//  4. Dedupe by link.
//  5. Fallback to "economic"-tagged records when nothing matched.
func FilterRelevant(corpus []models.TextRecord, qc models.QueryContext) []models.TextRecord {
	result := make([]models.TextRecord, 0, len(corpus))

	sectorKWs := SectorKeywordsFor(qc.Sector)
	if len(sectorKWs) > 0 {
		for _, rec := range corpus {
			if containsAny(strings.ToLower(rec.OperationalTag), sectorKWs) || containsAny(rec.CleanedText, sectorKWs) {
				result = append(result, rec)
			}
		}
	} else {
		result = append(result, corpus...)
	}

	location := strings.ToLower(strings.TrimSpace(qc.Location))
	if location != "" && location != models.LocationGeneral {
		locKWs, ok := locationKeywords[location]
		if !ok {
			locKWs = []string{location}
		}

		localHit := false
		for _, rec := range result {
			if containsAny(rec.CleanedText, locKWs) {
				localHit = true
				break
			}
		}
		if localHit {
			for _, rec := range corpus {
				if containsAny(rec.CleanedText, locKWs) {
					result = append(result, rec)
				}
			}
		}
	}

	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(qc.Description)) {
		if len(word) > 4 {
			tokens = append(tokens, word)
		}
	}
	if len(tokens) > 0 {
		for _, rec := range corpus {
			if containsAny(rec.CleanedText, tokens) {
				result = append(result, rec)
			}
		}
	}

	result = models.DedupeByLink(result)

	if len(result) == 0 {
		for _, rec := range corpus {
			if strings.Contains(strings.ToLower(rec.OperationalTag), "economic") {
				result = append(result, rec)
			}
		}
	}

	return result
}

// filterByKeywords selects records whose body contains any of the keywords
func filterByKeywords(corpus []models.TextRecord, keywords []string) []models.TextRecord {
	result := make([]models.TextRecord, 0, len(corpus))
	for _, rec := range corpus {
		if containsAny(rec.CleanedText, keywords) {
			result = append(result, rec)
		}
	}
	return result
}
