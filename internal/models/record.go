package models

import (
	"time"
)

// Impact level labels attached at ingestion
const (
	ImpactLevelHighRisk    = "High Risk"
	ImpactLevelOpportunity = "Opportunity"
	ImpactLevelNeutral     = "Neutral"
)

// EventFlagMajor marks records describing a major market/news event
const EventFlagMajor = "Major Event"

// TextRecord is one scraped news/market item. The corpus store owns the
// canonical collection; every other component works on read-only subsets and
// filtering always produces a new slice.
type TextRecord struct {
	Title          string    `json:"title"`
	Link           string    `json:"link"` // unique key for deduplication
	Published      time.Time `json:"published"`
	Source         string    `json:"source"`
	CleanedText    string    `json:"cleaned_text"`    // normalized lowercase body used for matching
	OperationalTag string    `json:"operational_tag"` // free-text sector label attached at ingestion
	SentimentScore float64   `json:"sentiment_score"` // [-1, 1], 0 when absent
	ImpactScore    float64   `json:"impact_score"`    // signed magnitude, 0 when absent
	EventFlag      string    `json:"event_flag"`
	ImpactLevel    string    `json:"impact_level"`
}

// publishedLayouts covers the date formats seen across the scraped feeds
var publishedLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02 Jan 2006",
}

// ParsePublished parses a feed timestamp on a best-effort basis, falling
// back to the ingestion time when no layout matches.
func ParsePublished(value string, ingested time.Time) time.Time {
	if value == "" {
		return ingested
	}
	for _, layout := range publishedLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return ingested
}

// DedupeByLink removes records sharing a link, keeping the first occurrence.
// Duplicates bias weighted sentiment, so every union of filter passes must
// run through this before aggregation.
func DedupeByLink(records []TextRecord) []TextRecord {
	seen := make(map[string]struct{}, len(records))
	result := make([]TextRecord, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.Link]; ok {
			continue
		}
		seen[rec.Link] = struct{}{}
		result = append(result, rec)
	}
	return result
}
