package analysis

import (
	"math"

	"github.com/ternarybob/auspex/internal/models"
)

// WeightedSentiment computes the impact-weighted mean sentiment of a record
// set. Each record weighs 1 + 0.1*|impact|, so high-impact items count more
// without any single item dominating. Empty input yields 0.
func WeightedSentiment(records []models.TextRecord) float64 {
	if len(records) == 0 {
		return 0
	}

	var totalScore, totalWeight float64
	for _, rec := range records {
		weight := 1 + 0.1*math.Abs(rec.ImpactScore)
		totalScore += rec.SentimentScore * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0
	}
	return totalScore / totalWeight
}

// round2 rounds to two decimal places for report output
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
