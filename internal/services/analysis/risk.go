package analysis

import (
	"math"

	"github.com/ternarybob/auspex/internal/models"
)

// Risk tier thresholds on the normalized negative-impact score. Both bounds
// are strict: exactly 1.5 is Low, exactly 3.0 is Medium.
const (
	riskHighThreshold   = 3.0
	riskMediumThreshold = 1.5
)

// highExposureMultiplier penalizes large capital exposure for the same
// news environment.
const highExposureMultiplier = 1.2

// ClassifyRisk turns a record set into a discrete risk tier. The normalized
// risk is the absolute sum of negative impact scores divided by the record
// count, scaled up for high and very_high investment tiers.
func ClassifyRisk(records []models.TextRecord, investment string) models.RiskLevel {
	return classifyNormalizedRisk(NormalizedRisk(records, investment))
}

// NormalizedRisk exposes the raw score behind ClassifyRisk
func NormalizedRisk(records []models.TextRecord, investment string) float64 {
	if len(records) == 0 {
		return 0
	}

	var negSum float64
	for _, rec := range records {
		if rec.ImpactScore < 0 {
			negSum += rec.ImpactScore
		}
	}

	risk := math.Abs(negSum) / float64(len(records))
	if investment == models.InvestmentHigh || investment == models.InvestmentVeryHigh {
		risk *= highExposureMultiplier
	}
	return risk
}

func classifyNormalizedRisk(risk float64) models.RiskLevel {
	switch {
	case risk > riskHighThreshold:
		return models.RiskHigh
	case risk > riskMediumThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
