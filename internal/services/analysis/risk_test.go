package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/auspex/internal/models"
)

func TestClassifyRisk_Boundaries(t *testing.T) {
	// Single-record sets make the normalized risk equal the absolute
	// negative impact, pinning the strict > thresholds exactly.
	tests := []struct {
		name     string
		impact   float64
		expected models.RiskLevel
	}{
		{"well below medium", -0.5, models.RiskLow},
		{"exactly 1.5 is Low", -1.5, models.RiskLow},
		{"just above 1.5 is Medium", -1.51, models.RiskMedium},
		{"exactly 3.0 is Medium", -3.0, models.RiskMedium},
		{"just above 3.0 is High", -3.01, models.RiskHigh},
		{"far above threshold", -8.0, models.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []models.TextRecord{{ImpactScore: tt.impact}}
			assert.Equal(t, tt.expected, ClassifyRisk(records, models.InvestmentLow))
		})
	}
}

func TestClassifyRisk_EmptySetIsLow(t *testing.T) {
	assert.Equal(t, models.RiskLow, ClassifyRisk(nil, models.InvestmentHigh))
}

func TestClassifyRisk_PositiveImpactsIgnored(t *testing.T) {
	records := []models.TextRecord{
		{ImpactScore: 9},
		{ImpactScore: 9},
		{ImpactScore: -1},
	}
	// |−1| / 3 is well below any threshold
	assert.Equal(t, models.RiskLow, ClassifyRisk(records, models.InvestmentLow))
}

func TestClassifyRisk_HighExposurePenalty(t *testing.T) {
	// normalized 2.6 -> Medium at low exposure; 2.6*1.2 = 3.12 -> High
	records := []models.TextRecord{{ImpactScore: -2.6}}

	assert.Equal(t, models.RiskMedium, ClassifyRisk(records, models.InvestmentLow))
	assert.Equal(t, models.RiskHigh, ClassifyRisk(records, models.InvestmentHigh))
	assert.Equal(t, models.RiskHigh, ClassifyRisk(records, models.InvestmentVeryHigh))
}

func TestNormalizedRisk_AveragesOverCount(t *testing.T) {
	records := []models.TextRecord{
		{ImpactScore: -4},
		{ImpactScore: -2},
		{ImpactScore: 3},
		{ImpactScore: 0},
	}
	// |(-4) + (-2)| / 4
	assert.InDelta(t, 1.5, NormalizedRisk(records, models.InvestmentLow), 1e-9)
}
