package analysis

import (
	"strings"

	"github.com/ternarybob/auspex/internal/models"
)

// Sector-specific advisories issued under a High risk classification
var highRiskAdvisories = map[string]string{
	"energy":       "Grid instability detected. Include budget for industrial-grade backup power (solar/diesel).",
	"transport":    "Supply chain disruption probable. Diversify logistics partners.",
	"economic":     "High market volatility. Minimize USD exposure and seek fixed-rate financing.",
	"construction": "Material cost fluctuation is high. Use cost-plus contracts where possible.",
}

const genericHighRiskAdvisory = "Environment is volatile. Adopt a lean operational model to minimize burn rate."

// Standalone advisory texts, keyed by the rule that emits them
const (
	advisoryInflation      = "Rising operational costs detected. Implement dynamic pricing and secure long-term supplier contracts."
	advisoryTax            = "New tax regulations likely. Consult with tax advisors on VAT/SSCL compliance."
	advisoryLabor          = "Labor unrest detected. Focus on employee retention and contingency staffing."
	advisoryImport         = "Import restrictions possible. Source raw materials locally where possible."
	advisoryExportMarket   = "Exchange rate volatility is a key factor. Consider hedging instruments for currency risk."
	advisoryHighInvestment = "Large capital exposure in current climate requires stepped investment approach. Release funds based on milestones."
	advisoryDomesticLow    = "Domestic demand may be suppressed. Consider value-segments or essential goods focus."
	advisoryMonitoring     = "Monitor competitor pricing and maintain flexible operational plans."
)

// GenerateAdvisories runs the deterministic advisory rule list. Each rule
// independently appends its recommendation; the final set is deduplicated
// preserving first-emission order. A generic monitoring advisory is issued
// when no rule fires.
func GenerateAdvisories(riskLevel models.RiskLevel, threats []models.TextRecord, qc models.QueryContext) []string {
	var advisories []string

	if riskLevel == models.RiskHigh {
		advisory, ok := highRiskAdvisories[strings.ToLower(qc.Sector)]
		if !ok {
			advisory = genericHighRiskAdvisory
		}
		advisories = append(advisories, advisory)
	}

	if (qc.Investment == models.InvestmentHigh || qc.Investment == models.InvestmentVeryHigh) && riskLevel != models.RiskLow {
		advisories = append(advisories, advisoryHighInvestment)
	}

	switch qc.TargetMarket {
	case models.TargetMarketExport, models.TargetMarketMixed:
		advisories = append(advisories, advisoryExportMarket)
	case models.TargetMarketDomestic:
		if riskLevel == models.RiskHigh {
			advisories = append(advisories, advisoryDomesticLow)
		}
	}

	var titles strings.Builder
	for _, rec := range threats {
		titles.WriteString(strings.ToLower(rec.Title))
		titles.WriteString(" ")
	}
	combined := titles.String()

	if strings.Contains(combined, "inflation") || strings.Contains(combined, "price") {
		advisories = append(advisories, advisoryInflation)
	}
	if strings.Contains(combined, "tax") || strings.Contains(combined, "vat") {
		advisories = append(advisories, advisoryTax)
	}
	if strings.Contains(combined, "strike") || strings.Contains(combined, "protest") {
		advisories = append(advisories, advisoryLabor)
	}
	if strings.Contains(combined, "import") || strings.Contains(combined, "customs") {
		advisories = append(advisories, advisoryImport)
	}

	if len(advisories) == 0 {
		advisories = append(advisories, advisoryMonitoring)
	}

	return dedupeStrings(advisories)
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
