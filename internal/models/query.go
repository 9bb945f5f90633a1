package models

// Investment tiers for a feasibility query
const (
	InvestmentLow      = "low"
	InvestmentMedium   = "medium"
	InvestmentHigh     = "high"
	InvestmentVeryHigh = "very_high"
)

// Target market options
const (
	TargetMarketDomestic = "domestic"
	TargetMarketExport   = "export"
	TargetMarketMixed    = "mixed"
)

// Risk profiles for a stock query
const (
	RiskProfileConservative = "conservative"
	RiskProfileNeutral      = "neutral"
	RiskProfileAggressive   = "aggressive"
)

// LocationGeneral disables the location pass of the relevance filter
const LocationGeneral = "general"

// QueryContext captures caller intent for a feasibility query.
// Immutable, constructed once per request.
type QueryContext struct {
	Name         string `json:"name"`
	Sector       string `json:"sector" validate:"required"`
	Location     string `json:"location"`
	Scale        string `json:"scale"`
	Investment   string `json:"investment" validate:"omitempty,oneof=low medium high very_high"`
	TargetMarket string `json:"target_market" validate:"omitempty,oneof=domestic export mixed"`
	Description  string `json:"description"`
}

// StockQueryContext captures caller intent for a stock-market query.
// Immutable, constructed once per request.
type StockQueryContext struct {
	Horizon     string `json:"horizon"`
	RiskProfile string `json:"risk_profile" validate:"omitempty,oneof=conservative neutral aggressive"`
	FocusSector string `json:"focus_sector"`
}

// RiskLevel is the discrete risk tier produced by the classifier
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Signal is the per-entity trading signal
type Signal string

const (
	SignalBuy  Signal = "Buy"
	SignalHold Signal = "Hold"
	SignalSell Signal = "Sell"
)

// Recommended portfolio actions for the stock report
const (
	ActionAccumulate = "Accumulate"
	ActionHold       = "Hold"
	ActionStayCash   = "Stay Cash"
)
