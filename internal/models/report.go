package models

// GazetteEntry is one regulatory/gazette item, either scraped live or
// correlated from the corpus as a fallback.
type GazetteEntry struct {
	Date   string `json:"date"`
	Title  string `json:"title"`
	Link   string `json:"link"`
	Source string `json:"source,omitempty"`
}

// EntitySignal is a per-ticker trading signal derived from the corpus
type EntitySignal struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Signal    Signal  `json:"signal"`
	Sentiment float64 `json:"sentiment"`
	Headline  string  `json:"headline"`
}

// SectorPerformance is the weighted sentiment of one sector's records
type SectorPerformance struct {
	Sector    string  `json:"sector"`
	Sentiment float64 `json:"sentiment"`
	Records   int     `json:"records"`
}

// EventMention is one corporate-action mention found in the event scan
type EventMention struct {
	Event string `json:"event"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// TrendData is a trailing window of per-record sentiment for charting
type TrendData struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// ChartData holds the sentiment distribution histogram and trend window.
// SentimentDist is [positive, neutral, negative] over the ±0.1 thresholds.
type ChartData struct {
	SentimentDist []int     `json:"sentiment_dist"`
	Trend         TrendData `json:"trend"`
}

// FeasibilityReport is the structured output of a company feasibility query
type FeasibilityReport struct {
	SentimentScore float64        `json:"sentiment_score"` // rounded to 2dp
	RiskLevel      RiskLevel      `json:"risk_level"`
	ReportText     string         `json:"report_text"`
	Opportunities  []string       `json:"opportunities"`
	Threats        []string       `json:"threats"`
	Advisories     []string       `json:"advisories"`
	GazetteMatches []GazetteEntry `json:"gazette_matches"`
	Charts         ChartData      `json:"charts"`
	DataPoints     int            `json:"data_points"`
}

// StockReport is the structured output of a stock-market signal query
type StockReport struct {
	MarketSentiment   float64             `json:"market_sentiment"` // rounded to 2dp
	RecommendedAction string              `json:"recommended_action"`
	EntitySignals     []EntitySignal      `json:"entity_signals"`
	SectorPerformance []SectorPerformance `json:"sector_performance"`
	TopSector         string              `json:"top_sector"`
	Events            []EventMention      `json:"events"`
	GazetteMatches    []GazetteEntry      `json:"gazette_matches"`
	ReportText        string              `json:"report_text"`
	DataPoints        int                 `json:"data_points"`
}

// CorpusStats summarizes the current news corpus for the stats endpoint
type CorpusStats struct {
	TotalRecords int    `json:"total_records"`
	HighRisk     int    `json:"high_risk"`
	Opportunity  int    `json:"opportunity"`
	MajorEvents  int    `json:"major_events"`
	LastUpdated  string `json:"last_updated"`
}
