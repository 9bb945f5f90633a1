package analysis

import "strings"

// Sector labels map to the keyword lists used for tag and body matching.
// Keywords are lowercase; cleaned text is normalized at ingestion so all
// matching is plain substring containment.
var sectorKeywords = map[string][]string{
	"energy":        {"energy", "fuel", "power", "electricity", "utility", "solar", "renewable"},
	"transport":     {"transport", "logistics", "shipping", "aviation", "vehicle", "traffic", "highway"},
	"health":        {"health", "medical", "pharmaceutical", "hospital", "medicine", "drug"},
	"economic":      {"economic", "finance", "bank", "investment", "tax", "inflation", "market", "cbsl"},
	"technology":    {"technology", "digital", "it", "cyber", "software", "telecom", "ai", "startup"},
	"construction":  {"construction", "housing", "infrastructure", "real estate", "cement", "development"},
	"tourism":       {"tourism", "hotel", "travel", "hospitality", "tourist", "airport"},
	"agriculture":   {"agriculture", "food", "farming", "crop", "plantation", "fertilizer"},
	"retail":        {"retail", "consumer", "shopping", "price", "goods", "market", "trade"},
	"manufacturing": {"manufacturing", "factory", "industrial", "production", "export"},
	"education":     {"education", "school", "university", "student", "campus", "training"},
}

// Location labels expand to the district and province terms that identify
// regional coverage in the cleaned text.
var locationKeywords = map[string][]string{
	"colombo":      {"colombo", "western province"},
	"gampaha":      {"gampaha", "western province", "negombo", "katunayake"},
	"kandy":        {"kandy", "central province", "peradeniya"},
	"galle":        {"galle", "southern province", "hikkaduwa"},
	"jaffna":       {"jaffna", "northern province"},
	"matara":       {"matara", "southern province"},
	"kurunegala":   {"kurunegala", "north western"},
	"trincomalee":  {"trincomalee", "eastern province"},
	"batticaloa":   {"batticaloa", "eastern province"},
	"nuwara_eliya": {"nuwara eliya", "hatton"},
	"hambantota":   {"hambantota", "southern province", "mattala"},
}

// regulatoryKeywords mark records that reference regulatory or legislative
// activity, used for the gazette correlation fallback.
var regulatoryKeywords = []string{
	"gazette", "parliament", "bill", "act", "regulation", "ministry", "policy", "circular",
}

// marketKeywords identify market-coverage records when no dedicated market
// snapshot is available.
var marketKeywords = []string{
	"cse", "colombo stock exchange", "shares", "stock", "listed",
	"dividend", "earnings", "investor", "bourse", "equity",
}

// eventKeyword ordering matters: first-match-wins per record
type eventKeyword struct {
	Name    string
	Keyword string
}

var eventKeywords = []eventKeyword{
	{Name: "Dividend", Keyword: "dividend"},
	{Name: "Rights Issue", Keyword: "rights issue"},
	{Name: "Earnings", Keyword: "earnings"},
	{Name: "AGM", Keyword: "agm"},
	{Name: "IPO", Keyword: "ipo"},
}

// watchedEntity is one tracked CSE listing with the aliases it appears
// under in news coverage.
type watchedEntity struct {
	Ticker  string
	Name    string
	Aliases []string
}

var watchedEntities = []watchedEntity{
	{Ticker: "JKH", Name: "John Keells Holdings", Aliases: []string{"john keells", "jkh"}},
	{Ticker: "COMB", Name: "Commercial Bank of Ceylon", Aliases: []string{"commercial bank", "combank"}},
	{Ticker: "HNB", Name: "Hatton National Bank", Aliases: []string{"hatton national bank", "hnb"}},
	{Ticker: "SAMP", Name: "Sampath Bank", Aliases: []string{"sampath bank", "sampath"}},
	{Ticker: "DIAL", Name: "Dialog Axiata", Aliases: []string{"dialog axiata", "dialog"}},
	{Ticker: "SLTL", Name: "Sri Lanka Telecom", Aliases: []string{"sri lanka telecom", "sltmobitel"}},
	{Ticker: "LOLC", Name: "LOLC Holdings", Aliases: []string{"lolc"}},
	{Ticker: "HAYL", Name: "Hayleys", Aliases: []string{"hayleys"}},
	{Ticker: "EXPO", Name: "Expolanka Holdings", Aliases: []string{"expolanka"}},
	{Ticker: "CARG", Name: "Cargills Ceylon", Aliases: []string{"cargills"}},
	{Ticker: "CTC", Name: "Ceylon Tobacco Company", Aliases: []string{"ceylon tobacco"}},
	{Ticker: "AEL", Name: "Access Engineering", Aliases: []string{"access engineering"}},
}

// sectorNames holds the sector labels in a fixed iteration order so sector
// rankings are deterministic.
var sectorNames = []string{
	"energy", "transport", "health", "economic", "technology", "construction",
	"tourism", "agriculture", "retail", "manufacturing", "education",
}

// SectorKeywordsFor returns the keyword list for a sector label, or nil
// when the sector is unmapped.
func SectorKeywordsFor(sector string) []string {
	return sectorKeywords[strings.ToLower(strings.TrimSpace(sector))]
}

// SectorTag returns the first sector whose keyword list matches the text,
// or "general" when none match. Used at ingestion to attach the
// operational tag.
func SectorTag(text string) string {
	for _, sector := range sectorNames {
		if containsAny(text, sectorKeywords[sector]) {
			return sector
		}
	}
	return "general"
}

// containsAny reports whether text contains at least one of the keywords.
// Keywords are lowercase; callers pass already-normalized text.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
