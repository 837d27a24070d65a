// Package analyzer extracts structured intent and entities from raw query
// text using pattern matching. No LLM call and no hidden state: the same
// input always produces the same QueryContext.
package analyzer

import (
	"regexp"
	"strconv"
	"strings"
)

// Intents.
const (
	IntentCostReduction     = "cost_reduction"
	IntentEnvironmental     = "environmental"
	IntentQuickWins         = "quick_wins"
	IntentEfficiencyUpgrade = "efficiency_upgrade"
	IntentGeneralInfo       = "general_info"
)

// Urgency levels.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Entities are the optional query facts the retriever personalizes on.
type Entities struct {
	HouseType string `json:"house_type,omitempty"`
	Bedrooms  int    `json:"bedrooms,omitempty"`
	Category  string `json:"category,omitempty"`
	Problem   string `json:"problem,omitempty"`
}

func (e Entities) Empty() bool {
	return e.HouseType == "" && e.Bedrooms == 0 && e.Category == "" && e.Problem == ""
}

// QueryContext is immutable once produced.
type QueryContext struct {
	Entities Entities `json:"entities"`
	Intent   string   `json:"intent"`
	Urgency  string   `json:"urgency"`
	RawQuery string   `json:"raw_query"`
}

type patternSet struct {
	key      string
	patterns []string
}

// Pattern tables are ordered slices, not maps: first match wins and the
// order is part of the extraction contract ("semi" must beat "detached"
// inside "semi detached").
var houseTypePatterns = []patternSet{
	{"flat", []string{"flat", "apartment", "studio"}},
	{"terraced", []string{"terraced", "row house", "townhouse"}},
	{"semi_detached", []string{"semi-detached", "semi detached", "semi"}},
	{"detached", []string{"detached", "house"}},
}

var categoryPatterns = []patternSet{
	{"heating", []string{"heating", "heat", "thermostat", "warm", "cold", "central heating"}},
	{"lighting", []string{"light", "lighting", "bulb", "lamp", "lights"}},
	{"appliances", []string{"appliance", "fridge", "freezer", "washing machine", "dishwasher", "dryer"}},
	{"water", []string{"water", "hot water", "shower", "bath", "tap", "boiler"}},
	{"cooking", []string{"cooking", "cook", "oven", "hob", "stove", "kettle"}},
}

var intentPatterns = []patternSet{
	{IntentCostReduction, []string{"reduce", "lower", "save", "cut", "cheaper", "bills", "cost", "money"}},
	{IntentEnvironmental, []string{"co2", "carbon", "emission", "environment", "green", "eco"}},
	{IntentQuickWins, []string{"quick", "easy", "fast", "simple", "quick wins"}},
	{IntentEfficiencyUpgrade, []string{"upgrade", "replace", "new", "install", "buy"}},
	{IntentGeneralInfo, []string{"tips", "advice", "recommend", "help", "suggest"}},
}

var problemPatterns = []patternSet{
	{"high_bills", []string{"high", "expensive", "too much", "costing", "bill", "spending"}},
	{"inefficient", []string{"inefficient", "waste", "wasting", "too much energy"}},
	{"old_equipment", []string{"old", "aging", "broken", "needs replacing"}},
}

var bedroomPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*-?\s*bed`),
	regexp.MustCompile(`bedroom[s]?\s*(\d+)`),
	regexp.MustCompile(`(\d+)\s*bedroom`),
}

type Analyzer struct{}

func New() *Analyzer {
	return &Analyzer{}
}

// Analyze never fails: unrecognized input degrades to empty entities and the
// general-info intent.
func (a *Analyzer) Analyze(query string) QueryContext {
	lower := strings.ToLower(query)

	entities := Entities{
		HouseType: firstMatch(houseTypePatterns, lower),
		Bedrooms:  extractBedrooms(lower),
		Category:  firstMatch(categoryPatterns, lower),
		Problem:   firstMatch(problemPatterns, lower),
	}

	urgency := UrgencyMedium
	if entities.Problem == "high_bills" || entities.Problem == "inefficient" {
		urgency = UrgencyHigh
	} else if containsAny(lower, []string{"quick", "fast", "urgent"}) {
		urgency = UrgencyHigh
	}

	return QueryContext{
		Entities: entities,
		Intent:   extractIntent(lower),
		Urgency:  urgency,
		RawQuery: query,
	}
}

func firstMatch(sets []patternSet, query string) string {
	for _, set := range sets {
		if containsAny(query, set.patterns) {
			return set.key
		}
	}
	return ""
}

// extractIntent scores each intent by the number of patterns present; ties
// resolve to the earlier table entry.
func extractIntent(query string) string {
	best := IntentGeneralInfo
	bestScore := 0
	for _, set := range intentPatterns {
		score := 0
		for _, p := range set.patterns {
			if strings.Contains(query, p) {
				score++
			}
		}
		if score > bestScore {
			best = set.key
			bestScore = score
		}
	}
	return best
}

func extractBedrooms(query string) int {
	for _, re := range bedroomPatterns {
		if m := re.FindStringSubmatch(query); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 0
}

func containsAny(query string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(query, p) {
			return true
		}
	}
	return false
}
