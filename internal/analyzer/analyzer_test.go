package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeFullQuery(t *testing.T) {
	a := New()
	qc := a.Analyze("How can I reduce my heating bills in my 2-bed flat?")

	assert.Equal(t, "flat", qc.Entities.HouseType)
	assert.Equal(t, 2, qc.Entities.Bedrooms)
	assert.Equal(t, "heating", qc.Entities.Category)
	assert.Equal(t, "high_bills", qc.Entities.Problem)
	assert.Equal(t, IntentCostReduction, qc.Intent)
	assert.Equal(t, UrgencyHigh, qc.Urgency)
	assert.Equal(t, "How can I reduce my heating bills in my 2-bed flat?", qc.RawQuery)
}

func TestAnalyzeHouseTypes(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"I live in a studio apartment", "flat"},
		{"we have a terraced place", "terraced"},
		{"my semi detached house", "semi_detached"},
		{"my semi-detached house", "semi_detached"},
		{"a detached house in the suburbs", "detached"},
		{"just a house", "detached"},
		{"no dwelling mentioned", ""},
	}

	a := New()
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			qc := a.Analyze(tc.query)
			assert.Equal(t, tc.want, qc.Entities.HouseType)
		})
	}
}

func TestAnalyzeBedrooms(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"3 bedroom house", 3},
		{"a 2-bed flat", 2},
		{"4 bed semi", 4},
		{"no number here", 0},
	}

	a := New()
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			qc := a.Analyze(tc.query)
			assert.Equal(t, tc.want, qc.Entities.Bedrooms)
		})
	}
}

func TestAnalyzeIntent(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"how do I lower my carbon emissions", IntentEnvironmental},
		{"quick and easy improvements", IntentQuickWins},
		{"should I install a new boiler", IntentEfficiencyUpgrade},
		{"give me some advice", IntentGeneralInfo},
		{"tell me about energy", IntentGeneralInfo},
		// "save" and "tips" tie at one pattern each; the earlier table
		// entry wins.
		{"energy saving tips", IntentCostReduction},
	}

	a := New()
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			qc := a.Analyze(tc.query)
			assert.Equal(t, tc.want, qc.Intent)
		})
	}
}

func TestAnalyzeUrgency(t *testing.T) {
	a := New()

	assert.Equal(t, UrgencyHigh, a.Analyze("my bills are too high").Urgency)
	assert.Equal(t, UrgencyHigh, a.Analyze("we are wasting energy").Urgency)
	assert.Equal(t, UrgencyHigh, a.Analyze("need something quick").Urgency)
	assert.Equal(t, UrgencyMedium, a.Analyze("tell me about insulation").Urgency)
}

func TestAnalyzeUnrecognizedInput(t *testing.T) {
	a := New()
	qc := a.Analyze("xyzzy plugh")

	assert.True(t, qc.Entities.Empty())
	assert.Equal(t, IntentGeneralInfo, qc.Intent)
	assert.Equal(t, UrgencyMedium, qc.Urgency)
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := New()
	query := "reduce heating costs in my semi detached 3 bed house"

	first := a.Analyze(query)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, a.Analyze(query))
	}
}
