package vector

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattwise/wattwise/internal/graph"
)

// stubEmbedder returns a fixed vector for the first key found as a substring
// of the text, so similarity ordering is fully controlled by the test.
type stubEmbedder struct {
	vectors map[string][]float32
	def     []float32
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	for key, vec := range s.vectors {
		if strings.Contains(text, key) {
			return vec, nil
		}
	}
	return s.def, nil
}

func indexStore(t *testing.T) graph.Store {
	t.Helper()
	nodes := []graph.Node{
		{ID: "category_heating", Label: graph.LabelCategory, Properties: map[string]interface{}{
			"name": "heating", "kwh_per_home": 744.0, "total_gwh": 20838.0, "percentage": 61.0, "fuel_type": "gas",
		}},
		{ID: "fuel_gas", Label: graph.LabelFuelType, Properties: map[string]interface{}{
			"name": "gas", "rate_gbp_kwh": 0.06, "co2_kg_kwh": 0.184,
		}},
		{ID: "tip_thermostat", Label: graph.LabelTip, Properties: map[string]interface{}{
			"action": "Lower thermostat by one degree", "description": "desc", "savings_gbp": 45.0,
			"savings_co2": 83.0, "difficulty": "easy", "category": "heating",
		}},
		{ID: "house_flat", Label: graph.LabelHouseType, Properties: map[string]interface{}{
			"type": "flat", "avg_size_sqm": 50.0, "typical_occupants": 2.0, "heating_kwh_factor": 0.8,
		}},
	}
	store, err := graph.NewMemoryStore(nodes, nil)
	require.NoError(t, err)
	return store
}

func indexEmbedder() *stubEmbedder {
	return &stubEmbedder{
		vectors: map[string][]float32{
			"Lower thermostat": {1, 0, 0},
			"Energy category":  {0, 1, 0},
			"Fuel type":        {0, 1, 0},
			"House type":       {0, 0, 1},
		},
		def: []float32{0, 0, 0},
	}
}

func TestBuildIndexesAllNodes(t *testing.T) {
	idx, err := Build(context.Background(), indexStore(t), indexEmbedder())
	require.NoError(t, err)
	assert.Equal(t, 4, idx.Size())
	assert.Equal(t, 3, idx.Dimension())
}

func TestBuildNilEmbedder(t *testing.T) {
	_, err := Build(context.Background(), indexStore(t), nil)
	assert.Error(t, err)
}

func TestBuildEmbedderFailure(t *testing.T) {
	embedder := indexEmbedder()
	embedder.err = fmt.Errorf("provider down")

	_, err := Build(context.Background(), indexStore(t), embedder)
	assert.Error(t, err)
}

func TestBuildDimensionMismatch(t *testing.T) {
	embedder := indexEmbedder()
	embedder.vectors["House type"] = []float32{0, 1}

	_, err := Build(context.Background(), indexStore(t), embedder)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}

func TestTopKThreshold(t *testing.T) {
	idx, err := Build(context.Background(), indexStore(t), indexEmbedder())
	require.NoError(t, err)

	matches, err := idx.TopK([]float32{1, 0, 0}, 10, 0.3)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "tip_thermostat", matches[0].NodeID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
}

func TestTopKTieBreakAndTruncation(t *testing.T) {
	idx, err := Build(context.Background(), indexStore(t), indexEmbedder())
	require.NoError(t, err)

	// All non-tip nodes score exactly 0 and tie; ascending id breaks the tie.
	matches, err := idx.TopK([]float32{1, 0, 0}, 10, 0)
	require.NoError(t, err)
	require.Len(t, matches, 4)
	assert.Equal(t, "tip_thermostat", matches[0].NodeID)
	assert.Equal(t, "category_heating", matches[1].NodeID)
	assert.Equal(t, "fuel_gas", matches[2].NodeID)
	assert.Equal(t, "house_flat", matches[3].NodeID)

	matches, err = idx.TopK([]float32{1, 0, 0}, 2, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "tip_thermostat", matches[0].NodeID)
	assert.Equal(t, "category_heating", matches[1].NodeID)
}

func TestTopKNeverPads(t *testing.T) {
	idx, err := Build(context.Background(), indexStore(t), indexEmbedder())
	require.NoError(t, err)

	matches, err := idx.TopK([]float32{1, 0, 0}, 10, 0.5)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestTopKClampsNegativeSimilarity(t *testing.T) {
	embedder := indexEmbedder()
	embedder.vectors["Lower thermostat"] = []float32{-1, 0, 0}
	idx, err := Build(context.Background(), indexStore(t), embedder)
	require.NoError(t, err)

	matches, err := idx.TopK([]float32{1, 0, 0}, 10, 0)
	require.NoError(t, err)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Score, 0.0)
	}
	// A clamped score is still below any positive threshold.
	matches, err = idx.TopK([]float32{1, 0, 0}, 10, 0.1)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestTopKQueryDimensionMismatch(t *testing.T) {
	idx, err := Build(context.Background(), indexStore(t), indexEmbedder())
	require.NoError(t, err)

	_, err = idx.TopK([]float32{1, 0}, 10, 0)
	assert.Error(t, err)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 3}), 1e-9)
	assert.InDelta(t, -1.0, cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, cosine([]float32{0, 0}, []float32{1, 0}))
}
