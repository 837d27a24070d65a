package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNodes() []Node {
	return []Node{
		{ID: "category_heating", Label: LabelCategory, Properties: map[string]interface{}{
			"name": "heating", "kwh_per_home": 744.0, "total_gwh": 20838.0, "percentage": 61.0, "fuel_type": "gas",
		}},
		{ID: "fuel_gas", Label: LabelFuelType, Properties: map[string]interface{}{
			"name": "gas", "rate_gbp_kwh": 0.06, "co2_kg_kwh": 0.184,
		}},
		{ID: "tip_a", Label: LabelTip, Properties: map[string]interface{}{
			"action": "Lower thermostat", "description": "desc", "savings_gbp": 45.0,
			"savings_co2": 83.0, "difficulty": "easy", "category": "heating",
		}},
		{ID: "house_flat", Label: LabelHouseType, Properties: map[string]interface{}{
			"type": "flat", "avg_size_sqm": 800.0, "typical_occupants": 2.0, "heating_kwh_factor": 0.8,
		}},
	}
}

func testEdges() []Edge {
	return []Edge{
		{Source: "tip_a", Target: "category_heating", Relationship: RelImproves},
		{Source: "tip_a", Target: "house_flat", Relationship: RelSuitableFor},
		{Source: "category_heating", Target: "fuel_gas", Relationship: RelUsesFuel},
	}
}

func TestMemoryStoreGetNode(t *testing.T) {
	store, err := NewMemoryStore(testNodes(), testEdges())
	require.NoError(t, err)

	node, err := store.GetNode(context.Background(), "tip_a")
	assert.NoError(t, err)
	assert.Equal(t, LabelTip, node.Label)
	assert.Equal(t, "Lower thermostat", node.StringProp("action"))
}

func TestMemoryStoreGetNodeNotFound(t *testing.T) {
	store, err := NewMemoryStore(testNodes(), testEdges())
	require.NoError(t, err)

	_, err = store.GetNode(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreNeighbors(t *testing.T) {
	store, err := NewMemoryStore(testNodes(), testEdges())
	require.NoError(t, err)
	ctx := context.Background()

	out, err := store.Neighbors(ctx, "tip_a", "", DirectionOut)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	improves, err := store.Neighbors(ctx, "tip_a", RelImproves, DirectionOut)
	require.NoError(t, err)
	require.Len(t, improves, 1)
	assert.Equal(t, "category_heating", improves[0].Node.ID)
	assert.Equal(t, RelImproves, improves[0].Relationship)

	in, err := store.Neighbors(ctx, "category_heating", "", DirectionIn)
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, "tip_a", in[0].Node.ID)
}

func TestMemoryStoreNeighborsMissingNodeIsEmpty(t *testing.T) {
	store, err := NewMemoryStore(testNodes(), testEdges())
	require.NoError(t, err)

	neighbors, err := store.Neighbors(context.Background(), "missing", "", DirectionBoth)
	assert.NoError(t, err)
	assert.Empty(t, neighbors)
}

func TestMemoryStoreNodesByLabelSorted(t *testing.T) {
	nodes, edges := SampleGraph()
	store, err := NewMemoryStore(nodes, edges)
	require.NoError(t, err)

	tips, err := store.NodesByLabel(context.Background(), LabelTip)
	require.NoError(t, err)
	assert.Len(t, tips, 28)
	for i := 1; i < len(tips); i++ {
		assert.Less(t, tips[i-1].ID, tips[i].ID)
	}
}

func TestMemoryStoreValidation(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		edges []Edge
	}{
		{
			name:  "unknown label",
			nodes: []Node{{ID: "x", Label: "Gadget", Properties: map[string]interface{}{}}},
		},
		{
			name: "missing property",
			nodes: []Node{{ID: "x", Label: LabelFuelType, Properties: map[string]interface{}{
				"name": "gas",
			}}},
		},
		{
			name:  "duplicate id",
			nodes: append(testNodes(), testNodes()[0]),
		},
		{
			name:  "dangling edge",
			nodes: testNodes(),
			edges: []Edge{{Source: "tip_a", Target: "nowhere", Relationship: RelImproves}},
		},
		{
			name:  "unknown relationship",
			nodes: testNodes(),
			edges: []Edge{{Source: "tip_a", Target: "house_flat", Relationship: "LIKES"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMemoryStore(tc.nodes, tc.edges)
			assert.Error(t, err)
		})
	}
}

func TestMemoryStoreStatistics(t *testing.T) {
	store, err := NewMemoryStore(testNodes(), testEdges())
	require.NoError(t, err)

	stats, err := store.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalNodes)
	assert.Equal(t, 3, stats.TotalEdges)
	assert.Equal(t, 1, stats.NodeLabels[LabelTip])
	assert.Equal(t, 1, stats.RelationshipTypes[RelUsesFuel])
}

func TestSampleGraphBuilds(t *testing.T) {
	nodes, edges := SampleGraph()
	store, err := NewMemoryStore(nodes, edges)
	require.NoError(t, err)

	stats, err := store.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.NodeLabels[LabelCategory])
	assert.Equal(t, 2, stats.NodeLabels[LabelFuelType])
	assert.Equal(t, 4, stats.NodeLabels[LabelHouseType])
	// Every tip links to its category and all four house types.
	assert.Equal(t, 28, stats.RelationshipTypes[RelImproves])
	assert.Equal(t, 28*4, stats.RelationshipTypes[RelSuitableFor])
}
