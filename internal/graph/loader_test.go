package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	data := `{
		"nodes": [
			{"id": "fuel_gas", "label": "FuelType", "properties": {"name": "gas", "rate_gbp_kwh": 0.06, "co2_kg_kwh": 0.184}}
		],
		"edges": []
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	nodes, edges, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Empty(t, edges)
	assert.Equal(t, "fuel_gas", nodes[0].ID)
	assert.Equal(t, LabelFuelType, nodes[0].Label)
	assert.Equal(t, "gas", nodes[0].StringProp("name"))
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.yaml")
	data := `nodes:
  - id: fuel_electricity
    label: FuelType
    properties:
      name: electricity
      rate_gbp_kwh: 0.24
      co2_kg_kwh: 0.207
  - id: category_lighting
    label: Category
    properties:
      name: lighting
      kwh_per_home: 538.0
      total_gwh: 15065.0
      percentage: 15.0
      fuel_type: electricity
edges:
  - source: category_lighting
    target: fuel_electricity
    relationship: USES_FUEL
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	nodes, edges, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
	require.Len(t, edges, 1)
	assert.Equal(t, RelUsesFuel, edges[0].Relationship)

	_, err = NewMemoryStore(nodes, edges)
	assert.NoError(t, err)
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.txt")
	require.NoError(t, os.WriteFile(path, []byte("nodes: []"), 0o644))

	_, _, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadDataEmptyPathUsesSample(t *testing.T) {
	nodes, edges, err := LoadData("")
	require.NoError(t, err)
	assert.Len(t, nodes, 5+2+28+4)
	assert.NotEmpty(t, edges)
}
