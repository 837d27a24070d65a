package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dataset is the declarative node/edge file format.
type Dataset struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// LoadFile reads a graph dataset from a JSON or YAML file, picked by
// extension.
func LoadFile(path string) ([]Node, []Edge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read graph data file %q: %w", path, err)
	}

	var ds Dataset
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(data, &ds); err != nil {
			return nil, nil, fmt.Errorf("failed to parse %q: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &ds); err != nil {
			return nil, nil, fmt.Errorf("failed to parse %q: %w", path, err)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported graph data format %q", ext)
	}

	return ds.Nodes, ds.Edges, nil
}

// LoadData returns the dataset at path, or the embedded sample dataset when
// path is empty.
func LoadData(path string) ([]Node, []Edge, error) {
	if path == "" {
		nodes, edges := SampleGraph()
		return nodes, edges, nil
	}
	return LoadFile(path)
}
