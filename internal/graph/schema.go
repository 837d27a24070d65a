package graph

import (
	"errors"
	"fmt"
)

// Node labels.
const (
	LabelCategory  = "Category"
	LabelFuelType  = "FuelType"
	LabelTip       = "Tip"
	LabelHouseType = "HouseType"
)

// Relationship types.
const (
	RelUsesFuel    = "USES_FUEL"
	RelImproves    = "IMPROVES"
	RelSuitableFor = "SUITABLE_FOR"
	RelRequires    = "REQUIRES"
	RelHasCategory = "HAS_CATEGORY"
)

// ErrNotFound is returned when a requested node id is absent from the store.
var ErrNotFound = errors.New("node not found")

// Labels lists every node label in the closed schema.
var Labels = []string{LabelCategory, LabelFuelType, LabelTip, LabelHouseType}

type Node struct {
	ID         string                 `json:"id" yaml:"id"`
	Label      string                 `json:"label" yaml:"label"`
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
}

type Edge struct {
	Source       string                 `json:"source" yaml:"source"`
	Target       string                 `json:"target" yaml:"target"`
	Relationship string                 `json:"relationship" yaml:"relationship"`
	Properties   map[string]interface{} `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Direction selects which edges Neighbors follows.
type Direction string

const (
	DirectionOut  Direction = "out"
	DirectionIn   Direction = "in"
	DirectionBoth Direction = "both"
)

// Neighbor is a node reached over a single edge, annotated with how it was reached.
type Neighbor struct {
	Node           Node                   `json:"node"`
	Relationship   string                 `json:"relationship"`
	Direction      Direction              `json:"direction"`
	EdgeProperties map[string]interface{} `json:"edge_properties,omitempty"`
}

type Stats struct {
	TotalNodes        int            `json:"total_nodes"`
	TotalEdges        int            `json:"total_edges"`
	NodeLabels        map[string]int `json:"node_labels"`
	RelationshipTypes map[string]int `json:"relationship_types"`
}

// requiredProperties is the closed per-label property schema, validated at
// graph-build time so the rest of the system can read properties untyped.
var requiredProperties = map[string][]string{
	LabelCategory:  {"name", "kwh_per_home", "total_gwh", "percentage", "fuel_type"},
	LabelFuelType:  {"name", "rate_gbp_kwh", "co2_kg_kwh"},
	LabelTip:       {"action", "description", "savings_gbp", "savings_co2", "difficulty", "category"},
	LabelHouseType: {"type", "avg_size_sqm", "typical_occupants", "heating_kwh_factor"},
}

var validRelationships = map[string]bool{
	RelUsesFuel:    true,
	RelImproves:    true,
	RelSuitableFor: true,
	RelRequires:    true,
	RelHasCategory: true,
}

// ValidateNode checks the node against the closed label set and its label's
// property schema.
func ValidateNode(n Node) error {
	if n.ID == "" {
		return fmt.Errorf("node has empty id")
	}
	required, ok := requiredProperties[n.Label]
	if !ok {
		return fmt.Errorf("node %s: unknown label %q", n.ID, n.Label)
	}
	for _, key := range required {
		if _, present := n.Properties[key]; !present {
			return fmt.Errorf("node %s (%s): missing property %q", n.ID, n.Label, key)
		}
	}
	return nil
}

// ValidateEdge checks the relationship type; endpoint existence is checked by
// the store that owns the node set.
func ValidateEdge(e Edge) error {
	if e.Source == "" || e.Target == "" {
		return fmt.Errorf("edge %s-[%s]->%s: empty endpoint", e.Source, e.Relationship, e.Target)
	}
	if !validRelationships[e.Relationship] {
		return fmt.Errorf("edge %s->%s: unknown relationship %q", e.Source, e.Target, e.Relationship)
	}
	return nil
}

// StringProp reads a string property, returning "" when absent or mistyped.
func (n Node) StringProp(key string) string {
	if v, ok := n.Properties[key].(string); ok {
		return v
	}
	return ""
}

// FloatProp reads a numeric property. JSON and YAML decoders produce a mix of
// float64 and int, so both are accepted.
func (n Node) FloatProp(key string) float64 {
	switch v := n.Properties[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// DisplayName picks the most descriptive property for the node's label.
func (n Node) DisplayName() string {
	for _, key := range []string{"name", "action", "type"} {
		if v := n.StringProp(key); v != "" {
			return v
		}
	}
	return n.ID
}
