package retriever

import "github.com/wattwise/wattwise/internal/graph"

// MatchedNode is a similarity hit against the query embedding.
type MatchedNode struct {
	Node  graph.Node `json:"node"`
	Score float64    `json:"score"`
}

// Subgraph is the evidence neighborhood collected around the matched nodes.
type Subgraph struct {
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}

// Recommendation is a ranked candidate node with its score components.
type Recommendation struct {
	Node                     graph.Node `json:"node"`
	SimilarityComponent      float64    `json:"similarity_component"`
	PersonalizationComponent float64    `json:"personalization_component"`
	FinalScore               float64    `json:"final_score"`
}

// PersonalizedTip carries a tip's savings adjusted for the user's house type,
// with a rough return-on-effort used to order the payload for the generator.
type PersonalizedTip struct {
	ID                     string  `json:"id"`
	Action                 string  `json:"action"`
	Description            string  `json:"description"`
	SavingsGBP             float64 `json:"savings_gbp"`
	SavingsCO2             float64 `json:"savings_co2"`
	Difficulty             string  `json:"difficulty"`
	Category               string  `json:"category"`
	PersonalizedSavingsGBP float64 `json:"personalized_savings_gbp"`
	PersonalizedSavingsCO2 float64 `json:"personalized_savings_co2"`
	ROI                    float64 `json:"roi"`
}

// Result is the full retrieval output for one request. A Result with no
// matches is a valid state, not an error.
type Result struct {
	Matched          []MatchedNode     `json:"matched_nodes"`
	Recommendations  []Recommendation  `json:"recommendations"`
	Subgraph         Subgraph          `json:"subgraph"`
	Traces           [][]string        `json:"traces"`      // shortest path from a matched node to each discovered node
	GraphPaths       [][]string        `json:"graph_paths"` // short paths between matched nodes
	PersonalizedTips []PersonalizedTip `json:"personalized_tips"`
	Context          string            `json:"context"`
	Explanation      string            `json:"explanation"`
}

// Empty reports whether retrieval produced no qualifying matches.
func (r Result) Empty() bool {
	return len(r.Matched) == 0
}
