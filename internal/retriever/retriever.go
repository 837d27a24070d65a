// Package retriever implements the GraphRAG core: similarity search over the
// embedding index, bounded subgraph expansion over the graph store, and
// personalization-aware ranking of candidate recommendations.
package retriever

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/wattwise/wattwise/internal/analyzer"
	"github.com/wattwise/wattwise/internal/config"
	"github.com/wattwise/wattwise/internal/graph"
	"github.com/wattwise/wattwise/internal/llm"
	"github.com/wattwise/wattwise/internal/vector"
)

// Personalization components. A house-type match outweighs a category match;
// a tip restricted to house types that all conflict with the user's is
// penalized rather than excluded, so sparse graphs still return results.
const (
	houseMatchBonus      = 1.0
	categoryMatchBonus   = 0.5
	houseConflictPenalty = -0.5
)

// candidateLabel is the node kind surfaced as recommendations; other labels
// reached by expansion are evidence context only.
const candidateLabel = graph.LabelTip

var difficultyWeights = map[string]float64{"easy": 1, "medium": 2, "hard": 3}

type Retriever struct {
	Store    graph.Store
	Index    *vector.Index
	Embedder llm.EmbedderClient
	Config   config.RetrievalConfig
}

func New(store graph.Store, index *vector.Index, embedder llm.EmbedderClient, cfg config.RetrievalConfig) *Retriever {
	return &Retriever{
		Store:    store,
		Index:    index,
		Embedder: embedder,
		Config:   cfg,
	}
}

// Retrieve runs the full GraphRAG pass for one query. An empty Result is a
// valid outcome; an error from the embedding provider satisfies
// errors.Is(err, llm.ErrProvider) so the caller can degrade instead of abort.
func (r *Retriever) Retrieve(ctx context.Context, qc analyzer.QueryContext) (Result, error) {
	enhanced := buildEnhancedQuery(qc)

	queryVec, err := r.Embedder.Embed(ctx, enhanced)
	if err != nil {
		return Result{}, fmt.Errorf("query embedding failed: %w", err)
	}

	matches, err := r.Index.TopK(queryVec, r.Config.TopK, r.Config.MinScore)
	if err != nil {
		return Result{}, err
	}
	if len(matches) == 0 {
		return Result{Explanation: "No matching nodes found."}, nil
	}

	scores := make(map[string]float64, len(matches))
	matchedIDs := make([]string, 0, len(matches))
	matched := make([]MatchedNode, 0, len(matches))
	for _, m := range matches {
		node, err := r.Store.GetNode(ctx, m.NodeID)
		if err != nil {
			return Result{}, err
		}
		scores[m.NodeID] = m.Score
		matchedIDs = append(matchedIDs, m.NodeID)
		matched = append(matched, MatchedNode{Node: node, Score: m.Score})
	}

	exp, err := r.expand(ctx, matchedIDs, r.Config.HopCount)
	if err != nil {
		return Result{}, err
	}

	recommendations, err := r.rank(ctx, exp.subgraph, scores, qc.Entities)
	if err != nil {
		return Result{}, err
	}

	tips, err := r.personalizeTips(ctx, exp.subgraph, qc.Entities)
	if err != nil {
		return Result{}, err
	}

	paths, err := r.findPaths(ctx, matchedIDs)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Matched:          matched,
		Recommendations:  recommendations,
		Subgraph:         exp.subgraph,
		Traces:           exp.traces,
		GraphPaths:       paths,
		PersonalizedTips: tips,
	}
	result.Context = serializeContext(result)
	result.Explanation = buildExplanation(result)

	log.Printf("Retrieval: %d matches, %d subgraph nodes, %d recommendations for query %q",
		len(matched), len(exp.subgraph.Nodes), len(recommendations), truncate(qc.RawQuery, 50))

	return result, nil
}

// rank scores every candidate node in the subgraph and returns them
// deduplicated, ordered by descending final score with ascending-id
// tie-break, truncated to the configured result size.
func (r *Retriever) rank(ctx context.Context, sg Subgraph, scores map[string]float64, entities analyzer.Entities) ([]Recommendation, error) {
	seen := make(map[string]bool)
	var recs []Recommendation

	for _, node := range sg.Nodes {
		if node.Label != candidateLabel || seen[node.ID] {
			continue
		}
		seen[node.ID] = true

		personalization, err := r.personalizationComponent(ctx, node, entities)
		if err != nil {
			return nil, err
		}

		similarity := scores[node.ID] // 0 for nodes reached only by expansion
		recs = append(recs, Recommendation{
			Node:                     node,
			SimilarityComponent:      similarity,
			PersonalizationComponent: personalization,
			FinalScore:               r.Config.SimilarityWeight*similarity + r.Config.PersonalizationWeight*personalization,
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].FinalScore != recs[j].FinalScore {
			return recs[i].FinalScore > recs[j].FinalScore
		}
		return recs[i].Node.ID < recs[j].Node.ID
	})

	if len(recs) > r.Config.MaxResults {
		recs = recs[:r.Config.MaxResults]
	}
	return recs, nil
}

// personalizationComponent scores a candidate against the extracted entities.
// With no extractable entities the component is always 0 and ranking
// degenerates to pure similarity order.
func (r *Retriever) personalizationComponent(ctx context.Context, node graph.Node, entities analyzer.Entities) (float64, error) {
	if entities.Empty() {
		return 0, nil
	}

	var component float64

	if entities.HouseType != "" {
		houses, err := r.Store.Neighbors(ctx, node.ID, graph.RelSuitableFor, graph.DirectionOut)
		if err != nil {
			return 0, err
		}
		matched := false
		for _, h := range houses {
			if h.Node.StringProp("type") == entities.HouseType {
				matched = true
				break
			}
		}
		if matched {
			component += houseMatchBonus
		} else if len(houses) > 0 {
			component += houseConflictPenalty
		}
	}

	if entities.Category != "" {
		categories, err := r.Store.Neighbors(ctx, node.ID, graph.RelImproves, graph.DirectionOut)
		if err != nil {
			return 0, err
		}
		for _, c := range categories {
			if c.Node.StringProp("name") == entities.Category {
				component += categoryMatchBonus
				break
			}
		}
	}

	return component, nil
}

// personalizeTips adjusts tip savings by the user's house type and orders
// them by return on effort for the generator payload.
func (r *Retriever) personalizeTips(ctx context.Context, sg Subgraph, entities analyzer.Entities) ([]PersonalizedTip, error) {
	factor, err := r.heatingFactor(ctx, entities.HouseType)
	if err != nil {
		return nil, err
	}

	var tips []PersonalizedTip
	for _, node := range sg.Nodes {
		if node.Label != candidateLabel {
			continue
		}
		tip := PersonalizedTip{
			ID:          node.ID,
			Action:      node.StringProp("action"),
			Description: node.StringProp("description"),
			SavingsGBP:  node.FloatProp("savings_gbp"),
			SavingsCO2:  node.FloatProp("savings_co2"),
			Difficulty:  node.StringProp("difficulty"),
			Category:    node.StringProp("category"),
		}

		tip.PersonalizedSavingsGBP = tip.SavingsGBP
		tip.PersonalizedSavingsCO2 = tip.SavingsCO2
		if tip.Category == "heating" && factor != 1.0 {
			tip.PersonalizedSavingsGBP = tip.SavingsGBP * factor
			tip.PersonalizedSavingsCO2 = tip.SavingsCO2 * factor
		}

		weight, ok := difficultyWeights[tip.Difficulty]
		if !ok {
			weight = 2
		}
		tip.ROI = tip.PersonalizedSavingsGBP / weight
		tips = append(tips, tip)
	}

	sort.Slice(tips, func(i, j int) bool {
		if tips[i].ROI != tips[j].ROI {
			return tips[i].ROI > tips[j].ROI
		}
		return tips[i].ID < tips[j].ID
	})
	return tips, nil
}

func (r *Retriever) heatingFactor(ctx context.Context, houseType string) (float64, error) {
	if houseType == "" {
		return 1.0, nil
	}
	houses, err := r.Store.NodesByLabel(ctx, graph.LabelHouseType)
	if err != nil {
		return 0, err
	}
	for _, h := range houses {
		if h.StringProp("type") == houseType {
			if f := h.FloatProp("heating_kwh_factor"); f > 0 {
				return f, nil
			}
		}
	}
	return 1.0, nil
}

// buildEnhancedQuery appends extracted entities to the raw text so the query
// embedding leans toward the user's situation.
func buildEnhancedQuery(qc analyzer.QueryContext) string {
	parts := []string{qc.RawQuery}
	if qc.Entities.Category != "" {
		parts = append(parts, fmt.Sprintf("energy category: %s", qc.Entities.Category))
	}
	if qc.Entities.HouseType != "" {
		parts = append(parts, fmt.Sprintf("house type: %s", qc.Entities.HouseType))
	}
	if qc.Entities.Problem != "" {
		parts = append(parts, fmt.Sprintf("problem: %s", qc.Entities.Problem))
	}
	return strings.Join(parts, " ")
}

// serializeContext renders the retrieval evidence as text for the generator
// prompt.
func serializeContext(res Result) string {
	var parts []string
	parts = append(parts, "Graph analysis results:")

	parts = append(parts, fmt.Sprintf("\nTop matched nodes (%d):", len(res.Matched)))
	for i, m := range res.Matched {
		if i >= 5 {
			break
		}
		parts = append(parts, fmt.Sprintf("- %s: %s (score: %.3f)", m.Node.Label, m.Node.DisplayName(), m.Score))
	}

	parts = append(parts, fmt.Sprintf("\nSubgraph contains %d nodes and %d edges.",
		len(res.Subgraph.Nodes), len(res.Subgraph.Edges)))

	if len(res.Subgraph.Edges) > 0 {
		parts = append(parts, "\nKey relationships:")
		for i, e := range res.Subgraph.Edges {
			if i >= 10 {
				break
			}
			parts = append(parts, fmt.Sprintf("- %s --[%s]--> %s", e.Source, e.Relationship, e.Target))
		}
	}

	if len(res.GraphPaths) > 0 {
		parts = append(parts, fmt.Sprintf("\nFound %d meaningful paths:", len(res.GraphPaths)))
		for i, p := range res.GraphPaths {
			if i >= 5 {
				break
			}
			parts = append(parts, fmt.Sprintf("- Path: %s", strings.Join(p, " -> ")))
		}
	}

	return strings.Join(parts, "\n")
}

func buildExplanation(res Result) string {
	if len(res.Matched) == 0 {
		return "No nodes matched the query."
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("GraphRAG found %d relevant nodes:", len(res.Matched)))
	for i, m := range res.Matched {
		if i >= 3 {
			break
		}
		parts = append(parts, fmt.Sprintf("%d. %s '%s' (relevance: %.2f)", i+1, m.Node.Label, m.Node.DisplayName(), m.Score))
	}
	if len(res.GraphPaths) > 0 {
		parts = append(parts, fmt.Sprintf(
			"Discovered %d connections between concepts, showing how energy-saving tips relate to categories and fuel types.",
			len(res.GraphPaths)))
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
