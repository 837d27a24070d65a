package vector

import (
	"context"
	"fmt"
	"strings"

	"github.com/wattwise/wattwise/internal/graph"
)

// EmbeddingText renders a node's descriptive text for embedding. Nodes whose
// label has no free-text rendering yield "" and are left out of the index.
func EmbeddingText(n graph.Node, graphContext string) string {
	var parts []string

	switch n.Label {
	case graph.LabelCategory:
		parts = append(parts, fmt.Sprintf(
			"Energy category: %s. Consumes %g kWh per home annually (%g%% of total). Uses fuel type: %s.",
			n.StringProp("name"), n.FloatProp("kwh_per_home"), n.FloatProp("percentage"), n.StringProp("fuel_type")))

	case graph.LabelFuelType:
		parts = append(parts, fmt.Sprintf(
			"Fuel type: %s. Rate: £%.2f/kWh. CO2 emissions: %g kg CO2/kWh.",
			n.StringProp("name"), n.FloatProp("rate_gbp_kwh"), n.FloatProp("co2_kg_kwh")))

	case graph.LabelTip:
		parts = append(parts, fmt.Sprintf(
			"Energy saving tip: %s. %s Saves £%g/year and %g kg CO2/year. Difficulty: %s. Improves category: %s.",
			n.StringProp("action"), n.StringProp("description"),
			n.FloatProp("savings_gbp"), n.FloatProp("savings_co2"),
			n.StringProp("difficulty"), n.StringProp("category")))

	case graph.LabelHouseType:
		parts = append(parts, fmt.Sprintf(
			"House type: %s. Average size: %g sqm. Typical occupants: %g.",
			n.StringProp("type"), n.FloatProp("avg_size_sqm"), n.FloatProp("typical_occupants")))

	default:
		return ""
	}

	if graphContext != "" {
		parts = append(parts, fmt.Sprintf("Graph context: %s", graphContext))
	}

	return strings.Join(parts, " ")
}

// neighborContext summarizes up to five one-hop neighbors, so each embedding
// carries a little of the surrounding graph structure.
func neighborContext(ctx context.Context, store graph.Store, id string) (string, error) {
	neighbors, err := store.Neighbors(ctx, id, "", graph.DirectionOut)
	if err != nil {
		return "", err
	}
	if len(neighbors) > 5 {
		neighbors = neighbors[:5]
	}
	var texts []string
	for _, nb := range neighbors {
		texts = append(texts, fmt.Sprintf("%s %s: %s", nb.Relationship, nb.Node.Label, nb.Node.DisplayName()))
	}
	return strings.Join(texts, "; "), nil
}
