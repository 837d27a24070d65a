package graph

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jStore is the networked Store variant. It works against Neo4j and
// Memgraph, which share the Bolt protocol and the Cypher surface used here.
type Neo4jStore struct {
	driver neo4j.DriverWithContext
}

func NewNeo4jStore(ctx context.Context, uri, username, password string) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, err
	}
	log.Printf("Connected to graph database at %s", uri)
	return &Neo4jStore{driver: driver}, nil
}

func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Neo4jStore) execute(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// Load populates the database from the validated dataset. Called once at
// startup; MERGE keeps repeated startups idempotent.
func (s *Neo4jStore) Load(ctx context.Context, nodes []Node, edges []Edge) error {
	for _, n := range nodes {
		if err := ValidateNode(n); err != nil {
			return err
		}
		props := map[string]interface{}{}
		for k, v := range n.Properties {
			props[k] = v
		}
		_, err := s.execute(ctx, fmt.Sprintf(saveNodeQuery, n.Label), map[string]interface{}{
			"id":    n.ID,
			"props": props,
		})
		if err != nil {
			return fmt.Errorf("failed to save node %s: %w", n.ID, err)
		}
	}

	for _, e := range edges {
		if err := ValidateEdge(e); err != nil {
			return err
		}
		props := e.Properties
		if props == nil {
			props = map[string]interface{}{}
		}
		_, err := s.execute(ctx, fmt.Sprintf(saveEdgeQuery, e.Relationship), map[string]interface{}{
			"source": e.Source,
			"target": e.Target,
			"props":  props,
		})
		if err != nil {
			return fmt.Errorf("failed to save edge %s->%s: %w", e.Source, e.Target, err)
		}
	}

	return s.buildIndices(ctx)
}

func (s *Neo4jStore) buildIndices(ctx context.Context) error {
	for label := range requiredProperties {
		_, err := s.execute(ctx, fmt.Sprintf("CREATE INDEX ON :%s(id);", label), nil)
		if err != nil {
			// Index may already exist.
			log.Printf("Warning: failed to create index on :%s(id): %v", label, err)
		}
	}
	return nil
}

func (s *Neo4jStore) GetNode(ctx context.Context, id string) (Node, error) {
	result, err := s.execute(ctx, getNodeQuery, map[string]interface{}{"id": id})
	if err != nil {
		return Node{}, err
	}
	if len(result.Records) == 0 {
		return Node{}, fmt.Errorf("get node %q: %w", id, ErrNotFound)
	}
	return recordToNode(result.Records[0])
}

func (s *Neo4jStore) Neighbors(ctx context.Context, id string, relationship string, dir Direction) ([]Neighbor, error) {
	neighbors := []Neighbor{}

	run := func(query string, d Direction) error {
		result, err := s.execute(ctx, query, map[string]interface{}{"id": id, "rel": relationship})
		if err != nil {
			return err
		}
		for _, rec := range result.Records {
			node, err := recordToNode(rec)
			if err != nil {
				return err
			}
			rel, _ := rec.Get("relationship")
			edgeProps, _ := rec.Get("edge_props")
			n := Neighbor{Node: node, Direction: d}
			if r, ok := rel.(string); ok {
				n.Relationship = r
			}
			if p, ok := edgeProps.(map[string]interface{}); ok && len(p) > 0 {
				n.EdgeProperties = p
			}
			neighbors = append(neighbors, n)
		}
		return nil
	}

	if dir == DirectionOut || dir == DirectionBoth {
		if err := run(neighborsOutQuery, DirectionOut); err != nil {
			return nil, err
		}
	}
	if dir == DirectionIn || dir == DirectionBoth {
		if err := run(neighborsInQuery, DirectionIn); err != nil {
			return nil, err
		}
	}

	return neighbors, nil
}

func (s *Neo4jStore) NodesByLabel(ctx context.Context, label string) ([]Node, error) {
	if _, ok := requiredProperties[label]; !ok {
		return nil, fmt.Errorf("unknown label %q", label)
	}
	result, err := s.execute(ctx, fmt.Sprintf(nodesByLabelQuery, label), nil)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(result.Records))
	for _, rec := range result.Records {
		node, err := recordToNode(rec)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (s *Neo4jStore) Statistics(ctx context.Context) (Stats, error) {
	stats := Stats{
		NodeLabels:        make(map[string]int),
		RelationshipTypes: make(map[string]int),
	}

	result, err := s.execute(ctx, nodeStatsQuery, nil)
	if err != nil {
		return Stats{}, err
	}
	for _, rec := range result.Records {
		label, _ := rec.Get("label")
		count, _ := rec.Get("count")
		if l, ok := label.(string); ok {
			if c, ok := count.(int64); ok {
				stats.NodeLabels[l] = int(c)
				stats.TotalNodes += int(c)
			}
		}
	}

	result, err = s.execute(ctx, edgeStatsQuery, nil)
	if err != nil {
		return Stats{}, err
	}
	for _, rec := range result.Records {
		rel, _ := rec.Get("relationship")
		count, _ := rec.Get("count")
		if r, ok := rel.(string); ok {
			if c, ok := count.(int64); ok {
				stats.RelationshipTypes[r] = int(c)
				stats.TotalEdges += int(c)
			}
		}
	}

	return stats, nil
}

func recordToNode(rec *neo4j.Record) (Node, error) {
	idVal, _ := rec.Get("id")
	labelVal, _ := rec.Get("label")
	propsVal, _ := rec.Get("props")

	id, ok := idVal.(string)
	if !ok {
		return Node{}, fmt.Errorf("record missing string id")
	}
	label, _ := labelVal.(string)

	props := map[string]interface{}{}
	if p, ok := propsVal.(map[string]interface{}); ok {
		for k, v := range p {
			if k == "id" {
				continue
			}
			props[k] = v
		}
	}

	return Node{ID: id, Label: label, Properties: props}, nil
}
