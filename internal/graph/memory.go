package graph

import (
	"context"
	"fmt"
	"sort"
)

// MemoryStore holds the graph in adjacency maps. It is built once at startup
// and never mutated afterwards, so reads need no locking.
type MemoryStore struct {
	nodes   map[string]Node
	out     map[string][]Edge
	in      map[string][]Edge
	byLabel map[string][]string
	edges   []Edge
}

// NewMemoryStore validates and indexes the given nodes and edges. Duplicate
// ids, unknown labels or relationships, and dangling edge endpoints all fail
// the build.
func NewMemoryStore(nodes []Node, edges []Edge) (*MemoryStore, error) {
	s := &MemoryStore{
		nodes:   make(map[string]Node, len(nodes)),
		out:     make(map[string][]Edge),
		in:      make(map[string][]Edge),
		byLabel: make(map[string][]string),
	}

	for _, n := range nodes {
		if err := ValidateNode(n); err != nil {
			return nil, err
		}
		if _, dup := s.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		s.nodes[n.ID] = n
		s.byLabel[n.Label] = append(s.byLabel[n.Label], n.ID)
	}

	for _, e := range edges {
		if err := ValidateEdge(e); err != nil {
			return nil, err
		}
		if _, ok := s.nodes[e.Source]; !ok {
			return nil, fmt.Errorf("edge %s->%s: source node does not exist", e.Source, e.Target)
		}
		if _, ok := s.nodes[e.Target]; !ok {
			return nil, fmt.Errorf("edge %s->%s: target node does not exist", e.Source, e.Target)
		}
		s.out[e.Source] = append(s.out[e.Source], e)
		s.in[e.Target] = append(s.in[e.Target], e)
		s.edges = append(s.edges, e)
	}

	// Fixed ordering so retrieval results are reproducible run to run.
	for _, ids := range s.byLabel {
		sort.Strings(ids)
	}
	for _, adj := range []map[string][]Edge{s.out, s.in} {
		for _, list := range adj {
			sort.Slice(list, func(i, j int) bool {
				if list[i].Relationship != list[j].Relationship {
					return list[i].Relationship < list[j].Relationship
				}
				if list[i].Source != list[j].Source {
					return list[i].Source < list[j].Source
				}
				return list[i].Target < list[j].Target
			})
		}
	}

	return s, nil
}

func (s *MemoryStore) GetNode(ctx context.Context, id string) (Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, fmt.Errorf("get node %q: %w", id, ErrNotFound)
	}
	return n, nil
}

func (s *MemoryStore) Neighbors(ctx context.Context, id string, relationship string, dir Direction) ([]Neighbor, error) {
	neighbors := []Neighbor{}

	if dir == DirectionOut || dir == DirectionBoth {
		for _, e := range s.out[id] {
			if relationship != "" && e.Relationship != relationship {
				continue
			}
			neighbors = append(neighbors, Neighbor{
				Node:           s.nodes[e.Target],
				Relationship:   e.Relationship,
				Direction:      DirectionOut,
				EdgeProperties: e.Properties,
			})
		}
	}
	if dir == DirectionIn || dir == DirectionBoth {
		for _, e := range s.in[id] {
			if relationship != "" && e.Relationship != relationship {
				continue
			}
			neighbors = append(neighbors, Neighbor{
				Node:           s.nodes[e.Source],
				Relationship:   e.Relationship,
				Direction:      DirectionIn,
				EdgeProperties: e.Properties,
			})
		}
	}

	return neighbors, nil
}

func (s *MemoryStore) NodesByLabel(ctx context.Context, label string) ([]Node, error) {
	ids := s.byLabel[label]
	nodes := make([]Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, s.nodes[id])
	}
	return nodes, nil
}

func (s *MemoryStore) Statistics(ctx context.Context) (Stats, error) {
	stats := Stats{
		TotalNodes:        len(s.nodes),
		TotalEdges:        len(s.edges),
		NodeLabels:        make(map[string]int),
		RelationshipTypes: make(map[string]int),
	}
	for _, n := range s.nodes {
		stats.NodeLabels[n.Label]++
	}
	for _, e := range s.edges {
		stats.RelationshipTypes[e.Relationship]++
	}
	return stats, nil
}
