package retriever

import (
	"context"
	"sort"

	"github.com/wattwise/wattwise/internal/graph"
)

// expansion is the bounded BFS result: the evidence subgraph plus the
// shortest path from a matched node to every node it discovered.
type expansion struct {
	subgraph Subgraph
	traces   [][]string
}

type frontierEntry struct {
	id    string
	depth int
	path  []string
}

// expand performs breadth-first traversal from the matched node ids up to
// hopCount hops, following edges in both directions. Visited tracking makes
// it safe on cyclic graphs; BFS order means the recorded path for each node
// is a shortest one.
func (r *Retriever) expand(ctx context.Context, matchedIDs []string, hopCount int) (expansion, error) {
	visited := make(map[string]bool)
	edgeSeen := make(map[string]bool)
	var exp expansion

	queue := make([]frontierEntry, 0, len(matchedIDs))
	for _, id := range matchedIDs {
		if visited[id] {
			continue
		}
		visited[id] = true
		queue = append(queue, frontierEntry{id: id, depth: 0, path: []string{id}})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		node, err := r.Store.GetNode(ctx, cur.id)
		if err != nil {
			return expansion{}, err
		}
		exp.subgraph.Nodes = append(exp.subgraph.Nodes, node)
		exp.traces = append(exp.traces, cur.path)

		if cur.depth >= hopCount {
			continue
		}

		neighbors, err := r.Store.Neighbors(ctx, cur.id, "", graph.DirectionBoth)
		if err != nil {
			return expansion{}, err
		}
		for _, nb := range neighbors {
			edge := graph.Edge{
				Source:       cur.id,
				Target:       nb.Node.ID,
				Relationship: nb.Relationship,
				Properties:   nb.EdgeProperties,
			}
			if nb.Direction == graph.DirectionIn {
				edge.Source, edge.Target = nb.Node.ID, cur.id
			}
			key := edge.Source + "|" + edge.Relationship + "|" + edge.Target
			if !edgeSeen[key] {
				edgeSeen[key] = true
				exp.subgraph.Edges = append(exp.subgraph.Edges, edge)
			}

			if visited[nb.Node.ID] {
				continue
			}
			visited[nb.Node.ID] = true
			path := append(append([]string{}, cur.path...), nb.Node.ID)
			queue = append(queue, frontierEntry{id: nb.Node.ID, depth: cur.depth + 1, path: path})
		}
	}

	sort.Slice(exp.subgraph.Nodes, func(i, j int) bool {
		return exp.subgraph.Nodes[i].ID < exp.subgraph.Nodes[j].ID
	})
	return exp, nil
}

const (
	maxPathLength = 4
	maxPathCount  = 10
)

// findPaths collects short directed simple paths between pairs of matched
// nodes. These connect the matched concepts for the explanation trace.
func (r *Retriever) findPaths(ctx context.Context, matchedIDs []string) ([][]string, error) {
	paths := [][]string{}
	for i, source := range matchedIDs {
		for _, target := range matchedIDs[i+1:] {
			if len(paths) >= maxPathCount {
				return paths, nil
			}
			found, err := r.simplePaths(ctx, source, target, maxPathLength)
			if err != nil {
				return nil, err
			}
			for _, p := range found {
				if len(paths) >= maxPathCount {
					break
				}
				paths = append(paths, p)
			}
		}
	}
	return paths, nil
}

func (r *Retriever) simplePaths(ctx context.Context, source, target string, maxLen int) ([][]string, error) {
	var results [][]string
	onPath := map[string]bool{source: true}

	var walk func(id string, path []string) error
	walk = func(id string, path []string) error {
		if len(path) > maxLen {
			return nil
		}
		if id == target {
			results = append(results, append([]string{}, path...))
			return nil
		}
		neighbors, err := r.Store.Neighbors(ctx, id, "", graph.DirectionOut)
		if err != nil {
			return err
		}
		for _, nb := range neighbors {
			if onPath[nb.Node.ID] {
				continue
			}
			onPath[nb.Node.ID] = true
			if err := walk(nb.Node.ID, append(path, nb.Node.ID)); err != nil {
				return err
			}
			delete(onPath, nb.Node.ID)
		}
		return nil
	}

	if err := walk(source, []string{source}); err != nil {
		return nil, err
	}
	return results, nil
}
