package graph

import "context"

// Store is the read contract the retrieval path depends on. Both the
// in-memory store and the Neo4j-backed store implement it; implementations
// must be safe for unsynchronized concurrent reads once built.
type Store interface {
	// GetNode returns the node with the given id or ErrNotFound.
	GetNode(ctx context.Context, id string) (Node, error)

	// Neighbors returns the nodes one hop from id. An empty relationship
	// matches every relationship type. A missing node or a node with no
	// matching edges yields an empty slice, not an error. Ordering is
	// deterministic for fixed graph contents.
	Neighbors(ctx context.Context, id string, relationship string, dir Direction) ([]Neighbor, error)

	// NodesByLabel returns every node carrying the label, ordered by id.
	NodesByLabel(ctx context.Context, label string) ([]Node, error)

	// Statistics reports node/edge counts and per-kind histograms.
	Statistics(ctx context.Context) (Stats, error)
}
