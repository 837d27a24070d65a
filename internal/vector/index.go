package vector

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/wattwise/wattwise/internal/graph"
	"github.com/wattwise/wattwise/internal/llm"
)

// Match is a node id with its clamped cosine similarity to a query vector.
type Match struct {
	NodeID string  `json:"node_id"`
	Score  float64 `json:"score"`
}

// Index holds precomputed embeddings for every node with descriptive text.
// Built once at startup, read-only afterwards.
type Index struct {
	dimension int
	ids       []string
	vectors   map[string][]float32
}

// Build embeds every eligible node in the store. All vectors must share one
// dimension; a provider returning a mismatched vector fails the build.
func Build(ctx context.Context, store graph.Store, embedder llm.EmbedderClient) (*Index, error) {
	if embedder == nil {
		return nil, fmt.Errorf("cannot build similarity index without an embedder")
	}

	idx := &Index{vectors: make(map[string][]float32)}

	for _, label := range graph.Labels {
		nodes, err := store.NodesByLabel(ctx, label)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s nodes: %w", label, err)
		}
		for _, n := range nodes {
			gctx, err := neighborContext(ctx, store, n.ID)
			if err != nil {
				return nil, err
			}
			text := EmbeddingText(n, gctx)
			if text == "" {
				continue
			}
			vec, err := embedder.Embed(ctx, text)
			if err != nil {
				return nil, fmt.Errorf("failed to embed node %s: %w", n.ID, err)
			}
			if idx.dimension == 0 {
				idx.dimension = len(vec)
			} else if len(vec) != idx.dimension {
				return nil, fmt.Errorf("embedding dimension mismatch for node %s: got %d, index has %d",
					n.ID, len(vec), idx.dimension)
			}
			idx.vectors[n.ID] = vec
			idx.ids = append(idx.ids, n.ID)
		}
	}

	sort.Strings(idx.ids)
	log.Printf("Indexed %d nodes for similarity search (dimension %d)", len(idx.ids), idx.dimension)
	return idx, nil
}

func (idx *Index) Size() int      { return len(idx.ids) }
func (idx *Index) Dimension() int { return idx.dimension }

// TopK returns up to k matches with score >= minScore, sorted descending by
// score with ascending-id tie-break. Never pads with below-threshold results.
func (idx *Index) TopK(queryVec []float32, k int, minScore float64) ([]Match, error) {
	if len(idx.ids) == 0 {
		return nil, nil
	}
	if len(queryVec) != idx.dimension {
		return nil, fmt.Errorf("query vector dimension %d does not match index dimension %d",
			len(queryVec), idx.dimension)
	}

	matches := make([]Match, 0, len(idx.ids))
	for _, id := range idx.ids {
		score := cosine(queryVec, idx.vectors[id])
		if score < 0 {
			score = 0
		}
		if score >= minScore {
			matches = append(matches, Match{NodeID: id, Score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].NodeID < matches[j].NodeID
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// cosine computes dot(a,b)/(|a|*|b|), treating zero-magnitude vectors as
// similarity 0 so they can never clear a positive threshold.
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
