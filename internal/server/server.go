package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wattwise/wattwise/internal/analyzer"
	"github.com/wattwise/wattwise/internal/config"
	"github.com/wattwise/wattwise/internal/generator"
	"github.com/wattwise/wattwise/internal/graph"
	"github.com/wattwise/wattwise/internal/llm"
	"github.com/wattwise/wattwise/internal/pipeline"
	"github.com/wattwise/wattwise/internal/retriever"
	"github.com/wattwise/wattwise/internal/vector"
)

type Server struct {
	Pipeline *pipeline.Pipeline
	Store    graph.Store
	Mode     string
}

func New(p *pipeline.Pipeline, store graph.Store, mode string) *Server {
	return &Server{Pipeline: p, Store: store, Mode: mode}
}

// NewFromConfig wires the whole application: graph store, similarity index,
// provider clients, and the pipeline. The store and index are built once
// here and shared read-only across requests.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Server, error) {
	nodes, edges, err := graph.LoadData(cfg.Graph.DataFile)
	if err != nil {
		return nil, err
	}

	var store graph.Store
	switch cfg.Graph.Backend {
	case "neo4j":
		neoStore, err := graph.NewNeo4jStore(ctx, cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password)
		if err != nil {
			return nil, err
		}
		if err := neoStore.Load(ctx, nodes, edges); err != nil {
			return nil, err
		}
		store = neoStore
	default:
		memStore, err := graph.NewMemoryStore(nodes, edges)
		if err != nil {
			return nil, err
		}
		store = memStore
	}
	log.Printf("Graph loaded: %d nodes, %d edges (backend: %s)", len(nodes), len(edges), cfg.Graph.Backend)

	llmClient, embedderClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	index, err := vector.Build(ctx, store, embedderClient)
	if err != nil {
		return nil, err
	}

	p := pipeline.New(
		analyzer.New(),
		retriever.New(store, index, embedderClient, cfg.Retrieval),
		generator.New(llmClient),
		time.Duration(cfg.Server.TimeoutSeconds)*time.Second,
	)

	return New(p, store, cfg.Graph.Backend), nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/", s.Root)
	r.GET("/api/health", s.Health)
	r.GET("/api/graph/stats", s.GraphStats)
	r.POST("/api/chat", s.Chat)
	r.POST("/api/analyze", s.Analyze)

	return r
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *Server) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	out, err := s.Pipeline.Run(c.Request.Context(), req.Message)
	if err != nil {
		log.Printf("Pipeline failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": out.Response,
		"query_context": gin.H{
			"entities": out.QueryContext.Entities,
			"intent":   out.QueryContext.Intent,
			"urgency":  out.QueryContext.Urgency,
		},
		"degraded": out.Degraded,
	})
}

func (s *Server) Analyze(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	out, err := s.Pipeline.Run(c.Request.Context(), req.Message)
	if err != nil {
		log.Printf("Pipeline failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	matched := out.Retrieval.Matched
	if len(matched) > 10 {
		matched = matched[:10]
	}
	paths := out.Retrieval.GraphPaths
	if len(paths) > 10 {
		paths = paths[:10]
	}

	c.JSON(http.StatusOK, gin.H{
		"response": out.Response,
		"explanation": gin.H{
			"query_analysis": gin.H{
				"entities": out.QueryContext.Entities,
				"intent":   out.QueryContext.Intent,
				"urgency":  out.QueryContext.Urgency,
			},
			"graph_traversal": gin.H{
				"matched_nodes_count": len(out.Retrieval.Matched),
				"subgraph_nodes":      len(out.Retrieval.Subgraph.Nodes),
				"paths_found":         len(out.Retrieval.GraphPaths),
				"explanation":         out.Retrieval.Explanation,
			},
			"tips_retrieved": len(out.Retrieval.PersonalizedTips),
			"states":         out.States,
			"degraded":       out.Degraded,
		},
		"matched_nodes": matched,
		"graph_paths":   paths,
	})
}

func (s *Server) GraphStats(c *gin.Context) {
	stats, err := s.Store.Statistics(c.Request.Context())
	if err != nil {
		log.Printf("Failed to read graph statistics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read statistics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_nodes":        stats.TotalNodes,
		"total_edges":        stats.TotalEdges,
		"node_labels":        stats.NodeLabels,
		"relationship_types": stats.RelationshipTypes,
		"mode":               s.Mode,
	})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "mode": s.Mode})
}

func (s *Server) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "WattWise GraphRAG API",
		"version": "1.0.0",
		"health":  "/api/health",
	})
}
