package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattwise/wattwise/internal/analyzer"
	"github.com/wattwise/wattwise/internal/config"
	"github.com/wattwise/wattwise/internal/generator"
	"github.com/wattwise/wattwise/internal/graph"
	"github.com/wattwise/wattwise/internal/pipeline"
	"github.com/wattwise/wattwise/internal/retriever"
	"github.com/wattwise/wattwise/internal/vector"
)

type stubLLM struct{ response string }

func (s *stubLLM) Generate(_ context.Context, _ string) (string, error) {
	return s.response, nil
}

type stubEmbedder struct {
	vectors map[string][]float32
	def     []float32
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	for key, vec := range s.vectors {
		if strings.Contains(text, key) {
			return vec, nil
		}
	}
	return s.def, nil
}

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	nodes := []graph.Node{
		{ID: "category_heating", Label: graph.LabelCategory, Properties: map[string]interface{}{
			"name": "heating", "kwh_per_home": 744.0, "total_gwh": 20838.0, "percentage": 61.0, "fuel_type": "gas",
		}},
		{ID: "tip_draught", Label: graph.LabelTip, Properties: map[string]interface{}{
			"action": "Fit draught excluders", "description": "Seal gaps.",
			"savings_gbp": 45.0, "savings_co2": 80.0, "difficulty": "easy", "category": "heating",
		}},
	}
	edges := []graph.Edge{
		{Source: "tip_draught", Target: "category_heating", Relationship: graph.RelImproves},
	}
	store, err := graph.NewMemoryStore(nodes, edges)
	require.NoError(t, err)

	embedder := &stubEmbedder{
		vectors: map[string][]float32{
			"draught":         {1, 0},
			"Energy category": {0, 1},
		},
		def: []float32{1, 0},
	}
	idx, err := vector.Build(context.Background(), store, embedder)
	require.NoError(t, err)

	p := pipeline.New(
		analyzer.New(),
		retriever.New(store, idx, embedder, config.Default().Retrieval),
		generator.New(&stubLLM{response: "Seal those draughts."}),
		time.Minute,
	)
	return New(p, store, "memory")
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestChatEndpoint(t *testing.T) {
	router := testServer(t).SetupRouter()

	w, body := doJSON(t, router, http.MethodPost, "/api/chat", gin.H{"message": "how do I stop draughts"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Seal those draughts.", body["response"])
	assert.Equal(t, false, body["degraded"])
	assert.Contains(t, body, "query_context")
}

func TestChatEndpointRejectsMissingMessage(t *testing.T) {
	router := testServer(t).SetupRouter()

	w, _ := doJSON(t, router, http.MethodPost, "/api/chat", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := testServer(t).SetupRouter()

	w, body := doJSON(t, router, http.MethodPost, "/api/analyze", gin.H{"message": "how do I stop draughts"})
	require.Equal(t, http.StatusOK, w.Code)

	explanation, ok := body["explanation"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, explanation, "query_analysis")
	assert.Contains(t, explanation, "graph_traversal")
	assert.Contains(t, explanation, "states")
	assert.Contains(t, body, "matched_nodes")
}

func TestGraphStatsEndpoint(t *testing.T) {
	router := testServer(t).SetupRouter()

	w, body := doJSON(t, router, http.MethodGet, "/api/graph/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["total_nodes"])
	assert.Equal(t, float64(1), body["total_edges"])
	assert.Equal(t, "memory", body["mode"])
}

func TestHealthEndpoint(t *testing.T) {
	router := testServer(t).SetupRouter()

	w, body := doJSON(t, router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestRootEndpoint(t *testing.T) {
	router := testServer(t).SetupRouter()

	w, body := doJSON(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "version")
}
