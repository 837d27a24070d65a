package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port           string `toml:"port"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type GraphConfig struct {
	Backend  string `toml:"backend"` // "memory" or "neo4j"
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DataFile string `toml:"data_file"` // empty uses the embedded sample dataset
}

type RetrievalConfig struct {
	TopK                  int     `toml:"top_k"`
	HopCount              int     `toml:"hop_count"`
	MinScore              float64 `toml:"min_score"`
	SimilarityWeight      float64 `toml:"similarity_weight"`
	PersonalizationWeight float64 `toml:"personalization_weight"`
	MaxResults            int     `toml:"max_results"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	LLM       LLMConfig       `toml:"llm"`
	Graph     GraphConfig     `toml:"graph"`
	Retrieval RetrievalConfig `toml:"retrieval"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", TimeoutSeconds: 30},
		LLM: LLMConfig{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
		},
		Graph: GraphConfig{Backend: "memory"},
		Retrieval: RetrievalConfig{
			TopK:                  10,
			HopCount:              2,
			MinScore:              0.3,
			SimilarityWeight:      0.7,
			PersonalizationWeight: 0.3,
			MaxResults:            5,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when set.
func (c *Config) ApplyEnv() {
	overrides := map[string]*string{
		"PORT":                &c.Server.Port,
		"LLM_PROVIDER":        &c.LLM.Provider,
		"LLM_MODEL":           &c.LLM.Model,
		"LLM_EMBEDDING_MODEL": &c.LLM.EmbeddingModel,
		"LLM_API_KEY":         &c.LLM.APIKey,
		"LLM_BASE_URL":        &c.LLM.BaseURL,
		"GRAPH_BACKEND":       &c.Graph.Backend,
		"GRAPH_DATA_FILE":     &c.Graph.DataFile,
		"NEO4J_URI":           &c.Graph.URI,
		"NEO4J_USER":          &c.Graph.User,
		"NEO4J_PASSWORD":      &c.Graph.Password,
	}
	for key, dst := range overrides {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
}

// Validate rejects invalid retrieval parameters before the server starts
// serving, so a bad configuration can never surface at request time.
func (c *Config) Validate() error {
	r := c.Retrieval
	if r.TopK < 1 {
		return fmt.Errorf("retrieval.top_k must be >= 1, got %d", r.TopK)
	}
	if r.HopCount < 0 {
		return fmt.Errorf("retrieval.hop_count must be >= 0, got %d", r.HopCount)
	}
	if r.MinScore < 0 || r.MinScore > 1 {
		return fmt.Errorf("retrieval.min_score must be in [0,1], got %g", r.MinScore)
	}
	if r.PersonalizationWeight < 0 {
		return fmt.Errorf("retrieval.personalization_weight must be >= 0, got %g", r.PersonalizationWeight)
	}
	if r.SimilarityWeight < r.PersonalizationWeight {
		return fmt.Errorf("retrieval.similarity_weight (%g) must be >= personalization_weight (%g)",
			r.SimilarityWeight, r.PersonalizationWeight)
	}
	if r.MaxResults < 1 {
		return fmt.Errorf("retrieval.max_results must be >= 1, got %d", r.MaxResults)
	}
	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("server.timeout_seconds must be > 0, got %d", c.Server.TimeoutSeconds)
	}
	switch c.Graph.Backend {
	case "memory", "neo4j":
	default:
		return fmt.Errorf("graph.backend must be \"memory\" or \"neo4j\", got %q", c.Graph.Backend)
	}
	return nil
}
