package llm

import (
	"context"
	"errors"
)

// ErrProvider marks failures of an external LLM or embedding backend.
// Callers test for it with errors.Is and fall back instead of aborting.
var ErrProvider = errors.New("llm provider error")

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
