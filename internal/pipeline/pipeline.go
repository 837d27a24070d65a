// Package pipeline sequences the three request stages as an explicit state
// machine: ANALYZING -> RETRIEVING -> GENERATING -> DONE, with one
// conditional edge into fallback generation when retrieval comes back empty
// or a provider is unavailable.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/wattwise/wattwise/internal/analyzer"
	"github.com/wattwise/wattwise/internal/generator"
	"github.com/wattwise/wattwise/internal/llm"
	"github.com/wattwise/wattwise/internal/retriever"
)

type State string

const (
	StateAnalyzing  State = "ANALYZING"
	StateRetrieving State = "RETRIEVING"
	StateGenerating State = "GENERATING"
	StateDone       State = "DONE"
)

// Outcome is the terminal pipeline result. Every run ends with a response:
// full, fallback, or degraded — never a partial one.
type Outcome struct {
	RequestID    string                `json:"request_id"`
	Query        string                `json:"query"`
	QueryContext analyzer.QueryContext `json:"query_context"`
	Retrieval    retriever.Result      `json:"retrieval"`
	Response     string                `json:"response"`
	Degraded     bool                  `json:"degraded"`
	DegradedWhy  string                `json:"degraded_reason,omitempty"`
	Fallback     bool                  `json:"fallback"`
	States       []State               `json:"states"`
}

type Pipeline struct {
	Analyzer  *analyzer.Analyzer
	Retriever *retriever.Retriever
	Generator *generator.Generator
	Timeout   time.Duration
}

func New(a *analyzer.Analyzer, r *retriever.Retriever, g *generator.Generator, timeout time.Duration) *Pipeline {
	return &Pipeline{Analyzer: a, Retriever: r, Generator: g, Timeout: timeout}
}

// recoverable reports whether the error should degrade the response instead
// of failing the request: provider outages and the request deadline.
func recoverable(err error) bool {
	return errors.Is(err, llm.ErrProvider) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

// Run executes the pipeline for one request. All state is local to the call;
// concurrent runs share nothing but the read-only store and index. A non-nil
// error means a local invariant was violated (bad data, dimension mismatch),
// not a collaborator outage.
func (p *Pipeline) Run(ctx context.Context, query string) (Outcome, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	out := Outcome{
		RequestID: uuid.New().String(),
		Query:     query,
	}

	state := StateAnalyzing
	for state != StateDone {
		out.States = append(out.States, state)

		switch state {
		case StateAnalyzing:
			out.QueryContext = p.Analyzer.Analyze(query)
			log.Printf("[%s] analyzed: intent=%s urgency=%s", out.RequestID, out.QueryContext.Intent, out.QueryContext.Urgency)
			state = StateRetrieving

		case StateRetrieving:
			res, err := p.Retriever.Retrieve(ctx, out.QueryContext)
			if err != nil {
				if !recoverable(err) {
					return Outcome{}, fmt.Errorf("retrieval failed: %w", err)
				}
				log.Printf("[%s] retrieval degraded: %v", out.RequestID, err)
				out.Degraded = true
				out.DegradedWhy = err.Error()
				out.Fallback = true
			} else {
				out.Retrieval = res
				if res.Empty() {
					// Conditional short-circuit edge: empty retrieval is a
					// valid state, answered by the fallback generator.
					out.Fallback = true
				}
			}
			state = StateGenerating

		case StateGenerating:
			if out.Fallback {
				out.Response = generator.Fallback(out.Retrieval)
				state = StateDone
				break
			}
			response, err := p.Generator.Generate(ctx, out.QueryContext, out.Retrieval)
			if err != nil {
				if !recoverable(err) {
					return Outcome{}, fmt.Errorf("generation failed: %w", err)
				}
				log.Printf("[%s] generation degraded: %v", out.RequestID, err)
				out.Degraded = true
				out.DegradedWhy = err.Error()
				out.Response = generator.Fallback(out.Retrieval)
			} else {
				out.Response = response
			}
			state = StateDone
		}
	}
	out.States = append(out.States, StateDone)

	return out, nil
}
