// Package generator turns a retrieval result into natural-language advice
// via the configured LLM, with a deterministic fallback when the provider is
// unavailable.
package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/wattwise/wattwise/internal/analyzer"
	"github.com/wattwise/wattwise/internal/llm"
	"github.com/wattwise/wattwise/internal/retriever"
)

const systemPrompt = `You are an expert energy efficiency coach for UK homes.
You provide personalized, actionable advice based on official UK ECUK 2025 government data.
Your responses should be:
- Specific with actual £/year and kg CO2 savings
- Personalized to the user's house type
- Prioritized by impact (high/medium/low)
- Include difficulty ratings
- Cite data sources (ECUK 2025)
- Friendly and encouraging`

type Generator struct {
	LLM llm.LLMClient
}

func New(llmClient llm.LLMClient) *Generator {
	return &Generator{LLM: llmClient}
}

// Generate produces the response text. Provider failures are surfaced to the
// caller, which decides whether to fall back; no retries happen here.
func (g *Generator) Generate(ctx context.Context, qc analyzer.QueryContext, res retriever.Result) (string, error) {
	if g.LLM == nil {
		return "", fmt.Errorf("%w: no generation client configured", llm.ErrProvider)
	}
	prompt := buildPrompt(qc, res)
	response, err := g.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("response generation failed: %w", err)
	}
	return response, nil
}

func buildPrompt(qc analyzer.QueryContext, res retriever.Result) string {
	var parts []string
	parts = append(parts, systemPrompt, "")
	parts = append(parts, fmt.Sprintf("User Query: %s", qc.RawQuery), "")

	if !qc.Entities.Empty() {
		parts = append(parts, "User Context:")
		if qc.Entities.HouseType != "" {
			parts = append(parts, fmt.Sprintf("- House type: %s", qc.Entities.HouseType))
		}
		if qc.Entities.Bedrooms > 0 {
			parts = append(parts, fmt.Sprintf("- Bedrooms: %d", qc.Entities.Bedrooms))
		}
		if qc.Entities.Category != "" {
			parts = append(parts, fmt.Sprintf("- Energy category of interest: %s", qc.Entities.Category))
		}
		parts = append(parts, "")
	}

	parts = append(parts, "Graph Analysis Results:", res.Context, "")

	if len(res.PersonalizedTips) > 0 {
		parts = append(parts, "Personalized Recommendations (from graph):")
		for i, tip := range res.PersonalizedTips {
			if i >= 5 {
				break
			}
			parts = append(parts, fmt.Sprintf(
				"%d. %s - Saves £%.0f/year, %.0f kg CO2/year, Difficulty: %s, Category: %s",
				i+1, tip.Action, tip.PersonalizedSavingsGBP, tip.PersonalizedSavingsCO2, tip.Difficulty, tip.Category))
		}
		parts = append(parts, "")
	}

	parts = append(parts,
		"Generate a personalized, friendly response with specific recommendations. "+
			"Include percentages vs UK average, specific savings, and prioritize by impact.")

	return strings.Join(parts, "\n")
}

// Fallback assembles a response without the LLM: ranked tips when retrieval
// found any, a generic apology otherwise. Used for empty retrievals and for
// provider outages.
func Fallback(res retriever.Result) string {
	if len(res.PersonalizedTips) == 0 {
		return "I couldn't find recommendations matching your question. " +
			"Try asking about heating, lighting, appliances, hot water, or cooking — " +
			"for example: \"How do I cut my heating bills in a 2-bed flat?\""
	}

	parts := []string{"Based on UK ECUK 2025 data, here are personalized recommendations:\n"}
	for i, tip := range res.PersonalizedTips {
		if i >= 5 {
			break
		}
		impact := "LOW"
		if tip.PersonalizedSavingsGBP > 50 {
			impact = "HIGH"
		} else if tip.PersonalizedSavingsGBP > 20 {
			impact = "MEDIUM"
		}
		parts = append(parts, fmt.Sprintf(
			"%d. %s\n   Saves: £%.0f/year, %.0f kg CO2/year\n   Difficulty: %s, Impact: %s",
			i+1, tip.Action, tip.PersonalizedSavingsGBP, tip.PersonalizedSavingsCO2, tip.Difficulty, impact))
	}
	return strings.Join(parts, "\n")
}
