package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/primagen/primagen/internal/llm"
)

// LLMService enriches procedurally selected scenarios with LLM-written
// narrative templates. Enrichment is strictly additive: any provider
// failure, schema violation, or empty result leaves the procedural scenario
// untouched, so question generation never depends on the LLM being up.
type LLMService struct {
	inner    Service
	provider llm.Provider
}

// NewLLM wraps a Service with LLM enrichment.
func NewLLM(inner Service, provider llm.Provider) *LLMService {
	return &LLMService{inner: inner, provider: provider}
}

// enrichmentSchema constrains the LLM to a list of template strings.
var enrichmentSchema = &llm.Schema{
	Name:        "scenario-templates",
	Description: "Narrative templates for a primary school maths question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"templates": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 3,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{"type": "string"},
					},
					"required": []string{"text"},
				},
			},
		},
		"required": []string{"templates"},
	},
}

type enrichmentResult struct {
	Templates []struct {
		Text string `json:"text"`
	} `json:"templates"`
}

func (s *LLMService) SelectScenario(ctx context.Context, req Request) (*Context, error) {
	sc, err := s.inner.SelectScenario(ctx, req)
	if err != nil {
		return nil, err
	}

	enriched, err := s.enrich(ctx, sc, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: scenario enrichment skipped: %v\n", err)
		return sc, nil
	}
	return enriched, nil
}

func (s *LLMService) enrich(ctx context.Context, sc *Context, req Request) (*Context, error) {
	ctx = llm.WithPurpose(ctx, "scenario-enrichment")

	prompt := fmt.Sprintf(
		"Write up to 3 one-sentence question templates for a year %d maths question.\n"+
			"Theme: %s. Setting: %s. Operation: %s.\n"+
			"Each template must contain the placeholders {character}, {operand_1} and {operand_2}, "+
			"and may use {item} and {location}. Use British English and keep the reading age low.",
		req.Level.Year, ThemeDisplayName(sc.Theme), sc.Setting.Location, req.MathModel)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:    "You write short, clear maths word problems for UK primary school children.",
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:    enrichmentSchema,
		MaxTokens: 512,
	})
	if err != nil {
		return nil, err
	}

	var result enrichmentResult
	if err := json.Unmarshal(resp.Content, &result); err != nil {
		return nil, fmt.Errorf("parse enrichment response: %w", err)
	}
	if len(result.Templates) == 0 {
		return nil, fmt.Errorf("enrichment returned no templates")
	}

	// LLM templates go first so the renderer prefers them; the procedural
	// bank stays as guaranteed coverage.
	templates := make([]Template, 0, len(result.Templates)+len(sc.Templates))
	for _, t := range result.Templates {
		if t.Text == "" {
			continue
		}
		templates = append(templates, Template{
			Models: []string{req.MathModel},
			Text:   t.Text,
		})
	}
	templates = append(templates, sc.Templates...)

	out := *sc
	out.Templates = templates
	return &out, nil
}
