package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func anthropicTestProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
	)
	return &AnthropicProvider{
		client: &client,
		model:  "claude-haiku-4-5-20251001",
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_01",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": `{"templates":[{"text":"{character} buys {operand_1} apples and then {operand_2} more."}]}`},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage": map[string]any{
				"input_tokens":  120,
				"output_tokens": 45,
			},
		})
	}

	p := anthropicTestProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You write short maths word problems for UK primary school children.",
		Messages:  []Message{{Role: RoleUser, Content: "Write a year 3 addition template with a shopping theme."}},
		MaxTokens: 512,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Usage.InputTokens != 120 || resp.Usage.OutputTokens != 45 {
		t.Errorf("usage = %d/%d, want 120/45", resp.Usage.InputTokens, resp.Usage.OutputTokens)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q, want end", resp.StopReason)
	}

	var parsed struct {
		Templates []struct {
			Text string `json:"text"`
		} `json:"templates"`
	}
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		t.Fatalf("content not JSON: %v", err)
	}
	if len(parsed.Templates) != 1 {
		t.Fatalf("template count = %d", len(parsed.Templates))
	}
}

func TestAnthropicProvider_RateLimited(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"type": "error",
			"error": map[string]any{
				"type":    "rate_limit_error",
				"message": "rate limit exceeded",
			},
		})
	}

	p := anthropicTestProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "template please"}},
		MaxTokens: 128,
	})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("error = %T (%v), want ErrRateLimit", err, err)
	}
}

func TestAnthropicProvider_ServerDown(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"type": "error",
			"error": map[string]any{
				"type":    "api_error",
				"message": "overloaded",
			},
		})
	}

	p := anthropicTestProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "template please"}},
		MaxTokens: 128,
	})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("error = %T (%v), want ErrProviderUnavailable", err, err)
	}
}

func TestAnthropicProvider_ModelAliases(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
	}
	for _, tc := range cases {
		if got := resolveModel(tc.name, anthropicModels); got != tc.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
