package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMockProvider_PlaysScriptInOrder(t *testing.T) {
	mock := NewMockProvider(
		TemplatesResponse("{character} buys {operand_1} apples."),
		TemplatesResponse("{character} saves {operand_1} pounds."),
	)

	first, err := mock.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "shopping template"}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(string(first.Content), "apples") {
		t.Errorf("first reply = %s", first.Content)
	}
	if first.Usage.TotalTokens == 0 {
		t.Error("scripted reply carries no usage")
	}
	if first.StopReason != "end" {
		t.Errorf("stop reason = %q, want end", first.StopReason)
	}

	second, err := mock.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "pocket money template"}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(string(second.Content), "pounds") {
		t.Errorf("second reply = %s", second.Content)
	}
}

func TestMockProvider_ExhaustedScriptReadsAsDown(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("error = %T, want ErrProviderUnavailable", err)
	}
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	mock := NewMockProvider(TemplatesResponse("t"))

	_, _ = mock.Generate(context.Background(), Request{
		System:   "You write short maths word problems.",
		Messages: []Message{{Role: RoleUser, Content: "year 2 addition, cooking theme"}},
	})

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	got := mock.Calls[0]
	if !strings.Contains(got.System, "word problems") {
		t.Errorf("recorded system = %q", got.System)
	}
	if len(got.Messages) != 1 || !strings.Contains(got.Messages[0].Content, "cooking") {
		t.Errorf("recorded messages = %+v", got.Messages)
	}
}

func TestMockProvider_ScriptedErrors(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("error = %T, want ErrRateLimit", err)
	}
}

func TestTemplatesResponse_MatchesEnrichmentShape(t *testing.T) {
	resp := TemplatesResponse("one", "two")

	var parsed struct {
		Templates []struct {
			Text string `json:"text"`
		} `json:"templates"`
	}
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		t.Fatalf("content not JSON: %v", err)
	}
	if len(parsed.Templates) != 2 {
		t.Fatalf("template count = %d, want 2", len(parsed.Templates))
	}
	if parsed.Templates[1].Text != "two" {
		t.Errorf("second template = %q", parsed.Templates[1].Text)
	}

	if err := validateResponse(templatesSchema(), resp.Content); err != nil {
		t.Errorf("scripted reply fails the enrichment schema: %v", err)
	}
}

func TestPurposeTag(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("untagged purpose = %q, want unknown", p)
	}

	ctx = WithPurpose(ctx, "scenario-enrichment")
	if p := PurposeFrom(ctx); p != "scenario-enrichment" {
		t.Fatalf("purpose = %q, want scenario-enrichment", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "divination"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("claude-haiku-4-5-20251001")
	if c == nil {
		t.Fatal("default enrichment model missing from the price table")
	}
	got := c.Cost(1_000_000, 1_000_000)
	if got != c.InputPerMTok+c.OutputPerMTok {
		t.Errorf("Cost(1M, 1M) = %v, want %v", got, c.InputPerMTok+c.OutputPerMTok)
	}

	if LookupCost("not-a-model") != nil {
		t.Error("unknown model priced")
	}
}
