package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockResponse is one scripted reply for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// TemplatesResponse builds a scripted reply shaped like the scenario
// enrichment schema, one template object per text.
func TemplatesResponse(texts ...string) MockResponse {
	type tmpl struct {
		Text string `json:"text"`
	}
	var payload struct {
		Templates []tmpl `json:"templates"`
	}
	for _, t := range texts {
		payload.Templates = append(payload.Templates, tmpl{Text: t})
	}
	raw, _ := json.Marshal(payload)
	return MockResponse{
		Content: raw,
		Usage:   Usage{InputTokens: 120, OutputTokens: 40, TotalTokens: 160},
	}
}

// MockProvider replays scripted replies in order and records every request
// it sees, so enrichment code can be tested without network access.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	next   int
	Calls  []Request
}

// NewMockProvider creates a MockProvider that will play back the given
// replies in order.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// Generate returns the next scripted reply. An exhausted script reads as
// the provider being down.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if m.next >= len(m.script) {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("script exhausted after %d replies", m.next)}
	}
	r := m.script[m.next]
	m.next++

	if r.Err != nil {
		return nil, r.Err
	}
	return &Response{
		Content:    r.Content,
		Usage:      r.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse appends a reply to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, r)
}

// CallCount returns how many Generate calls have been made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
