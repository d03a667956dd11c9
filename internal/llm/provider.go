package llm

import (
	"context"
	"encoding/json"
)

// Provider is the interface the enrichment pipeline speaks to a model
// through. Implementations wrap one vendor SDK each; decorators add retry
// and event logging around any of them.
type Provider interface {
	// Generate sends the request and returns the model's reply. When the
	// request carries a Schema the reply Content is JSON validated against
	// it; otherwise Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the resolved model this provider targets.
	ModelID() string
}

// Request is one generation call.
type Request struct {
	// System sets the model's role, e.g. a primary maths question writer.
	System string

	// Messages is the conversation. Scenario enrichment sends a single
	// user message; multi-turn flows append assistant turns.
	Messages []Message

	// Schema, when set, makes the provider request structured output and
	// validate the reply against it.
	Schema *Schema

	// MaxTokens caps the reply length.
	MaxTokens int

	// Temperature in [0, 1]; zero means deterministic.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the reply must satisfy. Name doubles as the
// vendor-side schema identifier, kebab-case, e.g. "scenario-templates".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model's reply.
type Response struct {
	// Content is validated JSON when the request carried a Schema, raw
	// text otherwise.
	Content json.RawMessage

	// Usage is the token count the vendor reported.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized across vendors: "end" or "max_tokens".
	StopReason string
}

// Usage is the token consumption of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly alias to the provider's real model ID.
// Unknown names pass through untouched so callers can pin exact versions.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
