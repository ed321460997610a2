// Package llm abstracts the text-generation collaborator behind a small
// Provider interface with interchangeable vendor adapters. Grading and
// any future generation consumers talk to Provider only; retries and
// request logging are middleware decorators.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the request/response surface of the generation collaborator.
type Provider interface {
	// Generate sends a prompt and returns the response. When the
	// request carries a Schema, the provider uses its native structured
	// output mechanism and the returned Content is validated JSON.
	// Without a Schema, Content is the raw response text, which callers
	// must treat as untrusted (it may not be well-formed JSON).
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Grading uses a single user message.
	Messages []Message

	// Schema, when set, requests structured output conforming to it.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness in [0,1]. Zero is deterministic
	// and is the default for grading.
	Temperature float64
}

// Message is one turn in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "grading-result".
	Name string

	// Description tells the model what this schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is the generated output: validated JSON when the request
	// carried a Schema, raw text bytes otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens", or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
