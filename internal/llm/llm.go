// Package llm provides the abstraction over large-language-model providers.
//
// Providers handle API communication with a model service and return plain
// text. This design keeps providers focused on model concerns without
// coupling them to conversation orchestration: the services layer converts
// stored turns to Messages, assembles the system prompt, and decides what to
// do with the raw output.
package llm

import "context"

// Role identifies the author of a message sent to the model.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a completion request.
type Message struct {
	Role    Role
	Content string
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant-role message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// CallOption adjusts decoding parameters for a single completion call.
type CallOption func(*CallConfig)

// CallConfig carries per-call decoding parameters. Zero values mean
// "provider default".
type CallConfig struct {
	Temperature *float64
	MaxTokens   int64
}

// WithTemperature sets the sampling temperature for one call. Conversational
// call sites lean higher, structured-output call sites lean deterministic.
func WithTemperature(t float64) CallOption {
	return func(c *CallConfig) {
		c.Temperature = &t
	}
}

// WithMaxTokens caps the response length for one call.
func WithMaxTokens(n int64) CallOption {
	return func(c *CallConfig) {
		c.MaxTokens = n
	}
}

// ApplyCallOptions folds opts into a CallConfig.
func ApplyCallOptions(opts []CallOption) CallConfig {
	var cfg CallConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Provider defines the interface for model integrations.
type Provider interface {
	// Complete sends messages to the model and returns the full text response.
	Complete(ctx context.Context, messages []Message, opts ...CallOption) (string, error)

	// CompleteJSON sends messages with the provider constrained to emit a
	// single well-formed JSON object. The raw JSON text is returned; callers
	// own unmarshalling and schema validation.
	CompleteJSON(ctx context.Context, messages []Message, opts ...CallOption) (string, error)

	// GetModel returns the model name being used.
	GetModel() string
}
