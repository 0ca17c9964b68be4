// Package openai provides an OpenAI-compatible llm.Provider implementation.
//
// Any service speaking the OpenAI chat completions wire format works through
// a base URL override: Groq, Azure OpenAI, local inference servers.
//
// Example:
//
//	provider, err := openai.NewProvider(cfg.LLMAPIKey,
//	    openai.WithBaseURL("https://api.groq.com/openai/v1"),
//	    openai.WithModel("llama-3.3-70b-versatile"))
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/akolosov/fincoach/internal/common"
	"github.com/akolosov/fincoach/internal/llm"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sethvargo/go-retry"
)

const (
	// DefaultBaseURL is the default OpenAI API base URL.
	DefaultBaseURL = "https://api.openai.com/v1"

	defaultModel          = "gpt-4o"
	defaultRequestTimeout = 60 * time.Second
	defaultMaxRetries     = 3
	defaultInitialBackoff = 500 * time.Millisecond
)

// Provider implements llm.Provider for OpenAI-compatible APIs. Calls carry a
// per-attempt timeout and are retried with exponential backoff on rate
// limits, server errors, and transport failures.
type Provider struct {
	client         openai.Client
	apiKey         string
	baseURL        string
	model          string
	requestTimeout time.Duration
	maxRetries     uint64
	initialBackoff time.Duration
}

// ProviderOption is a function that configures a Provider.
type ProviderOption func(*Provider)

// WithModel sets the model to use for completions.
func WithModel(model string) ProviderOption {
	return func(p *Provider) {
		p.model = model
	}
}

// WithBaseURL sets a custom base URL for OpenAI-compatible APIs.
func WithBaseURL(baseURL string) ProviderOption {
	return func(p *Provider) {
		p.baseURL = baseURL
	}
}

// WithRequestTimeout sets the per-attempt timeout for completion calls.
func WithRequestTimeout(d time.Duration) ProviderOption {
	return func(p *Provider) {
		p.requestTimeout = d
	}
}

// WithMaxRetries sets how many times a retryable failure is re-attempted.
func WithMaxRetries(n uint64) ProviderOption {
	return func(p *Provider) {
		p.maxRetries = n
	}
}

// NewProvider creates a provider with the given API key.
//
// If apiKey is empty, the OPENAI_API_KEY environment variable is tried; when
// no key can be found the constructor fails with
// common.ErrorConfigurationMissing so callers can surface a configuration
// error instead of a failed call.
func NewProvider(apiKey string, opts ...ProviderOption) (*Provider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, common.ErrorConfigurationMissing
	}

	p := &Provider{
		apiKey:         apiKey,
		baseURL:        DefaultBaseURL,
		model:          defaultModel,
		requestTimeout: defaultRequestTimeout,
		maxRetries:     defaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.client = openai.NewClient(
		option.WithAPIKey(p.apiKey),
		option.WithBaseURL(p.baseURL),
	)

	return p, nil
}

// Complete sends messages to the model and returns the full text response.
func (p *Provider) Complete(ctx context.Context, messages []llm.Message, opts ...llm.CallOption) (string, error) {
	return p.complete(ctx, messages, llm.ApplyCallOptions(opts), false)
}

// CompleteJSON sends messages with response_format set to a JSON object.
func (p *Provider) CompleteJSON(ctx context.Context, messages []llm.Message, opts ...llm.CallOption) (string, error) {
	return p.complete(ctx, messages, llm.ApplyCallOptions(opts), true)
}

func (p *Provider) complete(ctx context.Context, messages []llm.Message, cfg llm.CallConfig, jsonMode bool) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: convertMessages(messages),
	}
	if cfg.Temperature != nil {
		params.Temperature = openai.Float(*cfg.Temperature)
	}
	if cfg.MaxTokens > 0 {
		params.MaxTokens = openai.Int(cfg.MaxTokens)
	}
	if jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}

	var content string
	backoff := retry.WithMaxRetries(p.maxRetries, retry.NewExponential(p.initialBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, p.requestTimeout)
		defer cancel()

		completion, err := p.client.Chat.Completions.New(attemptCtx, params)
		if err != nil {
			if isRetryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}

		if len(completion.Choices) == 0 {
			return fmt.Errorf("%w: completion carried no choices", common.ErrorUpstreamUnavailable)
		}

		content = completion.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorUpstreamUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}

	return content, nil
}

// GetModel returns the model name being used.
func (p *Provider) GetModel() string {
	return p.model
}

// GetBaseURL returns the base URL being used for API requests.
func (p *Provider) GetBaseURL() string {
	return p.baseURL
}

// isRetryable reports whether a failed attempt is worth repeating: rate
// limits, server-side errors, and transport-level failures. Client-side
// errors (bad request, bad key) are not.
func isRetryable(err error) bool {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == http.StatusTooManyRequests || apierr.StatusCode >= 500
	}
	return true
}

func convertMessages(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			converted = append(converted, openai.SystemMessage(msg.Content))
		case llm.RoleUser:
			converted = append(converted, openai.UserMessage(msg.Content))
		case llm.RoleAssistant:
			converted = append(converted, openai.AssistantMessage(msg.Content))
		default:
			// unknown roles degrade to user messages
			converted = append(converted, openai.UserMessage(msg.Content))
		}
	}

	return converted
}
