package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	openai "github.com/sashabaranov/go-openai"
)

// Client is the interface all adapter implementations satisfy.
type Client interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*Response, error)
}

// Response holds the raw response content and token usage.
type Response struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// ProviderError wraps a failed model call: authentication, network, or an
// empty/declined response. The underlying cause is retrievable via Unwrap.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Default models per provider, used when no model is configured.
const (
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
	DefaultOpenAIModel    = openai.GPT4o
)

// ResolveModel returns the model that New will use for the provider.
func ResolveModel(provider, model string) string {
	if model != "" {
		return model
	}
	switch provider {
	case "openai":
		return DefaultOpenAIModel
	case "mock":
		return "mock"
	default:
		return DefaultAnthropicModel
	}
}

// New constructs a Client for the named provider. The credential is owned by
// the returned client — there is no process-global configuration, so multiple
// clients with different keys can coexist in one process.
func New(provider, apiKey, model string) (Client, error) {
	model = ResolveModel(provider, model)
	switch provider {
	case "anthropic":
		return NewAnthropicClient(apiKey, model), nil
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}

// ── AnthropicClient — Anthropic SDK (Production) ───────────

type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicClient(apiKey string, model string) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &AnthropicClient{client: &client, model: model}
}

func (c *AnthropicClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   4096,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	// Single attempt — retry policy belongs to the caller.
	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &ProviderError{Provider: "anthropic", Err: err}
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		return nil, &ProviderError{Provider: "anthropic", Err: fmt.Errorf("no text content in API response")}
	}

	return &Response{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

// ── OpenAIClient — go-openai chat completions ──────────────

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey string, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*Response, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
		},
	)
	if err != nil {
		return nil, &ProviderError{Provider: "openai", Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: "openai", Err: fmt.Errorf("no choices in API response")}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, &ProviderError{Provider: "openai", Err: fmt.Errorf("empty completion in API response")}
	}

	return &Response{
		Content:      content,
		PromptTokens: resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}
