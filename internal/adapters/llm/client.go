// Package llm implements the synthesis backend on the OpenAI chat
// completions API.
package llm

import (
	"context"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	envAPIKey = "OPENAI_API_KEY"
	envModel  = "EVOLUX_OPENAI_MODEL"

	defaultModel = "gpt-5"

	systemPrompt = "You write minimal, deterministic Python function BODIES only. " +
		"Return raw code text without fences, without leading 'def'."
)

// Client implements ports.Synthesizer against the OpenAI API.
type Client struct {
	client *openai.Client
	model  string
}

// Option customizes client construction.
type Option func(*settings)

type settings struct {
	baseURL string
}

// WithBaseURL points the client at an alternative API endpoint. Used by
// tests and by self-hosted OpenAI-compatible servers.
func WithBaseURL(url string) Option {
	return func(s *settings) {
		s.baseURL = url
	}
}

// NewClient builds a synthesis client. The API key comes from the
// environment and is required; the model falls back to EVOLUX_OPENAI_MODEL
// and then to the default when not given.
func NewClient(model string, opts ...Option) (*Client, error) {
	apiKey := os.Getenv(envAPIKey)
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	if model == "" {
		model = os.Getenv(envModel)
	}
	if model == "" {
		model = defaultModel
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	cfg := openai.DefaultConfig(apiKey)
	if s.baseURL != "" {
		cfg.BaseURL = s.baseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Synthesize requests a candidate function body for the call described by
// req. The response is stripped of code fences but otherwise raw;
// normalization happens in the engine.
func (c *Client) Synthesize(ctx context.Context, req domain.SynthesisRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
	})
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrSynthesisFailed.Error())
	}
	if len(resp.Choices) == 0 {
		return "", zerr.With(domain.ErrSynthesisFailed, "detail", "no choices returned")
	}

	body := stripFences(resp.Choices[0].Message.Content)
	if strings.TrimSpace(body) == "" {
		return "", domain.ErrEmptyCandidate
	}
	return body, nil
}

// stripFences removes a surrounding markdown code fence and an optional
// language tag, and guarantees a trailing newline.
func stripFences(out string) string {
	out = strings.TrimSpace(out)
	if strings.HasPrefix(out, "```") {
		out = strings.Trim(out, "`\n")
		out = strings.TrimPrefix(out, "python\n")
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return out
	}
	return out + "\n"
}
