// Package llm summarises cleaned page content through any OpenAI-compatible
// chat-completions endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"github.com/use-agent/farescout/config"
	"github.com/use-agent/farescout/models"
)

// Client wraps an OpenAI-compatible chat API for summarisation.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a Client from the summariser configuration. Returns nil
// when no API key is configured, which callers treat as "summariser off".
func NewClient(cfg config.SummarizerConfig) *Client {
	if !cfg.Enabled() {
		return nil
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}
}

// Summarize asks the model for a bullet summary plus a one-line insight.
func (c *Client) Summarize(ctx context.Context, content string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(content),
			},
		},
	})
	if err != nil {
		return "", classifyLLMError(err)
	}

	if len(resp.Choices) == 0 {
		return "", models.NewSearchError(models.ErrCodeLLMFailure, "model returned no choices", nil)
	}

	return resp.Choices[0].Message.Content, nil
}

// buildPrompt frames the summarisation task: 3-5 bullets plus one insight.
func buildPrompt(content string) string {
	return fmt.Sprintf(`Analyze the following webpage content and summarize it into 3-5 concise bullet points focusing on key aspects, trends, and implications. Then, provide one short insight that interprets the overall theme or trend in a single line.

Content:
%s

Output format:
Summary:
• <point 1>
• <point 2>
• <point 3>

Insight:
<single-line insight>`, content)
}

// classifyLLMError maps provider errors to typed SearchErrors so the API
// layer can pick the right HTTP status.
func classifyLLMError(err error) *models.SearchError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return models.NewSearchError(models.ErrCodeLLMAuthFailure, apiErr.Message, err)
		case http.StatusTooManyRequests:
			return models.NewSearchError(models.ErrCodeLLMRateLimited, apiErr.Message, err)
		}
	}
	return models.NewSearchError(models.ErrCodeLLMFailure, "summarisation request failed", err)
}
