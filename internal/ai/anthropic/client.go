// Package anthropic provides the Claude-backed content generator. It is the
// default scoring backend.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModel = "claude-sonnet-4-5-20250929"

	// Scorecard arrays for a full day's batch can run long.
	maxTokens = 8192
)

type Generator struct {
	client anthropicsdk.Client
	model  string
}

// NewGenerator creates a Generator backed by the Anthropic Messages API.
// Retries on transient failures are handled by the SDK itself.
func NewGenerator(apiKey, model string, maxRetries int) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if maxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(maxRetries))
	}

	return &Generator{
		client: anthropicsdk.NewClient(opts...),
		model:  model,
	}, nil
}

// GenerateContent sends the prompt as a single user message and returns the
// first text block of the response.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	message, err := g.client.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(g.model),
		MaxTokens: maxTokens,
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic message: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}

	return "", errors.New("anthropic api returned no text content")
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
