package channel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicMaxTokens = 4096

// AnthropicChannel talks to Anthropic's Messages API.
type AnthropicChannel struct {
	opts   Options
	client anthropic.Client
}

// NewAnthropicChannel creates an Anthropic-backed channel.
func NewAnthropicChannel(opts Options) (*AnthropicChannel, error) {
	if opts.APIKey == "" {
		return nil, errors.New("anthropic channel requires an api_key")
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &AnthropicChannel{
		opts:   opts,
		client: anthropic.NewClient(clientOpts...),
	}, nil
}

// Send implements [AssistantChannel].
func (c *AnthropicChannel) Send(ctx context.Context, modelID, message string) (*Reply, error) {
	return c.complete(ctx, modelID, message)
}

// Judge implements [JudgeChannel].
func (c *AnthropicChannel) Judge(ctx context.Context, prompt string) (*Reply, error) {
	return c.complete(ctx, c.opts.JudgeModel, prompt)
}

func (c *AnthropicChannel) complete(ctx context.Context, modelID, message string) (*Reply, error) {
	maxTokens := c.opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	start := time.Now()

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic completion failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return &Reply{Text: sb.String(), Duration: time.Since(start)}, nil
}

// Close implements [Channel]. The Anthropic client holds no resources.
func (c *AnthropicChannel) Close() error { return nil }
