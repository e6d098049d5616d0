package channel

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIChannel talks to OpenAI or any OpenAI-compatible endpoint.
type OpenAIChannel struct {
	opts   Options
	client *openai.Client
}

// NewOpenAIChannel creates an OpenAI-backed channel.
func NewOpenAIChannel(opts Options) (*OpenAIChannel, error) {
	if opts.APIKey == "" {
		return nil, errors.New("openai channel requires an api_key")
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return &OpenAIChannel{
		opts:   opts,
		client: openai.NewClientWithConfig(cfg),
	}, nil
}

// Send implements [AssistantChannel].
func (c *OpenAIChannel) Send(ctx context.Context, modelID, message string) (*Reply, error) {
	return c.complete(ctx, modelID, message)
}

// Judge implements [JudgeChannel].
func (c *OpenAIChannel) Judge(ctx context.Context, prompt string) (*Reply, error) {
	return c.complete(ctx, c.opts.JudgeModel, prompt)
}

func (c *OpenAIChannel) complete(ctx context.Context, modelID, message string) (*Reply, error) {
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}

	return &Reply{
		Text:     resp.Choices[0].Message.Content,
		Duration: time.Since(start),
	}, nil
}

// Close implements [Channel]. The OpenAI client holds no resources.
func (c *OpenAIChannel) Close() error { return nil }
