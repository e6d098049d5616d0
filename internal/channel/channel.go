// Package channel provides the external collaborator transports the
// pipeline talks to: the conversational assistant under evaluation and the
// LLM judge used for scoring. Implementations exist for the Copilot SDK,
// OpenAI-compatible endpoints, and Anthropic, plus a scripted in-memory
// channel for tests.
package channel

import (
	"context"
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Reply is the result of one external generative call.
type Reply struct {
	Text     string
	Duration time.Duration
}

// AssistantChannel sends one user message to the assistant under evaluation
// and returns its reply. Implementations are stateless per call: the caller
// supplies all needed context inside the message.
type AssistantChannel interface {
	Send(ctx context.Context, modelID, message string) (*Reply, error)
}

// JudgeChannel submits a rubric prompt to the judging model.
type JudgeChannel interface {
	Judge(ctx context.Context, prompt string) (*Reply, error)
}

// Channel is a transport usable as both assistant and judge.
type Channel interface {
	AssistantChannel
	JudgeChannel
	Close() error
}

// Kind identifies a channel provider.
type Kind string

const (
	KindCopilot   Kind = "copilot"
	KindOpenAI    Kind = "openai"
	KindAnthropic Kind = "anthropic"
	KindScripted  Kind = "scripted"
)

// Options configures a concrete channel. Fields that a provider does not
// use are ignored by it.
type Options struct {
	// JudgeModel is the model identifier used for Judge calls.
	JudgeModel string `mapstructure:"judge_model"`
	// APIKey authenticates OpenAI/Anthropic channels.
	APIKey string `mapstructure:"api_key"`
	// BaseURL overrides the endpoint for OpenAI-compatible servers.
	BaseURL string `mapstructure:"base_url"`
	// MaxTokens bounds reply length where the provider requires it.
	MaxTokens int `mapstructure:"max_tokens"`
}

// New creates a channel of the given kind from loosely-typed parameters,
// e.g. values deserialized from a config file.
func New(kind Kind, params map[string]any) (Channel, error) {
	var opts Options
	if err := mapstructure.Decode(params, &opts); err != nil {
		return nil, fmt.Errorf("decoding %s channel options: %w", kind, err)
	}

	switch kind {
	case KindCopilot:
		return NewCopilotChannel(opts), nil
	case KindOpenAI:
		return NewOpenAIChannel(opts)
	case KindAnthropic:
		return NewAnthropicChannel(opts)
	case KindScripted:
		return NewScripted(), nil
	default:
		return nil, fmt.Errorf("%q is not a valid channel kind", kind)
	}
}
