package channel

import (
	"context"
	"fmt"
	"sync"
	"time"

	copilot "github.com/github/copilot-sdk/go"

	"github.com/kvdesign/kvbench/internal/utils"
)

// CopilotChannel talks to models through the Copilot CLI via the Copilot
// SDK. One CLI process is shared across calls; each call runs in a fresh
// session so no conversation state leaks between turns.
type CopilotChannel struct {
	opts Options

	client *copilot.Client

	startOnce sync.Once
	startErr  error
}

// NewCopilotChannel creates a Copilot-backed channel. The underlying CLI
// process starts lazily on the first call.
func NewCopilotChannel(opts Options) *CopilotChannel {
	client := copilot.NewClient(&copilot.ClientOptions{
		LogLevel:        "error",
		AutoStart:       copilot.Bool(false),
		UseLoggedInUser: copilot.Bool(true),
	})

	return &CopilotChannel{opts: opts, client: client}
}

// Send implements [AssistantChannel].
func (c *CopilotChannel) Send(ctx context.Context, modelID, message string) (*Reply, error) {
	return c.complete(ctx, modelID, message)
}

// Judge implements [JudgeChannel].
func (c *CopilotChannel) Judge(ctx context.Context, prompt string) (*Reply, error) {
	return c.complete(ctx, c.opts.JudgeModel, prompt)
}

func (c *CopilotChannel) complete(ctx context.Context, modelID, message string) (*Reply, error) {
	// NOTE: autostart runs into trouble when triggered from separate
	// goroutines, so start the client exactly once ourselves.
	c.startOnce.Do(func() {
		c.startErr = c.client.Start(ctx)
	})
	if c.startErr != nil {
		return nil, fmt.Errorf("copilot failed to start: %w", c.startErr)
	}

	start := time.Now()

	session, err := c.client.CreateSession(ctx, &copilot.SessionConfig{
		Model: modelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	unsubscribe := session.On(utils.SessionToSlog)
	defer unsubscribe()

	resp, err := session.SendAndWait(ctx, copilot.MessageOptions{
		Prompt: message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	text := ""
	if resp != nil && resp.Data.Content != nil {
		text = *resp.Data.Content
	}

	return &Reply{Text: text, Duration: time.Since(start)}, nil
}

// Close stops the shared CLI process.
func (c *CopilotChannel) Close() error {
	return c.client.Stop()
}
