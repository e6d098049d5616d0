package channel

import (
	"context"
	"sync"
	"time"
)

// Scripted is an in-memory channel for tests and dry runs. Assistant replies
// are consumed in order (the last one repeats); judge replies come from a
// configurable function. It records every message it receives.
type Scripted struct {
	mu sync.Mutex

	// AssistantReplies are returned by Send in order. When exhausted, the
	// last entry repeats. Empty means a canned placeholder reply.
	AssistantReplies []string

	// JudgeFunc produces the judge's raw text for a prompt. Nil means a
	// fixed placeholder verdict.
	JudgeFunc func(prompt string) (string, error)

	// SendErr, when set, makes every Send fail.
	SendErr error

	// Latency is reported as each reply's duration.
	Latency time.Duration

	sendCount    int
	SentMessages []string
	JudgePrompts []string
}

// NewScripted creates a scripted channel with defaults.
func NewScripted() *Scripted {
	return &Scripted{Latency: time.Millisecond}
}

// Send implements [AssistantChannel].
func (s *Scripted) Send(ctx context.Context, modelID, message string) (*Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.SentMessages = append(s.SentMessages, message)

	if s.SendErr != nil {
		return nil, s.SendErr
	}

	text := "scripted reply"
	if len(s.AssistantReplies) > 0 {
		idx := s.sendCount
		if idx >= len(s.AssistantReplies) {
			idx = len(s.AssistantReplies) - 1
		}
		text = s.AssistantReplies[idx]
	}
	s.sendCount++

	return &Reply{Text: text, Duration: s.Latency}, nil
}

// Judge implements [JudgeChannel].
func (s *Scripted) Judge(ctx context.Context, prompt string) (*Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.JudgePrompts = append(s.JudgePrompts, prompt)
	judgeFn := s.JudgeFunc
	latency := s.Latency
	s.mu.Unlock()

	if judgeFn == nil {
		return &Reply{Text: "scripted verdict", Duration: latency}, nil
	}

	text, err := judgeFn(prompt)
	if err != nil {
		return nil, err
	}
	return &Reply{Text: text, Duration: latency}, nil
}

// Close implements [Channel].
func (s *Scripted) Close() error { return nil }
