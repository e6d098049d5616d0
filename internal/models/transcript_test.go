package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptLifecycle(t *testing.T) {
	tr := NewTranscript("Simple E-commerce Schema", "model-a")
	assert.False(t, tr.Completed())

	require.NoError(t, tr.Append(Turn{Role: RoleUser, Text: "help me"}))
	require.NoError(t, tr.Append(Turn{Role: RoleAssistant, Text: "what entities?", Duration: 2 * time.Second}))
	require.NoError(t, tr.Append(Turn{Role: RoleUser, Text: "full requirements"}))
	require.NoError(t, tr.Append(Turn{Role: RoleAssistant, Text: "final design", Duration: 3 * time.Second}))

	assert.Equal(t, 5*time.Second, tr.TurnDurations())
	assert.Equal(t, "final design", tr.FinalOutput())

	require.NoError(t, tr.Complete(5*time.Second+120*time.Millisecond))
	assert.True(t, tr.Completed())
	assert.Equal(t, 5*time.Second+120*time.Millisecond, tr.TotalDuration)
}

func TestTranscriptImmutableOnceComplete(t *testing.T) {
	tr := NewTranscript("s", "m")
	require.NoError(t, tr.Append(Turn{Role: RoleUser, Text: "hi"}))
	require.NoError(t, tr.Complete(time.Second))

	assert.Error(t, tr.Append(Turn{Role: RoleAssistant, Text: "late"}))
	assert.Error(t, tr.Complete(2*time.Second))
	assert.Len(t, tr.Turns, 1)
}

func TestTranscriptFinalOutput_NoAssistantTurn(t *testing.T) {
	tr := NewTranscript("s", "m")
	require.NoError(t, tr.Append(Turn{Role: RoleUser, Text: "hi"}))
	assert.Equal(t, "", tr.FinalOutput())
}
