package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const wellFormedReply = "Here is the complete design.\n\n" +
	"```markdown\n" +
	"# Modeling Session\n\n" +
	"We started from the access patterns and worked backwards.\n" +
	"```\n\n" +
	"```markdown\n" +
	"# Data Model\n\n" +
	"Table: Orders\n" +
	"PK: customer_id, SK: order_date\n" +
	"```\n\n" +
	"Let me know if you need anything else."

func TestExtractWellFormed(t *testing.T) {
	s := Extract(wellFormedReply)

	assert.True(t, s.HasDataModel())
	assert.Contains(t, s.ModelingSession, "# Modeling Session")
	assert.Contains(t, s.ModelingSession, "access patterns")
	assert.Contains(t, s.DataModel, "PK: customer_id")
	assert.NotContains(t, s.DataModel, "anything else")
}

func TestExtractMdFenceAlias(t *testing.T) {
	reply := "```md\n# Data Model\nkeys here\n```"
	s := Extract(reply)
	assert.True(t, s.HasDataModel())
	assert.Contains(t, s.DataModel, "keys here")
}

func TestExtractNoFences(t *testing.T) {
	s := Extract("Just prose, no fenced blocks at all.")
	assert.False(t, s.HasDataModel())
	assert.Empty(t, s.ModelingSession)
}

func TestExtractIgnoresOtherLanguages(t *testing.T) {
	reply := "```json\n{\"pk\": \"id\"}\n```\n\n```markdown\n# Data Model\nreal one\n```"
	s := Extract(reply)
	assert.True(t, s.HasDataModel())
	assert.NotContains(t, s.DataModel, "pk")
}

func TestExtractFirstBlockWins(t *testing.T) {
	reply := "```markdown\n# Data Model\nfirst\n```\n```markdown\n# Data Model\nsecond\n```"
	s := Extract(reply)
	assert.Contains(t, s.DataModel, "first")
	assert.NotContains(t, s.DataModel, "second")
}

func TestExtractUnlabeledFence(t *testing.T) {
	// A fence with no heading inside is not classified.
	reply := "```markdown\nno heading here\n```"
	s := Extract(reply)
	assert.False(t, s.HasDataModel())
}
