package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBytes(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantErrs bool
	}{
		{
			name: "minimal valid",
			yaml: `name: X
complexity: beginner
user_input: hello`,
			wantErrs: false,
		},
		{
			name: "missing name",
			yaml: `complexity: beginner
user_input: hello`,
			wantErrs: true,
		},
		{
			name: "bad complexity",
			yaml: `name: X
complexity: impossible
user_input: hello`,
			wantErrs: true,
		},
		{
			name: "unknown top-level key",
			yaml: `name: X
complexity: beginner
user_input: hello
surprise: true`,
			wantErrs: true,
		},
		{
			name: "pattern missing description",
			yaml: `name: X
complexity: beginner
user_input: hello
access_patterns:
  read_patterns:
    - entity: Note`,
			wantErrs: true,
		},
		{
			name:     "not yaml",
			yaml:     "{{{{",
			wantErrs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateBytes([]byte(tt.yaml))
			if tt.wantErrs {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}
