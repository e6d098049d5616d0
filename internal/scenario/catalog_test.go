package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvdesign/kvbench/internal/models"
)

func TestNewCatalogBuiltins(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Contains(t, c.Names(), DefaultScenario)

	s, err := c.Lookup(DefaultScenario)
	require.NoError(t, err)
	assert.Equal(t, models.ComplexityBeginner, s.Complexity)
	assert.NotEmpty(t, s.UserInput)
	assert.NotEmpty(t, s.Entities.Entities)
	assert.NotEmpty(t, s.Patterns.Reads)

	// Builtins cover the full complexity range.
	seen := map[models.Complexity]bool{}
	for _, s := range c.Scenarios() {
		seen[s.Complexity] = true
	}
	assert.True(t, seen[models.ComplexityBeginner])
	assert.True(t, seen[models.ComplexityIntermediate])
	assert.True(t, seen[models.ComplexityAdvanced])
}

func TestLookupNotFound(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	_, err = c.Lookup("No Such Scenario")
	require.Error(t, err)

	var nfe *models.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "scenario", nfe.Kind)
	assert.Equal(t, "No Such Scenario", nfe.Name)
	assert.Contains(t, nfe.Available, DefaultScenario)
}

func TestLookupCaseInsensitive(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	s, err := c.Lookup("simple e-commerce schema")
	require.NoError(t, err)
	assert.Equal(t, DefaultScenario, s.Name)
}

const validScenarioYAML = `name: Tiny Notes App
complexity: beginner
user_input: I want to store notes per user.
entities_and_relationships:
  entities:
    Note: a text note
  relationships:
    - A user owns many Notes
access_patterns:
  read_patterns:
    - entity: Note
      description: list notes for a user
`

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.yaml"), []byte(validScenarioYAML), 0o644))

	c, err := NewCatalog()
	require.NoError(t, err)
	require.NoError(t, c.LoadDir(dir))

	s, err := c.Lookup("Tiny Notes App")
	require.NoError(t, err)
	assert.Equal(t, models.ComplexityBeginner, s.Complexity)
	assert.Equal(t, 4, c.Len())
}

func TestLoadDirSchemaViolation(t *testing.T) {
	dir := t.TempDir()
	bad := `name: Broken
complexity: trivial
user_input: hello
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(bad), 0o644))

	c, err := NewCatalog()
	require.NoError(t, err)

	err = c.LoadDir(dir)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Problems)
}

func TestLoadDirDanglingEntity(t *testing.T) {
	dir := t.TempDir()
	// Schema-valid, but the pattern references an undeclared entity.
	bad := `name: Dangling
complexity: beginner
user_input: hello
entities_and_relationships:
  entities:
    Note: a note
access_patterns:
  read_patterns:
    - entity: Comment
      description: list comments
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dangling.yaml"), []byte(bad), 0o644))

	c, err := NewCatalog()
	require.NoError(t, err)

	err = c.LoadDir(dir)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Problems[0], "Comment")
}

func TestAddDuplicateName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(validScenarioYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(validScenarioYAML), 0o644))

	c, err := NewCatalog()
	require.NoError(t, err)

	err = c.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate scenario name")
}
