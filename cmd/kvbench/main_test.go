package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["scenarios"])

	flag := root.PersistentFlags().Lookup("debug")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestScenariosValidateCommand(t *testing.T) {
	valid := `name: CLI Validate Test
complexity: beginner
user_input: store things
entities_and_relationships:
  entities:
    Thing: a thing
`
	path := filepath.Join(t.TempDir(), "ok.yaml")
	require.NoError(t, os.WriteFile(path, []byte(valid), 0o644))

	root := newRootCommand()
	root.SetArgs([]string{"scenarios", "validate", path})
	assert.NoError(t, root.Execute())
}

func TestScenariosValidateCommandRejectsBadFile(t *testing.T) {
	bad := `name: Broken
complexity: nonsense
user_input: x
`
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	root := newRootCommand()
	root.SetArgs([]string{"scenarios", "validate", path})
	assert.Error(t, root.Execute())
}

func TestRunCommandRejectsUnknownScenario(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"run", "--scenario", "does-not-exist", "--provider", "scripted"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}
