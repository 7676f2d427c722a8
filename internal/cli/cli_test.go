package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaker/internal/config"
)

// newProject scaffolds a project with the sample bank and returns its config path.
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	_, err := config.Scaffold(root)
	require.NoError(t, err)
	return config.ConfigPath(root)
}

// TestRootHelp verifies root help output lists every command.
func TestRootHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"--help"}, &out, &errOut)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out.String(), "quizmaker <command>")
	for _, cmd := range commands {
		assert.Contains(t, out.String(), cmd.Name)
	}
	assert.Empty(t, errOut.String())
}

// TestNoArgsShowsUsage verifies usage output when no args are provided.
func TestNoArgsShowsUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run(nil, &out, &errOut)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, out.String(), "Usage:")
}

// TestUnknownCommand verifies unknown commands are rejected.
func TestUnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"quiz"}, &out, &errOut)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut.String(), "Unknown command: quiz")
}

// TestCommandHelp verifies each command prints its usage on --help.
func TestCommandHelp(t *testing.T) {
	for _, cmd := range commands {
		t.Run(cmd.Name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			code := Run([]string{cmd.Name, "--help"}, &out, &errOut)
			assert.Equal(t, ExitOK, code)
			assert.Contains(t, out.String(), "quizmaker "+cmd.Name)
		})
	}
}

// TestUnexpectedArguments verifies positional arguments are usage errors.
func TestUnexpectedArguments(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"stats", "extra"}, &out, &errOut)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut.String(), "unexpected arguments: extra")
}
