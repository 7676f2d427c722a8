package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaker/internal/config"
)

// TestValidateCommandSuccess verifies a scaffolded project validates.
func TestValidateCommandSuccess(t *testing.T) {
	configPath := newProject(t)
	var out, errOut bytes.Buffer
	code := Run([]string{"validate", "--config", configPath}, &out, &errOut)
	require.Equal(t, ExitOK, code, errOut.String())
	assert.Contains(t, out.String(), "Config OK")
	assert.Contains(t, out.String(), "Questions OK (8 in ")
	assert.Empty(t, errOut.String())
}

// TestValidateCommandRejectedQuestions verifies rejected records fail validation with reasons.
func TestValidateCommandRejectedQuestions(t *testing.T) {
	configPath := newProject(t)
	bank := filepath.Join(t.TempDir(), "bad.csv")
	body := "id,section,section_title,difficulty,type,question,options,answer,explanation\n" +
		"1,1,S,Easy,True/False,Q,,True,\n" +
		"2,1,S,Extreme,True/False,Q,,True,\n" +
		"3,1,S,Easy,Multiple Choice,Q,\"[\"\"a\"\"]\",a,\n"
	require.NoError(t, os.WriteFile(bank, []byte(body), 0o644))

	var out, errOut bytes.Buffer
	code := Run([]string{"validate", "--config", configPath, "--questions", bank}, &out, &errOut)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, errOut.String(), "2 of 3 questions rejected")
	assert.Contains(t, errOut.String(), "InvalidDifficulty")
	assert.Contains(t, errOut.String(), "InsufficientOptions")
}

// TestValidateCommandConfigIssues verifies every config issue is reported.
func TestValidateCommandConfigIssues(t *testing.T) {
	root := t.TempDir()
	configPath := config.ConfigPath(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
	require.NoError(t, os.WriteFile(configPath, []byte("version: 2\nui:\n  mode: fancy\n"), 0o644))

	var out, errOut bytes.Buffer
	code := Run([]string{"validate", "--config", configPath}, &out, &errOut)
	assert.Equal(t, ExitError, code)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "version: must be 1")
	assert.Contains(t, errOut.String(), "ui.mode: must be auto, live or plain")
}

// TestValidateCommandMissingBank verifies an unreadable bank is an error.
func TestValidateCommandMissingBank(t *testing.T) {
	configPath := newProject(t)
	var out, errOut bytes.Buffer
	code := Run([]string{"validate", "--config", configPath, "--questions", filepath.Join(t.TempDir(), "none.csv")}, &out, &errOut)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, errOut.String(), "none.csv")
}
