package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPreviewFirstQuestions verifies the preview shows answers of the first questions only.
func TestPreviewFirstQuestions(t *testing.T) {
	configPath := newProject(t)
	var out, errOut bytes.Buffer
	code := Run([]string{"preview", "--config", configPath, "--count", "2"}, &out, &errOut)
	require.Equal(t, ExitOK, code, errOut.String())
	text := out.String()
	assert.Contains(t, text, "#1 [1.1 Easy] Which keyword declares a constant? (Multiple Choice)")
	assert.Contains(t, text, "   - let")
	assert.Contains(t, text, "   Answer: const")
	assert.Contains(t, text, "#2 [1.1 Medium]")
	assert.NotContains(t, text, "#3 ")
	assert.Contains(t, text, "Showing 2 of 8 questions.")
}

// TestPreviewRejectsNegativeCount verifies the count flag bound.
func TestPreviewRejectsNegativeCount(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"preview", "--count", "-1"}, &out, &errOut)
	assert.Equal(t, ExitUsage, code)
}
