package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExportWritesPage verifies type filtering and the written page.
func TestExportWritesPage(t *testing.T) {
	configPath := newProject(t)
	outPath := filepath.Join(t.TempDir(), "quiz.html")

	var out, errOut bytes.Buffer
	code := Run([]string{"export", "--config", configPath, "--types", "tf", "--ordered",
		"--count", "0", "--title", "Go check", "--out", outPath}, &out, &errOut)
	require.Equal(t, ExitOK, code, errOut.String())
	assert.Contains(t, out.String(), "Exported 3 questions to "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "Go check")
	assert.Contains(t, html, "Goroutines are OS threads.")
	assert.NotContains(t, html, "Which keyword declares a constant?")
	assert.Equal(t, 3, strings.Count(html, `class="card`))
}

// TestExportDefaultPath verifies pages land in the configured output dir.
func TestExportDefaultPath(t *testing.T) {
	configPath := newProject(t)
	var out, errOut bytes.Buffer
	code := Run([]string{"export", "--config", configPath, "--per-page", "2"}, &out, &errOut)
	require.Equal(t, ExitOK, code, errOut.String())

	entries, err := os.ReadDir(filepath.Join(filepath.Dir(filepath.Dir(configPath)), "exports"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "quiz_"))
}

// TestExportUnknownType verifies --types is validated.
func TestExportUnknownType(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"export", "--types", "essay"}, &out, &errOut)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut.String(), `unknown question type "essay"`)
}
