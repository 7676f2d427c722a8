package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaker/internal/history"
)

// TestHistoryEmpty verifies a project without a database reports no sessions.
func TestHistoryEmpty(t *testing.T) {
	configPath := newProject(t)
	var out, errOut bytes.Buffer
	code := Run([]string{"history", "--config", configPath}, &out, &errOut)
	require.Equal(t, ExitOK, code, errOut.String())
	assert.Contains(t, out.String(), "No sessions recorded yet.")

	out.Reset()
	code = Run([]string{"history", "--config", configPath, "--json"}, &out, &errOut)
	require.Equal(t, ExitOK, code, errOut.String())
	var report history.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Empty(t, report.Sessions)
}

// TestHistoryJSONAfterRun verifies recorded answers feed the totals and most missed list.
func TestHistoryJSONAfterRun(t *testing.T) {
	configPath := newProject(t)
	// Section 2.2 holds only the short answer question 6.
	withRunInput(t, "\nn\n")
	var out, errOut bytes.Buffer
	code := Run([]string{"run", "--config", configPath, "--ui", "plain", "--section", "2.2"}, &out, &errOut)
	require.Equal(t, ExitOK, code, errOut.String())

	out.Reset()
	code = Run([]string{"history", "--config", configPath, "--json"}, &out, &errOut)
	require.Equal(t, ExitOK, code, errOut.String())
	var report history.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.Len(t, report.Sessions, 1)
	assert.Equal(t, "2.2", report.Sessions[0].Section)
	assert.Equal(t, 0, report.Sessions[0].Score)
	require.Len(t, report.MostMissed, 1)
	assert.Equal(t, 6, report.MostMissed[0].QuestionID)
	assert.Equal(t, 1, report.Totals["Medium"].Total)
}
