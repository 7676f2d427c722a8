package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStatsJSON verifies the counts of the sample bank.
func TestStatsJSON(t *testing.T) {
	configPath := newProject(t)
	var out, errOut bytes.Buffer
	code := Run([]string{"stats", "--config", configPath, "--json"}, &out, &errOut)
	require.Equal(t, ExitOK, code, errOut.String())

	var payload statsPayload
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	assert.Equal(t, 8, payload.Total)
	assert.Equal(t, map[string]int{"Easy": 3, "Medium": 3, "Hard": 2}, payload.ByDifficulty)
	assert.Equal(t, 3, payload.ByKind["Multiple Choice"])
	assert.Equal(t, 3, payload.ByKind["True/False"])
	assert.Equal(t, 2, payload.ByKind["Short Answer"])
	require.Len(t, payload.BySection, 5)
	assert.Equal(t, "1.1", payload.BySection[0].Section)
	assert.Equal(t, "Go basics", payload.BySection[0].Title)
	assert.Equal(t, 2, payload.BySection[0].Count)
}

// TestStatsTables verifies the table output names every group.
func TestStatsTables(t *testing.T) {
	configPath := newProject(t)
	var out, errOut bytes.Buffer
	code := Run([]string{"stats", "--config", configPath, "--no-color"}, &out, &errOut)
	require.Equal(t, ExitOK, code, errOut.String())
	for _, token := range []string{"Questions: 8", "Medium", "True/False", "Concurrency"} {
		assert.Contains(t, out.String(), token)
	}
}
