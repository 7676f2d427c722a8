package question

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"quizmaker/internal/logger"
)

const sampleCSV = `id,section,section_title,difficulty,type,question,options,answer,explanation
1,1.1,Basics,Easy,Multiple Choice,Capital of France?,"[""Paris"", ""Londres"", ""Berlin"", ""Rome""]",Paris,Since 987.
2,1.2,Basics,Medium,True/False,The earth is round.,"[""True"", ""False""]",True,Roughly.
3,2.1,Design,Hard,Short Answer,Explain separation of concerns.,,One job per module.,Eases testing.
4,2.1,Design,Medium,Essay,Write something.,,x,y
5,2.2,Design,Easy,Multiple Choice,Pick one,"[""a"", ""b""]",c,none
not-a-number,2.2,Design,Easy,Short Answer,Broken id,,x,y
6,2.3,Design,Easy,Multiple Choice,Broken options,"{oops",a,b
1,3.1,Dup,Easy,Short Answer,Duplicate id,,x,y
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// TestLoadFileCSVPartialFailure verifies bad rows are rejected with reasons and good rows survive.
func TestLoadFileCSVPartialFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(nil) })

	result, err := LoadFile(writeFile(t, "questions.csv", sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, result.Store.Len())

	reasons := make([]Reason, 0, len(result.Rejected))
	for _, rejection := range result.Rejected {
		reasons = append(reasons, rejection.Reason())
		assert.NotZero(t, rejection.Line)
	}
	assert.Equal(t, []Reason{
		ReasonInvalidType,
		ReasonAnswerNotInOptions,
		ReasonMalformedRow,
		ReasonMalformedRow,
		ReasonDuplicateID,
	}, reasons)
	assert.Equal(t, len(result.Rejected), logs.FilterMessage("question rejected").Len())

	for _, q := range result.Store.Questions() {
		assert.NoError(t, Valid(q))
	}
}

// TestLoadFileMissing verifies a missing file is a LoadError wrapping the fs error.
func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

// TestLoadFileMissingColumns verifies a CSV header without required columns fails the load.
func TestLoadFileMissingColumns(t *testing.T) {
	_, err := LoadFile(writeFile(t, "bad.csv", "id,question\n1,hello\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
}

// TestLoadFileYAMLAndJSON verifies structured formats share the validation rules.
func TestLoadFileYAMLAndJSON(t *testing.T) {
	yamlBody := `- id: 1
  section: "1"
  section_title: Intro
  difficulty: Easy
  type: True/False
  question: Go has generics.
  options: ["True", "False"]
  answer: "True"
  explanation: Since 1.18.
- id: 2
  section: "1"
  section_title: Intro
  difficulty: Impossible
  type: Short Answer
  question: Why?
  answer: Because
  explanation: ""
`
	result, err := LoadFile(writeFile(t, "questions.yml", yamlBody))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Store.Len())
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, ReasonInvalidDifficulty, result.Rejected[0].Reason())

	jsonBody := `[{"id": 7, "section": "2", "section_title": "T", "difficulty": "Hard", "type": "Multiple Choice",
  "question": "Q?", "options": ["x", "y"], "answer": "y", "explanation": "e"}]`
	result, err = LoadFile(writeFile(t, "questions.json", jsonBody))
	require.NoError(t, err)
	q, ok := result.Store.ByID(7)
	require.True(t, ok)
	assert.Equal(t, KindMultipleChoice, q.Kind())
}

// TestSaveFileRoundTrip verifies CSV output loads back to the same questions.
func TestSaveFileRoundTrip(t *testing.T) {
	result, err := LoadFile(writeFile(t, "questions.csv", sampleCSV))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "nested", "saved.csv")
	require.NoError(t, SaveFile(out, result.Store.Questions()))

	reloaded, err := LoadFile(out)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Rejected)
	assert.Equal(t, result.Store.Questions(), reloaded.Store.Questions())

	assert.ErrorIs(t, SaveFile(out, nil), ErrNothingToSave)
}
