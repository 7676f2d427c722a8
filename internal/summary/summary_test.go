package summary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaker/internal/question"
)

func answer(id int, correct bool, difficulty question.Difficulty) AnswerRecord {
	return AnswerRecord{QuestionID: id, Question: "Q", UserAnswer: "u", CorrectAnswer: "c", IsCorrect: correct, Difficulty: difficulty}
}

// TestSummarizeEmpty verifies an empty session scores zero without dividing by zero.
func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 0, s.Total)
	assert.Zero(t, s.Percentage)
	assert.Empty(t, s.BreakdownByDifficulty())
}

// TestSummarizeCounts verifies score, total and percentage.
func TestSummarizeCounts(t *testing.T) {
	records := []AnswerRecord{
		answer(1, true, question.DifficultyEasy),
		answer(2, false, question.DifficultyEasy),
		answer(3, true, question.DifficultyHard),
		answer(4, true, question.DifficultyMedium),
	}
	s := Summarize(records)
	assert.Equal(t, 3, s.Score)
	assert.Equal(t, 4, s.Total)
	assert.InDelta(t, 75.0, s.Percentage, 1e-9)

	records[0].IsCorrect = false
	assert.True(t, s.Results[0].IsCorrect, "summary must not alias the input")
	assert.Equal(t, []AnswerRecord{answer(2, false, question.DifficultyEasy)}, s.Missed())
}

// TestBreakdownByDifficulty verifies grouping and that the totals add up.
func TestBreakdownByDifficulty(t *testing.T) {
	s := Summarize([]AnswerRecord{
		answer(1, true, question.DifficultyHard),
		answer(2, false, question.DifficultyEasy),
		answer(3, true, question.DifficultyEasy),
		answer(4, false, question.DifficultyHard),
		answer(5, true, question.DifficultyHard),
	})
	breakdown := s.BreakdownByDifficulty()
	assert.Equal(t, map[question.Difficulty]Tally{
		question.DifficultyEasy: {Correct: 1, Total: 2},
		question.DifficultyHard: {Correct: 2, Total: 3},
	}, breakdown)

	correct, total := 0, 0
	for _, tally := range breakdown {
		correct += tally.Correct
		total += tally.Total
	}
	assert.Equal(t, s.Score, correct)
	assert.Equal(t, s.Total, total)
	assert.InDelta(t, 50.0, breakdown[question.DifficultyEasy].Percentage(), 1e-9)
	assert.Zero(t, Tally{}.Percentage())
}

// TestSortedDifficulties verifies the display order of breakdown keys.
func TestSortedDifficulties(t *testing.T) {
	breakdown := map[question.Difficulty]Tally{
		question.DifficultyHard:   {},
		"Legacy":                  {},
		question.DifficultyEasy:   {},
		question.DifficultyMedium: {},
	}
	assert.Equal(t, []question.Difficulty{
		question.DifficultyEasy,
		question.DifficultyMedium,
		question.DifficultyHard,
		"Legacy",
	}, SortedDifficulties(breakdown))
}

// TestGrade verifies the band boundaries.
func TestGrade(t *testing.T) {
	cases := map[float64]string{
		100:  "Excellent",
		90:   "Excellent",
		89.9: "Very good",
		80:   "Very good",
		70:   "Good",
		60:   "Passable",
		59.9: "Keep studying",
		0:    "Keep studying",
	}
	for pct, want := range cases {
		assert.Equal(t, want, Grade(pct), "percentage %v", pct)
	}
}

// TestSaveLoadFile verifies the results document layout and reload.
func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", DefaultFilename("abc"))
	s := Summarize([]AnswerRecord{answer(7, true, question.DifficultyMedium)})
	require.NoError(t, Save(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"score\": 1,")
	assert.Contains(t, string(data), "\"question_id\": 7")
	assert.Equal(t, "quiz_results_abc.json", filepath.Base(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, Save(empty, Summarize(nil)))
	data, err = os.ReadFile(empty)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"results\": []")
}
