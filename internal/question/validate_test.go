package question

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id int, kind, difficulty string, options []string, answer string) Record {
	return Record{
		ID:           id,
		Section:      "1.1",
		SectionTitle: "Basics",
		Difficulty:   difficulty,
		Type:         kind,
		Question:     "Question?",
		Options:      options,
		Answer:       answer,
		Explanation:  "Because.",
	}
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "expected validation error, got %v", err)
	return validationErr.Reason
}

// TestParseRuleOrder verifies that rules run in order and the first failure wins.
func TestParseRuleOrder(t *testing.T) {
	cases := []struct {
		name   string
		record Record
		want   Reason
	}{
		{"unknown type beats bad difficulty", record(1, "Essay", "Extreme", nil, ""), ReasonInvalidType},
		{"bad difficulty beats missing options", record(2, "Multiple Choice", "Extreme", nil, "x"), ReasonInvalidDifficulty},
		{"too few options", record(3, "Multiple Choice", "Easy", []string{"only"}, "only"), ReasonInsufficientOptions},
		{"answer outside options", record(4, "Multiple Choice", "Easy", []string{"a", "b"}, "c"), ReasonAnswerNotInOptions},
		{"boolean answer", record(5, "True/False", "Medium", []string{"True", "False"}, "Yes"), ReasonInvalidBooleanAnswer},
		{"lowercase boolean answer", record(6, "True/False", "Medium", nil, "true"), ReasonInvalidBooleanAnswer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := Parse(tc.record)
			require.Error(t, err)
			assert.Nil(t, q)
			assert.Equal(t, tc.want, reasonOf(t, err))
		})
	}
}

// TestParseBuildsVariants verifies each kind maps to its variant with the right option shape.
func TestParseBuildsVariants(t *testing.T) {
	mc, err := Parse(record(1, "Multiple Choice", "Easy", []string{"Paris", "Londres", "Berlin", "Rome"}, "Paris"))
	require.NoError(t, err)
	require.IsType(t, MultipleChoice{}, mc)
	assert.Equal(t, []string{"Paris", "Londres", "Berlin", "Rome"}, mc.Options())
	assert.Equal(t, "Paris", mc.Answer())

	tf, err := Parse(record(2, "True/False", "Medium", []string{"ignored"}, "False"))
	require.NoError(t, err)
	require.IsType(t, TrueFalse{}, tf)
	assert.Equal(t, []string{"True", "False"}, tf.Options())
	assert.Equal(t, "False", tf.Answer())

	sa, err := Parse(record(3, "Short Answer", "Hard", []string{"ignored"}, "Separation of concerns"))
	require.NoError(t, err)
	require.IsType(t, ShortAnswer{}, sa)
	assert.Empty(t, sa.Options())
	assert.Equal(t, "Separation of concerns", sa.Answer())
	assert.Equal(t, DifficultyHard, sa.Meta().Difficulty)
}

// TestOptionsReturnsCopy verifies callers cannot mutate a question through Options.
func TestOptionsReturnsCopy(t *testing.T) {
	q, err := NewMultipleChoice(Base{ID: 1, Difficulty: DifficultyEasy}, []string{"a", "b"}, "a")
	require.NoError(t, err)
	options := q.Options()
	options[0] = "mutated"
	assert.Equal(t, "a", q.Options()[0])
}

// TestValidRechecksVariants verifies Valid agrees with the constructors.
func TestValidRechecksVariants(t *testing.T) {
	q, err := NewTrueFalse(Base{ID: 9, Difficulty: DifficultyEasy}, "True")
	require.NoError(t, err)
	assert.NoError(t, Valid(q))

	broken := MultipleChoice{Base: Base{ID: 10, Difficulty: DifficultyEasy}, Choices: []string{"a"}, Correct: "a"}
	assert.Equal(t, ReasonInsufficientOptions, reasonOf(t, Valid(broken)))
	assert.Equal(t, ReasonInvalidType, reasonOf(t, Valid(nil)))
}
