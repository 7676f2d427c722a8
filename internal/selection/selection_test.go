package selection

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaker/internal/question"
)

type sliceSource []question.Question

func (s sliceSource) Questions() []question.Question {
	return append([]question.Question(nil), s...)
}

func short(t *testing.T, id int, section string, difficulty question.Difficulty) question.Question {
	t.Helper()
	q, err := question.NewShortAnswer(question.Base{ID: id, Section: section, Difficulty: difficulty, Text: "Q"}, "A")
	require.NoError(t, err)
	return q
}

func ids(questions []question.Question) []int {
	out := make([]int, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.Meta().ID)
	}
	return out
}

func seeded() *Engine {
	return NewEngine(rand.New(rand.NewPCG(1, 2)))
}

// mixedBank holds 8 questions: Easy x3, Medium x3, Hard x2.
func mixedBank(t *testing.T) sliceSource {
	t.Helper()
	var bank sliceSource
	mc := func(id int, section string, difficulty question.Difficulty) question.Question {
		q, err := question.NewMultipleChoice(question.Base{ID: id, Section: section, Difficulty: difficulty}, []string{"a", "b", "c"}, "b")
		require.NoError(t, err)
		return q
	}
	tf := func(id int, section string, difficulty question.Difficulty) question.Question {
		q, err := question.NewTrueFalse(question.Base{ID: id, Section: section, Difficulty: difficulty}, "True")
		require.NoError(t, err)
		return q
	}
	bank = append(bank,
		mc(1, "1.1", question.DifficultyEasy),
		tf(2, "1.2", question.DifficultyMedium),
		short(t, 3, "1.3", question.DifficultyHard),
		mc(4, "2.1", question.DifficultyMedium),
		tf(5, "2.2", question.DifficultyEasy),
		short(t, 6, "2.3", question.DifficultyMedium),
		mc(7, "3.1", question.DifficultyHard),
		tf(8, "3.2", question.DifficultyEasy),
	)
	return bank
}

// TestSelectEmptyStore verifies selection from nothing fails with ErrEmptyStore.
func TestSelectEmptyStore(t *testing.T) {
	_, err := seeded().Select(sliceSource{}, Criteria{Count: 3})
	assert.ErrorIs(t, err, ErrEmptyStore)
	_, err = seeded().Select(nil, Criteria{Count: 3})
	assert.ErrorIs(t, err, ErrEmptyStore)
}

// TestSelectNoMatch verifies filters that remove everything fail with ErrNoMatch.
func TestSelectNoMatch(t *testing.T) {
	_, err := seeded().Select(mixedBank(t), Criteria{Count: 3, Section: "9"})
	assert.ErrorIs(t, err, ErrNoMatch)
}

// TestSelectSectionIsLiteralPrefix verifies "1" matches "10" as well as "1.2".
func TestSelectSectionIsLiteralPrefix(t *testing.T) {
	bank := sliceSource{
		short(t, 1, "1", question.DifficultyEasy),
		short(t, 2, "1.2", question.DifficultyEasy),
		short(t, 3, "10", question.DifficultyEasy),
		short(t, 4, "2", question.DifficultyEasy),
	}
	selected, err := seeded().Select(bank, Criteria{Count: 10, Section: "1"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids(selected))
}

// TestSelectWithoutShuffleIsDeterministic verifies order preservation and repeatability.
func TestSelectWithoutShuffleIsDeterministic(t *testing.T) {
	bank := mixedBank(t)
	engine := seeded()
	first, err := engine.Select(bank, Criteria{Count: 5})
	require.NoError(t, err)
	second, err := engine.Select(bank, Criteria{Count: 5})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(first))
	assert.Equal(t, ids(first), ids(second))
}

// TestSelectMediumEndToEnd verifies the over-request is clamped and relative order kept.
func TestSelectMediumEndToEnd(t *testing.T) {
	selected, err := seeded().Select(mixedBank(t), Criteria{Count: 10, Difficulty: question.DifficultyMedium})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, ids(selected))
	for _, q := range selected {
		assert.Equal(t, question.DifficultyMedium, q.Meta().Difficulty)
	}
}

// TestSelectShuffleMembership verifies size and membership of shuffled samples.
func TestSelectShuffleMembership(t *testing.T) {
	bank := mixedBank(t)
	engine := seeded()
	for i := 0; i < 50; i++ {
		selected, err := engine.Select(bank, Criteria{Count: 3, Section: "1", Shuffle: true})
		require.NoError(t, err)
		require.Len(t, selected, 3)
		assert.ElementsMatch(t, []int{1, 2, 3}, ids(selected))

		sample, err := engine.Select(bank, Criteria{Count: 4, Shuffle: true})
		require.NoError(t, err)
		require.Len(t, sample, 4)
		seen := map[int]bool{}
		for _, id := range ids(sample) {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
			assert.True(t, id >= 1 && id <= 8)
		}
	}
}

// TestSelectShuffleCoversPositions verifies every question can land in the first slot.
func TestSelectShuffleCoversPositions(t *testing.T) {
	bank := mixedBank(t)
	engine := seeded()
	firsts := map[int]bool{}
	for i := 0; i < 400; i++ {
		selected, err := engine.Select(bank, Criteria{Count: 2, Shuffle: true})
		require.NoError(t, err)
		firsts[selected[0].Meta().ID] = true
	}
	assert.Len(t, firsts, 8)
}

// TestSelectDoesNotAliasSource verifies mutating the result leaves the source untouched.
func TestSelectDoesNotAliasSource(t *testing.T) {
	bank := mixedBank(t)
	selected, err := seeded().Select(bank, Criteria{})
	require.NoError(t, err)
	require.Len(t, selected, 8)
	selected[0] = short(t, 42, "x", question.DifficultyHard)
	assert.Equal(t, 1, bank[0].Meta().ID)
}
