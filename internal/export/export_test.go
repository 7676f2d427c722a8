package export

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaker/internal/evaluate"
	"quizmaker/internal/history"
	"quizmaker/internal/question"
	"quizmaker/internal/summary"
	"quizmaker/internal/testutil"
)

var fixedNow = time.Date(2026, 5, 4, 13, 7, 9, 0, time.UTC)

func sampleQuestions(t *testing.T) []question.Question {
	t.Helper()
	mc, err := question.NewMultipleChoice(question.Base{ID: 1, Section: "1.1", SectionTitle: "Basics", Difficulty: question.DifficultyEasy,
		Text: "Capital of France?", Explanation: "Since 987 <AD>."}, []string{"Paris", "Londres", "Berlin", "Rome", "Madrid"}, "Paris")
	require.NoError(t, err)
	tf, err := question.NewTrueFalse(question.Base{ID: 2, Section: "1.2", Difficulty: question.DifficultyMedium, Text: "Go has generics."}, "True")
	require.NoError(t, err)
	sa, err := question.NewShortAnswer(question.Base{ID: 3, Section: "2", Difficulty: question.DifficultyHard, Text: "Explain <b>closures</b>."}, "Functions capturing variables")
	require.NoError(t, err)
	return []question.Question{mc, tf, sa}
}

func evaluator() *evaluate.Evaluator {
	return evaluate.New(evaluate.WithRand(rand.New(rand.NewPCG(5, 6))))
}

// TestDefaultFilename verifies the timestamped export name.
func TestDefaultFilename(t *testing.T) {
	assert.Equal(t, "quiz_20260504_130709.html", DefaultFilename(fixedNow))
}

// TestParseKinds verifies kind list parsing.
func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds("Multiple Choice, True/False,")
	require.NoError(t, err)
	assert.Equal(t, []question.Kind{question.KindMultipleChoice, question.KindTrueFalse}, kinds)
	kinds, err = ParseKinds("sa,TF")
	require.NoError(t, err)
	assert.Equal(t, []question.Kind{question.KindShortAnswer, question.KindTrueFalse}, kinds)
	_, err = ParseKinds("Essay")
	assert.Error(t, err)
}

// TestBuildFiltersAndPaginates verifies kind filtering and page splitting.
func TestBuildFiltersAndPaginates(t *testing.T) {
	questions := sampleQuestions(t)
	quiz, err := Build(evaluator(), questions, Options{QuestionsPerPage: 2, Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	require.Len(t, quiz.Pages, 2)
	assert.Len(t, quiz.Pages[0], 2)
	assert.Len(t, quiz.Pages[1], 1)
	assert.Equal(t, 3, quiz.Pages[1][0].Number)
	assert.Equal(t, "Quiz", quiz.Title)
	assert.Len(t, quiz.Pages[0][0].Prompt.Choices, 4)

	single, err := Build(evaluator(), questions, Options{})
	require.NoError(t, err)
	assert.Len(t, single.Pages, 1)

	onlySA, err := Build(evaluator(), questions, Options{Kinds: []question.Kind{question.KindShortAnswer}})
	require.NoError(t, err)
	assert.Equal(t, 1, onlySA.Total)

	_, err = Build(evaluator(), questions[:1], Options{Kinds: []question.Kind{question.KindTrueFalse}})
	assert.Error(t, err)
}

// TestRenderHTMLEscapesAndMarksAnswers verifies the page markup.
func TestRenderHTMLEscapesAndMarksAnswers(t *testing.T) {
	quiz, err := Build(evaluator(), sampleQuestions(t), Options{Title: "Go & friends", QuestionsPerPage: 2, Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	html, err := RenderHTML(testutil.Context(t, 0), quiz)
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Go &amp; friends</title>")
	assert.Contains(t, html, "Explain &lt;b&gt;closures&lt;/b&gt;.")
	assert.Contains(t, html, "Since 987 &lt;AD&gt;.")
	assert.NotContains(t, html, "<b>closures</b>")
	assert.Contains(t, html, `data-kind="multiple-choice"`)
	assert.Contains(t, html, `data-kind="true-false"`)
	assert.Contains(t, html, `data-kind="short-answer"`)
	assert.Contains(t, html, `id="page-label">Page 1 of 2`)
	assert.Contains(t, html, `data-page="2" hidden`)
	assert.Contains(t, html, `data-page="1">`)
	assert.True(t, strings.HasPrefix(html, "<!doctype html><html lang=\"en\">"))
	assert.Contains(t, html, `<label><input type="radio" name="q2" value="A" data-correct="true">A) True</label>`)

	// Card 2 is True/False: A is the correct choice.
	assert.Contains(t, html, `name="q2" value="A" data-correct="true"`)
	assert.Contains(t, html, `name="q2" value="B" data-correct="false"`)
	assert.Equal(t, 1, strings.Count(html, `name="q3" value="y" data-correct="true"`))
	assert.LessOrEqual(t, strings.Count(html, `name="q1" `), 4)
}

// TestWriteDefaultPath verifies the file lands under dir with the default name.
func TestWriteDefaultPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := Write(testutil.Context(t, 0), evaluator(), sampleQuestions(t), dir, "", Options{Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quiz_20260504_130709.html"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!doctype html>"))
	assert.NotContains(t, string(data), `id="prev"`)
}

// TestHistoryPage verifies recorded sessions render as tables.
func TestHistoryPage(t *testing.T) {
	report := history.Report{
		Sessions:   []history.SessionRow{{SessionID: "s-1", StartedAt: fixedNow, Section: "1", Difficulty: "Easy", Score: 3, Total: 4, Percentage: 75}},
		Totals:     map[question.Difficulty]summary.Tally{question.DifficultyEasy: {Correct: 3, Total: 4}},
		MostMissed: []history.MissedQuestion{{QuestionID: 9, Question: "a < b?", CorrectAnswer: "True", Missed: 2, Asked: 3}},
	}
	var builder strings.Builder
	require.NoError(t, HistoryPage(report).Render(testutil.Context(t, 0), &builder))
	html := builder.String()
	for _, token := range []string{"s-1", "section 1, Easy", "3/4", "75.0%", "a &lt; b?", "2 of 3", "<table"} {
		assert.Contains(t, html, token)
	}

	builder.Reset()
	require.NoError(t, HistoryPage(history.Report{}).Render(testutil.Context(t, 0), &builder))
	assert.Contains(t, builder.String(), "No sessions recorded yet.")
}
