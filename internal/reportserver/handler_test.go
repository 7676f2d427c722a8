package reportserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaker/internal/history"
	"quizmaker/internal/history/historytesting"
	"quizmaker/internal/question"
	"quizmaker/internal/summary"
	"quizmaker/internal/testutil"
)

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "http://example.com"+path, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func exportDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quiz_20260101_100000.html"), []byte("<html>first</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quiz_20260102_100000.html"), []byte("<html>second</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("secret"), 0o644))
	return dir
}

// TestNewHandlerRequiresExportDir verifies configuration checks.
func TestNewHandlerRequiresExportDir(t *testing.T) {
	_, err := NewHandler(Config{}, nil)
	assert.Error(t, err)
}

// TestIndexListsQuizzes verifies exported pages are listed newest first.
func TestIndexListsQuizzes(t *testing.T) {
	handler, err := NewHandler(Config{ExportDir: exportDir(t)}, nil)
	require.NoError(t, err)

	resp := get(t, handler, "/")
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `href="/quizzes/quiz_20260102_100000.html"`)
	assert.Less(t, strings.Index(body, "20260102"), strings.Index(body, "20260101"))
	assert.NotContains(t, body, "notes.txt")
	assert.NotContains(t, body, "/history")

	assert.Equal(t, http.StatusNotFound, get(t, handler, "/history").Code)
}

// TestServeQuiz verifies pages are served and other files are not.
func TestServeQuiz(t *testing.T) {
	handler, err := NewHandler(Config{ExportDir: exportDir(t)}, nil)
	require.NoError(t, err)

	resp := get(t, handler, "/quizzes/quiz_20260101_100000.html")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "<html>first</html>", resp.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, handler, "/quizzes/notes.txt").Code)
	assert.Equal(t, http.StatusNotFound, get(t, handler, "/quizzes/missing.html").Code)
	assert.Equal(t, http.StatusNotFound, get(t, handler, "/quizzes/..%2Fnotes.txt").Code)
}

// TestHistoryRoutes verifies the history page and JSON endpoint.
func TestHistoryRoutes(t *testing.T) {
	db := historytesting.Open(t)
	ctx := testutil.Context(t, 0)
	require.NoError(t, db.RecordSession(ctx, history.Entry{
		SessionID:  "session-1",
		StartedAt:  time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 2, 1, 8, 5, 0, 0, time.UTC),
		Summary: summary.Summarize([]summary.AnswerRecord{
			{QuestionID: 1, Question: "Q1", UserAnswer: "True", CorrectAnswer: "False", Difficulty: question.DifficultyEasy},
			{QuestionID: 2, Question: "Q2", UserAnswer: "True", CorrectAnswer: "True", IsCorrect: true, Difficulty: question.DifficultyEasy},
		}),
	}))

	handler, err := NewHandler(Config{ExportDir: t.TempDir()}, db)
	require.NoError(t, err)

	page := get(t, handler, "/history")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "session-1")

	resp := get(t, handler, "/api/history")
	require.Equal(t, http.StatusOK, resp.Code)
	var payload struct {
		Sessions   []history.SessionRow                  `json:"sessions"`
		Totals     map[question.Difficulty]summary.Tally `json:"difficulty_totals"`
		MostMissed []history.MissedQuestion              `json:"most_missed"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	require.Len(t, payload.Sessions, 1)
	assert.Equal(t, 1, payload.Sessions[0].Score)
	assert.Equal(t, summary.Tally{Correct: 1, Total: 2}, payload.Totals[question.DifficultyEasy])
	require.Len(t, payload.MostMissed, 1)
	assert.Equal(t, 1, payload.MostMissed[0].QuestionID)

	index := get(t, handler, "/")
	assert.Contains(t, index.Body.String(), `href="/history"`)
	assert.Contains(t, index.Body.String(), "No exported quizzes yet.")
}

// TestHealthz verifies the health endpoint.
func TestHealthz(t *testing.T) {
	handler, err := NewHandler(Config{ExportDir: t.TempDir()}, nil)
	require.NoError(t, err)
	resp := get(t, handler, "/healthz")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
}
