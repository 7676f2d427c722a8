package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaker/internal/question"
)

func writeConfig(t *testing.T, root, body string) string {
	t.Helper()
	path := ConfigPath(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// TestLoadResolvesPathsAndDefaults verifies file values, defaults and path resolution.
func TestLoadResolvesPathsAndDefaults(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `version: 1
questions_file: bank/questions.yml
quiz:
  count: 5
  difficulty: " Medium "
ui:
  mode: PLAIN
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, filepath.Join(root, "bank", "questions.yml"), cfg.QuestionsFile)
	assert.Equal(t, filepath.Join(root, DefaultResultsDir), cfg.ResultsDir)
	assert.Equal(t, filepath.Join(root, DefaultHistoryDB), cfg.HistoryDB)
	assert.Equal(t, 5, cfg.Quiz.Count)
	assert.True(t, cfg.Quiz.Shuffle)
	assert.Equal(t, "Medium", cfg.Quiz.Difficulty)
	assert.Equal(t, "plain", cfg.UI.Mode)
	assert.Equal(t, "warn", cfg.Log.Level)
}

// TestLoadEnvOverrides verifies QUIZMAKER_ variables win over the file.
func TestLoadEnvOverrides(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\nquiz:\n  count: 5\n")
	t.Setenv("QUIZMAKER_QUIZ_COUNT", "3")
	t.Setenv("QUIZMAKER_LOG_LEVEL", "debug")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Quiz.Count)
	assert.Equal(t, "debug", cfg.Log.Level)
}

// TestLoadCollectsIssues verifies every invalid field is reported together.
func TestLoadCollectsIssues(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `version: 2
quiz:
  count: -1
  difficulty: Extreme
ui:
  mode: fancy
log:
  level: loud
`)
	_, err := Load(path)
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	fields := make([]string, 0, len(validationErr.Issues))
	for _, issue := range validationErr.Issues {
		fields = append(fields, issue.Field)
	}
	assert.Equal(t, []string{"version", "quiz.count", "quiz.difficulty", "ui.mode", "log.level"}, fields)
	assert.Contains(t, err.Error(), "quiz.count: must be zero (all) or positive\nquiz.difficulty: must be Easy, Medium or Hard")
}

// TestLoadDefaults verifies a project without a config still resolves paths.
func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, err := LoadDefaults(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DefaultQuestions), cfg.QuestionsFile)
	assert.Equal(t, "auto", cfg.UI.Mode)
}

// TestFindConfigPathWalksUp verifies discovery from a nested directory.
func TestFindConfigPathWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindConfigPath(nested)
	require.NoError(t, err)
	assert.Equal(t, path, found)
	assert.Equal(t, root, ProjectRootFromConfigPath(found))

	_, err = FindConfigPath(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestScaffold verifies the config and sample bank are written and loadable.
func TestScaffold(t *testing.T) {
	root := t.TempDir()
	result, err := Scaffold(root)
	require.NoError(t, err)
	assert.Equal(t, ConfigPath(root), result.ConfigPath)
	assert.Equal(t, filepath.Join(root, DefaultQuestions), result.QuestionsPath)

	cfg, err := Load(result.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Quiz.Count)

	loaded, err := question.LoadFile(cfg.QuestionsFile)
	require.NoError(t, err)
	assert.Empty(t, loaded.Rejected)
	assert.Equal(t, 8, loaded.Store.Len())
	assert.Equal(t, 3, loaded.Store.Stats().ByDifficulty[question.DifficultyMedium])

	_, err = Scaffold(root)
	assert.ErrorContains(t, err, "already exists")
}
