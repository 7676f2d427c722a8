package config

import (
	"slices"

	"quizmaker/internal/question"
)

var (
	uiModes   = []string{"auto", "live", "plain"}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Validate reports every problem with cfg at once.
func Validate(cfg Config) error {
	var found issues
	check := found.require

	check(cfg.Version == 1, "version", "must be 1")
	check(cfg.QuestionsFile != "", "questions_file", "is required")
	check(cfg.ResultsDir != "", "results_dir", "is required")
	check(cfg.Quiz.Count >= 0, "quiz.count", "must be zero (all) or positive")
	if cfg.Quiz.Difficulty != "" {
		_, known := question.ParseDifficulty(cfg.Quiz.Difficulty)
		check(known, "quiz.difficulty", "must be Easy, Medium or Hard")
	}
	check(cfg.Export.QuestionsPerPage >= 0, "export.questions_per_page", "must be zero (single page) or positive")
	check(cfg.Serve.Addr != "", "serve.addr", "is required")
	check(slices.Contains(uiModes, cfg.UI.Mode), "ui.mode", "must be auto, live or plain")
	check(cfg.Log.Level == "" || slices.Contains(logLevels, cfg.Log.Level), "log.level", "must be debug, info, warn or error")
	return found.err()
}
