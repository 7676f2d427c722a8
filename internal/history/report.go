package history

import (
	"context"

	"quizmaker/internal/question"
	"quizmaker/internal/summary"
)

// Reader reads the recorded sessions. *DB implements it.
type Reader interface {
	ListSessions(ctx context.Context, limit int) ([]SessionRow, error)
	DifficultyTotals(ctx context.Context) (map[question.Difficulty]summary.Tally, error)
	MostMissed(ctx context.Context, limit int) ([]MissedQuestion, error)
}

// Report is the combined history view shown by the CLI and the server.
type Report struct {
	Sessions   []SessionRow                          `json:"sessions"`
	Totals     map[question.Difficulty]summary.Tally `json:"difficulty_totals"`
	MostMissed []MissedQuestion                      `json:"most_missed"`
}

// LoadReport reads the latest sessions, the per-difficulty totals and the
// most missed questions. Empty lists are returned as empty, never nil.
func LoadReport(ctx context.Context, r Reader, sessions, missed int) (Report, error) {
	rows, err := r.ListSessions(ctx, sessions)
	if err != nil {
		return Report{}, err
	}
	totals, err := r.DifficultyTotals(ctx)
	if err != nil {
		return Report{}, err
	}
	worst, err := r.MostMissed(ctx, missed)
	if err != nil {
		return Report{}, err
	}
	if rows == nil {
		rows = []SessionRow{}
	}
	if worst == nil {
		worst = []MissedQuestion{}
	}
	if totals == nil {
		totals = map[question.Difficulty]summary.Tally{}
	}
	return Report{Sessions: rows, Totals: totals, MostMissed: worst}, nil
}
