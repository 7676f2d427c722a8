package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"go.uber.org/zap"

	"quizmaker/internal/logger"
	"quizmaker/internal/question"
	"quizmaker/internal/summary"
)

// DB is the DuckDB-backed results history.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the history database at path and applies the schema.
// An empty path or ":memory:" opens an in-memory database.
func Open(ctx context.Context, path string) (*DB, error) {
	if path != "" && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping history: %w", err)
	}
	if err := EnsureSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Conn exposes the underlying connection.
func (d *DB) Conn() *sql.DB {
	return d.conn
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// Entry is one completed session to append to the history.
type Entry struct {
	SessionID  string
	StartedAt  time.Time
	FinishedAt time.Time
	Source     string
	Section    string
	Difficulty question.Difficulty
	Shuffle    bool
	Summary    summary.Summary
}

// SessionRow is a stored session.
type SessionRow struct {
	SessionID  string    `json:"session_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Source     string    `json:"source"`
	Section    string    `json:"section"`
	Difficulty string    `json:"difficulty"`
	Shuffle    bool      `json:"shuffle"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
}

// MissedQuestion counts how often a question was answered incorrectly.
type MissedQuestion struct {
	QuestionID    int    `json:"question_id"`
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
	Missed        int    `json:"missed"`
	Asked         int    `json:"asked"`
}

// QuestionKey fingerprints the question an answer refers to. Editing a
// question's text or answer yields a new key.
func QuestionKey(record summary.AnswerRecord) (string, error) {
	return FingerprintJSON(map[string]any{
		"question_id":    record.QuestionID,
		"question":       record.Question,
		"correct_answer": record.CorrectAnswer,
	})
}

// RecordSession appends a session and its answers in one transaction.
func (d *DB) RecordSession(ctx context.Context, entry Entry) error {
	if entry.SessionID == "" {
		return errors.New("history: session id is required")
	}
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	s := entry.Summary
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (
		  session_id, started_at, finished_at, source, section, difficulty, shuffle, score, total, percentage
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID,
		entry.StartedAt.UTC(),
		entry.FinishedAt.UTC(),
		entry.Source,
		nullableString(entry.Section),
		nullableString(string(entry.Difficulty)),
		entry.Shuffle,
		s.Score,
		s.Total,
		s.Percentage,
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for i, record := range s.Results {
		key, err := QuestionKey(record)
		if err != nil {
			return err
		}
		spec, err := CanonicalJSON(record)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (question_key, question_id, text, correct_answer, spec, created_at)
			 VALUES (?, ?, ?, ?, ?, now())
			 ON CONFLICT (question_key) DO NOTHING`,
			key, record.QuestionID, record.Question, record.CorrectAnswer, string(spec),
		); err != nil {
			return fmt.Errorf("upsert question %d: %w", record.QuestionID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO answers (session_id, position, question_key, user_answer, is_correct, difficulty)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			entry.SessionID, i, key, record.UserAnswer, record.IsCorrect, nullableString(string(record.Difficulty)),
		); err != nil {
			return fmt.Errorf("insert answer %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	logger.Get().Info("session recorded",
		zap.String("session_id", entry.SessionID),
		zap.Int("answers", len(s.Results)))
	return nil
}

// ListSessions returns the most recent sessions first.
func (d *DB) ListSessions(ctx context.Context, limit int) ([]SessionRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.QueryContext(ctx,
		`SELECT session_id, started_at, finished_at, COALESCE(source, ''), COALESCE(section, ''),
		        COALESCE(difficulty, ''), shuffle, score, total, percentage
		 FROM sessions
		 ORDER BY started_at DESC, session_id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var row SessionRow
		if err := rows.Scan(&row.SessionID, &row.StartedAt, &row.FinishedAt, &row.Source, &row.Section,
			&row.Difficulty, &row.Shuffle, &row.Score, &row.Total, &row.Percentage); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// DifficultyTotals aggregates answers across every recorded session.
func (d *DB) DifficultyTotals(ctx context.Context) (map[question.Difficulty]summary.Tally, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT COALESCE(difficulty, ''), COUNT(*) FILTER (WHERE is_correct), COUNT(*)
		 FROM answers
		 GROUP BY 1`)
	if err != nil {
		return nil, fmt.Errorf("difficulty totals: %w", err)
	}
	defer rows.Close()

	out := make(map[question.Difficulty]summary.Tally)
	for rows.Next() {
		var difficulty string
		var tally summary.Tally
		if err := rows.Scan(&difficulty, &tally.Correct, &tally.Total); err != nil {
			return nil, fmt.Errorf("scan difficulty totals: %w", err)
		}
		out[question.Difficulty(difficulty)] = tally
	}
	return out, rows.Err()
}

// MostMissed returns the questions answered incorrectly most often.
func (d *DB) MostMissed(ctx context.Context, limit int) ([]MissedQuestion, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.conn.QueryContext(ctx,
		`SELECT question_id, text, correct_answer,
		        COUNT(*) FILTER (WHERE NOT is_correct) AS missed,
		        COUNT(*) AS asked
		 FROM v_answers
		 GROUP BY question_id, text, correct_answer
		 HAVING COUNT(*) FILTER (WHERE NOT is_correct) > 0
		 ORDER BY missed DESC, question_id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("most missed: %w", err)
	}
	defer rows.Close()

	var out []MissedQuestion
	for rows.Next() {
		var row MissedQuestion
		if err := rows.Scan(&row.QuestionID, &row.Question, &row.CorrectAnswer, &row.Missed, &row.Asked); err != nil {
			return nil, fmt.Errorf("scan most missed: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// nullableString maps an empty string to SQL NULL.
func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
