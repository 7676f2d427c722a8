package live

import "time"

// RowStatus is the progress of a single question.
type RowStatus string

const (
	StatusPending   RowStatus = "pending"
	StatusAsking    RowStatus = "asking"
	StatusCorrect   RowStatus = "correct"
	StatusIncorrect RowStatus = "incorrect"
)

// QuestionRow holds UI state for a single question.
type QuestionRow struct {
	Index      int
	ID         int
	Text       string
	Difficulty string
	Status     RowStatus
	Answer     string
}

// Counts aggregates answered questions.
type Counts struct {
	Answered  int
	Correct   int
	Incorrect int
}

// State captures the live UI state for a session.
type State struct {
	SessionID string
	Total     int
	Current   int
	StartedAt time.Time
	LastEvent string
	Rows      []QuestionRow
	Counts    Counts
}
