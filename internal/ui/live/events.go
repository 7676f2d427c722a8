package live

import (
	"quizmaker/internal/question"
	"quizmaker/internal/summary"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventSessionStart signals the start of a session.
	EventSessionStart EventKind = iota
	// EventQuestionStart signals a question is being asked.
	EventQuestionStart
	// EventQuestionJudged delivers the judged answer for a question.
	EventQuestionJudged
	// EventSessionEnd signals the session finished.
	EventSessionEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind      EventKind
	SessionID string
	Total     int
	Index     int
	Question  question.Question
	Record    summary.AnswerRecord
}
