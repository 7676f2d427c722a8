package live

import (
	"fmt"
	"time"
)

// Reduce applies an event to the UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventSessionStart:
		state = State{SessionID: event.SessionID, Total: event.Total, StartedAt: time.Now()}
		state.Rows = make([]QuestionRow, event.Total)
		for i := range state.Rows {
			state.Rows[i] = QuestionRow{Index: i, Status: StatusPending}
		}
		return state
	case EventSessionEnd:
		state.LastEvent = fmt.Sprintf("Session finished: %d/%d correct", state.Counts.Correct, state.Counts.Answered)
		return state
	}

	state = ensureRow(state, event.Index)
	if event.Index < 0 {
		return state
	}
	row := state.Rows[event.Index]
	if event.Question != nil {
		meta := event.Question.Meta()
		row.ID = meta.ID
		row.Text = meta.Text
		row.Difficulty = string(meta.Difficulty)
	}
	switch event.Kind {
	case EventQuestionStart:
		row.Status = StatusAsking
		state.Current = event.Index
	case EventQuestionJudged:
		row.Answer = event.Record.UserAnswer
		if event.Record.IsCorrect {
			row.Status = StatusCorrect
		} else {
			row.Status = StatusIncorrect
		}
		state.LastEvent = formatJudged(event.Index, event.Record.IsCorrect)
	}
	state.Rows[event.Index] = row
	state.Counts = recount(state.Rows)
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, index int) State {
	if index < 0 || index < len(state.Rows) {
		return state
	}
	rows := make([]QuestionRow, index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = QuestionRow{Index: i, Status: StatusPending}
	}
	state.Rows = rows
	if state.Total < len(rows) {
		state.Total = len(rows)
	}
	return state
}

// recount recomputes counts for the current rows.
func recount(rows []QuestionRow) Counts {
	var counts Counts
	for _, row := range rows {
		switch row.Status {
		case StatusCorrect:
			counts.Answered++
			counts.Correct++
		case StatusIncorrect:
			counts.Answered++
			counts.Incorrect++
		}
	}
	return counts
}

func formatJudged(index int, correct bool) string {
	if correct {
		return fmt.Sprintf("Q%d correct", index+1)
	}
	return fmt.Sprintf("Q%d incorrect", index+1)
}
