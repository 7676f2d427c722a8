package live

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"quizmaker/internal/evaluate"
	"quizmaker/internal/question"
	"quizmaker/internal/summary"
)

// ErrAborted is returned when the respondent quits the session.
var ErrAborted = errors.New("quiz aborted")

// Respondent asks questions through an interactive terminal prompt and
// renders progress as a session observer.
type Respondent struct {
	in    io.Reader
	out   io.Writer
	opts  Options
	state State
}

// NewRespondent builds a respondent reading keys from in and drawing to out.
func NewRespondent(in io.Reader, out io.Writer, opts Options) *Respondent {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Respondent{in: in, out: out, opts: opts}
}

// Start resets the progress state for a new session.
func (r *Respondent) Start(sessionID string, total int) {
	r.state = Reduce(r.state, Event{Kind: EventSessionStart, SessionID: sessionID, Total: total})
}

// State returns the current progress state.
func (r *Respondent) State() State {
	return r.state
}

// Ask runs a prompt program until the respondent submits or quits.
func (r *Respondent) Ask(ctx context.Context, prompt evaluate.Prompt) (string, error) {
	model := NewModel(r.state, prompt, r.opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(r.in),
		tea.WithOutput(r.out),
	)
	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("run prompt: %w", err)
	}
	result, ok := final.(Model)
	if !ok || result.Aborted() || !result.Submitted() {
		return "", ErrAborted
	}
	return result.Value(), nil
}

// QuestionStarted records the question being asked.
func (r *Respondent) QuestionStarted(index, total int, q question.Question) {
	if r.state.Total != total {
		r.state.Total = total
	}
	r.state = Reduce(r.state, Event{Kind: EventQuestionStart, Index: index, Question: q})
}

// QuestionJudged records the verdict and prints feedback.
func (r *Respondent) QuestionJudged(index, _ int, q question.Question, record summary.AnswerRecord) {
	r.state = Reduce(r.state, Event{Kind: EventQuestionJudged, Index: index, Question: q, Record: record})
	fmt.Fprintln(r.out, renderFeedback(q, record, r.opts.NoColor))
	fmt.Fprintln(r.out)
}
