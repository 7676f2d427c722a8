package evaluate

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"quizmaker/internal/logger"
	"quizmaker/internal/question"
	"quizmaker/internal/summary"
)

// Labels are the letters offered for multiple choice options. Only the first
// len(Labels) shuffled options are offered.
var Labels = []string{"A", "B", "C", "D"}

const (
	SelfAssessedCorrect   = "Self-assessed: Correct"
	SelfAssessedIncorrect = "Self-assessed: Incorrect"
)

// Choice is one labeled option shown to the respondent.
type Choice struct {
	Label  string
	Option string
}

// Prompt is everything a respondent needs to answer one question.
type Prompt struct {
	Question question.Question
	// Choices is empty for short answer questions.
	Choices []Choice
	// Reference is the answer revealed before a short answer self-assessment.
	Reference string
	// Hint describes the accepted input.
	Hint string
	// Problem is set when the previous response was rejected.
	Problem string
}

// Kind returns the kind of the prompted question.
func (p Prompt) Kind() question.Kind {
	return p.Question.Kind()
}

// Outcome is the judgement of one response.
type Outcome struct {
	Correct bool
	// Answer is the response as it is recorded.
	Answer string
}

// InputError reports a response that is not a valid answer for the prompt.
// The question should be asked again.
type InputError struct {
	Input string
	Hint  string
}

func (err *InputError) Error() string {
	return fmt.Sprintf("invalid response %q: %s", err.Input, err.Hint)
}

// Respondent supplies raw responses to prompts.
type Respondent interface {
	Ask(ctx context.Context, prompt Prompt) (string, error)
}

// RespondentFunc adapts a function to Respondent.
type RespondentFunc func(ctx context.Context, prompt Prompt) (string, error)

func (f RespondentFunc) Ask(ctx context.Context, prompt Prompt) (string, error) {
	return f(ctx, prompt)
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithRand sets the random source used to shuffle multiple choice options.
func WithRand(rng *rand.Rand) Option {
	return func(e *Evaluator) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithMaxAttempts bounds how often a question is re-asked after invalid
// responses. Zero means no bound.
func WithMaxAttempts(n int) Option {
	return func(e *Evaluator) { e.maxAttempts = n }
}

// Evaluator implements the per-kind answer protocol. It does no I/O itself.
type Evaluator struct {
	rng         *rand.Rand
	maxAttempts int
}

func New(opts ...Option) *Evaluator {
	seed := uint64(time.Now().UnixNano())
	e := &Evaluator{rng: rand.New(rand.NewPCG(seed, seed>>32|1))}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Prepare builds the prompt for q. Multiple choice options are shuffled on
// every call.
func (e *Evaluator) Prepare(q question.Question) Prompt {
	prompt := Prompt{Question: q}
	switch q := q.(type) {
	case question.MultipleChoice:
		options := q.Options()
		e.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
		if len(options) > len(Labels) {
			options = options[:len(Labels)]
		}
		for i, option := range options {
			prompt.Choices = append(prompt.Choices, Choice{Label: Labels[i], Option: option})
		}
		prompt.Hint = "enter " + strings.Join(Labels[:len(options)], ", ")
	case question.TrueFalse:
		prompt.Choices = []Choice{{Label: "A", Option: question.AnswerTrue}, {Label: "B", Option: question.AnswerFalse}}
		prompt.Hint = "enter A/B or True/False"
	case question.ShortAnswer:
		prompt.Reference = q.Reference
		prompt.Hint = "did you answer correctly? enter y or n"
	}
	return prompt
}

// Judge scores a raw response against the prompt it answered.
func (e *Evaluator) Judge(q question.Question, prompt Prompt, raw string) (Outcome, error) {
	input := strings.TrimSpace(raw)
	switch q := q.(type) {
	case question.MultipleChoice:
		label := strings.ToUpper(input)
		for _, choice := range prompt.Choices {
			if choice.Label == label {
				return Outcome{
					Correct: choice.Option == q.Correct,
					Answer:  choice.Label + ") " + choice.Option,
				}, nil
			}
		}
	case question.TrueFalse:
		var answer bool
		switch strings.ToUpper(input) {
		case "A", "TRUE", "T":
			answer = true
		case "B", "FALSE", "F":
			answer = false
		default:
			return Outcome{}, &InputError{Input: raw, Hint: prompt.Hint}
		}
		recorded := question.AnswerFalse
		if answer {
			recorded = question.AnswerTrue
		}
		return Outcome{Correct: answer == q.Correct, Answer: recorded}, nil
	case question.ShortAnswer:
		switch strings.ToLower(input) {
		case "y", "yes", "o", "oui":
			return Outcome{Correct: true, Answer: SelfAssessedCorrect}, nil
		case "n", "no", "non":
			return Outcome{Correct: false, Answer: SelfAssessedIncorrect}, nil
		}
	default:
		return Outcome{}, fmt.Errorf("unsupported question type %T", q)
	}
	return Outcome{}, &InputError{Input: raw, Hint: prompt.Hint}
}

// Evaluate is Judge in (correct, answer, error) form.
func (e *Evaluator) Evaluate(q question.Question, prompt Prompt, raw string) (bool, string, error) {
	outcome, err := e.Judge(q, prompt, raw)
	return outcome.Correct, outcome.Answer, err
}

// Ask runs the protocol for one question, re-asking until the respondent
// gives a valid response.
func (e *Evaluator) Ask(ctx context.Context, respondent Respondent, q question.Question) (summary.AnswerRecord, error) {
	prompt := e.Prepare(q)
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return summary.AnswerRecord{}, err
		}
		raw, err := respondent.Ask(ctx, prompt)
		if err != nil {
			return summary.AnswerRecord{}, fmt.Errorf("ask question %d: %w", q.Meta().ID, err)
		}
		outcome, err := e.Judge(q, prompt, raw)
		if err == nil {
			return Record(q, outcome), nil
		}
		var inputErr *InputError
		if !errors.As(err, &inputErr) {
			return summary.AnswerRecord{}, err
		}
		logger.Get().Debug("response rejected",
			zap.Int("question_id", q.Meta().ID),
			zap.String("input", inputErr.Input),
			zap.Int("attempt", attempt))
		if e.maxAttempts > 0 && attempt >= e.maxAttempts {
			return summary.AnswerRecord{}, fmt.Errorf("question %d: %w", q.Meta().ID, err)
		}
		prompt.Problem = inputErr.Error()
	}
}

// Record builds the answer record for q from an outcome.
func Record(q question.Question, outcome Outcome) summary.AnswerRecord {
	meta := q.Meta()
	return summary.AnswerRecord{
		QuestionID:    meta.ID,
		Question:      meta.Text,
		UserAnswer:    outcome.Answer,
		CorrectAnswer: q.Answer(),
		IsCorrect:     outcome.Correct,
		Difficulty:    meta.Difficulty,
	}
}
