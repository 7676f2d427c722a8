package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quizmaker/internal/evaluate"
	"quizmaker/internal/logger"
	"quizmaker/internal/question"
	"quizmaker/internal/selection"
	"quizmaker/internal/summary"
)

// Observer is told about session progress. Implementations render feedback.
type Observer interface {
	QuestionStarted(index, total int, q question.Question)
	QuestionJudged(index, total int, q question.Question, record summary.AnswerRecord)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) QuestionStarted(int, int, question.Question) {}

func (NopObserver) QuestionJudged(int, int, question.Question, summary.AnswerRecord) {}

// Session is one quiz run over a fixed list of selected questions.
type Session struct {
	ID         string
	Criteria   selection.Criteria
	Questions  []question.Question
	StartedAt  time.Time
	FinishedAt time.Time

	now func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source stamping StartedAt and FinishedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// New selects the session questions from source.
func New(engine *selection.Engine, source selection.Source, criteria selection.Criteria, opts ...Option) (*Session, error) {
	questions, err := engine.Select(source, criteria)
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:        uuid.NewString(),
		Criteria:  criteria,
		Questions: questions,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run asks every question in order and returns the scored summary. Any
// respondent failure aborts the session without a summary.
func (s *Session) Run(ctx context.Context, evaluator *evaluate.Evaluator, respondent evaluate.Respondent, observer Observer) (summary.Summary, error) {
	if observer == nil {
		observer = NopObserver{}
	}
	log := logger.Get().With(zap.String("session_id", s.ID))
	s.StartedAt = s.clock()
	log.Info("session started", zap.Int("questions", len(s.Questions)))

	total := len(s.Questions)
	records := make([]summary.AnswerRecord, 0, total)
	for i, q := range s.Questions {
		observer.QuestionStarted(i, total, q)
		record, err := evaluator.Ask(ctx, respondent, q)
		if err != nil {
			log.Warn("session aborted", zap.Int("answered", len(records)), zap.Error(err))
			return summary.Summary{}, fmt.Errorf("session %s: %w", s.ID, err)
		}
		records = append(records, record)
		observer.QuestionJudged(i, total, q, record)
	}

	s.FinishedAt = s.clock()
	result := summary.Summarize(records)
	log.Info("session finished",
		zap.Int("score", result.Score),
		zap.Int("total", result.Total),
		zap.Float64("percentage", result.Percentage),
		zap.Duration("elapsed", s.FinishedAt.Sub(s.StartedAt)))
	return result, nil
}

func (s *Session) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
