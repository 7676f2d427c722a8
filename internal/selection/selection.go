package selection

import (
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"quizmaker/internal/logger"
	"quizmaker/internal/question"
)

var (
	// ErrEmptyStore is returned when there is nothing to select from.
	ErrEmptyStore = errors.New("no questions loaded")
	// ErrNoMatch is returned when the filters leave no question.
	ErrNoMatch = errors.New("no question matches the filters")
)

// Criteria describes which questions a session should contain.
type Criteria struct {
	// Count is the number of questions wanted. Zero or less selects every match.
	Count int
	// Section keeps questions whose section starts with this string.
	// The match is a plain string prefix: "1" also matches "10.1".
	Section string
	// Difficulty keeps only questions with exactly this difficulty when set.
	Difficulty question.Difficulty
	// Shuffle draws a random sample instead of the first Count matches.
	Shuffle bool
}

// Source provides the questions to select from, in store order.
type Source interface {
	Questions() []question.Question
}

// Engine selects session questions. It owns its random source.
type Engine struct {
	rng *rand.Rand
}

// NewEngine returns an engine drawing from rng, or a time-seeded source when nil.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32|1))
	}
	return &Engine{rng: rng}
}

// Select filters the source and returns a new ordered list of questions.
func (e *Engine) Select(source Source, criteria Criteria) ([]question.Question, error) {
	var questions []question.Question
	if source != nil {
		questions = source.Questions()
	}
	if len(questions) == 0 {
		return nil, ErrEmptyStore
	}

	filtered := Filter(questions, criteria)
	if len(filtered) == 0 {
		return nil, ErrNoMatch
	}

	count := criteria.Count
	if count <= 0 || count > len(filtered) {
		count = len(filtered)
	}

	var selected []question.Question
	if criteria.Shuffle {
		selected = e.sample(filtered, count)
	} else {
		selected = append([]question.Question(nil), filtered[:count]...)
	}

	logger.Get().Info("session questions selected",
		zap.String("section", criteria.Section),
		zap.String("difficulty", string(criteria.Difficulty)),
		zap.Bool("shuffle", criteria.Shuffle),
		zap.Int("requested", criteria.Count),
		zap.Int("matched", len(filtered)),
		zap.Int("selected", len(selected)))
	return selected, nil
}

// Filter applies the section prefix and difficulty predicates, keeping order.
func Filter(questions []question.Question, criteria Criteria) []question.Question {
	out := make([]question.Question, 0, len(questions))
	for _, q := range questions {
		meta := q.Meta()
		if criteria.Section != "" && !strings.HasPrefix(meta.Section, criteria.Section) {
			continue
		}
		if criteria.Difficulty != "" && meta.Difficulty != criteria.Difficulty {
			continue
		}
		out = append(out, q)
	}
	return out
}

// sample draws n questions uniformly without replacement using a partial
// Fisher-Yates shuffle over a copy of the population.
func (e *Engine) sample(population []question.Question, n int) []question.Question {
	pool := append([]question.Question(nil), population...)
	for i := 0; i < n; i++ {
		j := i + e.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n:n]
}
