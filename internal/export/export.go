package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"quizmaker/internal/evaluate"
	"quizmaker/internal/logger"
	"quizmaker/internal/question"
)

const filenameLayout = "quiz_20060102_150405.html"

// Options controls how a quiz page is built.
type Options struct {
	Title string
	// QuestionsPerPage splits the quiz into pages. Zero keeps a single page.
	QuestionsPerPage int
	// Kinds keeps only questions of these kinds when non-empty.
	Kinds []question.Kind
	// Now stamps the page. Defaults to time.Now.
	Now func() time.Time
}

// Card is one question as rendered on the page.
type Card struct {
	Number int
	Prompt evaluate.Prompt
}

// Quiz is the data behind an exported page.
type Quiz struct {
	Title       string
	GeneratedAt time.Time
	Total       int
	Pages       [][]Card
}

// DefaultFilename names an export generated at now.
func DefaultFilename(now time.Time) string {
	return now.Format(filenameLayout)
}

// FilterKinds keeps the questions whose kind is listed, in order. An empty
// list keeps everything.
func FilterKinds(questions []question.Question, kinds []question.Kind) []question.Question {
	if len(kinds) == 0 {
		return append([]question.Question(nil), questions...)
	}
	out := make([]question.Question, 0, len(questions))
	for _, q := range questions {
		if slices.Contains(kinds, q.Kind()) {
			out = append(out, q)
		}
	}
	return out
}

// ParseKinds parses a comma separated list of kind names or the short
// forms mc, tf and sa.
func ParseKinds(value string) ([]question.Kind, error) {
	var kinds []question.Kind
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kind, ok := question.ParseKind(part)
		if !ok {
			kind, ok = kindAliases[strings.ToLower(part)]
		}
		if !ok {
			return nil, fmt.Errorf("unknown question type %q", part)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

var kindAliases = map[string]question.Kind{
	"mc": question.KindMultipleChoice,
	"tf": question.KindTrueFalse,
	"sa": question.KindShortAnswer,
}

// Build prepares the quiz pages. Multiple choice options are shuffled through
// the evaluator so the page offers the same choices an interactive run would.
func Build(evaluator *evaluate.Evaluator, questions []question.Question, opts Options) (Quiz, error) {
	selected := FilterKinds(questions, opts.Kinds)
	if len(selected) == 0 {
		return Quiz{}, fmt.Errorf("no questions to export")
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	title := opts.Title
	if title == "" {
		title = "Quiz"
	}
	cards := make([]Card, 0, len(selected))
	for i, q := range selected {
		cards = append(cards, Card{Number: i + 1, Prompt: evaluator.Prepare(q)})
	}
	return Quiz{
		Title:       title,
		GeneratedAt: now(),
		Total:       len(cards),
		Pages:       paginate(cards, opts.QuestionsPerPage),
	}, nil
}

func paginate(cards []Card, perPage int) [][]Card {
	if perPage <= 0 || perPage >= len(cards) {
		return [][]Card{cards}
	}
	var pages [][]Card
	for start := 0; start < len(cards); start += perPage {
		end := min(start+perPage, len(cards))
		pages = append(pages, cards[start:end])
	}
	return pages
}

// RenderHTML renders a quiz page into a string.
func RenderHTML(ctx context.Context, quiz Quiz) (string, error) {
	var builder strings.Builder
	if err := QuizPage(quiz).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// Write builds and writes the quiz page. An empty path writes
// DefaultFilename under dir. It returns the written path.
func Write(ctx context.Context, evaluator *evaluate.Evaluator, questions []question.Question, dir, path string, opts Options) (string, error) {
	quiz, err := Build(evaluator, questions, opts)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = filepath.Join(dir, DefaultFilename(quiz.GeneratedAt))
	}
	html, err := RenderHTML(ctx, quiz)
	if err != nil {
		return "", fmt.Errorf("render quiz page: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	logger.Get().Info("quiz exported",
		zap.String("path", path),
		zap.Int("questions", quiz.Total),
		zap.Int("pages", len(quiz.Pages)))
	return path, nil
}
