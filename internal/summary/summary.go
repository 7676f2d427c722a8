package summary

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"quizmaker/internal/question"
)

// AnswerRecord is the outcome of answering one question.
type AnswerRecord struct {
	QuestionID    int                 `json:"question_id"`
	Question      string              `json:"question"`
	UserAnswer    string              `json:"user_answer"`
	CorrectAnswer string              `json:"correct_answer"`
	IsCorrect     bool                `json:"is_correct"`
	Difficulty    question.Difficulty `json:"difficulty"`
}

// Summary is the scored result of a session.
type Summary struct {
	Score      int            `json:"score"`
	Total      int            `json:"total"`
	Percentage float64        `json:"percentage"`
	Results    []AnswerRecord `json:"results"`
}

// Tally counts correct answers out of a total.
type Tally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percentage returns the share of correct answers, 0 for an empty tally.
func (t Tally) Percentage() float64 {
	return percentage(t.Correct, t.Total)
}

// Summarize folds answer records into a summary. Records are copied.
func Summarize(records []AnswerRecord) Summary {
	score := 0
	for _, record := range records {
		if record.IsCorrect {
			score++
		}
	}
	results := make([]AnswerRecord, len(records))
	copy(results, records)
	return Summary{
		Score:      score,
		Total:      len(records),
		Percentage: percentage(score, len(records)),
		Results:    results,
	}
}

func percentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// BreakdownByDifficulty groups results by the difficulty recorded with each answer.
// Difficulties with no answers are absent.
func (s Summary) BreakdownByDifficulty() map[question.Difficulty]Tally {
	breakdown := make(map[question.Difficulty]Tally)
	for _, record := range s.Results {
		tally := breakdown[record.Difficulty]
		tally.Total++
		if record.IsCorrect {
			tally.Correct++
		}
		breakdown[record.Difficulty] = tally
	}
	return breakdown
}

// Missed returns the incorrectly answered records in session order.
func (s Summary) Missed() []AnswerRecord {
	var missed []AnswerRecord
	for _, record := range s.Results {
		if !record.IsCorrect {
			missed = append(missed, record)
		}
	}
	return missed
}

// SortedDifficulties orders the breakdown keys Easy, Medium, Hard, then any
// unknown value alphabetically.
func SortedDifficulties(breakdown map[question.Difficulty]Tally) []question.Difficulty {
	rank := func(d question.Difficulty) int {
		if i := slices.Index(question.Difficulties, d); i >= 0 {
			return i
		}
		return len(question.Difficulties)
	}
	keys := make([]question.Difficulty, 0, len(breakdown))
	for difficulty := range breakdown {
		keys = append(keys, difficulty)
	}
	slices.SortFunc(keys, func(a, b question.Difficulty) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})
	return keys
}

// Grade returns the performance band for a percentage.
func Grade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "Excellent"
	case percentage >= 80:
		return "Very good"
	case percentage >= 70:
		return "Good"
	case percentage >= 60:
		return "Passable"
	default:
		return "Keep studying"
	}
}

// Save writes the summary as indented JSON, creating parent directories.
func Save(path string, s Summary) error {
	if path == "" {
		return errors.New("results path is required")
	}
	if s.Results == nil {
		s.Results = []AnswerRecord{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// LoadFile reads a summary written by Save.
func LoadFile(path string) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("read results: %w", err)
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return Summary{}, fmt.Errorf("parse results %s: %w", path, err)
	}
	return s, nil
}

// DefaultFilename names the results file for a session.
func DefaultFilename(sessionID string) string {
	return fmt.Sprintf("quiz_results_%s.json", sessionID)
}
