package cli

import (
	"fmt"
	"io"
	"strings"

	"quizmaker/internal/question"
	"quizmaker/internal/selection"
)

// loadStore reads the question bank and reports skipped records on stderr.
func loadStore(path string, stderr io.Writer) (*question.Store, []question.Rejection, error) {
	result, err := question.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	for _, rejection := range result.Rejected {
		fmt.Fprintf(stderr, "Skipped %s\n", describeRejection(rejection))
	}
	return result.Store, result.Rejected, nil
}

func describeRejection(r question.Rejection) string {
	if r.Line > 0 {
		return fmt.Sprintf("line %d (%s): %v", r.Line, r.Reason(), r.Err)
	}
	return fmt.Sprintf("question %d (%s): %v", r.Record.ID, r.Reason(), r.Err)
}

// buildCriteria validates the selection flags.
func buildCriteria(count int, section, difficulty string, shuffle bool) (selection.Criteria, error) {
	criteria := selection.Criteria{Count: count, Section: section, Shuffle: shuffle}
	if difficulty != "" {
		parsed, ok := parseDifficulty(difficulty)
		if !ok {
			return selection.Criteria{}, fmt.Errorf("invalid difficulty %q (expected Easy|Medium|Hard)", difficulty)
		}
		criteria.Difficulty = parsed
	}
	return criteria, nil
}

// parseDifficulty accepts a difficulty in any letter case.
func parseDifficulty(value string) (question.Difficulty, bool) {
	for _, difficulty := range question.Difficulties {
		if strings.EqualFold(string(difficulty), strings.TrimSpace(value)) {
			return difficulty, true
		}
	}
	return "", false
}
