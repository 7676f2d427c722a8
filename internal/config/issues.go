package config

import (
	"fmt"
	"strings"
)

// Issue is one rejected config key.
type Issue struct {
	Field   string
	Message string
}

// ValidationError lists every rejected key of a quizmaker config, in check order.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "invalid quizmaker config"
	}
	var b strings.Builder
	for i, issue := range err.Issues {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", issue.Field, issue.Message)
	}
	return b.String()
}

// issues gathers failed checks so one run of validate reports all of them.
type issues []Issue

// require records field when ok is false.
func (list *issues) require(ok bool, field, message string) {
	if !ok {
		*list = append(*list, Issue{Field: field, Message: message})
	}
}

func (list issues) err() error {
	if len(list) == 0 {
		return nil
	}
	return &ValidationError{Issues: list}
}
