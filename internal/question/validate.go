package question

import (
	"fmt"
	"slices"
)

// Reason identifies the rule a question record failed.
type Reason string

const (
	ReasonInvalidType          Reason = "InvalidType"
	ReasonInvalidDifficulty    Reason = "InvalidDifficulty"
	ReasonInsufficientOptions  Reason = "InsufficientOptions"
	ReasonAnswerNotInOptions   Reason = "AnswerNotInOptions"
	ReasonInvalidBooleanAnswer Reason = "InvalidBooleanAnswer"
	ReasonDuplicateID          Reason = "DuplicateID"
	ReasonMalformedRow         Reason = "MalformedRow"
)

// ValidationError reports why a single question was rejected.
type ValidationError struct {
	ID      int
	Reason  Reason
	Message string
}

// Error returns a readable message for the rejected question.
func (err *ValidationError) Error() string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("question %d: %s: %s", err.ID, err.Reason, err.Message)
}

func invalid(id int, reason Reason, format string, args ...any) *ValidationError {
	return &ValidationError{ID: id, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

const minMultipleChoiceOptions = 2

// Parse validates a record and builds the matching question variant.
// Rules run in order and the first failure is returned.
func Parse(record Record) (Question, error) {
	kind, ok := ParseKind(record.Type)
	if !ok {
		return nil, invalid(record.ID, ReasonInvalidType, "invalid type %q", record.Type)
	}
	base := Base{
		ID:           record.ID,
		Section:      record.Section,
		SectionTitle: record.SectionTitle,
		Difficulty:   Difficulty(record.Difficulty),
		Text:         record.Question,
		Explanation:  record.Explanation,
	}
	var (
		q   Question
		err error
	)
	switch kind {
	case KindMultipleChoice:
		q, err = NewMultipleChoice(base, record.Options, record.Answer)
	case KindTrueFalse:
		q, err = NewTrueFalse(base, record.Answer)
	default:
		q, err = NewShortAnswer(base, record.Answer)
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// NewMultipleChoice builds a multiple choice question, enforcing its option invariants.
func NewMultipleChoice(base Base, choices []string, correct string) (MultipleChoice, error) {
	if err := checkDifficulty(base); err != nil {
		return MultipleChoice{}, err
	}
	if len(choices) < minMultipleChoiceOptions {
		return MultipleChoice{}, invalid(base.ID, ReasonInsufficientOptions,
			"multiple choice needs at least %d options, got %d", minMultipleChoiceOptions, len(choices))
	}
	if !slices.Contains(choices, correct) {
		return MultipleChoice{}, invalid(base.ID, ReasonAnswerNotInOptions, "answer %q is not one of the options", correct)
	}
	return MultipleChoice{Base: base, Choices: append([]string(nil), choices...), Correct: correct}, nil
}

// NewTrueFalse builds a true/false question from its serialized answer.
func NewTrueFalse(base Base, answer string) (TrueFalse, error) {
	if err := checkDifficulty(base); err != nil {
		return TrueFalse{}, err
	}
	switch answer {
	case AnswerTrue:
		return TrueFalse{Base: base, Correct: true}, nil
	case AnswerFalse:
		return TrueFalse{Base: base, Correct: false}, nil
	default:
		return TrueFalse{}, invalid(base.ID, ReasonInvalidBooleanAnswer, "answer must be %q or %q, got %q", AnswerTrue, AnswerFalse, answer)
	}
}

// NewShortAnswer builds a self-assessed short answer question.
func NewShortAnswer(base Base, reference string) (ShortAnswer, error) {
	if err := checkDifficulty(base); err != nil {
		return ShortAnswer{}, err
	}
	return ShortAnswer{Base: base, Reference: reference}, nil
}

func checkDifficulty(base Base) error {
	if _, ok := ParseDifficulty(string(base.Difficulty)); !ok {
		return invalid(base.ID, ReasonInvalidDifficulty, "invalid difficulty %q", base.Difficulty)
	}
	return nil
}

// Valid re-checks the record rules against an existing question value.
func Valid(q Question) error {
	if q == nil {
		return invalid(0, ReasonInvalidType, "question is nil")
	}
	_, err := Parse(ToRecord(q))
	return err
}
