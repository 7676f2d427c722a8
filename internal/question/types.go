package question

// Difficulty is the difficulty level of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the supported difficulty levels from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty maps a serialized difficulty to a Difficulty.
func ParseDifficulty(value string) (Difficulty, bool) {
	for _, difficulty := range Difficulties {
		if string(difficulty) == value {
			return difficulty, true
		}
	}
	return "", false
}

// Kind is the question type tag used in serialized records.
type Kind string

const (
	KindMultipleChoice Kind = "Multiple Choice"
	KindTrueFalse      Kind = "True/False"
	KindShortAnswer    Kind = "Short Answer"
)

// Kinds lists the supported question kinds.
var Kinds = []Kind{KindMultipleChoice, KindTrueFalse, KindShortAnswer}

// ParseKind maps a serialized type tag to a Kind.
func ParseKind(value string) (Kind, bool) {
	for _, kind := range Kinds {
		if string(kind) == value {
			return kind, true
		}
	}
	return "", false
}

const (
	AnswerTrue  = "True"
	AnswerFalse = "False"
)

// Base holds the fields shared by every question variant.
type Base struct {
	ID           int
	Section      string
	SectionTitle string
	Difficulty   Difficulty
	Text         string
	Explanation  string
}

// Meta returns the shared question fields.
func (b Base) Meta() Base {
	return b
}

// Question is one of MultipleChoice, TrueFalse or ShortAnswer.
type Question interface {
	Meta() Base
	Kind() Kind
	// Options returns a copy of the answer options in stored order.
	Options() []string
	// Answer returns the reference answer as serialized.
	Answer() string
	isQuestion()
}

// MultipleChoice is a question answered by picking one of its choices.
type MultipleChoice struct {
	Base
	Choices []string
	Correct string
}

func (MultipleChoice) Kind() Kind { return KindMultipleChoice }

func (q MultipleChoice) Options() []string {
	return append([]string(nil), q.Choices...)
}

func (q MultipleChoice) Answer() string { return q.Correct }

func (MultipleChoice) isQuestion() {}

// TrueFalse is a question whose answer is True or False.
type TrueFalse struct {
	Base
	Correct bool
}

func (TrueFalse) Kind() Kind { return KindTrueFalse }

func (TrueFalse) Options() []string {
	return []string{AnswerTrue, AnswerFalse}
}

func (q TrueFalse) Answer() string {
	if q.Correct {
		return AnswerTrue
	}
	return AnswerFalse
}

func (TrueFalse) isQuestion() {}

// ShortAnswer is a free-text question graded by the respondent.
type ShortAnswer struct {
	Base
	Reference string
}

func (ShortAnswer) Kind() Kind { return KindShortAnswer }

func (ShortAnswer) Options() []string { return nil }

func (q ShortAnswer) Answer() string { return q.Reference }

func (ShortAnswer) isQuestion() {}

// Record is the serialized form of a question as stored in a question bank.
type Record struct {
	ID           int      `json:"id" yaml:"id"`
	Section      string   `json:"section" yaml:"section"`
	SectionTitle string   `json:"section_title" yaml:"section_title"`
	Difficulty   string   `json:"difficulty" yaml:"difficulty"`
	Type         string   `json:"type" yaml:"type"`
	Question     string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options"`
	Answer       string   `json:"answer" yaml:"answer"`
	Explanation  string   `json:"explanation" yaml:"explanation"`
}

// ToRecord serializes a question back into a Record.
func ToRecord(q Question) Record {
	meta := q.Meta()
	options := q.Options()
	if options == nil {
		options = []string{}
	}
	return Record{
		ID:           meta.ID,
		Section:      meta.Section,
		SectionTitle: meta.SectionTitle,
		Difficulty:   string(meta.Difficulty),
		Type:         string(q.Kind()),
		Question:     meta.Text,
		Options:      options,
		Answer:       q.Answer(),
		Explanation:  meta.Explanation,
	}
}
