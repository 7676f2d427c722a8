package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"quizmaker/internal/question"
)

const configHeader = `# quizmaker project configuration.
# Relative paths resolve against the directory that holds .quizmaker/.
# Any key can be overridden with QUIZMAKER_<KEY>, e.g. QUIZMAKER_QUIZ_COUNT=5.
`

// ScaffoldResult lists the files Scaffold created.
type ScaffoldResult struct {
	ConfigPath    string
	QuestionsPath string
}

// Scaffold writes a default config and, when missing, a sample question bank
// under root. It refuses to overwrite an existing config.
func Scaffold(root string) (ScaffoldResult, error) {
	if root == "" {
		return ScaffoldResult{}, fmt.Errorf("project root is required")
	}
	configPath := ConfigPath(root)
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return ScaffoldResult{}, fmt.Errorf("config path %q is a directory", configPath)
		}
		return ScaffoldResult{}, fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return ScaffoldResult{}, fmt.Errorf("stat config file: %w", err)
	}

	data, err := renderScaffoldConfig(Default())
	if err != nil {
		return ScaffoldResult{}, err
	}
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		return ScaffoldResult{}, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ScaffoldResult{}, fmt.Errorf("write config file: %w", err)
	}

	result := ScaffoldResult{ConfigPath: configPath}
	questionsPath := filepath.Join(root, DefaultQuestions)
	if _, err := os.Stat(questionsPath); os.IsNotExist(err) {
		if err := question.SaveFile(questionsPath, SampleQuestions()); err != nil {
			return ScaffoldResult{}, fmt.Errorf("write sample questions: %w", err)
		}
		result.QuestionsPath = questionsPath
	} else if err != nil {
		return ScaffoldResult{}, fmt.Errorf("stat questions file: %w", err)
	}
	return result, nil
}

// renderScaffoldConfig encodes cfg as the commented scaffold YAML.
func renderScaffoldConfig(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// SampleQuestions returns the starter question bank written by Scaffold.
func SampleQuestions() []question.Question {
	base := func(id int, section, title string, difficulty question.Difficulty, text, explanation string) question.Base {
		return question.Base{ID: id, Section: section, SectionTitle: title, Difficulty: difficulty, Text: text, Explanation: explanation}
	}
	must := func(q question.Question, err error) question.Question {
		if err != nil {
			panic(err)
		}
		return q
	}
	return []question.Question{
		must(question.NewMultipleChoice(
			base(1, "1.1", "Go basics", question.DifficultyEasy, "Which keyword declares a constant?", "const declares compile time constants."),
			[]string{"const", "let", "final", "static"}, "const")),
		must(question.NewTrueFalse(
			base(2, "1.1", "Go basics", question.DifficultyMedium, "A nil map can be read from without panicking.", "Reads return the zero value; writes panic."),
			question.AnswerTrue)),
		must(question.NewShortAnswer(
			base(3, "1.2", "Go basics", question.DifficultyHard, "What does the blank identifier _ do in an import?", "The package is imported for its side effects."),
			"Imports a package only for its init side effects")),
		must(question.NewMultipleChoice(
			base(4, "2.1", "Concurrency", question.DifficultyMedium, "Which statement waits on several channel operations?", "select blocks until one case can proceed."),
			[]string{"switch", "select", "defer", "go"}, "select")),
		must(question.NewTrueFalse(
			base(5, "2.1", "Concurrency", question.DifficultyEasy, "Goroutines are OS threads.", "Goroutines are multiplexed onto OS threads by the runtime."),
			question.AnswerFalse)),
		must(question.NewShortAnswer(
			base(6, "2.2", "Concurrency", question.DifficultyMedium, "Name the package that provides WaitGroup.", "sync also provides Mutex and Once."),
			"sync")),
		must(question.NewMultipleChoice(
			base(7, "3.1", "Errors", question.DifficultyHard, "Which verb wraps an error with fmt.Errorf?", "%w keeps the wrapped error reachable by errors.Is and errors.As."),
			[]string{"%v", "%s", "%w", "%e"}, "%w")),
		must(question.NewTrueFalse(
			base(8, "3.1", "Errors", question.DifficultyEasy, "error is a built-in interface type.", "It declares a single Error() string method."),
			question.AnswerTrue)),
	}
}
