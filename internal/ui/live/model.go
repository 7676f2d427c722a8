package live

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizmaker/internal/evaluate"
	"quizmaker/internal/question"
)

// Model prompts for the answer to one question using Bubble Tea.
type Model struct {
	state     State
	prompt    evaluate.Prompt
	input     textinput.Model
	revealed  bool
	submitted bool
	aborted   bool
	now       time.Time
	noColor   bool
}

// Options configures the live UI.
type Options struct {
	NoColor bool
}

// NewModel constructs a prompt model for one question.
func NewModel(state State, prompt evaluate.Prompt, opts Options) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 256
	input.Placeholder = placeholder(prompt)
	input.Focus()
	return Model{
		state:    state,
		prompt:   prompt,
		input:    input,
		revealed: prompt.Kind() != question.KindShortAnswer,
		now:      time.Now(),
		noColor:  opts.NoColor,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses. Enter reveals a short answer reference first,
// then submits.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			if !m.revealed {
				m.revealed = true
				m.input.Placeholder = placeholder(m.prompt)
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the question and the input line.
func (m Model) View() string {
	if m.submitted || m.aborted {
		return renderQuestion(m.prompt.Question, m.noColor) + "\n" + stylize("> "+m.Value(), m.noColor, colorMuted) + "\n"
	}
	parts := []string{
		renderHeader(m.state, m.now, m.noColor),
		"",
		renderQuestion(m.prompt.Question, m.noColor),
	}
	if len(m.prompt.Choices) > 0 {
		parts = append(parts, renderChoices(m.prompt))
	}
	if m.prompt.Kind() == question.KindShortAnswer {
		if !m.revealed {
			parts = append(parts, stylize("Think about your answer, then press Enter to see the reference answer.", m.noColor, colorMuted))
			return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
		}
		parts = append(parts, "Expected answer: "+stylize(m.prompt.Reference, m.noColor, colorAccent))
	}
	if m.prompt.Problem != "" {
		parts = append(parts, stylize(m.prompt.Problem, m.noColor, colorIncorrect))
	}
	parts = append(parts, "", m.input.View(), stylize(m.prompt.Hint+" | esc to quit", m.noColor, colorMuted))
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

// Value returns the trimmed input.
func (m Model) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Submitted reports whether the respondent pressed Enter on an answer.
func (m Model) Submitted() bool {
	return m.submitted
}

// Aborted reports whether the respondent quit.
func (m Model) Aborted() bool {
	return m.aborted
}

func placeholder(prompt evaluate.Prompt) string {
	switch prompt.Kind() {
	case question.KindMultipleChoice:
		labels := make([]string, 0, len(prompt.Choices))
		for _, choice := range prompt.Choices {
			labels = append(labels, choice.Label)
		}
		return strings.Join(labels, "/")
	case question.KindTrueFalse:
		return "A/B or True/False"
	default:
		return "y/n"
	}
}
