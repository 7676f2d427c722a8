package live

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"quizmaker/internal/evaluate"
	"quizmaker/internal/question"
	"quizmaker/internal/summary"
)

// renderHeader renders the progress line.
func renderHeader(state State, now time.Time, noColor bool) string {
	line := fmt.Sprintf("Question %d/%d", state.Current+1, max(state.Total, 1))
	line += fmt.Sprintf(" | Score %d/%d", state.Counts.Correct, state.Counts.Answered)
	if !state.StartedAt.IsZero() {
		line += " | Elapsed " + now.Sub(state.StartedAt).Round(time.Second).String()
	}
	return stylize(line, noColor, colorHeader)
}

// renderQuestion renders the question text with its tags.
func renderQuestion(q question.Question, noColor bool) string {
	meta := q.Meta()
	tags := []string{string(q.Kind()), string(meta.Difficulty)}
	if meta.Section != "" {
		section := "Section " + meta.Section
		if meta.SectionTitle != "" {
			section += " " + meta.SectionTitle
		}
		tags = append([]string{section}, tags...)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		stylize(strings.Join(tags, " | "), noColor, colorMuted),
		bold(meta.Text, noColor),
	)
}

// renderChoices renders the labeled options, one per line.
func renderChoices(prompt evaluate.Prompt) string {
	lines := make([]string, 0, len(prompt.Choices))
	for _, choice := range prompt.Choices {
		lines = append(lines, "  "+choice.Label+") "+choice.Option)
	}
	return strings.Join(lines, "\n")
}

// renderFeedback renders the verdict shown after a question is judged.
func renderFeedback(q question.Question, record summary.AnswerRecord, noColor bool) string {
	var verdict string
	if record.IsCorrect {
		verdict = stylize("Correct!", noColor, colorCorrect)
	} else {
		verdict = stylize("Incorrect.", noColor, colorIncorrect)
		if q.Kind() != question.KindShortAnswer {
			verdict += " The answer was: " + record.CorrectAnswer
		}
	}
	lines := []string{verdict}
	if explanation := q.Meta().Explanation; explanation != "" {
		lines = append(lines, stylize("Explanation: "+explanation, noColor, colorMuted))
	}
	return strings.Join(lines, "\n")
}
