package live

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorHeader    = lipgloss.Color("33")
	colorMuted     = lipgloss.Color("242")
	colorCorrect   = lipgloss.Color("42")
	colorIncorrect = lipgloss.Color("203")
	colorAccent    = lipgloss.Color("212")
)

// formatIndex formats a question index.
func formatIndex(index int) string {
	return "Q" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return strconv.Itoa(value)
	}
	return "0" + strconv.Itoa(value)
}

// formatQuestionText collapses whitespace and truncates text for table cells.
func formatQuestionText(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if limit <= 3 || len([]rune(normalized)) <= limit {
		return normalized
	}
	return string([]rune(normalized)[:limit-3]) + "..."
}

// formatStatus renders a row status, colored by outcome.
func formatStatus(status RowStatus, noColor bool) string {
	switch status {
	case StatusCorrect:
		return stylize("correct", noColor, colorCorrect)
	case StatusIncorrect:
		return stylize("incorrect", noColor, colorIncorrect)
	case StatusAsking:
		return stylize("asking", noColor, colorAccent)
	default:
		return string(status)
	}
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// bold applies optional bold styling.
func bold(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}
