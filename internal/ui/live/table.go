package live

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"quizmaker/internal/summary"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	styles.Selected = lipgloss.NewStyle()
	if noColor {
		styles.Header = styles.Header.UnsetForeground().UnsetBorderForeground()
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// RenderTable renders a static table sized to its content.
func RenderTable(headers []string, rows [][]string, noColor bool) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		for i := range headers {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
		tableRows = append(tableRows, table.Row(row))
	}
	columns := make([]table.Column, len(headers))
	for i, header := range headers {
		columns[i] = table.Column{Title: header, Width: widths[i]}
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(false),
		table.WithHeight(len(tableRows)+2),
	)
	t.SetStyles(tableStyles(noColor))
	return t.View()
}

// SummaryView renders the end of session report.
func SummaryView(s summary.Summary, noColor bool) string {
	rows := make([][]string, 0, len(s.Results))
	for i, record := range s.Results {
		result := "correct"
		if !record.IsCorrect {
			result = "incorrect"
		}
		rows = append(rows, []string{
			formatIndex(i),
			formatQuestionText(record.Question, 48),
			string(record.Difficulty),
			formatQuestionText(record.UserAnswer, 28),
			result,
		})
	}
	results := RenderTable([]string{"#", "Question", "Difficulty", "Your answer", "Result"}, rows, noColor)

	breakdown := s.BreakdownByDifficulty()
	byDifficulty := make([][]string, 0, len(breakdown))
	for _, difficulty := range summary.SortedDifficulties(breakdown) {
		tally := breakdown[difficulty]
		byDifficulty = append(byDifficulty, []string{
			string(difficulty),
			fmt.Sprintf("%d/%d", tally.Correct, tally.Total),
			fmt.Sprintf("%.1f%%", tally.Percentage()),
		})
	}

	score := fmt.Sprintf("Score: %d/%d (%.1f%%) %s", s.Score, s.Total, s.Percentage, summary.Grade(s.Percentage))
	return lipgloss.JoinVertical(lipgloss.Left,
		stylize(bold(score, noColor), noColor, colorHeader),
		"",
		results,
		"",
		RenderTable([]string{"Difficulty", "Correct", "Percent"}, byDifficulty, noColor),
	)
}
