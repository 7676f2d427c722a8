package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"quizmaker/internal/history"
	"quizmaker/internal/summary"
	"quizmaker/internal/ui/live"
)

// runHistory builds the handler for the history command.
func runHistory(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		common := addCommonFlags(flags)
		limit := flags.Int("limit", 20, "Number of recent sessions to list")
		missed := flags.Int("missed", 10, "Number of most missed questions to list")
		asJSON := flags.Bool("json", false, "Print the history as JSON")
		noColor := flags.Bool("no-color", false, "Disable colors")
		if code, stop := parseFlags(cmd, flags, args, stdout, stderr); stop {
			return code
		}

		cfg, err := loadProject(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		if cfg.HistoryDB == "" {
			fmt.Fprintln(stderr, "History failed: history_db is not configured")
			return ExitError
		}

		report := history.Report{}
		if _, err := os.Stat(cfg.HistoryDB); err == nil {
			ctx := context.Background()
			db, err := history.Open(ctx, cfg.HistoryDB)
			if err != nil {
				fmt.Fprintf(stderr, "History failed: %v\n", err)
				return ExitError
			}
			defer db.Close()
			if report, err = history.LoadReport(ctx, db, *limit, *missed); err != nil {
				fmt.Fprintf(stderr, "History failed: %v\n", err)
				return ExitError
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}

		if *asJSON {
			encoder := json.NewEncoder(stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(report); err != nil {
				fmt.Fprintf(stderr, "History failed: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		writeHistory(stdout, report, *noColor || cfg.UI.NoColor)
		return ExitOK
	}
}

func writeHistory(w io.Writer, report history.Report, noColor bool) {
	if len(report.Sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded yet.")
		return
	}

	rows := make([][]string, 0, len(report.Sessions))
	for _, s := range report.Sessions {
		filters := s.Section
		if s.Difficulty != "" {
			if filters != "" {
				filters += " "
			}
			filters += s.Difficulty
		}
		rows = append(rows, []string{
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			shortID(s.SessionID),
			filters,
			fmt.Sprintf("%d/%d", s.Score, s.Total),
			fmt.Sprintf("%.1f%%", s.Percentage),
		})
	}
	fmt.Fprintln(w, "Recent sessions")
	fmt.Fprintln(w, live.RenderTable([]string{"Started", "Session", "Filters", "Score", "Percent"}, rows, noColor))

	if len(report.Totals) > 0 {
		var totals [][]string
		for _, difficulty := range summary.SortedDifficulties(report.Totals) {
			tally := report.Totals[difficulty]
			totals = append(totals, []string{
				string(difficulty),
				fmt.Sprintf("%d/%d", tally.Correct, tally.Total),
				fmt.Sprintf("%.1f%%", tally.Percentage()),
			})
		}
		fmt.Fprintln(w, "\nAll sessions by difficulty")
		fmt.Fprintln(w, live.RenderTable([]string{"Difficulty", "Correct", "Percent"}, totals, noColor))
	}

	if len(report.MostMissed) > 0 {
		var worst [][]string
		for _, m := range report.MostMissed {
			worst = append(worst, []string{
				strconv.Itoa(m.QuestionID),
				m.Question,
				m.CorrectAnswer,
				fmt.Sprintf("%d of %d", m.Missed, m.Asked),
			})
		}
		fmt.Fprintln(w, "\nMost missed questions")
		fmt.Fprintln(w, live.RenderTable([]string{"ID", "Question", "Answer", "Missed"}, worst, noColor))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
