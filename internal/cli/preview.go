package cli

import (
	"flag"
	"fmt"
	"io"

	"quizmaker/internal/question"
)

const defaultPreviewCount = 5

// runPreview builds the handler for the preview command.
func runPreview(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		common := addCommonFlags(flags)
		count := flags.Int("count", defaultPreviewCount, "Number of questions to show (0 for all)")
		if code, stop := parseFlags(cmd, flags, args, stdout, stderr); stop {
			return code
		}
		if *count < 0 {
			fmt.Fprintln(stderr, "invalid arguments: --count must not be negative")
			return ExitUsage
		}

		cfg, err := loadProject(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Preview failed: %v\n", err)
			return ExitError
		}
		store, _, err := loadStore(cfg.QuestionsFile, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Preview failed: %v\n", err)
			return ExitError
		}

		questions := store.Questions()
		if *count > 0 && *count < len(questions) {
			questions = questions[:*count]
		}
		for i, q := range questions {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			writePreview(stdout, q)
		}
		fmt.Fprintf(stdout, "\nShowing %d of %d questions.\n", len(questions), store.Len())
		return ExitOK
	}
}

func writePreview(w io.Writer, q question.Question) {
	meta := q.Meta()
	fmt.Fprintf(w, "%s (%s)\n", question.Describe(q), q.Kind())
	if meta.SectionTitle != "" {
		fmt.Fprintf(w, "   Section: %s\n", meta.SectionTitle)
	}
	for _, option := range q.Options() {
		fmt.Fprintf(w, "   - %s\n", option)
	}
	fmt.Fprintf(w, "   Answer: %s\n", q.Answer())
	if meta.Explanation != "" {
		fmt.Fprintf(w, "   Explanation: %s\n", meta.Explanation)
	}
}
