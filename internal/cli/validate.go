package cli

import (
	"flag"
	"fmt"
	"io"

	"quizmaker/internal/question"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		common := addCommonFlags(flags)
		if code, stop := parseFlags(cmd, flags, args, stdout, stderr); stop {
			return code
		}

		cfg, err := loadProject(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		fmt.Fprintln(stdout, "Config OK")

		result, err := question.LoadFile(cfg.QuestionsFile)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		if len(result.Rejected) > 0 {
			fmt.Fprintf(stderr, "Validation failed: %d of %d questions rejected\n",
				len(result.Rejected), len(result.Rejected)+result.Store.Len())
			for _, rejection := range result.Rejected {
				fmt.Fprintf(stderr, "- %s\n", describeRejection(rejection))
			}
			return ExitError
		}
		fmt.Fprintf(stdout, "Questions OK (%d in %s)\n", result.Store.Len(), cfg.QuestionsFile)
		return ExitOK
	}
}
