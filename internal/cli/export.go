package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"quizmaker/internal/export"
	"quizmaker/internal/question"
)

// runExport builds the handler for the export command.
func runExport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		common := addCommonFlags(flags)
		sel := addSelectionFlags(flags)
		types := flags.String("types", "", "Comma separated question types to keep: mc,tf,sa (default: all)")
		perPage := flags.Int("per-page", -1, "Questions per page, 0 for a single page (default: export.questions_per_page)")
		title := flags.String("title", "", "Page title (default: export.title)")
		out := flags.String("out", "", "Output file (default: <export.output_dir>/quiz_<timestamp>.html)")
		if code, stop := parseFlags(cmd, flags, args, stdout, stderr); stop {
			return code
		}

		kinds, err := export.ParseKinds(*types)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		cfg, err := loadProject(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		criteria, err := sel.criteria(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		store, _, err := loadStore(cfg.QuestionsFile, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		pool := question.NewStore(export.FilterKinds(store.Questions(), kinds))
		engine, evaluator := sel.engines()
		questions, err := engine.Select(pool, criteria)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}

		opts := export.Options{
			Title:            cfg.Export.Title,
			QuestionsPerPage: cfg.Export.QuestionsPerPage,
		}
		if value := strings.TrimSpace(*title); value != "" {
			opts.Title = value
		}
		if *perPage >= 0 {
			opts.QuestionsPerPage = *perPage
		}
		path := strings.TrimSpace(*out)
		if path != "" {
			if path, err = filepath.Abs(path); err != nil {
				fmt.Fprintf(stderr, "Export failed: %v\n", err)
				return ExitError
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		written, err := export.Write(ctx, evaluator, questions, cfg.Export.OutputDir, path, opts)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Exported %d questions to %s\n", len(questions), written)
		return ExitOK
	}
}
