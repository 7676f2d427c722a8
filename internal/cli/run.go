package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"quizmaker/internal/config"
	"quizmaker/internal/evaluate"
	"quizmaker/internal/history"
	"quizmaker/internal/logger"
	"quizmaker/internal/selection"
	"quizmaker/internal/session"
	"quizmaker/internal/summary"
	"quizmaker/internal/ui/live"
)

// runInput is the reader answers come from. Tests replace it.
var runInput io.Reader

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		common := addCommonFlags(flags)
		sel := addSelectionFlags(flags)
		uiMode := flags.String("ui", "", "UI mode: auto|live|plain (default: ui.mode)")
		noColor := flags.Bool("no-color", false, "Disable colors in the live UI")
		resultsPath := flags.String("results", "", "Results file (default: <results_dir>/quiz_results_<session>.json)")
		noSave := flags.Bool("no-save", false, "Do not write a results file")
		noHistory := flags.Bool("no-history", false, "Do not record the session in the history database")
		if code, stop := parseFlags(cmd, flags, args, stdout, stderr); stop {
			return code
		}

		cfg, err := loadProject(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}
		criteria, err := sel.criteria(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		mode := cfg.UI.Mode
		if strings.TrimSpace(*uiMode) != "" {
			mode = *uiMode
		}
		decision, err := resolveUIMode(mode, *common.verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		store, _, err := loadStore(cfg.QuestionsFile, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}
		engine, evaluator := sel.engines()
		sess, err := session.New(engine, store, criteria)
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		in := runInput
		if in == nil {
			in = os.Stdin
		}
		colorless := *noColor || cfg.UI.NoColor
		var respondent evaluate.Respondent
		var observer session.Observer
		if decision.useLive {
			liveRespondent := live.NewRespondent(in, stdout, live.Options{NoColor: colorless})
			liveRespondent.Start(sess.ID, len(sess.Questions))
			respondent, observer = liveRespondent, liveRespondent
		} else {
			fmt.Fprintf(stdout, "%s\nQuiz started: %d questions\n%s\n",
				strings.Repeat("=", 60), len(sess.Questions), strings.Repeat("=", 60))
			respondent, observer = newPlainRespondent(in, stdout), plainObserver{out: stdout}
		}

		result, err := sess.Run(ctx, evaluator, respondent, observer)
		if err != nil {
			if errors.Is(err, live.ErrAborted) || errors.Is(err, context.Canceled) || errors.Is(err, errInputClosed) {
				fmt.Fprintf(stderr, "Quiz aborted: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		if decision.useLive {
			fmt.Fprintln(stdout, live.SummaryView(result, colorless))
		} else {
			writePlainSummary(stdout, result)
		}

		if !*noSave {
			path := strings.TrimSpace(*resultsPath)
			if path == "" {
				path = filepath.Join(cfg.ResultsDir, summary.DefaultFilename(sess.ID))
			}
			if err := summary.Save(path, result); err != nil {
				fmt.Fprintf(stderr, "Run failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Results saved to %s\n", path)
		}

		if !*noHistory && cfg.HistoryDB != "" {
			if err := recordHistory(context.Background(), cfg, sess, result); err != nil {
				logger.Get().Warn("history not recorded", zap.Error(err))
				fmt.Fprintf(stderr, "Warning: history not recorded: %v\n", err)
			}
		}
		return ExitOK
	}
}

func recordHistory(ctx context.Context, cfg config.Config, sess *session.Session, result summary.Summary) error {
	db, err := history.Open(ctx, cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.RecordSession(ctx, history.Entry{
		SessionID:  sess.ID,
		StartedAt:  sess.StartedAt,
		FinishedAt: sess.FinishedAt,
		Source:     cfg.QuestionsFile,
		Section:    sess.Criteria.Section,
		Difficulty: sess.Criteria.Difficulty,
		Shuffle:    sess.Criteria.Shuffle,
		Summary:    result,
	})
}

// selectionFlags are the criteria flags shared by run and export.
type selectionFlags struct {
	count      *int
	section    *string
	difficulty *string
	shuffle    *bool
	ordered    *bool
	seed       *uint64
}

func addSelectionFlags(flags *flag.FlagSet) selectionFlags {
	return selectionFlags{
		count:      flags.Int("count", -1, "Number of questions, 0 for every match (default: quiz.count)"),
		section:    flags.String("section", "", "Keep sections starting with this prefix (default: quiz.section)"),
		difficulty: flags.String("difficulty", "", "Keep one difficulty: Easy|Medium|Hard (default: quiz.difficulty)"),
		shuffle:    flags.Bool("shuffle", false, "Draw a random sample"),
		ordered:    flags.Bool("ordered", false, "Take the first questions in file order"),
		seed:       flags.Uint64("seed", 0, "Random seed for repeatable sessions (0: random)"),
	}
}

// criteria merges the flags over the config defaults.
func (f selectionFlags) criteria(cfg config.Config) (selection.Criteria, error) {
	if *f.shuffle && *f.ordered {
		return selection.Criteria{}, errors.New("--shuffle and --ordered are mutually exclusive")
	}
	count := cfg.Quiz.Count
	if *f.count >= 0 {
		count = *f.count
	}
	section := cfg.Quiz.Section
	if value := strings.TrimSpace(*f.section); value != "" {
		section = value
	}
	difficulty := cfg.Quiz.Difficulty
	if value := strings.TrimSpace(*f.difficulty); value != "" {
		difficulty = value
	}
	shuffle := cfg.Quiz.Shuffle
	switch {
	case *f.shuffle:
		shuffle = true
	case *f.ordered:
		shuffle = false
	}
	return buildCriteria(count, section, difficulty, shuffle)
}

// engines builds the selection engine and evaluator, seeded when --seed is set.
func (f selectionFlags) engines() (*selection.Engine, *evaluate.Evaluator) {
	if *f.seed == 0 {
		return selection.NewEngine(nil), evaluate.New()
	}
	seed := *f.seed
	return selection.NewEngine(rand.New(rand.NewPCG(seed, 1))),
		evaluate.New(evaluate.WithRand(rand.New(rand.NewPCG(seed, 2))))
}
