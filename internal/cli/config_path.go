package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"quizmaker/internal/config"
	"quizmaker/internal/logger"
)

// commonFlags are the flags shared by commands that load the project config.
type commonFlags struct {
	configPath *string
	questions  *string
	verbose    *bool
}

func addCommonFlags(flags *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath: flags.String("config", "", "Path to config file (default: search for .quizmaker/config.yml)"),
		questions:  flags.String("questions", "", "Question bank file (overrides questions_file)"),
		verbose:    flags.Bool("verbose", false, "Log debug output to stderr"),
	}
}

// loadProject resolves the config, applies flag overrides and sets up logging.
// Without a config file the defaults apply, rooted at the working directory.
func loadProject(common commonFlags, stderr io.Writer) (config.Config, error) {
	cfg, configPath, err := resolveConfig(*common.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if value := strings.TrimSpace(*common.questions); value != "" {
		abs, err := filepath.Abs(value)
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve questions path: %w", err)
		}
		cfg.QuestionsFile = abs
	}

	logCfg := cfg.Log.Logger()
	if *common.verbose {
		logCfg.Level = "debug"
	}
	if err := logger.Initialize(logCfg, stderr); err != nil {
		return config.Config{}, fmt.Errorf("init logger: %w", err)
	}
	logger.Get().Debug("project loaded",
		zap.String("config", configPath),
		zap.String("root", cfg.Root),
		zap.String("questions", cfg.QuestionsFile))
	return cfg, nil
}

// resolveConfig loads an explicit config path or finds one from the working
// directory. It returns the path used, empty when only defaults applied.
func resolveConfig(configPath string) (config.Config, string, error) {
	if value := strings.TrimSpace(configPath); value != "" {
		abs, err := filepath.Abs(value)
		if err != nil {
			return config.Config{}, "", fmt.Errorf("resolve config path: %w", err)
		}
		cfg, err := config.Load(abs)
		return cfg, abs, err
	}

	found, err := config.FindConfigPath("")
	if err == nil {
		cfg, err := config.Load(found)
		return cfg, found, err
	}
	if !errors.Is(err, config.ErrNotFound) {
		return config.Config{}, "", err
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("get working directory: %w", err)
	}
	cfg, err := config.LoadDefaults(wd)
	return cfg, "", err
}

// parseFlags parses args and reports the exit code when the command should
// stop, for help requests or usage errors.
func parseFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	flags.SetOutput(stderr)
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, true
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, true
	}
	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage, true
	}
	return ExitOK, false
}
