package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quizmaker/internal/config"
)

// initInput is the reader for init prompts. Tests replace it.
var initInput io.Reader

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		dir := flags.String("dir", "", "Project root (default: current directory)")
		yes := flags.Bool("yes", false, "Accept defaults without prompting")
		if code, stop := parseFlags(cmd, flags, args, stdout, stderr); stop {
			return code
		}

		root := strings.TrimSpace(*dir)
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			root = wd
		}

		if !*yes {
			in := initInput
			if in == nil {
				in = os.Stdin
			}
			reader := bufio.NewReader(in)
			value, err := promptString(reader, stdout, "Project root", root)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			root = value
			ok, err := promptYesNo(reader, stdout, fmt.Sprintf("Create %s under %s?", filepath.Join(config.ConfigDirName, config.ConfigFileName), root), true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if !ok {
				fmt.Fprintln(stdout, "Init cancelled.")
				return ExitOK
			}
		}

		abs, err := filepath.Abs(root)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		result, err := config.Scaffold(abs)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Created %s\n", result.ConfigPath)
		if result.QuestionsPath != "" {
			fmt.Fprintf(stdout, "Created %s\n", result.QuestionsPath)
		}
		fmt.Fprintln(stdout, "Next: quizmaker validate && quizmaker run")
		return ExitOK
	}
}
