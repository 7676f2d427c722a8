package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  quizmaker <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"quizmaker <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .quizmaker/config.yml and a sample question bank", []string{
		"quizmaker init [--dir <path>] [--yes]",
	}, runInit),
	command("validate", "Validate the config and the question bank", []string{
		"quizmaker validate [--config <path>] [--questions <path>]",
	}, runValidate),
	command("stats", "Show question bank statistics", []string{
		"quizmaker stats [--config <path>] [--questions <path>] [--json]",
	}, runStats),
	command("preview", "Print the first questions with their answers", []string{
		"quizmaker preview [--count <n>] [--questions <path>]",
	}, runPreview),
	command("run", "Run an interactive quiz session", []string{
		"quizmaker run [--count <n>] [--section <prefix>] [--difficulty Easy|Medium|Hard]",
		"              [--shuffle|--ordered] [--ui auto|live|plain] [--results <path>] [--no-history]",
	}, runRun),
	command("export", "Export a quiz as a static HTML page", []string{
		"quizmaker export [--count <n>] [--types mc,tf,sa] [--per-page <n>] [--out <path>]",
	}, runExport),
	command("history", "Show recorded session history", []string{
		"quizmaker history [--limit <n>] [--json]",
	}, runHistory),
	command("serve", "Serve exported quizzes and the history over HTTP", []string{
		"quizmaker serve [--addr <host:port>] [--dir <path>]",
	}, runServe),
}
