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

	"quizmaker/internal/reportserver"
)

// serveQuizzes is a test seam for running the page server.
var serveQuizzes = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		common := addCommonFlags(flags)
		addr := flags.String("addr", "", "Address to listen on (default: serve.addr)")
		dir := flags.String("dir", "", "Directory of exported pages (default: export.output_dir)")
		noHistory := flags.Bool("no-history", false, "Do not serve the history pages")
		if code, stop := parseFlags(cmd, flags, args, stdout, stderr); stop {
			return code
		}

		cfg, err := loadProject(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed: %v\n", err)
			return ExitError
		}
		serveCfg := reportserver.Config{
			Addr:      cfg.Serve.Addr,
			ExportDir: cfg.Export.OutputDir,
			HistoryDB: cfg.HistoryDB,
		}
		if value := strings.TrimSpace(*addr); value != "" {
			serveCfg.Addr = value
		}
		if value := strings.TrimSpace(*dir); value != "" {
			abs, err := filepath.Abs(value)
			if err != nil {
				fmt.Fprintf(stderr, "Serve failed: %v\n", err)
				return ExitError
			}
			serveCfg.ExportDir = abs
		}
		if *noHistory {
			serveCfg.HistoryDB = ""
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		fmt.Fprintf(stdout, "Serving quizzes from %s at http://%s\n", serveCfg.ExportDir, serveCfg.Addr)
		if err := serveQuizzes(ctx, serveCfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
