package main

import (
	"os"

	"quizmaker/internal/cli"
	"quizmaker/internal/logger"
)

func main() {
	code := cli.Run(os.Args[1:], os.Stdout, os.Stderr)
	_ = logger.Sync()
	os.Exit(code)
}
