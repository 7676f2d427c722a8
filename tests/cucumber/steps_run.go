package cucumber

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"quizmaker/internal/cli"
)

// theAnswers stores the lines fed to the next command on stdin.
func (s *featureState) theAnswers(doc *godog.DocString) error {
	s.answers = doc.Content + "\n"
	return nil
}

// theAnswersAre stores answers written on one line, separated by "|".
func (s *featureState) theAnswersAre(line string) error {
	s.answers = strings.ReplaceAll(line, "|", "\n") + "\n"
	return nil
}

// iRunCommand executes a CLI command for the scenario with the stored answers on stdin.
func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "quizmaker" {
		args = args[1:]
	}

	restore, err := s.redirectStdin()
	if err != nil {
		return err
	}
	defer restore()

	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

// redirectStdin points os.Stdin at a file holding the scenario answers.
func (s *featureState) redirectStdin() (func(), error) {
	dir := s.projectDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, ".answers")
	if err := os.WriteFile(path, []byte(s.answers), 0o644); err != nil {
		return nil, fmt.Errorf("write answers: %w", err)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open answers: %w", err)
	}
	original := os.Stdin
	os.Stdin = file
	return func() {
		os.Stdin = original
		_ = file.Close()
		_ = os.Remove(path)
	}, nil
}
