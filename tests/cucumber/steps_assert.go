package cucumber

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"quizmaker/internal/summary"
)

// theOutputListsCommands asserts the output contains expected command names.
func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theExitCodeIs(code int) error {
	if s.exitCode != code {
		return fmt.Errorf("expected exit code %d, got %d (stderr: %q)", code, s.exitCode, s.stderr.String())
	}
	return nil
}

// theExitCodeIsNonZero asserts that the CLI returned an error code.
func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected %q in output, got %q", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorOutputContains(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("expected %q in error output, got %q", text, s.stderr.String())
	}
	return nil
}

// theResultsFileListsIDs checks the question ids of a saved session, in order.
func (s *featureState) theResultsFileListsIDs(path, list string) error {
	saved, err := summary.LoadFile(path)
	if err != nil {
		return err
	}
	var want []int
	for _, part := range strings.Split(list, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("parse id %q: %w", part, err)
		}
		want = append(want, id)
	}
	got := make([]int, 0, len(saved.Results))
	for _, record := range saved.Results {
		got = append(got, record.QuestionID)
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		return fmt.Errorf("expected question ids %v, got %v", want, got)
	}
	return nil
}

func (s *featureState) everyResultHasDifficulty(path, difficulty string) error {
	saved, err := summary.LoadFile(path)
	if err != nil {
		return err
	}
	for _, record := range saved.Results {
		if string(record.Difficulty) != difficulty {
			return fmt.Errorf("question %d has difficulty %s", record.QuestionID, record.Difficulty)
		}
	}
	return nil
}

func (s *featureState) theResultsFileScores(path string, score, total int) error {
	saved, err := summary.LoadFile(path)
	if err != nil {
		return err
	}
	if saved.Score != score || saved.Total != total {
		return fmt.Errorf("expected %d of %d, got %d of %d", score, total, saved.Score, saved.Total)
	}
	return nil
}

func (s *featureState) theFileContains(path, text string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !strings.Contains(string(data), text) {
		return fmt.Errorf("expected %q in %s", text, path)
	}
	return nil
}

func (s *featureState) theFileDoesNotContain(path, text string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.Contains(string(data), text) {
		return fmt.Errorf("did not expect %q in %s", text, path)
	}
	return nil
}
