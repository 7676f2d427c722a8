package cucumber

import (
	"fmt"
	"os"

	"quizmaker/internal/config"
)

// anEmptyProjectDirectory creates a temp dir and makes it the working directory.
func (s *featureState) anEmptyProjectDirectory() error {
	dir, err := os.MkdirTemp("", "quizmaker-feature-*")
	if err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}
	s.projectDir = dir
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir project: %w", err)
	}
	return nil
}

// aProjectWithSampleBank scaffolds the config and the sample question bank.
func (s *featureState) aProjectWithSampleBank() error {
	if err := s.anEmptyProjectDirectory(); err != nil {
		return err
	}
	if _, err := config.Scaffold(s.projectDir); err != nil {
		return fmt.Errorf("scaffold project: %w", err)
	}
	return nil
}

// theConfigIsInvalid overwrites the config with an unsupported version.
func (s *featureState) theConfigIsInvalid() error {
	body := []byte("version: 2\nquestions_file: questions.csv\n")
	if err := os.WriteFile(config.ConfigPath(s.projectDir), body, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
