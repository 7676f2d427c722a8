package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"quizmaker/internal/evaluate"
	"quizmaker/internal/question"
	"quizmaker/internal/summary"
)

// readLine reads a line from the reader, trimming line endings.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return strings.TrimRight(line, "\r\n"), io.EOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptString asks for a string value with an optional default.
func promptString(reader *bufio.Reader, out io.Writer, label, defaultValue string) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, defaultValue)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" && defaultValue != "" {
			return defaultValue, nil
		}
		if line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// promptYesNo prompts for a yes/no response with a default.
func promptYesNo(reader *bufio.Reader, out io.Writer, label string, defaultYes bool) (bool, error) {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, suffix)
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return false, err
		}
		line = strings.TrimSpace(strings.ToLower(line))
		if line == "" {
			return defaultYes, nil
		}
		switch line {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			if err == io.EOF {
				return false, fmt.Errorf("invalid response %q", line)
			}
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}

// errInputClosed is returned when stdin ends before the session does.
var errInputClosed = errors.New("input closed before the quiz finished")

// plainRespondent answers prompts from line-oriented input.
type plainRespondent struct {
	reader *bufio.Reader
	out    io.Writer
}

func newPlainRespondent(in io.Reader, out io.Writer) *plainRespondent {
	return &plainRespondent{reader: bufio.NewReader(in), out: out}
}

// Ask prints the prompt and reads one response. Short answer prompts wait
// for Enter and reveal the expected answer before asking for a self-assessment.
func (r *plainRespondent) Ask(ctx context.Context, prompt evaluate.Prompt) (string, error) {
	if prompt.Problem != "" {
		fmt.Fprintf(r.out, "Warning: %s\n", prompt.Problem)
	}
	if prompt.Kind() == question.KindShortAnswer {
		if prompt.Problem == "" {
			fmt.Fprint(r.out, "\nThink about your answer, then press Enter to reveal it...")
			if _, err := r.read(ctx); err != nil {
				return "", err
			}
			fmt.Fprintf(r.out, "\nExpected answer: %s\n", prompt.Reference)
		}
		fmt.Fprint(r.out, "\nDid you get it right? (y/n): ")
		return r.read(ctx)
	}

	if prompt.Problem == "" {
		fmt.Fprintln(r.out, "\nOptions:")
		for _, choice := range prompt.Choices {
			fmt.Fprintf(r.out, "  %s) %s\n", choice.Label, choice.Option)
		}
	}
	fmt.Fprint(r.out, "\nYour answer: ")
	return r.read(ctx)
}

func (r *plainRespondent) read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := readLine(r.reader)
		ch <- result{line: line, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err == io.EOF {
			if strings.TrimSpace(res.line) == "" {
				return "", errInputClosed
			}
			return res.line, nil
		}
		return res.line, res.err
	}
}

// plainObserver prints question headers and verdicts as plain text.
type plainObserver struct {
	out io.Writer
}

func (o plainObserver) QuestionStarted(index, total int, q question.Question) {
	meta := q.Meta()
	fmt.Fprintf(o.out, "\n%s\nQuestion %d/%d\n", strings.Repeat("-", 60), index+1, total)
	if meta.Section != "" {
		section := meta.Section
		if meta.SectionTitle != "" {
			section += " - " + meta.SectionTitle
		}
		fmt.Fprintf(o.out, "Section: %s\n", section)
	}
	fmt.Fprintf(o.out, "Difficulty: %s\n\n%s\n", meta.Difficulty, meta.Text)
}

func (o plainObserver) QuestionJudged(_, _ int, q question.Question, record summary.AnswerRecord) {
	switch {
	case record.IsCorrect:
		fmt.Fprintln(o.out, "Correct!")
	case q.Kind() == question.KindShortAnswer:
		fmt.Fprintln(o.out, "Keep reviewing!")
	default:
		fmt.Fprintf(o.out, "Incorrect. The answer was: %s\n", record.CorrectAnswer)
	}
	if explanation := q.Meta().Explanation; explanation != "" {
		fmt.Fprintf(o.out, "\nExplanation: %s\n", explanation)
	}
}

// writePlainSummary prints the end of session report without styling.
func writePlainSummary(w io.Writer, s summary.Summary) {
	fmt.Fprintf(w, "\n%s\nQuiz finished!\n%s\n", strings.Repeat("=", 60), strings.Repeat("=", 60))
	fmt.Fprintf(w, "Score: %d/%d (%.1f%%)\n%s\n", s.Score, s.Total, s.Percentage, summary.Grade(s.Percentage))
	breakdown := s.BreakdownByDifficulty()
	if len(breakdown) == 0 {
		return
	}
	fmt.Fprintln(w, "\nBy difficulty:")
	for _, difficulty := range summary.SortedDifficulties(breakdown) {
		tally := breakdown[difficulty]
		fmt.Fprintf(w, "  %s: %d/%d (%.1f%%)\n", difficulty, tally.Correct, tally.Total, tally.Percentage())
	}
}
