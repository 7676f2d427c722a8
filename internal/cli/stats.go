package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"

	"quizmaker/internal/question"
	"quizmaker/internal/ui/live"
)

type statsPayload struct {
	Total        int                     `json:"total"`
	ByDifficulty map[string]int          `json:"by_difficulty"`
	ByKind       map[string]int          `json:"by_kind"`
	BySection    []question.SectionCount `json:"by_section"`
	Rejected     int                     `json:"rejected"`
}

// runStats builds the handler for the stats command.
func runStats(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		common := addCommonFlags(flags)
		asJSON := flags.Bool("json", false, "Print statistics as JSON")
		noColor := flags.Bool("no-color", false, "Disable colors")
		if code, stop := parseFlags(cmd, flags, args, stdout, stderr); stop {
			return code
		}

		cfg, err := loadProject(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Stats failed: %v\n", err)
			return ExitError
		}
		store, rejected, err := loadStore(cfg.QuestionsFile, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Stats failed: %v\n", err)
			return ExitError
		}
		stats := store.Stats()

		if *asJSON {
			payload := statsPayload{
				Total:        stats.Total,
				ByDifficulty: map[string]int{},
				ByKind:       map[string]int{},
				BySection:    stats.BySection,
				Rejected:     len(rejected),
			}
			for difficulty, count := range stats.ByDifficulty {
				payload.ByDifficulty[string(difficulty)] = count
			}
			for kind, count := range stats.ByKind {
				payload.ByKind[string(kind)] = count
			}
			encoder := json.NewEncoder(stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(payload); err != nil {
				fmt.Fprintf(stderr, "Stats failed: %v\n", err)
				return ExitError
			}
			return ExitOK
		}

		plain := *noColor || cfg.UI.NoColor
		fmt.Fprintf(stdout, "Questions: %d\n\n", stats.Total)

		var byDifficulty [][]string
		for _, difficulty := range question.Difficulties {
			byDifficulty = append(byDifficulty, []string{string(difficulty), strconv.Itoa(stats.ByDifficulty[difficulty])})
		}
		fmt.Fprintln(stdout, live.RenderTable([]string{"Difficulty", "Count"}, byDifficulty, plain))
		fmt.Fprintln(stdout)

		var byKind [][]string
		for _, kind := range question.Kinds {
			byKind = append(byKind, []string{string(kind), strconv.Itoa(stats.ByKind[kind])})
		}
		fmt.Fprintln(stdout, live.RenderTable([]string{"Type", "Count"}, byKind, plain))
		fmt.Fprintln(stdout)

		var bySection [][]string
		for _, section := range stats.BySection {
			bySection = append(bySection, []string{section.Section, section.Title, strconv.Itoa(section.Count)})
		}
		fmt.Fprintln(stdout, live.RenderTable([]string{"Section", "Title", "Count"}, bySection, plain))
		return ExitOK
	}
}
