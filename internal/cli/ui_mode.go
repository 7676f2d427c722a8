package cli

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

const (
	uiAuto  = "auto"
	uiLive  = "live"
	uiPlain = "plain"
)

const liveFallbackWarning = "Warning: the live quiz screen needs a terminal; asking questions as plain text."

// uiModeDecision says how run presents questions.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode picks the quiz presentation from ui.mode or --ui.
// Verbose runs stay plain so log lines do not tear the live screen.
func resolveUIMode(mode string, verbose bool, stdout io.Writer) (uiModeDecision, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = uiAuto
	}
	switch normalized {
	case uiAuto, uiLive, uiPlain:
	default:
		return uiModeDecision{}, fmt.Errorf("unknown ui mode %q (use auto, live or plain)", mode)
	}
	if verbose || normalized == uiPlain {
		return uiModeDecision{}, nil
	}
	tty := isTerminal(stdout)
	if normalized == uiLive && !tty {
		return uiModeDecision{warning: liveFallbackWarning}, nil
	}
	return uiModeDecision{useLive: tty}, nil
}

func defaultIsTerminal(stdout io.Writer) bool {
	fder, ok := stdout.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fder.Fd()))
}
