package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how results are presented on the terminal.
type OutputMode int

const (
	// OutputModePlain is uncolored text, for pipes and NO_COLOR.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is colored static text.
	OutputModeStyled
	// OutputModeInteractive is a full Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "plain"
	}
}

const defaultTerminalWidth = 80

// DetectOutputMode picks the output mode from flags, NO_COLOR and whether
// stdin and stdout are terminals. plain wins over everything; interactive
// needs both ends to be terminals.
func DetectOutputMode(plain, noColor, interactive bool) OutputMode {
	return detectOutputMode(plain, noColor, interactive,
		isTerminal(os.Stdout), isTerminal(os.Stdin), os.Getenv("NO_COLOR") != "")
}

func detectOutputMode(plain, noColor, interactive, stdoutTTY, stdinTTY, noColorEnv bool) OutputMode {
	if plain || !stdoutTTY {
		return OutputModePlain
	}
	if interactive && stdinTTY {
		return OutputModeInteractive
	}
	if noColor || noColorEnv {
		return OutputModePlain
	}
	return OutputModeStyled
}

// TerminalWidth returns the stdout width, or 80 when unknown.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
