package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

const (
	noColorEnvironmentVariableConstant = "NO_COLOR"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (formatter Formatter) Sprint(arguments ...any) string {
	text := fmt.Sprint(arguments...)
	if colorDisabled() {
		return formatter.prefix + text + formatter.suffix
	}
	return formatter.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (formatter Formatter) Sprintf(format string, arguments ...any) string {
	return formatter.Sprint(fmt.Sprintf(format, arguments...))
}

func colorDisabled() bool {
	if _, exists := os.LookupEnv(noColorEnvironmentVariableConstant); exists {
		return true
	}
	return color.NoColor
}

// Semantic formatters.
var (
	// Code marks runnable commands. Backticks without colour.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}
	// Path marks files and directories.
	Path = Formatter{color.New(color.FgYellow), "", ""}
	// Success marks completed actions.
	Success = Formatter{color.New(color.FgGreen), "", ""}
	// Warning marks actions that need the user's attention.
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	// Error marks failures.
	Error = Formatter{color.New(color.FgRed), "", ""}
	// Highlight marks user values such as profile names. Single quotes without colour.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}
	// Heading marks banner titles.
	Heading = Formatter{color.New(color.FgCyan, color.Bold), "", ""}
	// Muted marks secondary details.
	Muted = Formatter{color.New(color.FgHiBlack), "", ""}
)
