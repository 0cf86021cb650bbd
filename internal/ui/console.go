package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	bannerWidthConstant            = 61
	bannerTopTemplateConstant      = "┌%s┐\n"
	bannerMiddleTemplateConstant   = "│  %s│\n"
	bannerBottomTemplateConstant   = "└%s┘\n"
	bannerHorizontalRuleConstant   = "─"
	bannerPaddingConstant          = " "
	bannerTitleIndentWidthConstant = 2
	detailLineTemplateConstant     = "  %s: %s\n"
	successLineTemplateConstant    = "%s %s\n"
	warningLineTemplateConstant    = "%s %s\n"
	successMarkConstant            = "✓"
	warningMarkConstant            = "⚠"
	blankLineConstant              = "\n"
)

// Console writes user-facing output. Informational text goes to the output stream, warnings to the error stream.
type Console struct {
	output      io.Writer
	errorOutput io.Writer
}

// NewConsole constructs a Console. Nil writers default to the process streams.
func NewConsole(output io.Writer, errorOutput io.Writer) *Console {
	if output == nil {
		output = os.Stdout
	}
	if errorOutput == nil {
		errorOutput = os.Stderr
	}
	return &Console{output: output, errorOutput: errorOutput}
}

// Output exposes the informational stream.
func (console *Console) Output() io.Writer {
	return console.output
}

// ErrorOutput exposes the warning stream.
func (console *Console) ErrorOutput() io.Writer {
	return console.errorOutput
}

// Banner prints a boxed title surrounded by blank lines.
func (console *Console) Banner(title string) {
	horizontalRule := strings.Repeat(bannerHorizontalRuleConstant, bannerWidthConstant)
	paddingWidth := bannerWidthConstant - bannerTitleIndentWidthConstant - len([]rune(title))
	if paddingWidth < 0 {
		paddingWidth = 0
	}
	paddedTitle := Heading.Sprint(title) + strings.Repeat(bannerPaddingConstant, paddingWidth)

	fmt.Fprint(console.output, blankLineConstant)
	fmt.Fprintf(console.output, bannerTopTemplateConstant, horizontalRule)
	fmt.Fprintf(console.output, bannerMiddleTemplateConstant, paddedTitle)
	fmt.Fprintf(console.output, bannerBottomTemplateConstant, horizontalRule)
	fmt.Fprint(console.output, blankLineConstant)
}

// Printf writes formatted text to the output stream.
func (console *Console) Printf(format string, arguments ...any) {
	fmt.Fprintf(console.output, format, arguments...)
}

// Println writes a line to the output stream.
func (console *Console) Println(text string) {
	fmt.Fprintln(console.output, text)
}

// BlankLine writes an empty line to the output stream.
func (console *Console) BlankLine() {
	fmt.Fprint(console.output, blankLineConstant)
}

// Detail writes an indented "label: value" line.
func (console *Console) Detail(label string, value string) {
	fmt.Fprintf(console.output, detailLineTemplateConstant, label, value)
}

// Success writes a check-marked message to the output stream.
func (console *Console) Success(format string, arguments ...any) {
	fmt.Fprintf(console.output, successLineTemplateConstant, Success.Sprint(successMarkConstant), fmt.Sprintf(format, arguments...))
}

// Notice writes a warning-marked message to the output stream.
func (console *Console) Notice(format string, arguments ...any) {
	fmt.Fprintf(console.output, warningLineTemplateConstant, Warning.Sprint(warningMarkConstant), fmt.Sprintf(format, arguments...))
}

// Warn writes a warning-marked message to the error stream.
func (console *Console) Warn(format string, arguments ...any) {
	fmt.Fprintf(console.errorOutput, warningLineTemplateConstant, Warning.Sprint(warningMarkConstant), fmt.Sprintf(format, arguments...))
}
