package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/temirov/gamm/internal/ui"
)

const (
	questionMarkConstant               = "?"
	confirmDefaultYesSuffixConstant    = "[Y/n]"
	confirmDefaultNoSuffixConstant     = "[y/N]"
	confirmPromptTemplateConstant      = "%s %s %s "
	inputPromptTemplateConstant        = "%s %s: "
	inputWithDefaultTemplateConstant   = "%s %s %s: "
	defaultValueTemplateConstant       = "(%s)"
	selectHeaderTemplateConstant       = "%s %s\n"
	selectOptionTemplateConstant       = "  %d) %s\n"
	selectPromptTemplateConstant       = "Enter a number [1-%d]: "
	invalidSelectionTemplateConstant   = "Please enter a number between 1 and %d.\n"
	invalidConfirmationMessageConstant = "Please answer yes or no.\n"
	affirmativeShortResponseConstant   = "y"
	affirmativeLongResponseConstant    = "yes"
	negativeShortResponseConstant      = "n"
	negativeLongResponseConstant       = "no"
	lineDelimiterConstant              = '\n'
)

var (
	// ErrInputClosed indicates that the input stream ended before an answer was given.
	ErrInputClosed = errors.New("input closed before an answer was provided")
	// ErrNoOptions indicates that Select was called without options.
	ErrNoOptions = errors.New("no options to select from")
)

// InputProvider asks the user questions.
type InputProvider interface {
	// Confirm asks a yes/no question. An empty answer yields defaultValue.
	Confirm(message string, defaultValue bool) (bool, error)
	// Input asks for free text. An empty answer yields defaultValue.
	Input(message string, defaultValue string) (string, error)
	// Select asks the user to pick one option and returns its index.
	Select(message string, options []string) (int, error)
}

// IOInputProvider reads answers line by line from a reader and writes questions to a writer.
type IOInputProvider struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOInputProvider constructs a provider from the supplied streams.
func NewIOInputProvider(input io.Reader, output io.Writer) *IOInputProvider {
	if output == nil {
		output = io.Discard
	}
	return &IOInputProvider{reader: bufio.NewReader(input), writer: output}
}

// Confirm implements InputProvider.
func (provider *IOInputProvider) Confirm(message string, defaultValue bool) (bool, error) {
	suffix := confirmDefaultNoSuffixConstant
	if defaultValue {
		suffix = confirmDefaultYesSuffixConstant
	}

	for {
		fmt.Fprintf(provider.writer, confirmPromptTemplateConstant, ui.Success.Sprint(questionMarkConstant), message, ui.Muted.Sprint(suffix))
		response, closed, readError := provider.readLine()
		if readError != nil {
			return false, readError
		}

		switch strings.ToLower(response) {
		case "":
			if closed {
				return false, ErrInputClosed
			}
			return defaultValue, nil
		case affirmativeShortResponseConstant, affirmativeLongResponseConstant:
			return true, nil
		case negativeShortResponseConstant, negativeLongResponseConstant:
			return false, nil
		}

		if closed {
			return false, ErrInputClosed
		}
		fmt.Fprint(provider.writer, invalidConfirmationMessageConstant)
	}
}

// Input implements InputProvider.
func (provider *IOInputProvider) Input(message string, defaultValue string) (string, error) {
	if len(defaultValue) > 0 {
		fmt.Fprintf(provider.writer, inputWithDefaultTemplateConstant, ui.Success.Sprint(questionMarkConstant), message, ui.Muted.Sprintf(defaultValueTemplateConstant, defaultValue))
	} else {
		fmt.Fprintf(provider.writer, inputPromptTemplateConstant, ui.Success.Sprint(questionMarkConstant), message)
	}

	response, closed, readError := provider.readLine()
	if readError != nil {
		return "", readError
	}
	if len(response) > 0 {
		return response, nil
	}
	if closed && len(defaultValue) == 0 {
		return "", ErrInputClosed
	}
	return defaultValue, nil
}

// Select implements InputProvider. Options are numbered from one.
func (provider *IOInputProvider) Select(message string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}

	fmt.Fprintf(provider.writer, selectHeaderTemplateConstant, ui.Success.Sprint(questionMarkConstant), message)
	for optionIndex, option := range options {
		fmt.Fprintf(provider.writer, selectOptionTemplateConstant, optionIndex+1, option)
	}

	for {
		fmt.Fprintf(provider.writer, selectPromptTemplateConstant, len(options))
		response, closed, readError := provider.readLine()
		if readError != nil {
			return 0, readError
		}

		selectedNumber, parseError := strconv.Atoi(response)
		if parseError == nil && selectedNumber >= 1 && selectedNumber <= len(options) {
			return selectedNumber - 1, nil
		}
		if closed {
			return 0, ErrInputClosed
		}
		fmt.Fprintf(provider.writer, invalidSelectionTemplateConstant, len(options))
	}
}

// readLine returns the trimmed next line and whether the input is exhausted.
func (provider *IOInputProvider) readLine() (string, bool, error) {
	response, readError := provider.reader.ReadString(lineDelimiterConstant)
	if readError != nil {
		if errors.Is(readError, io.EOF) {
			return strings.TrimSpace(response), true, nil
		}
		return "", false, readError
	}
	return strings.TrimSpace(response), false, nil
}
