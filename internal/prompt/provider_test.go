package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gamm/internal/prompt"
)

func TestConfirm(testInstance *testing.T) {
	testInstance.Setenv("NO_COLOR", "1")

	testCases := []struct {
		name           string
		input          string
		defaultValue   bool
		expectedAnswer bool
		expectedError  error
		expectedOutput string
	}{
		{name: "empty_uses_true_default", input: "\n", defaultValue: true, expectedAnswer: true, expectedOutput: "? Add repository? [Y/n] "},
		{name: "empty_uses_false_default", input: "\n", defaultValue: false, expectedAnswer: false, expectedOutput: "? Add repository? [y/N] "},
		{name: "yes_long_form", input: "YES\n", defaultValue: false, expectedAnswer: true},
		{name: "no_short_form", input: "n\n", defaultValue: true, expectedAnswer: false},
		{name: "answer_without_newline", input: "y", defaultValue: false, expectedAnswer: true},
		{name: "reprompts_after_invalid_answer", input: "maybe\ny\n", defaultValue: false, expectedAnswer: true},
		{name: "closed_input", input: "", defaultValue: true, expectedError: prompt.ErrInputClosed},
		{name: "closed_after_invalid_answer", input: "maybe", defaultValue: true, expectedError: prompt.ErrInputClosed},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			outputBuffer := &bytes.Buffer{}
			provider := prompt.NewIOInputProvider(strings.NewReader(testCase.input), outputBuffer)

			answer, confirmError := provider.Confirm("Add repository?", testCase.defaultValue)
			if testCase.expectedError != nil {
				require.ErrorIs(subTest, confirmError, testCase.expectedError)
				return
			}
			require.NoError(subTest, confirmError)
			require.Equal(subTest, testCase.expectedAnswer, answer)
			if len(testCase.expectedOutput) > 0 {
				require.Equal(subTest, testCase.expectedOutput, outputBuffer.String())
			}
		})
	}
}

func TestConfirmReportsInvalidAnswers(testInstance *testing.T) {
	testInstance.Setenv("NO_COLOR", "1")

	outputBuffer := &bytes.Buffer{}
	provider := prompt.NewIOInputProvider(strings.NewReader("sure\nno\n"), outputBuffer)

	answer, confirmError := provider.Confirm("Enable GPG signing for commits?", false)
	require.NoError(testInstance, confirmError)
	require.False(testInstance, answer)
	require.Equal(testInstance, 2, strings.Count(outputBuffer.String(), "Enable GPG signing for commits?"))
	require.Contains(testInstance, outputBuffer.String(), "Please answer yes or no.")
}

func TestInput(testInstance *testing.T) {
	testInstance.Setenv("NO_COLOR", "1")

	testCases := []struct {
		name           string
		input          string
		defaultValue   string
		expectedAnswer string
		expectedError  error
		expectedOutput string
	}{
		{name: "trims_answer", input: "  Alice  \n", expectedAnswer: "Alice", expectedOutput: "? user.name: "},
		{name: "empty_uses_default", input: "\n", defaultValue: "b", expectedAnswer: "b", expectedOutput: "? Enter a name for this repository (b): "},
		{name: "answer_overrides_default", input: "renamed\n", defaultValue: "b", expectedAnswer: "renamed"},
		{name: "empty_without_default", input: "\n", expectedAnswer: ""},
		{name: "closed_uses_default", input: "", defaultValue: "b", expectedAnswer: "b"},
		{name: "closed_without_default", input: "", expectedError: prompt.ErrInputClosed},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			outputBuffer := &bytes.Buffer{}
			provider := prompt.NewIOInputProvider(strings.NewReader(testCase.input), outputBuffer)

			message := "user.name"
			if len(testCase.defaultValue) > 0 {
				message = "Enter a name for this repository"
			}
			answer, inputError := provider.Input(message, testCase.defaultValue)
			if testCase.expectedError != nil {
				require.ErrorIs(subTest, inputError, testCase.expectedError)
				return
			}
			require.NoError(subTest, inputError)
			require.Equal(subTest, testCase.expectedAnswer, answer)
			if len(testCase.expectedOutput) > 0 {
				require.Equal(subTest, testCase.expectedOutput, outputBuffer.String())
			}
		})
	}
}

func TestSelect(testInstance *testing.T) {
	testInstance.Setenv("NO_COLOR", "1")

	options := []string{"personal - Alice <alice@home.example>", "work - Alice <alice@corp.example>", "+ Create new profile"}

	testCases := []struct {
		name          string
		input         string
		options       []string
		expectedIndex int
		expectedError error
	}{
		{name: "first_option", input: "1\n", options: options, expectedIndex: 0},
		{name: "last_option", input: "3\n", options: options, expectedIndex: 2},
		{name: "reprompts_out_of_range", input: "0\n4\n2\n", options: options, expectedIndex: 1},
		{name: "reprompts_non_numeric", input: "work\n2\n", options: options, expectedIndex: 1},
		{name: "closed_input", input: "", options: options, expectedError: prompt.ErrInputClosed},
		{name: "no_options", input: "1\n", options: nil, expectedError: prompt.ErrNoOptions},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			provider := prompt.NewIOInputProvider(strings.NewReader(testCase.input), &bytes.Buffer{})

			selectedIndex, selectError := provider.Select("Choose owner", testCase.options)
			if testCase.expectedError != nil {
				require.ErrorIs(subTest, selectError, testCase.expectedError)
				return
			}
			require.NoError(subTest, selectError)
			require.Equal(subTest, testCase.expectedIndex, selectedIndex)
		})
	}
}

func TestSelectListsNumberedOptions(testInstance *testing.T) {
	testInstance.Setenv("NO_COLOR", "1")

	outputBuffer := &bytes.Buffer{}
	provider := prompt.NewIOInputProvider(strings.NewReader("1\n"), outputBuffer)

	_, selectError := provider.Select("Choose repository", []string{"b (git@example.com:a/b.git)", "c (https://example.com/a/c.git)"})
	require.NoError(testInstance, selectError)

	expectedOutput := "? Choose repository\n" +
		"  1) b (git@example.com:a/b.git)\n" +
		"  2) c (https://example.com/a/c.git)\n" +
		"Enter a number [1-2]: "
	require.Equal(testInstance, expectedOutput, outputBuffer.String())
}

func TestTerminalSessionCloseWithoutHandle(testInstance *testing.T) {
	session := &prompt.TerminalSession{InputProvider: prompt.NewIOInputProvider(strings.NewReader(""), nil)}
	require.NoError(testInstance, session.Close())

	var nilSession *prompt.TerminalSession
	require.NoError(testInstance, nilSession.Close())
}
