package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	commandArgumentsJoinSeparatorConstant  = " "
	workingDirectorySuffixTemplateConstant = " (in %s)"
	standardErrorSuffixTemplateConstant    = ": %s"
	unknownFailureMessageConstant          = "unknown error"
	fallbackUnknownValueLabelConstant      = "unknown"
	gitConfigSubcommandNameConstant        = "config"
	gitGlobalScopeFlagConstant             = "--global"
	gitFlagPrefixConstant                  = "-"
	gitGlobalScopeLabelConstant            = "global"
	gitLocalScopeLabelConstant             = "local"
	gitConfigUnsetExitCodeConstant         = 1
	gitConfigUnsetTemplateConstant         = "The %s git setting %s is not set"
)

// stageTemplates holds one message template per lifecycle stage. The subject is always the first
// argument; failure templates additionally receive the exit code and the standard error suffix,
// execution failure templates receive the failure description.
type stageTemplates struct {
	started         string
	succeeded       string
	failed          string
	executionFailed string
}

var (
	genericTemplates = stageTemplates{
		started:         "Running %s",
		succeeded:       "Completed %s",
		failed:          "%s failed with exit code %d%s",
		executionFailed: "%s failed: %s",
	}
	gitConfigReadTemplates = stageTemplates{
		started:         "Reading %s",
		succeeded:       "Read %s",
		failed:          "Failed to read %s (exit code %d%s)",
		executionFailed: "Unable to read %s: %s",
	}
	gitConfigWriteTemplates = stageTemplates{
		started:         "Setting %s",
		succeeded:       "Set %s",
		failed:          "Failed to set %s (exit code %d%s)",
		executionFailed: "Unable to set %s: %s",
	}
)

const (
	gitSettingSubjectTemplateConstant      = "%s git setting %s"
	gitSettingValueSubjectTemplateConstant = "%s git setting %s to %q"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	subject, templates := formatter.describeCommand(command)
	if stage == messageStageFailure && templates == gitConfigReadTemplates && isUnsetRead(result) {
		return fmt.Sprintf(gitConfigUnsetTemplateConstant, formatter.scopeLabel(command), formatter.positionalArguments(command)[0])
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.started, subject)
	case messageStageSuccess:
		return fmt.Sprintf(templates.succeeded, subject)
	case messageStageFailure:
		return fmt.Sprintf(templates.failed, subject, result.ExitCode, formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(templates.executionFailed, subject, describeFailure(failure))
	}
}

// describeCommand picks the subject and templates for command. Only `git config` reads and writes
// get dedicated wording; everything else is described by its command line.
func (formatter CommandMessageFormatter) describeCommand(command ShellCommand) (string, stageTemplates) {
	arguments := command.Details.Arguments
	if command.Name != CommandGit || len(arguments) == 0 || strings.TrimSpace(arguments[0]) != gitConfigSubcommandNameConstant {
		return formatter.commandLabel(command), genericTemplates
	}

	scopeLabel := formatter.scopeLabel(command)
	positionalArguments := formatter.positionalArguments(command)
	switch len(positionalArguments) {
	case 1:
		return fmt.Sprintf(gitSettingSubjectTemplateConstant, scopeLabel, positionalArguments[0]), gitConfigReadTemplates
	case 2:
		return fmt.Sprintf(gitSettingValueSubjectTemplateConstant, scopeLabel, positionalArguments[0], positionalArguments[1]), gitConfigWriteTemplates
	default:
		return formatter.commandLabel(command), genericTemplates
	}
}

func (formatter CommandMessageFormatter) scopeLabel(command ShellCommand) string {
	for _, argument := range command.Details.Arguments {
		if strings.TrimSpace(argument) == gitGlobalScopeFlagConstant {
			return gitGlobalScopeLabelConstant
		}
	}
	return gitLocalScopeLabelConstant
}

// positionalArguments returns the `git config` operands without flags. The setting key is never empty.
func (formatter CommandMessageFormatter) positionalArguments(command ShellCommand) []string {
	var positionalArguments []string
	for _, argument := range command.Details.Arguments[1:] {
		if strings.HasPrefix(argument, gitFlagPrefixConstant) {
			continue
		}
		positionalArguments = append(positionalArguments, argument)
	}
	if len(positionalArguments) > 0 && len(strings.TrimSpace(positionalArguments[0])) == 0 {
		positionalArguments[0] = fallbackUnknownValueLabelConstant
	}
	return positionalArguments
}

func (formatter CommandMessageFormatter) commandLabel(command ShellCommand) string {
	commandLabel := strings.Join(append([]string{string(command.Name)}, command.Details.Arguments...), commandArgumentsJoinSeparatorConstant)
	if workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(workingDirectory) > 0 {
		commandLabel += fmt.Sprintf(workingDirectorySuffixTemplateConstant, workingDirectory)
	}
	return commandLabel
}

func isUnsetRead(result ExecutionResult) bool {
	return result.ExitCode == gitConfigUnsetExitCodeConstant && len(strings.TrimSpace(result.StandardError)) == 0
}

func formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}
