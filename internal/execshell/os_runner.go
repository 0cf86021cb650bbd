package execshell

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command and blocks until it exits.
// A non-zero exit status is reported through ExecutionResult.ExitCode rather than as an error.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory

	var standardOutput strings.Builder
	var standardError strings.Builder
	executable.Stdout = &standardOutput
	executable.Stderr = &standardError

	runError := executable.Run()
	result := ExecutionResult{StandardOutput: standardOutput.String(), StandardError: standardError.String()}

	var exitError *exec.ExitError
	switch {
	case runError == nil:
		return result, nil
	case errors.As(runError, &exitError):
		result.ExitCode = exitError.ExitCode()
		return result, nil
	default:
		return ExecutionResult{}, runError
	}
}
