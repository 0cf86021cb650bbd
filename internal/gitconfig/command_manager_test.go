package gitconfig_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gamm/internal/execshell"
	"github.com/temirov/gamm/internal/gitconfig"
	"github.com/temirov/gamm/internal/profiles"
)

type scriptedResponse struct {
	result execshell.ExecutionResult
	err    error
}

type scriptedGitExecutor struct {
	responses        map[string]scriptedResponse
	recordedCommands []string
}

func (executor *scriptedGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	commandLine := strings.Join(details.Arguments, " ")
	executor.recordedCommands = append(executor.recordedCommands, commandLine)
	response, exists := executor.responses[commandLine]
	if !exists {
		return execshell.ExecutionResult{}, nil
	}
	return response.result, response.err
}

func TestCommandIdentityManagerReadIdentity(testInstance *testing.T) {
	testCases := []struct {
		name             string
		responses        map[string]scriptedResponse
		expectedIdentity gitconfig.Identity
		expectError      bool
	}{
		{
			name: "both_values_set",
			responses: map[string]scriptedResponse{
				"config --global user.name":  {result: execshell.ExecutionResult{StandardOutput: "Jane Doe\n"}},
				"config --global user.email": {result: execshell.ExecutionResult{StandardOutput: "jane@example.com\n"}},
			},
			expectedIdentity: gitconfig.Identity{Name: "Jane Doe", Email: "jane@example.com"},
		},
		{
			name: "unset_value_reads_empty",
			responses: map[string]scriptedResponse{
				"config --global user.name": {result: execshell.ExecutionResult{StandardOutput: "Jane Doe\n"}},
				"config --global user.email": {
					result: execshell.ExecutionResult{ExitCode: 1},
					err:    execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 1}},
				},
			},
			expectedIdentity: gitconfig.Identity{Name: "Jane Doe"},
		},
		{
			name: "tool_failure_propagates",
			responses: map[string]scriptedResponse{
				"config --global user.name": {err: execshell.CommandExecutionError{Cause: errors.New("git not found")}},
			},
			expectError: true,
		},
		{
			name: "other_exit_codes_propagate",
			responses: map[string]scriptedResponse{
				"config --global user.name": {
					err: execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 3, StandardError: "error: invalid config file"}},
				},
			},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &scriptedGitExecutor{responses: testCase.responses}
			manager, creationError := gitconfig.NewCommandIdentityManager(executor, nil)
			require.NoError(testInstance, creationError)

			identity, readError := manager.ReadIdentity(context.Background())
			if testCase.expectError {
				require.Error(testInstance, readError)
				return
			}
			require.NoError(testInstance, readError)
			require.Equal(testInstance, testCase.expectedIdentity, identity)
		})
	}
}

func TestCommandIdentityManagerWriteIdentity(testInstance *testing.T) {
	profile := profiles.Profile{
		User:        profiles.UserConfiguration{Name: "A", Email: "a@x.com"},
		URLRewrites: []profiles.URLRewrite{{Pattern: "git@work:", InsteadOf: "https://work/"}},
	}

	testInstance.Run("writes_in_order", func(testInstance *testing.T) {
		executor := &scriptedGitExecutor{}
		manager, creationError := gitconfig.NewCommandIdentityManager(executor, nil)
		require.NoError(testInstance, creationError)

		require.NoError(testInstance, manager.WriteIdentity(context.Background(), profile))
		require.Equal(testInstance, []string{
			"config --global user.name A",
			"config --global user.email a@x.com",
			"config --global commit.gpgsign false",
			"config --global url.git@work:.insteadOf https://work/",
		}, executor.recordedCommands)
	})

	testInstance.Run("stops_at_first_failure", func(testInstance *testing.T) {
		executor := &scriptedGitExecutor{responses: map[string]scriptedResponse{
			"config --global user.email a@x.com": {err: execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 255}}},
		}}
		manager, creationError := gitconfig.NewCommandIdentityManager(executor, nil)
		require.NoError(testInstance, creationError)

		writeError := manager.WriteIdentity(context.Background(), profile)
		require.Error(testInstance, writeError)
		var commandFailure execshell.CommandFailedError
		require.ErrorAs(testInstance, writeError, &commandFailure)
		require.Len(testInstance, executor.recordedCommands, 2)
	})
}
