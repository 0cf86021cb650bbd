package gitconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gamm/internal/execshell"
	"github.com/temirov/gamm/internal/profiles"
)

const (
	gitConfigSubcommandConstant      = "config"
	gitGlobalScopeFlagConstant       = "--global"
	gitConfigUnsetExitCodeConstant   = 1
	settingAppliedLogMessageConstant = "Applied git setting"
	settingKeyLogFieldConstant       = "key"
)

// ErrGitExecutorNotConfigured indicates that a CommandIdentityManager was created without an executor.
var ErrGitExecutorNotConfigured = errors.New("git executor not configured")

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CommandIdentityManager reads and writes settings through `git config --global`.
type CommandIdentityManager struct {
	executor GitExecutor
	logger   *zap.Logger
}

// NewCommandIdentityManager constructs a manager backed by the git executable.
func NewCommandIdentityManager(executor GitExecutor, logger *zap.Logger) (*CommandIdentityManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandIdentityManager{executor: executor, logger: logger}, nil
}

// ReadIdentity returns the global user.name and user.email values.
func (manager *CommandIdentityManager) ReadIdentity(executionContext context.Context) (Identity, error) {
	userName, nameError := manager.readSetting(executionContext, UserNameKey)
	if nameError != nil {
		return Identity{}, nameError
	}
	userEmail, emailError := manager.readSetting(executionContext, UserEmailKey)
	if emailError != nil {
		return Identity{}, emailError
	}
	return Identity{Name: userName, Email: userEmail}, nil
}

// WriteIdentity applies profile to the global configuration, stopping at the first failure.
func (manager *CommandIdentityManager) WriteIdentity(executionContext context.Context, profile profiles.Profile) error {
	for _, setting := range PlanSettings(profile) {
		_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments: []string{gitConfigSubcommandConstant, gitGlobalScopeFlagConstant, setting.Key, setting.Value},
		})
		if executionError != nil {
			return fmt.Errorf(settingWriteErrorTemplateConstant, setting.Key, executionError)
		}
		manager.logger.Debug(settingAppliedLogMessageConstant, zap.String(settingKeyLogFieldConstant, setting.Key))
	}
	return nil
}

func (manager *CommandIdentityManager) readSetting(executionContext context.Context, key string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitConfigSubcommandConstant, gitGlobalScopeFlagConstant, key},
	})
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) && isUnsetSetting(commandFailure.Result) {
			return "", nil
		}
		return "", fmt.Errorf(settingReadErrorTemplateConstant, key, executionError)
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

func isUnsetSetting(result execshell.ExecutionResult) bool {
	return result.ExitCode == gitConfigUnsetExitCodeConstant &&
		len(strings.TrimSpace(result.StandardOutput)) == 0 &&
		len(strings.TrimSpace(result.StandardError)) == 0
}
