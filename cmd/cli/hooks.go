package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gamm/internal/hooks"
)

const (
	initCommandUseConstant                 = "init"
	initCommandShortDescriptionConstant    = "Install the gamm pre-commit hook"
	initCommandLongDescriptionConstant     = "init adds the gamm block to the shared pre-commit hook, creating the hook directory and file when needed."
	cleanupCommandUseConstant              = "cleanup"
	cleanupCommandShortDescriptionConstant = "Remove the gamm pre-commit hook and stored data"
	cleanupCommandLongDescriptionConstant  = "cleanup removes the gamm block from the shared pre-commit hook and deletes the profile and repository stores."
	initErrorTemplateConstant              = "hook installation failed: %w"
	cleanupErrorTemplateConstant           = "cleanup failed: %w"
)

// InitCommandBuilder assembles the init command.
type InitCommandBuilder struct {
	LoggerProvider  LoggerProvider
	RuntimeProvider RuntimeProvider
}

// Build constructs the init command.
func (builder *InitCommandBuilder) Build() *cobra.Command {
	return &cobra.Command{
		Use:   initCommandUseConstant,
		Short: initCommandShortDescriptionConstant,
		Long:  initCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return withRuntime(builder.RuntimeProvider, func(commandRuntime *CommandRuntime) error {
				manager, managerError := newHookManager(commandRuntime, resolveLogger(builder.LoggerProvider))
				if managerError != nil {
					return managerError
				}
				if _, installError := manager.Install(); installError != nil {
					return fmt.Errorf(initErrorTemplateConstant, installError)
				}
				return nil
			})
		},
	}
}

// CleanupCommandBuilder assembles the cleanup command.
type CleanupCommandBuilder struct {
	LoggerProvider  LoggerProvider
	RuntimeProvider RuntimeProvider
}

// Build constructs the cleanup command.
func (builder *CleanupCommandBuilder) Build() *cobra.Command {
	return &cobra.Command{
		Use:   cleanupCommandUseConstant,
		Short: cleanupCommandShortDescriptionConstant,
		Long:  cleanupCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return withRuntime(builder.RuntimeProvider, func(commandRuntime *CommandRuntime) error {
				manager, managerError := newHookManager(commandRuntime, resolveLogger(builder.LoggerProvider))
				if managerError != nil {
					return managerError
				}
				if _, uninstallError := manager.Uninstall(); uninstallError != nil {
					return fmt.Errorf(cleanupErrorTemplateConstant, uninstallError)
				}
				return nil
			})
		},
	}
}

func newHookManager(commandRuntime *CommandRuntime, logger *zap.Logger) (*hooks.Manager, error) {
	return hooks.NewManager(hooks.Dependencies{
		FileSystem:    commandRuntime.FileSystem,
		HookDirectory: commandRuntime.Hooks.Directory,
		RemoteName:    commandRuntime.Hooks.Remote,
		Executable:    commandRuntime.Hooks.Executable,
		StoreLayout:   commandRuntime.Layout,
		Console:       commandRuntime.Console,
		Logger:        logger,
	})
}
