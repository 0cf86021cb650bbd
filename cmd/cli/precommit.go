package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/gamm/internal/reconcile"
)

const (
	preCommitCommandUseConstant              = "pre-commit"
	preCommitCommandShortDescriptionConstant = "Verify or apply the git identity for a repository"
	preCommitCommandLongDescriptionConstant  = "pre-commit is invoked by the git hook. It applies the profile that owns the repository and fails when the identity had to change so the commit can be retried."
	repositoryFlagNameConstant               = "repo"
	repositoryFlagUsageConstant              = "Remote URL of the repository being committed to"
)

var errRepositoryURLRequired = errors.New("pre-commit requires --repo <url>")

// PreCommitCommandBuilder assembles the pre-commit command.
type PreCommitCommandBuilder struct {
	LoggerProvider  LoggerProvider
	RuntimeProvider RuntimeProvider
}

// Build constructs the pre-commit command.
func (builder *PreCommitCommandBuilder) Build() *cobra.Command {
	command := &cobra.Command{
		Use:   preCommitCommandUseConstant,
		Short: preCommitCommandShortDescriptionConstant,
		Long:  preCommitCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	command.Flags().String(repositoryFlagNameConstant, "", repositoryFlagUsageConstant)
	return command
}

func (builder *PreCommitCommandBuilder) run(command *cobra.Command, arguments []string) error {
	repositoryURL, _ := command.Flags().GetString(repositoryFlagNameConstant)
	repositoryURL = strings.TrimSpace(repositoryURL)
	if len(repositoryURL) == 0 {
		return errRepositoryURLRequired
	}

	return withRuntime(builder.RuntimeProvider, func(commandRuntime *CommandRuntime) error {
		service, serviceError := reconcile.NewService(reconcile.Dependencies{
			Profiles:        commandRuntime.Profiles,
			Repositories:    commandRuntime.Repositories,
			IdentityManager: commandRuntime.IdentityManager,
			InputProvider:   commandRuntime.InputProvider,
			Console:         commandRuntime.Console,
			Logger:          resolveLogger(builder.LoggerProvider),
		})
		if serviceError != nil {
			return serviceError
		}

		_, reconcileError := service.Reconcile(command.Context(), repositoryURL)
		return reconcileError
	})
}
