package cli

import (
	"github.com/spf13/cobra"

	"github.com/temirov/gamm/internal/catalog"
)

const (
	repositoryCommandUseConstant                    = "repo"
	repositoryCommandShortDescriptionConstant       = "Manage repository configurations"
	repositoryListCommandUseConstant                = "list"
	repositoryListCommandShortDescriptionConstant   = "List configured repositories"
	repositoryDeleteCommandUseConstant              = "delete [name|url]"
	repositoryDeleteCommandAliasConstant            = "rm"
	repositoryDeleteCommandShortDescriptionConstant = "Delete a repository configuration"
	repositoryDeleteCommandLongDescriptionConstant  = "delete removes a repository by name or remote URL. Without an argument it asks which repository to remove."
)

// RepositoryCommandBuilder assembles the repo command group.
type RepositoryCommandBuilder struct {
	LoggerProvider  LoggerProvider
	RuntimeProvider RuntimeProvider
}

// Build constructs the repo command with its subcommands.
func (builder *RepositoryCommandBuilder) Build() *cobra.Command {
	command := &cobra.Command{
		Use:   repositoryCommandUseConstant,
		Short: repositoryCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	listCommand := &cobra.Command{
		Use:   repositoryListCommandUseConstant,
		Short: repositoryListCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.withCatalog(func(service *catalog.Service) error {
				service.ListRepositories()
				return nil
			})
		},
	}

	deleteCommand := &cobra.Command{
		Use:     repositoryDeleteCommandUseConstant,
		Aliases: []string{repositoryDeleteCommandAliasConstant},
		Short:   repositoryDeleteCommandShortDescriptionConstant,
		Long:    repositoryDeleteCommandLongDescriptionConstant,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.withCatalog(func(service *catalog.Service) error {
				return service.DeleteRepository(optionalArgument(arguments))
			})
		},
	}

	command.AddCommand(listCommand, deleteCommand)
	return command
}

func (builder *RepositoryCommandBuilder) withCatalog(action func(*catalog.Service) error) error {
	return withRuntime(builder.RuntimeProvider, func(commandRuntime *CommandRuntime) error {
		service, serviceError := newCatalogService(commandRuntime, builder.LoggerProvider)
		if serviceError != nil {
			return serviceError
		}
		return action(service)
	})
}
