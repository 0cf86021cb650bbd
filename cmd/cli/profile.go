package cli

import (
	"github.com/spf13/cobra"

	"github.com/temirov/gamm/internal/catalog"
)

const (
	profileCommandUseConstant                    = "profile"
	profileCommandShortDescriptionConstant       = "Manage git config profiles"
	profileListCommandUseConstant                = "list"
	profileListCommandShortDescriptionConstant   = "List configured profiles"
	profileAddCommandUseConstant                 = "add"
	profileAddCommandShortDescriptionConstant    = "Create a new profile interactively"
	profileDeleteCommandUseConstant              = "delete [name]"
	profileDeleteCommandAliasConstant            = "rm"
	profileDeleteCommandShortDescriptionConstant = "Delete a profile and the repositories it owns"
)

// ProfileCommandBuilder assembles the profile command group.
type ProfileCommandBuilder struct {
	LoggerProvider  LoggerProvider
	RuntimeProvider RuntimeProvider
}

// Build constructs the profile command with its subcommands.
func (builder *ProfileCommandBuilder) Build() *cobra.Command {
	command := &cobra.Command{
		Use:   profileCommandUseConstant,
		Short: profileCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	listCommand := &cobra.Command{
		Use:   profileListCommandUseConstant,
		Short: profileListCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.withCatalog(func(service *catalog.Service) error {
				service.ListProfiles()
				return nil
			})
		},
	}

	addCommand := &cobra.Command{
		Use:   profileAddCommandUseConstant,
		Short: profileAddCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.withCatalog(func(service *catalog.Service) error {
				_, addError := service.AddProfile(command.Context())
				return addError
			})
		},
	}

	deleteCommand := &cobra.Command{
		Use:     profileDeleteCommandUseConstant,
		Aliases: []string{profileDeleteCommandAliasConstant},
		Short:   profileDeleteCommandShortDescriptionConstant,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.withCatalog(func(service *catalog.Service) error {
				return service.DeleteProfile(optionalArgument(arguments))
			})
		},
	}

	command.AddCommand(listCommand, addCommand, deleteCommand)
	return command
}

func (builder *ProfileCommandBuilder) withCatalog(action func(*catalog.Service) error) error {
	return withRuntime(builder.RuntimeProvider, func(commandRuntime *CommandRuntime) error {
		service, serviceError := newCatalogService(commandRuntime, builder.LoggerProvider)
		if serviceError != nil {
			return serviceError
		}
		return action(service)
	})
}
