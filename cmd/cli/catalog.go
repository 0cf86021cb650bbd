package cli

import (
	"github.com/temirov/gamm/internal/catalog"
)

func newCatalogService(commandRuntime *CommandRuntime, loggerProvider LoggerProvider) (*catalog.Service, error) {
	return catalog.NewService(catalog.Dependencies{
		Profiles:        commandRuntime.Profiles,
		Repositories:    commandRuntime.Repositories,
		IdentityManager: commandRuntime.IdentityManager,
		InputProvider:   commandRuntime.InputProvider,
		Console:         commandRuntime.Console,
		Logger:          resolveLogger(loggerProvider),
	})
}

func optionalArgument(arguments []string) string {
	if len(arguments) == 0 {
		return ""
	}
	return arguments[0]
}
