package cli

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/gamm/internal/execshell"
	"github.com/temirov/gamm/internal/gitconfig"
	"github.com/temirov/gamm/internal/profiles"
	"github.com/temirov/gamm/internal/prompt"
	"github.com/temirov/gamm/internal/repositories"
	"github.com/temirov/gamm/internal/storage"
	"github.com/temirov/gamm/internal/ui"
)

const (
	storeLayoutErrorTemplateConstant     = "unable to resolve the store location: %w"
	identityManagerErrorTemplateConstant = "unable to prepare the git configuration backend: %w"
	runtimeOpenedLogMessageConstant      = "Opened stores"
	profilesPathLogFieldConstant         = "profiles_path"
	repositoriesPathLogFieldConstant     = "repositories_path"
	gitBackendLogFieldConstant           = "git_backend"
)

type runtimeDependencies struct {
	fileSystem     storage.FileSystem
	layoutResolver storage.LayoutResolver
	commandRunner  execshell.CommandRunner
	inputProvider  prompt.InputProvider
	output         io.Writer
	errorOutput    io.Writer
}

// RuntimeProvider opens the stores and collaborators a subcommand needs.
type RuntimeProvider func() (*CommandRuntime, error)

// CommandRuntime bundles the resources shared by subcommands for one invocation.
type CommandRuntime struct {
	Layout          storage.Layout
	FileSystem      storage.FileSystem
	Profiles        *profiles.Store
	Repositories    *repositories.Store
	IdentityManager gitconfig.IdentityManager
	InputProvider   prompt.InputProvider
	Console         *ui.Console
	Logger          *zap.Logger
	Hooks           HooksConfiguration
	closers         []io.Closer
}

// Close releases the terminal handle opened for prompting, if any.
func (commandRuntime *CommandRuntime) Close() error {
	if commandRuntime == nil {
		return nil
	}
	var closeErrors []error
	for _, closer := range commandRuntime.closers {
		if closeError := closer.Close(); closeError != nil {
			closeErrors = append(closeErrors, closeError)
		}
	}
	return errors.Join(closeErrors...)
}

func (application *Application) openRuntime() (*CommandRuntime, error) {
	dependencies := application.runtimeDependencies
	configuration := application.configuration
	logger := application.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	layout, layoutError := dependencies.layoutResolver.Resolve(configuration.Storage.Directory, configuration.Storage.ProfilesFile, configuration.Storage.RepositoriesFile)
	if layoutError != nil {
		return nil, fmt.Errorf(storeLayoutErrorTemplateConstant, layoutError)
	}

	profilesDocument, profilesDocumentError := storage.NewDocument(dependencies.fileSystem, layout.ProfilesPath())
	if profilesDocumentError != nil {
		return nil, profilesDocumentError
	}
	profileStore, profilesLoadError := profiles.LoadStore(profilesDocument)
	if profilesLoadError != nil {
		return nil, profilesLoadError
	}

	repositoriesDocument, repositoriesDocumentError := storage.NewDocument(dependencies.fileSystem, layout.RepositoriesPath())
	if repositoriesDocumentError != nil {
		return nil, repositoriesDocumentError
	}
	repositoryStore, repositoriesLoadError := repositories.LoadStore(repositoriesDocument)
	if repositoriesLoadError != nil {
		return nil, repositoriesLoadError
	}

	identityManager, identityManagerError := application.buildIdentityManager(logger)
	if identityManagerError != nil {
		return nil, fmt.Errorf(identityManagerErrorTemplateConstant, identityManagerError)
	}

	commandRuntime := &CommandRuntime{
		Layout:          layout,
		FileSystem:      dependencies.fileSystem,
		Profiles:        profileStore,
		Repositories:    repositoryStore,
		IdentityManager: identityManager,
		InputProvider:   dependencies.inputProvider,
		Console:         ui.NewConsole(dependencies.output, dependencies.errorOutput),
		Logger:          logger,
		Hooks:           configuration.Hooks,
	}
	commandRuntime.Hooks.Directory = dependencies.layoutResolver.ExpandHomeDirectory(configuration.Hooks.Directory)

	if commandRuntime.InputProvider == nil {
		deferredTerminal := prompt.NewDeferredTerminal(dependencies.output, nil)
		commandRuntime.InputProvider = deferredTerminal
		commandRuntime.closers = append(commandRuntime.closers, deferredTerminal)
	}

	logger.Debug(runtimeOpenedLogMessageConstant,
		zap.String(profilesPathLogFieldConstant, layout.ProfilesPath()),
		zap.String(repositoriesPathLogFieldConstant, layout.RepositoriesPath()),
		zap.String(gitBackendLogFieldConstant, configuration.Git.Backend),
	)
	return commandRuntime, nil
}

func (application *Application) buildIdentityManager(logger *zap.Logger) (gitconfig.IdentityManager, error) {
	backend, backendError := gitconfig.ParseBackend(application.configuration.Git.Backend)
	if backendError != nil {
		return nil, backendError
	}

	managerDependencies := gitconfig.ManagerDependencies{
		FileSystem:        application.runtimeDependencies.fileSystem,
		ConfigurationPath: application.runtimeDependencies.layoutResolver.ExpandHomeDirectory(application.configuration.Git.GlobalConfigFile),
		Logger:            logger,
	}

	if backend == gitconfig.BackendCommand {
		var executorOptions []execshell.ShellExecutorOption
		if application.humanReadableLoggingEnabled() {
			executorOptions = append(executorOptions, execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger)))
		}
		shellExecutor, executorError := execshell.NewShellExecutor(logger, application.runtimeDependencies.commandRunner, executorOptions...)
		if executorError != nil {
			return nil, executorError
		}
		managerDependencies.Executor = shellExecutor
	}

	return gitconfig.NewIdentityManager(backend, managerDependencies)
}
