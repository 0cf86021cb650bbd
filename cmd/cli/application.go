package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gamm/internal/execshell"
	"github.com/temirov/gamm/internal/gitconfig"
	"github.com/temirov/gamm/internal/hooks"
	"github.com/temirov/gamm/internal/prompt"
	"github.com/temirov/gamm/internal/storage"
	"github.com/temirov/gamm/internal/utils"
)

const (
	applicationNameConstant                    = "gamm"
	applicationShortDescriptionConstant        = "Apply the right git identity for every repository"
	applicationLongDescriptionConstant         = "gamm maps repository remotes to identity profiles and applies the matching global git configuration from a pre-commit hook."
	versionTemplateConstant                    = "{{.Name}} {{.Version}}\n"
	configFileFlagNameConstant                 = "config"
	configFileFlagUsageConstant                = "Optional path to a settings file (YAML or JSON)."
	logLevelFlagNameConstant                   = "log-level"
	logLevelFlagUsageConstant                  = "Override the configured log level (debug, info, warn, error)."
	logFormatFlagNameConstant                  = "log-format"
	logFormatFlagUsageConstant                 = "Override the configured log format (structured or console)."
	commonLogLevelConfigKeyConstant            = "common.log_level"
	commonLogFormatConfigKeyConstant           = "common.log_format"
	storageProfilesFileConfigKeyConstant       = "storage.profiles_file"
	storageRepositoriesConfigKeyConstant       = "storage.repositories_file"
	hooksDirectoryConfigKeyConstant            = "hooks.directory"
	hooksRemoteConfigKeyConstant               = "hooks.remote"
	hooksExecutableConfigKeyConstant           = "hooks.executable"
	gitBackendConfigKeyConstant                = "git.backend"
	gitGlobalConfigFileConfigKeyConstant       = "git.global_config_file"
	defaultHooksDirectoryConstant              = "~/.githooks"
	defaultGlobalConfigFileConstant            = "~/.gitconfig"
	environmentPrefixConstant                  = "GAMM"
	configurationNameConstant                  = "settings"
	configurationTypeConstant                  = "yaml"
	configurationInitializedMessageConstant    = "configuration initialized"
	configurationLogLevelFieldConstant         = "log_level"
	configurationLogFormatFieldConstant        = "log_format"
	configurationFileFieldConstant             = "config_file"
	configurationLoadErrorTemplateConstant     = "unable to load configuration: %w"
	embeddedConfigurationErrorTemplateConstant = "unable to prepare default configuration: %w"
	loggerCreationErrorTemplateConstant        = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant            = "unable to flush logger: %w"
)

// Version is the build version reported by `gamm version`. Release builds override it with -ldflags.
var Version = "dev"

// ApplicationConfiguration describes the settings file.
type ApplicationConfiguration struct {
	Common  ApplicationCommonConfiguration `mapstructure:"common"`
	Storage StorageConfiguration           `mapstructure:"storage"`
	Hooks   HooksConfiguration             `mapstructure:"hooks"`
	Git     GitConfiguration               `mapstructure:"git"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// StorageConfiguration locates the profile and repository stores.
type StorageConfiguration struct {
	Directory        string `mapstructure:"directory"`
	ProfilesFile     string `mapstructure:"profiles_file"`
	RepositoriesFile string `mapstructure:"repositories_file"`
}

// HooksConfiguration controls the installed pre-commit hook.
type HooksConfiguration struct {
	Directory  string `mapstructure:"directory"`
	Remote     string `mapstructure:"remote"`
	Executable string `mapstructure:"executable"`
}

// GitConfiguration selects how the global git configuration is read and written.
type GitConfiguration struct {
	Backend          string `mapstructure:"backend"`
	GlobalConfigFile string `mapstructure:"global_config_file"`
}

// ApplicationOption customizes an Application.
type ApplicationOption func(*Application)

// WithOutput redirects user-facing output and warnings.
func WithOutput(output io.Writer, errorOutput io.Writer) ApplicationOption {
	return func(application *Application) {
		application.runtimeDependencies.output = output
		application.runtimeDependencies.errorOutput = errorOutput
	}
}

// WithInputProvider replaces the terminal prompts.
func WithInputProvider(inputProvider prompt.InputProvider) ApplicationOption {
	return func(application *Application) {
		application.runtimeDependencies.inputProvider = inputProvider
	}
}

// WithCommandRunner replaces the runner used for git invocations.
func WithCommandRunner(commandRunner execshell.CommandRunner) ApplicationOption {
	return func(application *Application) {
		application.runtimeDependencies.commandRunner = commandRunner
	}
}

// WithLoggerOutput redirects diagnostic logs.
func WithLoggerOutput(loggerOutput io.Writer) ApplicationOption {
	return func(application *Application) {
		application.loggerFactory = utils.NewLoggerFactoryWithWriter(loggerOutput)
	}
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	runtimeDependencies   runtimeDependencies
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication(options ...ApplicationOption) *Application {
	var searchPaths []string
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, storage.DefaultDirectoryName))
	}

	application := &Application{
		configurationLoader: utils.NewConfigurationLoader(configurationNameConstant, configurationTypeConstant, environmentPrefixConstant, searchPaths),
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		runtimeDependencies: runtimeDependencies{
			fileSystem:     storage.OSFileSystem{},
			layoutResolver: storage.NewLayoutResolver(),
			commandRunner:  execshell.NewOSCommandRunner(),
			output:         os.Stdout,
			errorOutput:    os.Stderr,
		},
	}
	for _, option := range options {
		if option != nil {
			option(application)
		}
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.SetVersionTemplate(versionTemplateConstant)
	cobraCommand.SetOut(application.runtimeDependencies.output)
	cobraCommand.SetErr(application.runtimeDependencies.errorOutput)
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	loggerProvider := func() *zap.Logger {
		return application.logger
	}

	versionBuilder := VersionCommandBuilder{Output: application.runtimeDependencies.output}
	cobraCommand.AddCommand(versionBuilder.Build())

	initBuilder := InitCommandBuilder{LoggerProvider: loggerProvider, RuntimeProvider: application.openRuntime}
	cobraCommand.AddCommand(initBuilder.Build())

	cleanupBuilder := CleanupCommandBuilder{LoggerProvider: loggerProvider, RuntimeProvider: application.openRuntime}
	cobraCommand.AddCommand(cleanupBuilder.Build())

	preCommitBuilder := PreCommitCommandBuilder{LoggerProvider: loggerProvider, RuntimeProvider: application.openRuntime}
	cobraCommand.AddCommand(preCommitBuilder.Build())

	repositoryBuilder := RepositoryCommandBuilder{LoggerProvider: loggerProvider, RuntimeProvider: application.openRuntime}
	cobraCommand.AddCommand(repositoryBuilder.Build())

	profileBuilder := ProfileCommandBuilder{LoggerProvider: loggerProvider, RuntimeProvider: application.openRuntime}
	cobraCommand.AddCommand(profileBuilder.Build())

	application.rootCommand = cobraCommand

	return application
}

// SetArguments overrides the process arguments for the next Execute call.
func (application *Application) SetArguments(arguments []string) {
	application.rootCommand.SetArgs(arguments)
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return errors.Join(executionError, fmt.Errorf(loggerSyncErrorTemplateConstant, syncError))
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func defaultConfigurationValues() map[string]any {
	return map[string]any{
		commonLogLevelConfigKeyConstant:      string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant:     string(utils.LogFormatConsole),
		storageProfilesFileConfigKeyConstant: storage.DefaultProfilesFileName,
		storageRepositoriesConfigKeyConstant: storage.DefaultRepositoriesFileName,
		hooksDirectoryConfigKeyConstant:      defaultHooksDirectoryConstant,
		hooksRemoteConfigKeyConstant:         hooks.DefaultRemoteName,
		hooksExecutableConfigKeyConstant:     hooks.DefaultExecutable,
		gitBackendConfigKeyConstant:          string(gitconfig.BackendCommand),
		gitGlobalConfigFileConfigKeyConstant: defaultGlobalConfigFileConstant,
	}
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	configurationData, configurationType := EmbeddedDefaultConfiguration()
	if embeddedError := application.configurationLoader.SetEmbeddedConfiguration(configurationData, configurationType); embeddedError != nil {
		return fmt.Errorf(embeddedConfigurationErrorTemplateConstant, embeddedError)
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.NormalizeLogLevel(application.configuration.Common.LogLevel),
		utils.NormalizeLogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}
		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
