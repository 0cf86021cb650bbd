package gitconfig_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gamm/internal/gitconfig"
	"github.com/temirov/gamm/internal/profiles"
)

func TestPlanSettings(testInstance *testing.T) {
	testCases := []struct {
		name             string
		profile          profiles.Profile
		expectedSettings []gitconfig.Setting
	}{
		{
			name: "complete_profile",
			profile: profiles.Profile{
				User:        profiles.UserConfiguration{Name: "A", Email: "a@x.com"},
				URLRewrites: []profiles.URLRewrite{{Pattern: "git@github.com:", InsteadOf: "https://github.com/"}},
				Commit:      profiles.CommitConfiguration{GPGSign: true},
			},
			expectedSettings: []gitconfig.Setting{
				{Key: "user.name", Value: "A"},
				{Key: "user.email", Value: "a@x.com"},
				{Key: "commit.gpgsign", Value: "true"},
				{Key: "url.git@github.com:.insteadOf", Value: "https://github.com/"},
			},
		},
		{
			name:    "empty_identity_is_not_written",
			profile: profiles.Profile{},
			expectedSettings: []gitconfig.Setting{
				{Key: "commit.gpgsign", Value: "false"},
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedSettings, gitconfig.PlanSettings(testCase.profile))
		})
	}
}

func TestIdentityMatches(testInstance *testing.T) {
	user := profiles.UserConfiguration{Name: "A", Email: "a@x.com"}

	testCases := []struct {
		name          string
		identity      gitconfig.Identity
		expectedMatch bool
	}{
		{name: "exact_match", identity: gitconfig.Identity{Name: "A", Email: "a@x.com"}, expectedMatch: true},
		{name: "name_differs", identity: gitconfig.Identity{Name: "B", Email: "a@x.com"}},
		{name: "case_differs", identity: gitconfig.Identity{Name: "a", Email: "a@x.com"}},
		{name: "email_unset", identity: gitconfig.Identity{Name: "A"}},
		{name: "nothing_set", identity: gitconfig.Identity{}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMatch, testCase.identity.Matches(user))
		})
	}

	require.False(testInstance, gitconfig.Identity{}.Matches(profiles.UserConfiguration{}))
}

func TestParseBackend(testInstance *testing.T) {
	commandBackend, commandError := gitconfig.ParseBackend(" EXEC ")
	require.NoError(testInstance, commandError)
	require.Equal(testInstance, gitconfig.BackendCommand, commandBackend)

	defaultBackend, defaultError := gitconfig.ParseBackend("")
	require.NoError(testInstance, defaultError)
	require.Equal(testInstance, gitconfig.BackendCommand, defaultBackend)

	fileBackend, fileError := gitconfig.ParseBackend("file")
	require.NoError(testInstance, fileError)
	require.Equal(testInstance, gitconfig.BackendFile, fileBackend)

	_, unknownError := gitconfig.ParseBackend("libgit2")
	require.ErrorIs(testInstance, unknownError, gitconfig.ErrUnsupportedBackend)
}

func TestNewIdentityManagerSelectsBackend(testInstance *testing.T) {
	commandManager, commandError := gitconfig.NewIdentityManager(gitconfig.BackendCommand, gitconfig.ManagerDependencies{Executor: &scriptedGitExecutor{}})
	require.NoError(testInstance, commandError)
	require.IsType(testInstance, &gitconfig.CommandIdentityManager{}, commandManager)

	fileManager, fileError := gitconfig.NewIdentityManager(gitconfig.BackendFile, gitconfig.ManagerDependencies{ConfigurationPath: "/tmp/gitconfig"})
	require.NoError(testInstance, fileError)
	require.IsType(testInstance, &gitconfig.FileIdentityManager{}, fileManager)

	_, missingExecutorError := gitconfig.NewIdentityManager(gitconfig.BackendCommand, gitconfig.ManagerDependencies{})
	require.ErrorIs(testInstance, missingExecutorError, gitconfig.ErrGitExecutorNotConfigured)

	_, missingPathError := gitconfig.NewIdentityManager(gitconfig.BackendFile, gitconfig.ManagerDependencies{})
	require.ErrorIs(testInstance, missingPathError, gitconfig.ErrConfigurationFilePathNotConfigured)
}
