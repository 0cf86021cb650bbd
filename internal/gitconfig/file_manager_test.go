package gitconfig_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gamm/internal/gitconfig"
	"github.com/temirov/gamm/internal/profiles"
	"github.com/temirov/gamm/internal/storage"
)

const (
	testGitConfigFileNameConstant = ".gitconfig"
	testExistingGitConfigConstant = "[core]\n\teditor = vim\n[user]\n\tname = Old Name\n\temail = old@example.com\n"
)

func TestFileIdentityManagerReadsMissingFileAsEmpty(testInstance *testing.T) {
	configurationPath := filepath.Join(testInstance.TempDir(), testGitConfigFileNameConstant)
	manager, creationError := gitconfig.NewFileIdentityManager(storage.OSFileSystem{}, configurationPath, nil)
	require.NoError(testInstance, creationError)

	identity, readError := manager.ReadIdentity(context.Background())
	require.NoError(testInstance, readError)
	require.Equal(testInstance, gitconfig.Identity{}, identity)
	require.NoFileExists(testInstance, configurationPath)
}

func TestFileIdentityManagerWritesNewFile(testInstance *testing.T) {
	configurationPath := filepath.Join(testInstance.TempDir(), "nested", testGitConfigFileNameConstant)
	manager, creationError := gitconfig.NewFileIdentityManager(storage.OSFileSystem{}, configurationPath, nil)
	require.NoError(testInstance, creationError)

	profile := profiles.Profile{
		User:        profiles.UserConfiguration{Name: "Work User", Email: "work@example.com"},
		URLRewrites: []profiles.URLRewrite{{Pattern: "git@github.com:", InsteadOf: "https://github.com/"}},
		Commit:      profiles.CommitConfiguration{GPGSign: true},
	}
	require.NoError(testInstance, manager.WriteIdentity(context.Background(), profile))

	identity, readError := manager.ReadIdentity(context.Background())
	require.NoError(testInstance, readError)
	require.Equal(testInstance, gitconfig.Identity{Name: "Work User", Email: "work@example.com"}, identity)

	writtenContent, contentError := os.ReadFile(configurationPath)
	require.NoError(testInstance, contentError)
	require.Contains(testInstance, string(writtenContent), `[url "git@github.com:"]`)
	require.Contains(testInstance, string(writtenContent), "gpgsign = true")
}

func TestFileIdentityManagerUpdatesExistingFile(testInstance *testing.T) {
	configurationPath := filepath.Join(testInstance.TempDir(), testGitConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testExistingGitConfigConstant), 0o600))

	manager, creationError := gitconfig.NewFileIdentityManager(storage.OSFileSystem{}, configurationPath, nil)
	require.NoError(testInstance, creationError)

	initialIdentity, initialError := manager.ReadIdentity(context.Background())
	require.NoError(testInstance, initialError)
	require.Equal(testInstance, gitconfig.Identity{Name: "Old Name", Email: "old@example.com"}, initialIdentity)

	profile := profiles.Profile{User: profiles.UserConfiguration{Name: "New Name", Email: "new@example.com"}}
	require.NoError(testInstance, manager.WriteIdentity(context.Background(), profile))

	updatedIdentity, updatedError := manager.ReadIdentity(context.Background())
	require.NoError(testInstance, updatedError)
	require.Equal(testInstance, gitconfig.Identity{Name: "New Name", Email: "new@example.com"}, updatedIdentity)

	writtenContent, contentError := os.ReadFile(configurationPath)
	require.NoError(testInstance, contentError)
	require.Contains(testInstance, string(writtenContent), "editor = vim")
}

func TestFileIdentityManagerRoundTripsSpecialCharacters(testInstance *testing.T) {
	testCases := []struct {
		name      string
		userName  string
		userEmail string
	}{
		{name: "hash", userName: "Team #1", userEmail: "team@example.com"},
		{name: "semicolon", userName: "A; B", userEmail: "ab@example.com"},
		{name: "inner_quotes", userName: `Say "hi" there`, userEmail: "hi@example.com"},
		{name: "trailing_backslash", userName: `Trailing\`, userEmail: "slash@example.com"},
		{name: "hash_in_email", userName: "Plain Name", userEmail: "odd#mail@example.com"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configurationPath := filepath.Join(testInstance.TempDir(), testGitConfigFileNameConstant)
			manager, creationError := gitconfig.NewFileIdentityManager(storage.OSFileSystem{}, configurationPath, nil)
			require.NoError(testInstance, creationError)

			user := profiles.UserConfiguration{Name: testCase.userName, Email: testCase.userEmail}
			require.NoError(testInstance, manager.WriteIdentity(context.Background(), profiles.Profile{User: user}))

			identity, readError := manager.ReadIdentity(context.Background())
			require.NoError(testInstance, readError)
			require.Equal(testInstance, gitconfig.Identity{Name: testCase.userName, Email: testCase.userEmail}, identity)
			require.True(testInstance, identity.Matches(user))

			reloadedManager, reloadError := gitconfig.NewFileIdentityManager(storage.OSFileSystem{}, configurationPath, nil)
			require.NoError(testInstance, reloadError)
			require.NoError(testInstance, reloadedManager.WriteIdentity(context.Background(), profiles.Profile{User: user}))
			rereadIdentity, rereadError := reloadedManager.ReadIdentity(context.Background())
			require.NoError(testInstance, rereadError)
			require.Equal(testInstance, identity, rereadIdentity)
		})
	}
}

func TestFileIdentityManagerRejectsValuesThatCannotReadBack(testInstance *testing.T) {
	configurationPath := filepath.Join(testInstance.TempDir(), testGitConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testExistingGitConfigConstant), 0o600))
	manager, creationError := gitconfig.NewFileIdentityManager(storage.OSFileSystem{}, configurationPath, nil)
	require.NoError(testInstance, creationError)

	profile := profiles.Profile{User: profiles.UserConfiguration{Name: `Quote "Q"`, Email: "q@example.com"}}
	writeError := manager.WriteIdentity(context.Background(), profile)

	var valueError gitconfig.UnrepresentableValueError
	require.ErrorAs(testInstance, writeError, &valueError)
	require.Equal(testInstance, gitconfig.UserNameKey, valueError.Key)

	writtenContent, contentError := os.ReadFile(configurationPath)
	require.NoError(testInstance, contentError)
	require.Equal(testInstance, testExistingGitConfigConstant, string(writtenContent))
}
