package reconcile_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gamm/internal/gitconfig"
	"github.com/temirov/gamm/internal/profiles"
	"github.com/temirov/gamm/internal/repositories"
	"github.com/temirov/gamm/internal/storage"
	"github.com/temirov/gamm/internal/ui"
)

var errUnexpectedPrompt = errors.New("unexpected prompt")

type recordingIdentityManager struct {
	identity        gitconfig.Identity
	readError       error
	writeError      error
	writtenProfiles []profiles.Profile
}

func (manager *recordingIdentityManager) ReadIdentity(context.Context) (gitconfig.Identity, error) {
	return manager.identity, manager.readError
}

func (manager *recordingIdentityManager) WriteIdentity(_ context.Context, profile profiles.Profile) error {
	if manager.writeError != nil {
		return manager.writeError
	}
	manager.writtenProfiles = append(manager.writtenProfiles, profile)
	manager.identity = gitconfig.Identity{Name: profile.User.Name, Email: profile.User.Email}
	return nil
}

// scriptedInputProvider answers prompts from queues. An empty Input answer accepts the default.
type scriptedInputProvider struct {
	confirmAnswers []bool
	inputAnswers   []string
	selectAnswers  []int
	askedMessages  []string
	selectOptions  [][]string
}

func (provider *scriptedInputProvider) Confirm(message string, _ bool) (bool, error) {
	provider.askedMessages = append(provider.askedMessages, message)
	if len(provider.confirmAnswers) == 0 {
		return false, errUnexpectedPrompt
	}
	answer := provider.confirmAnswers[0]
	provider.confirmAnswers = provider.confirmAnswers[1:]
	return answer, nil
}

func (provider *scriptedInputProvider) Input(message string, defaultValue string) (string, error) {
	provider.askedMessages = append(provider.askedMessages, message)
	if len(provider.inputAnswers) == 0 {
		return "", errUnexpectedPrompt
	}
	answer := provider.inputAnswers[0]
	provider.inputAnswers = provider.inputAnswers[1:]
	if len(answer) == 0 {
		return defaultValue, nil
	}
	return answer, nil
}

func (provider *scriptedInputProvider) Select(message string, options []string) (int, error) {
	provider.askedMessages = append(provider.askedMessages, message)
	provider.selectOptions = append(provider.selectOptions, options)
	if len(provider.selectAnswers) == 0 {
		return 0, errUnexpectedPrompt
	}
	answer := provider.selectAnswers[0]
	provider.selectAnswers = provider.selectAnswers[1:]
	return answer, nil
}

type testEnvironment struct {
	directory       string
	profileStore    *profiles.Store
	repositoryStore *repositories.Store
	outputBuffer    *bytes.Buffer
	errorBuffer     *bytes.Buffer
	console         *ui.Console
}

func newTestEnvironment(testInstance *testing.T) *testEnvironment {
	testInstance.Helper()
	testInstance.Setenv("NO_COLOR", "1")

	directory := testInstance.TempDir()
	profileStore, profileLoadError := profiles.LoadStore(newDocument(testInstance, filepath.Join(directory, "config.json")))
	require.NoError(testInstance, profileLoadError)
	repositoryStore, repositoryLoadError := repositories.LoadStore(newDocument(testInstance, filepath.Join(directory, "repos.json")))
	require.NoError(testInstance, repositoryLoadError)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	return &testEnvironment{
		directory:       directory,
		profileStore:    profileStore,
		repositoryStore: repositoryStore,
		outputBuffer:    outputBuffer,
		errorBuffer:     errorBuffer,
		console:         ui.NewConsole(outputBuffer, errorBuffer),
	}
}

func (environment *testEnvironment) reloadRepositories(testInstance *testing.T) *repositories.Store {
	testInstance.Helper()
	repositoryStore, loadError := repositories.LoadStore(newDocument(testInstance, filepath.Join(environment.directory, "repos.json")))
	require.NoError(testInstance, loadError)
	return repositoryStore
}

func (environment *testEnvironment) reloadProfiles(testInstance *testing.T) *profiles.Store {
	testInstance.Helper()
	profileStore, loadError := profiles.LoadStore(newDocument(testInstance, filepath.Join(environment.directory, "config.json")))
	require.NoError(testInstance, loadError)
	return profileStore
}

func newDocument(testInstance *testing.T, path string) *storage.Document {
	testInstance.Helper()
	document, creationError := storage.NewDocument(storage.OSFileSystem{}, path)
	require.NoError(testInstance, creationError)
	return document
}
