package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gamm/internal/gitconfig"
	"github.com/temirov/gamm/internal/profiles"
	"github.com/temirov/gamm/internal/reconcile"
)

func TestCreateProfileRepromptsForBlankName(testInstance *testing.T) {
	environment := newTestEnvironment(testInstance)

	identityManager := &recordingIdentityManager{identity: gitconfig.Identity{Name: "Alice", Email: "alice@home.example"}}
	inputProvider := &scriptedInputProvider{
		inputAnswers:   []string{"   ", " personal ", "", ""},
		confirmAnswers: []bool{false},
	}
	creator, creationError := reconcile.NewProfileCreator(environment.profileStore, identityManager, inputProvider, environment.console, nil)
	require.NoError(testInstance, creationError)

	createdProfile, createError := creator.CreateProfile(context.Background())
	require.NoError(testInstance, createError)

	expectedProfile := profiles.Profile{User: profiles.UserConfiguration{Name: "Alice", Email: "alice@home.example"}}
	require.Equal(testInstance, profiles.NamedProfile{Name: "personal", Profile: expectedProfile}, createdProfile)

	persistedProfile, exists := environment.reloadProfiles(testInstance).Get("personal")
	require.True(testInstance, exists)
	require.Equal(testInstance, expectedProfile, persistedProfile)

	require.Empty(testInstance, identityManager.writtenProfiles)
	require.Contains(testInstance, environment.outputBuffer.String(), "Create a new git config profile")
	require.Contains(testInstance, environment.outputBuffer.String(), "Profile name is required.")
	require.Contains(testInstance, environment.outputBuffer.String(), "✓ Profile 'personal' created")
}

func TestCreateProfileWithoutCurrentIdentity(testInstance *testing.T) {
	environment := newTestEnvironment(testInstance)

	identityManager := &recordingIdentityManager{readError: errors.New("git not installed")}
	inputProvider := &scriptedInputProvider{
		inputAnswers:   []string{"work", "Bob", "bob@corp.example"},
		confirmAnswers: []bool{true},
	}
	creator, creationError := reconcile.NewProfileCreator(environment.profileStore, identityManager, inputProvider, environment.console, nil)
	require.NoError(testInstance, creationError)

	createdProfile, createError := creator.CreateProfile(context.Background())
	require.NoError(testInstance, createError)
	require.Equal(testInstance, "work", createdProfile.Name)
	require.Equal(testInstance, profiles.UserConfiguration{Name: "Bob", Email: "bob@corp.example"}, createdProfile.Profile.User)
	require.True(testInstance, createdProfile.Profile.Commit.GPGSign)
}

func TestCreateProfileStopsOnPromptFailure(testInstance *testing.T) {
	environment := newTestEnvironment(testInstance)

	creator, creationError := reconcile.NewProfileCreator(environment.profileStore, &recordingIdentityManager{}, &scriptedInputProvider{inputAnswers: []string{"work"}}, environment.console, nil)
	require.NoError(testInstance, creationError)

	_, createError := creator.CreateProfile(context.Background())
	require.ErrorIs(testInstance, createError, errUnexpectedPrompt)
	require.Zero(testInstance, environment.profileStore.Len())
}
