package reconcile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/gamm/internal/gitconfig"
	"github.com/temirov/gamm/internal/profiles"
	"github.com/temirov/gamm/internal/prompt"
	"github.com/temirov/gamm/internal/ui"
)

const (
	createProfileBannerConstant           = "Create a new git config profile"
	profileNamePromptConstant             = "Profile name (e.g., 'work', 'personal')"
	profileNameRequiredMessageConstant    = "Profile name is required."
	userNamePromptConstant                = "user.name"
	userEmailPromptConstant               = "user.email"
	gpgSigningPromptConstant              = "Enable GPG signing for commits?"
	profileCreatedTemplateConstant        = "Profile %s created"
	profilePromptErrorTemplateConstant    = "failed to read profile details: %w"
	profileSaveErrorTemplateConstant      = "failed to save profile %q: %w"
	currentIdentityUnavailableLogConstant = "Current git identity unavailable, prompting without defaults"
	profileCreatedLogMessageConstant      = "Created profile"
	profileNameLogFieldConstant           = "profile"
)

var (
	// ErrProfileStoreNotConfigured indicates a missing profile store dependency.
	ErrProfileStoreNotConfigured = errors.New("profile store not configured")
	// ErrIdentityManagerNotConfigured indicates a missing identity manager dependency.
	ErrIdentityManagerNotConfigured = errors.New("identity manager not configured")
	// ErrInputProviderNotConfigured indicates a missing input provider dependency.
	ErrInputProviderNotConfigured = errors.New("input provider not configured")
)

// ProfileCreator interactively creates profiles and saves them immediately.
type ProfileCreator struct {
	profileStore    *profiles.Store
	identityManager gitconfig.IdentityManager
	inputProvider   prompt.InputProvider
	console         *ui.Console
	logger          *zap.Logger
}

// NewProfileCreator constructs a ProfileCreator.
func NewProfileCreator(profileStore *profiles.Store, identityManager gitconfig.IdentityManager, inputProvider prompt.InputProvider, console *ui.Console, logger *zap.Logger) (*ProfileCreator, error) {
	if profileStore == nil {
		return nil, ErrProfileStoreNotConfigured
	}
	if identityManager == nil {
		return nil, ErrIdentityManagerNotConfigured
	}
	if inputProvider == nil {
		return nil, ErrInputProviderNotConfigured
	}
	if console == nil {
		console = ui.NewConsole(nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileCreator{
		profileStore:    profileStore,
		identityManager: identityManager,
		inputProvider:   inputProvider,
		console:         console,
		logger:          logger,
	}, nil
}

// CreateProfile asks for the profile details, offering the current global
// identity as defaults, and persists the result.
func (creator *ProfileCreator) CreateProfile(executionContext context.Context) (profiles.NamedProfile, error) {
	creator.console.Banner(createProfileBannerConstant)

	currentIdentity, readError := creator.identityManager.ReadIdentity(executionContext)
	if readError != nil {
		creator.logger.Debug(currentIdentityUnavailableLogConstant, zap.Error(readError))
		currentIdentity = gitconfig.Identity{}
	}

	profileName, nameError := creator.askProfileName()
	if nameError != nil {
		return profiles.NamedProfile{}, fmt.Errorf(profilePromptErrorTemplateConstant, nameError)
	}

	userName, userNameError := creator.inputProvider.Input(userNamePromptConstant, currentIdentity.Name)
	if userNameError != nil {
		return profiles.NamedProfile{}, fmt.Errorf(profilePromptErrorTemplateConstant, userNameError)
	}

	userEmail, userEmailError := creator.inputProvider.Input(userEmailPromptConstant, currentIdentity.Email)
	if userEmailError != nil {
		return profiles.NamedProfile{}, fmt.Errorf(profilePromptErrorTemplateConstant, userEmailError)
	}

	gpgSign, gpgSignError := creator.inputProvider.Confirm(gpgSigningPromptConstant, false)
	if gpgSignError != nil {
		return profiles.NamedProfile{}, fmt.Errorf(profilePromptErrorTemplateConstant, gpgSignError)
	}

	profile := profiles.Profile{
		User:   profiles.UserConfiguration{Name: userName, Email: userEmail},
		Commit: profiles.CommitConfiguration{GPGSign: gpgSign},
	}

	creator.profileStore.Add(profileName, profile)
	if saveError := creator.profileStore.Save(); saveError != nil {
		return profiles.NamedProfile{}, fmt.Errorf(profileSaveErrorTemplateConstant, profileName, saveError)
	}

	creator.logger.Info(profileCreatedLogMessageConstant, zap.String(profileNameLogFieldConstant, profileName))
	creator.console.BlankLine()
	creator.console.Success(profileCreatedTemplateConstant, ui.Highlight.Sprint(profileName))

	return profiles.NamedProfile{Name: profileName, Profile: profile}, nil
}

func (creator *ProfileCreator) askProfileName() (string, error) {
	for {
		rawName, inputError := creator.inputProvider.Input(profileNamePromptConstant, "")
		if inputError != nil {
			return "", inputError
		}
		if profileName := profiles.NormalizeName(rawName); len(profileName) > 0 {
			return profileName, nil
		}
		creator.console.Println(profileNameRequiredMessageConstant)
	}
}
