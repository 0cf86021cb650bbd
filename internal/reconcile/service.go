package reconcile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/gamm/internal/gitconfig"
	"github.com/temirov/gamm/internal/gitrepo"
	"github.com/temirov/gamm/internal/profiles"
	"github.com/temirov/gamm/internal/prompt"
	"github.com/temirov/gamm/internal/repositories"
	"github.com/temirov/gamm/internal/ui"
)

const (
	danglingReferenceTemplateConstant       = "Repository mapped to profile %s but the profile was not found"
	alreadyConfiguredTemplateConstant       = "Git config already set for %s (%s)"
	mismatchBannerConstant                  = "Git config mismatch detected"
	repositoryLabelConstant                 = "Repository"
	expectedOwnerLabelConstant              = "Expected owner"
	expectedOwnerValueTemplateConstant      = "%s (%s)"
	currentEmailLabelConstant               = "Current email"
	currentNameLabelConstant                = "Current name"
	valueNotSetTemplateConstant             = "<not set> (will set to: %s)"
	valueChangeTemplateConstant             = "%s (will change to: %s)"
	noProfilesBannerConstant                = "No git config profiles found!"
	firstProfileMessageConstant             = "  Let's create your first config profile."
	newRepositoryBannerConstant             = "New repository detected!"
	addRepositoryPromptConstant             = "Would you like to add this repository to gamm?"
	skippingRepositoryMessageConstant       = "Skipping repository setup."
	repositoryNamePromptConstant            = "Enter a name for this repository"
	selectOwnerMessageConstant              = "Select the git config profile (owner) for this repository:"
	chooseOwnerPromptConstant               = "Choose owner"
	ownerOptionTemplateConstant             = "%s - %s"
	createProfileOptionConstant             = "+ Create new profile"
	repositoryAddedTemplateConstant         = "Repository added with owner %s"
	applyingProfileTemplateConstant         = "Applying profile %s for %s\n"
	plannedSettingTemplateConstant          = "  %s = %s\n"
	identityUpdatedMessageConstant          = "Config updated. Please run your commit command again."
	identityAppliedMessageConstant          = "Config applied. Please run your commit command again."
	completionNoticeTemplateConstant        = "%s"
	readIdentityErrorTemplateConstant       = "failed to read the current git identity: %w"
	applyProfileErrorTemplateConstant       = "failed to apply profile %q: %w"
	registerRepositoryErrorTemplateConstant = "failed to register repository %s: %w"
	repositoryPromptErrorTemplateConstant   = "failed to read repository details: %w"
	missingOwnerProfileTemplateConstant     = "profile %q selected for %s is missing"
	reconcileStartedLogMessageConstant      = "Reconciling repository identity"
	reconcileFinishedLogMessageConstant     = "Reconciliation finished"
	danglingReferenceLogMessageConstant     = "Repository owner profile missing"
	repositoryRegisteredLogMessageConstant  = "Registered repository"
	repositoryURLLogFieldConstant           = "repository_url"
	ownerProfileLogFieldConstant            = "owner_profile"
	outcomeLogFieldConstant                 = "outcome"
)

// ErrRepositoryStoreNotConfigured indicates a missing repository store dependency.
var ErrRepositoryStoreNotConfigured = errors.New("repository store not configured")

// Dependencies carries the collaborators of Service.
type Dependencies struct {
	Profiles        *profiles.Store
	Repositories    *repositories.Store
	IdentityManager gitconfig.IdentityManager
	InputProvider   prompt.InputProvider
	Console         *ui.Console
	Logger          *zap.Logger
}

// Service runs the reconciliation flow for one repository at a time.
type Service struct {
	profileStore    *profiles.Store
	repositoryStore *repositories.Store
	identityManager gitconfig.IdentityManager
	inputProvider   prompt.InputProvider
	profileCreator  *ProfileCreator
	console         *ui.Console
	logger          *zap.Logger
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Repositories == nil {
		return nil, ErrRepositoryStoreNotConfigured
	}

	profileCreator, creatorError := NewProfileCreator(dependencies.Profiles, dependencies.IdentityManager, dependencies.InputProvider, dependencies.Console, dependencies.Logger)
	if creatorError != nil {
		return nil, creatorError
	}

	return &Service{
		profileStore:    dependencies.Profiles,
		repositoryStore: dependencies.Repositories,
		identityManager: dependencies.IdentityManager,
		inputProvider:   dependencies.InputProvider,
		profileCreator:  profileCreator,
		console:         profileCreator.console,
		logger:          profileCreator.logger,
	}, nil
}

// Reconcile verifies or provisions the identity for the repository identified by remoteURL.
// Whenever the global identity is written the outcome is OutcomeApplied and the error is ErrCommitRetryRequired.
func (service *Service) Reconcile(executionContext context.Context, remoteURL string) (Outcome, error) {
	service.logger.Debug(reconcileStartedLogMessageConstant, zap.String(repositoryURLLogFieldConstant, remoteURL))

	var outcome Outcome
	var reconcileError error
	if ownerProfile, registered := service.repositoryStore.LookupOwner(remoteURL); registered {
		outcome, reconcileError = service.verify(executionContext, remoteURL, ownerProfile)
	} else {
		outcome, reconcileError = service.provision(executionContext, remoteURL)
	}

	service.logger.Debug(reconcileFinishedLogMessageConstant,
		zap.String(repositoryURLLogFieldConstant, remoteURL),
		zap.Stringer(outcomeLogFieldConstant, outcome),
		zap.Error(reconcileError),
	)
	return outcome, reconcileError
}

func (service *Service) verify(executionContext context.Context, remoteURL string, ownerProfile string) (Outcome, error) {
	profile, exists := service.profileStore.Get(ownerProfile)
	if !exists {
		service.logger.Debug(danglingReferenceLogMessageConstant,
			zap.String(repositoryURLLogFieldConstant, remoteURL),
			zap.String(ownerProfileLogFieldConstant, ownerProfile),
		)
		service.console.Warn(danglingReferenceTemplateConstant, ui.Highlight.Sprint(ownerProfile))
		return OutcomeDanglingReference, nil
	}

	currentIdentity, readError := service.identityManager.ReadIdentity(executionContext)
	if readError != nil {
		return OutcomeSkipped, fmt.Errorf(readIdentityErrorTemplateConstant, readError)
	}

	if currentIdentity.Matches(profile.User) {
		service.console.Success(alreadyConfiguredTemplateConstant, ui.Highlight.Sprint(ownerProfile), profile.User.Email)
		return OutcomeAlreadyConfigured, nil
	}

	service.reportMismatch(remoteURL, ownerProfile, profile, currentIdentity)
	return service.apply(executionContext, remoteURL, ownerProfile, profile, identityUpdatedMessageConstant)
}

func (service *Service) reportMismatch(remoteURL string, ownerProfile string, profile profiles.Profile, currentIdentity gitconfig.Identity) {
	service.console.Banner(mismatchBannerConstant)
	service.console.Detail(repositoryLabelConstant, remoteURL)
	service.console.Detail(expectedOwnerLabelConstant, fmt.Sprintf(expectedOwnerValueTemplateConstant, ownerProfile, profile.User.Email))
	service.console.BlankLine()

	if description, differs := describeDifference(currentIdentity.Email, profile.User.Email); differs {
		service.console.Detail(currentEmailLabelConstant, description)
	}
	if description, differs := describeDifference(currentIdentity.Name, profile.User.Name); differs {
		service.console.Detail(currentNameLabelConstant, description)
	}
	service.console.BlankLine()
}

func describeDifference(currentValue string, expectedValue string) (string, bool) {
	if len(currentValue) == 0 {
		return fmt.Sprintf(valueNotSetTemplateConstant, expectedValue), true
	}
	if currentValue != expectedValue {
		return fmt.Sprintf(valueChangeTemplateConstant, currentValue, expectedValue), true
	}
	return "", false
}

func (service *Service) provision(executionContext context.Context, remoteURL string) (Outcome, error) {
	if service.profileStore.Len() == 0 {
		service.console.Banner(noProfilesBannerConstant)
		service.console.Println(firstProfileMessageConstant)
		if _, creationError := service.profileCreator.CreateProfile(executionContext); creationError != nil {
			return OutcomeSkipped, creationError
		}
	}

	service.console.Banner(newRepositoryBannerConstant)
	service.console.Detail(repositoryLabelConstant, remoteURL)
	service.console.BlankLine()

	addRepository, confirmError := service.inputProvider.Confirm(addRepositoryPromptConstant, true)
	if confirmError != nil {
		return OutcomeSkipped, fmt.Errorf(repositoryPromptErrorTemplateConstant, confirmError)
	}
	if !addRepository {
		service.console.Println(skippingRepositoryMessageConstant)
		return OutcomeSkipped, nil
	}

	repositoryName, nameError := service.inputProvider.Input(repositoryNamePromptConstant, gitrepo.DefaultRepositoryName(remoteURL))
	if nameError != nil {
		return OutcomeSkipped, fmt.Errorf(repositoryPromptErrorTemplateConstant, nameError)
	}
	if len(repositoryName) == 0 {
		repositoryName = remoteURL
	}

	ownerProfile, ownerError := service.selectOwner(executionContext)
	if ownerError != nil {
		return OutcomeSkipped, ownerError
	}

	service.repositoryStore.AddRepository(repositoryName, remoteURL, ownerProfile)
	if saveError := service.repositoryStore.Save(); saveError != nil {
		return OutcomeSkipped, fmt.Errorf(registerRepositoryErrorTemplateConstant, remoteURL, saveError)
	}
	service.logger.Info(repositoryRegisteredLogMessageConstant,
		zap.String(repositoryURLLogFieldConstant, remoteURL),
		zap.String(ownerProfileLogFieldConstant, ownerProfile),
	)

	service.console.BlankLine()
	service.console.Success(repositoryAddedTemplateConstant, ui.Highlight.Sprint(ownerProfile))

	profile, exists := service.profileStore.Get(ownerProfile)
	if !exists {
		return OutcomeSkipped, fmt.Errorf(missingOwnerProfileTemplateConstant, ownerProfile, remoteURL)
	}
	return service.apply(executionContext, remoteURL, ownerProfile, profile, identityAppliedMessageConstant)
}

func (service *Service) selectOwner(executionContext context.Context) (string, error) {
	service.console.BlankLine()
	service.console.Println(selectOwnerMessageConstant)
	service.console.BlankLine()

	namedProfiles := service.profileStore.Entries()
	ownerOptions := make([]string, 0, len(namedProfiles)+1)
	for _, namedProfile := range namedProfiles {
		ownerOptions = append(ownerOptions, fmt.Sprintf(ownerOptionTemplateConstant, namedProfile.Name, namedProfile.Profile.Summary()))
	}
	ownerOptions = append(ownerOptions, createProfileOptionConstant)

	selectedIndex, selectError := service.inputProvider.Select(chooseOwnerPromptConstant, ownerOptions)
	if selectError != nil {
		return "", fmt.Errorf(repositoryPromptErrorTemplateConstant, selectError)
	}
	if selectedIndex < len(namedProfiles) {
		return namedProfiles[selectedIndex].Name, nil
	}

	createdProfile, creationError := service.profileCreator.CreateProfile(executionContext)
	if creationError != nil {
		return "", creationError
	}
	return createdProfile.Name, nil
}

func (service *Service) apply(executionContext context.Context, remoteURL string, ownerProfile string, profile profiles.Profile, completionMessage string) (Outcome, error) {
	service.console.Printf(applyingProfileTemplateConstant, ui.Highlight.Sprint(ownerProfile), remoteURL)
	for _, setting := range gitconfig.PlanSettings(profile) {
		service.console.Printf(plannedSettingTemplateConstant, setting.Key, setting.Value)
	}

	if writeError := service.identityManager.WriteIdentity(executionContext, profile); writeError != nil {
		return OutcomeApplied, fmt.Errorf(applyProfileErrorTemplateConstant, ownerProfile, writeError)
	}

	service.console.BlankLine()
	service.console.Notice(completionNoticeTemplateConstant, completionMessage)
	return OutcomeApplied, ErrCommitRetryRequired
}
