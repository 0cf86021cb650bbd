package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/gamm/internal/gitconfig"
	"github.com/temirov/gamm/internal/profiles"
	"github.com/temirov/gamm/internal/prompt"
	"github.com/temirov/gamm/internal/reconcile"
	"github.com/temirov/gamm/internal/repositories"
	"github.com/temirov/gamm/internal/ui"
)

const (
	noRepositoriesMessageConstant              = "No repositories configured."
	repositoriesAutoAddedMessageConstant       = "Repositories are automatically added when you commit to a new repo."
	repositoriesBannerConstant                 = "Configured Repositories"
	repositoryHeaderTemplateConstant           = "  %s\n"
	repositoryURLTemplateConstant              = "    URL:   %s\n"
	repositoryOwnerTemplateConstant            = "    Owner: %s (%s)\n"
	ownerNotFoundConstant                      = "(config not found)"
	selectRepositoryMessageConstant            = "Select a repository to delete:"
	chooseRepositoryPromptConstant             = "Choose repository"
	repositoryOptionTemplateConstant           = "%s (%s)"
	repositoryDeletedTemplateConstant          = "Deleted repository %s"
	repositoryNotFoundTemplateConstant         = "Repository %s not found.\n"
	noProfilesMessageConstant                  = "No profiles configured."
	createProfileHintTemplateConstant          = "Create a profile by running: %s\n"
	createProfileHintCommandConstant           = "gamm profile add"
	profilesBannerConstant                     = "Configured Profiles"
	profileHeaderTemplateConstant              = "  %s\n"
	profileNameTemplateConstant                = "    Name:     %s\n"
	profileEmailTemplateConstant               = "    Email:    %s\n"
	profileGPGTemplateConstant                 = "    GPG Sign: %s\n"
	profileRewritesHeaderConstant              = "    URL Rewrites:"
	profileRewriteTemplateConstant             = "      %s -> %s\n"
	enabledValueConstant                       = "yes"
	disabledValueConstant                      = "no"
	selectProfileMessageConstant               = "Select a profile to delete:"
	chooseProfilePromptConstant                = "Choose profile"
	profileOptionTemplateConstant              = "%s - %s"
	profileDeletedTemplateConstant             = "Deleted profile %s"
	relatedRepositoriesRemovedTemplateConstant = "Cleaned up %d related repository configuration(s)"
	profileNotFoundTemplateConstant            = "Profile %s not found.\n"
	selectionErrorTemplateConstant             = "failed to read selection: %w"
	saveRepositoriesErrorTemplateConstant      = "failed to delete repository %s: %w"
	saveProfilesErrorTemplateConstant          = "failed to delete profile %q: %w"
	repositoryDeletedLogMessageConstant        = "Deleted repository"
	profileDeletedLogMessageConstant           = "Deleted profile"
	repositoryURLLogFieldConstant              = "repository_url"
	profileNameLogFieldConstant                = "profile"
	removedRepositoriesLogFieldConstant        = "removed_repositories"
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

// Service implements the repo and profile management commands.
type Service struct {
	profileStore    *profiles.Store
	repositoryStore *repositories.Store
	inputProvider   prompt.InputProvider
	profileCreator  *reconcile.ProfileCreator
	console         *ui.Console
	logger          *zap.Logger
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Repositories == nil {
		return nil, ErrRepositoryStoreNotConfigured
	}

	console := dependencies.Console
	if console == nil {
		console = ui.NewConsole(nil, nil)
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	profileCreator, creatorError := reconcile.NewProfileCreator(dependencies.Profiles, dependencies.IdentityManager, dependencies.InputProvider, console, logger)
	if creatorError != nil {
		return nil, creatorError
	}

	return &Service{
		profileStore:    dependencies.Profiles,
		repositoryStore: dependencies.Repositories,
		inputProvider:   dependencies.InputProvider,
		profileCreator:  profileCreator,
		console:         console,
		logger:          logger,
	}, nil
}

// ListRepositories prints every registered repository with its owner.
func (service *Service) ListRepositories() {
	entries := service.repositoryStore.Entries()
	if len(entries) == 0 {
		service.console.Println(noRepositoriesMessageConstant)
		service.console.BlankLine()
		service.console.Println(repositoriesAutoAddedMessageConstant)
		return
	}

	service.console.Banner(repositoriesBannerConstant)
	for _, entry := range entries {
		ownerDescription := ownerNotFoundConstant
		if ownerProfile, exists := service.profileStore.Get(entry.OwnerProfile); exists {
			ownerDescription = ownerProfile.Summary()
		}
		service.console.Printf(repositoryHeaderTemplateConstant, entry.RepositoryName)
		service.console.Printf(repositoryURLTemplateConstant, entry.URL)
		service.console.Printf(repositoryOwnerTemplateConstant, entry.OwnerProfile, ownerDescription)
		service.console.BlankLine()
	}
}

// DeleteRepository removes the repository matching selector by name or URL.
// An empty selector asks the user to pick one.
func (service *Service) DeleteRepository(selector string) error {
	entries := service.repositoryStore.Entries()
	if len(entries) == 0 {
		service.console.Println(noRepositoriesMessageConstant)
		return nil
	}

	var target repositories.Entry
	if len(selector) > 0 {
		matchedEntry, found := service.repositoryStore.FindByNameOrURL(selector)
		if !found {
			service.console.Printf(repositoryNotFoundTemplateConstant, ui.Highlight.Sprint(selector))
			return nil
		}
		target = matchedEntry
	} else {
		options := make([]string, 0, len(entries))
		for _, entry := range entries {
			options = append(options, fmt.Sprintf(repositoryOptionTemplateConstant, entry.RepositoryName, entry.URL))
		}

		service.console.BlankLine()
		service.console.Println(selectRepositoryMessageConstant)
		service.console.BlankLine()
		selectedIndex, selectError := service.inputProvider.Select(chooseRepositoryPromptConstant, options)
		if selectError != nil {
			return fmt.Errorf(selectionErrorTemplateConstant, selectError)
		}
		target = entries[selectedIndex]
	}

	if _, removed := service.repositoryStore.RemoveByURL(target.URL); !removed {
		return nil
	}
	if saveError := service.repositoryStore.Save(); saveError != nil {
		return fmt.Errorf(saveRepositoriesErrorTemplateConstant, target.URL, saveError)
	}

	service.logger.Info(repositoryDeletedLogMessageConstant, zap.String(repositoryURLLogFieldConstant, target.URL))
	service.console.Success(repositoryDeletedTemplateConstant, ui.Highlight.Sprint(target.RepositoryName))
	return nil
}

// ListProfiles prints every profile with its identity, signing preference, and URL rewrites.
func (service *Service) ListProfiles() {
	namedProfiles := service.profileStore.Entries()
	if len(namedProfiles) == 0 {
		service.console.Println(noProfilesMessageConstant)
		service.console.BlankLine()
		service.console.Printf(createProfileHintTemplateConstant, ui.Code.Sprint(createProfileHintCommandConstant))
		return
	}

	service.console.Banner(profilesBannerConstant)
	for _, namedProfile := range namedProfiles {
		profile := namedProfile.Profile
		gpgSign := disabledValueConstant
		if profile.Commit.GPGSign {
			gpgSign = enabledValueConstant
		}

		service.console.Printf(profileHeaderTemplateConstant, namedProfile.Name)
		service.console.Printf(profileNameTemplateConstant, profile.User.Name)
		service.console.Printf(profileEmailTemplateConstant, profile.User.Email)
		service.console.Printf(profileGPGTemplateConstant, gpgSign)
		if len(profile.URLRewrites) > 0 {
			service.console.Println(profileRewritesHeaderConstant)
			for _, rewrite := range profile.URLRewrites {
				service.console.Printf(profileRewriteTemplateConstant, rewrite.InsteadOf, rewrite.Pattern)
			}
		}
		service.console.BlankLine()
	}
}

// DeleteProfile removes the named profile and every repository it owns.
// An empty name asks the user to pick one.
func (service *Service) DeleteProfile(profileName string) error {
	namedProfiles := service.profileStore.Entries()
	if len(namedProfiles) == 0 {
		service.console.Println(noProfilesMessageConstant)
		return nil
	}

	if len(profileName) > 0 {
		if _, exists := service.profileStore.Get(profileName); !exists {
			service.console.Printf(profileNotFoundTemplateConstant, ui.Highlight.Sprint(profileName))
			return nil
		}
	} else {
		options := make([]string, 0, len(namedProfiles))
		for _, namedProfile := range namedProfiles {
			options = append(options, fmt.Sprintf(profileOptionTemplateConstant, namedProfile.Name, namedProfile.Profile.Summary()))
		}

		service.console.BlankLine()
		service.console.Println(selectProfileMessageConstant)
		service.console.BlankLine()
		selectedIndex, selectError := service.inputProvider.Select(chooseProfilePromptConstant, options)
		if selectError != nil {
			return fmt.Errorf(selectionErrorTemplateConstant, selectError)
		}
		profileName = namedProfiles[selectedIndex].Name
	}

	relatedEntries := service.repositoryStore.FindByOwner(profileName)
	for _, relatedEntry := range relatedEntries {
		service.repositoryStore.RemoveByURL(relatedEntry.URL)
	}
	service.profileStore.Remove(profileName)

	if saveError := service.profileStore.Save(); saveError != nil {
		return fmt.Errorf(saveProfilesErrorTemplateConstant, profileName, saveError)
	}
	if saveError := service.repositoryStore.Save(); saveError != nil {
		return fmt.Errorf(saveProfilesErrorTemplateConstant, profileName, saveError)
	}

	service.logger.Info(profileDeletedLogMessageConstant,
		zap.String(profileNameLogFieldConstant, profileName),
		zap.Int(removedRepositoriesLogFieldConstant, len(relatedEntries)),
	)
	service.console.Success(profileDeletedTemplateConstant, ui.Highlight.Sprint(profileName))
	if len(relatedEntries) > 0 {
		service.console.Success(relatedRepositoriesRemovedTemplateConstant, len(relatedEntries))
	}
	return nil
}

// AddProfile creates a profile interactively without registering a repository.
func (service *Service) AddProfile(executionContext context.Context) (profiles.NamedProfile, error) {
	return service.profileCreator.CreateProfile(executionContext)
}
