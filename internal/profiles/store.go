package profiles

import (
	"errors"
	"fmt"
	"sort"

	"github.com/temirov/gamm/internal/storage"
)

const (
	profileStoreLoadErrorTemplateConstant = "failed to load profiles: %w"
	profileStoreSaveErrorTemplateConstant = "failed to save profiles: %w"
)

// ErrDocumentNotConfigured indicates that the store was created without a backing document.
var ErrDocumentNotConfigured = errors.New("profile store requires a document")

// Store is the in-memory view of the profile document.
type Store struct {
	document *storage.Document
	profiles map[string]Profile
}

// NewStore constructs an empty store bound to document.
func NewStore(document *storage.Document) *Store {
	return &Store{document: document, profiles: map[string]Profile{}}
}

// LoadStore reads the profile document. A missing document yields an empty store.
func LoadStore(document *storage.Document) (*Store, error) {
	if document == nil {
		return nil, ErrDocumentNotConfigured
	}

	decodedProfiles := map[string]Profile{}
	if _, loadError := document.Load(&decodedProfiles); loadError != nil {
		return nil, fmt.Errorf(profileStoreLoadErrorTemplateConstant, loadError)
	}

	store := NewStore(document)
	for profileName, profile := range decodedProfiles {
		store.profiles[profileName] = normalizeProfile(profile)
	}
	return store, nil
}

// Save overwrites the profile document with the current contents.
func (store *Store) Save() error {
	if store.document == nil {
		return ErrDocumentNotConfigured
	}

	encodedProfiles := make(map[string]Profile, len(store.profiles))
	for profileName, profile := range store.profiles {
		if profile.URLRewrites == nil {
			profile.URLRewrites = []URLRewrite{}
		}
		encodedProfiles[profileName] = profile
	}

	if saveError := store.document.Save(encodedProfiles); saveError != nil {
		return fmt.Errorf(profileStoreSaveErrorTemplateConstant, saveError)
	}
	return nil
}

// Add inserts or replaces the profile stored under name.
func (store *Store) Add(name string, profile Profile) {
	store.profiles[name] = normalizeProfile(profile)
}

// Get returns the profile stored under name.
func (store *Store) Get(name string) (Profile, bool) {
	profile, exists := store.profiles[name]
	return profile, exists
}

// Remove deletes the profile stored under name and returns it.
func (store *Store) Remove(name string) (Profile, bool) {
	profile, exists := store.profiles[name]
	if !exists {
		return Profile{}, false
	}
	delete(store.profiles, name)
	return profile, true
}

// List returns the profile names in lexical order.
func (store *Store) List() []string {
	profileNames := make([]string, 0, len(store.profiles))
	for profileName := range store.profiles {
		profileNames = append(profileNames, profileName)
	}
	sort.Strings(profileNames)
	return profileNames
}

// Entries returns every profile with its name, ordered by name.
func (store *Store) Entries() []NamedProfile {
	profileNames := store.List()
	entries := make([]NamedProfile, 0, len(profileNames))
	for _, profileName := range profileNames {
		entries = append(entries, NamedProfile{Name: profileName, Profile: store.profiles[profileName]})
	}
	return entries
}

// Len reports the number of stored profiles.
func (store *Store) Len() int {
	return len(store.profiles)
}

func normalizeProfile(profile Profile) Profile {
	if len(profile.URLRewrites) == 0 {
		profile.URLRewrites = nil
		return profile
	}
	copiedRewrites := make([]URLRewrite, len(profile.URLRewrites))
	copy(copiedRewrites, profile.URLRewrites)
	profile.URLRewrites = copiedRewrites
	return profile
}
