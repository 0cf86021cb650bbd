package repositories

import (
	"errors"
	"fmt"
	"sort"

	"github.com/temirov/gamm/internal/storage"
)

const (
	repositoryStoreLoadErrorTemplateConstant = "failed to load repositories: %w"
	repositoryStoreSaveErrorTemplateConstant = "failed to save repositories: %w"
	legacyRepositoriesKeyConstant            = "repos"
)

// ErrDocumentNotConfigured indicates that the store was created without a backing document.
var ErrDocumentNotConfigured = errors.New("repository store requires a document")

// Entry links a remote URL to the profile that commits to it.
type Entry struct {
	RepositoryName string `json:"repo_name"`
	URL            string `json:"url"`
	OwnerProfile   string `json:"commit_by"`
}

// legacyDocument is the older repository file layout that nested the URL mapping under "repos".
type legacyDocument struct {
	Repositories map[string]Entry `json:"repos"`
}

// Store is the in-memory view of the repository document.
type Store struct {
	document *storage.Document
	entries  map[string]Entry
}

// NewStore constructs an empty store bound to document.
func NewStore(document *storage.Document) *Store {
	return &Store{document: document, entries: map[string]Entry{}}
}

// LoadStore reads the repository document. A missing document yields an empty store.
func LoadStore(document *storage.Document) (*Store, error) {
	if document == nil {
		return nil, ErrDocumentNotConfigured
	}

	store := NewStore(document)
	if _, loadError := document.Load(&store.entries); loadError != nil {
		return nil, fmt.Errorf(repositoryStoreLoadErrorTemplateConstant, loadError)
	}
	if isLegacyLayout(store.entries) {
		var legacy legacyDocument
		if _, loadError := document.Load(&legacy); loadError != nil {
			return nil, fmt.Errorf(repositoryStoreLoadErrorTemplateConstant, loadError)
		}
		store.entries = legacy.Repositories
	}
	if store.entries == nil {
		store.entries = map[string]Entry{}
	}
	return store, nil
}

// isLegacyLayout reports whether entries decoded from a document that wraps the mapping in a "repos" object.
// A genuine entry is always keyed by its own URL.
func isLegacyLayout(entries map[string]Entry) bool {
	if len(entries) != 1 {
		return false
	}
	entry, exists := entries[legacyRepositoriesKeyConstant]
	return exists && entry.URL != legacyRepositoriesKeyConstant
}

// Save overwrites the repository document with the current contents.
func (store *Store) Save() error {
	if store.document == nil {
		return ErrDocumentNotConfigured
	}
	if saveError := store.document.Save(store.entries); saveError != nil {
		return fmt.Errorf(repositoryStoreSaveErrorTemplateConstant, saveError)
	}
	return nil
}

// Add inserts or replaces the entry keyed by its URL.
func (store *Store) Add(entry Entry) {
	store.entries[entry.URL] = entry
}

// AddRepository records that owner commits to the repository at url.
func (store *Store) AddRepository(repositoryName string, url string, owner string) {
	store.Add(Entry{RepositoryName: repositoryName, URL: url, OwnerProfile: owner})
}

// LookupOwner returns the profile name that owns url.
func (store *Store) LookupOwner(url string) (string, bool) {
	entry, exists := store.entries[url]
	if !exists {
		return "", false
	}
	return entry.OwnerProfile, true
}

// Get returns the entry for url.
func (store *Store) Get(url string) (Entry, bool) {
	entry, exists := store.entries[url]
	return entry, exists
}

// RemoveByURL deletes the entry for url and returns it.
func (store *Store) RemoveByURL(url string) (Entry, bool) {
	entry, exists := store.entries[url]
	if !exists {
		return Entry{}, false
	}
	delete(store.entries, url)
	return entry, true
}

// FindByOwner returns every entry owned by profileName in Entries order.
func (store *Store) FindByOwner(profileName string) []Entry {
	ownedEntries := make([]Entry, 0)
	for _, entry := range store.Entries() {
		if entry.OwnerProfile == profileName {
			ownedEntries = append(ownedEntries, entry)
		}
	}
	return ownedEntries
}

// FindByNameOrURL returns the entry whose URL or repository name equals value. URL matches take precedence.
func (store *Store) FindByNameOrURL(value string) (Entry, bool) {
	if entry, exists := store.entries[value]; exists {
		return entry, true
	}
	for _, entry := range store.Entries() {
		if entry.RepositoryName == value {
			return entry, true
		}
	}
	return Entry{}, false
}

// Entries returns every entry ordered by repository name, then URL.
func (store *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(store.entries))
	for _, entry := range store.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(leftIndex int, rightIndex int) bool {
		if entries[leftIndex].RepositoryName != entries[rightIndex].RepositoryName {
			return entries[leftIndex].RepositoryName < entries[rightIndex].RepositoryName
		}
		return entries[leftIndex].URL < entries[rightIndex].URL
	})
	return entries
}

// Len reports the number of stored entries.
func (store *Store) Len() int {
	return len(store.entries)
}
