package profiles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gamm/internal/profiles"
	"github.com/temirov/gamm/internal/storage"
)

const (
	testProfilesFileNameConstant    = "config.json"
	testWorkProfileNameConstant     = "work"
	testPersonalProfileNameConstant = "personal"
	testMissingProfileNameConstant  = "missing"
	testUserNameConstant            = "Test User"
	testUserEmailConstant           = "test@example.com"
	testSignoffConstant             = "test"
	testRewritePatternConstant      = "git@github.com:"
	testRewriteInsteadOfConstant    = "https://github.com/"
)

func sampleProfile() profiles.Profile {
	signoff := testSignoffConstant
	return profiles.Profile{
		User: profiles.UserConfiguration{
			Name:    testUserNameConstant,
			Email:   testUserEmailConstant,
			Signoff: &signoff,
		},
		URLRewrites: []profiles.URLRewrite{{Pattern: testRewritePatternConstant, InsteadOf: testRewriteInsteadOfConstant}},
		Commit:      profiles.CommitConfiguration{GPGSign: true},
	}
}

func newTestDocument(testInstance *testing.T) *storage.Document {
	testInstance.Helper()
	document, creationError := storage.NewDocument(storage.OSFileSystem{}, filepath.Join(testInstance.TempDir(), testProfilesFileNameConstant))
	require.NoError(testInstance, creationError)
	return document
}

func TestStoreOperations(testInstance *testing.T) {
	store, loadError := profiles.LoadStore(newTestDocument(testInstance))
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, 0, store.Len())

	store.Add(testWorkProfileNameConstant, sampleProfile())
	store.Add(testPersonalProfileNameConstant, profiles.Profile{User: profiles.UserConfiguration{Name: "P", Email: "p@x.com"}})

	retrievedProfile, exists := store.Get(testWorkProfileNameConstant)
	require.True(testInstance, exists)
	require.Equal(testInstance, sampleProfile(), retrievedProfile)

	_, missingExists := store.Get(testMissingProfileNameConstant)
	require.False(testInstance, missingExists)

	require.Equal(testInstance, []string{testPersonalProfileNameConstant, testWorkProfileNameConstant}, store.List())

	entries := store.Entries()
	require.Len(testInstance, entries, 2)
	require.Equal(testInstance, testPersonalProfileNameConstant, entries[0].Name)

	removedProfile, removed := store.Remove(testWorkProfileNameConstant)
	require.True(testInstance, removed)
	require.Equal(testInstance, testUserEmailConstant, removedProfile.User.Email)

	_, removedAgain := store.Remove(testWorkProfileNameConstant)
	require.False(testInstance, removedAgain)
	require.Equal(testInstance, 1, store.Len())
}

func TestStoreAddReplacesExistingProfile(testInstance *testing.T) {
	store := profiles.NewStore(newTestDocument(testInstance))
	store.Add(testWorkProfileNameConstant, sampleProfile())

	replacement := profiles.Profile{User: profiles.UserConfiguration{Name: "Other", Email: "other@example.com"}}
	store.Add(testWorkProfileNameConstant, replacement)

	retrievedProfile, exists := store.Get(testWorkProfileNameConstant)
	require.True(testInstance, exists)
	require.Equal(testInstance, replacement, retrievedProfile)
	require.Equal(testInstance, 1, store.Len())
}

func TestStoreRoundTrip(testInstance *testing.T) {
	testCases := []struct {
		name    string
		profile profiles.Profile
	}{
		{
			name:    "all_fields",
			profile: sampleProfile(),
		},
		{
			name:    "empty_profile",
			profile: profiles.Profile{},
		},
		{
			name: "empty_rewrites_without_signoff",
			profile: profiles.Profile{
				User:        profiles.UserConfiguration{Name: testUserNameConstant, Email: testUserEmailConstant},
				URLRewrites: []profiles.URLRewrite{},
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			document := newTestDocument(testInstance)
			store := profiles.NewStore(document)
			store.Add(testWorkProfileNameConstant, testCase.profile)
			require.NoError(testInstance, store.Save())

			reloadedStore, loadError := profiles.LoadStore(document)
			require.NoError(testInstance, loadError)

			originalProfile, _ := store.Get(testWorkProfileNameConstant)
			reloadedProfile, exists := reloadedStore.Get(testWorkProfileNameConstant)
			require.True(testInstance, exists)
			require.Equal(testInstance, originalProfile, reloadedProfile)
		})
	}
}

func TestStorePersistedFormat(testInstance *testing.T) {
	document := newTestDocument(testInstance)
	store := profiles.NewStore(document)
	store.Add(testWorkProfileNameConstant, profiles.Profile{User: profiles.UserConfiguration{Name: "A", Email: "a@x.com"}})
	require.NoError(testInstance, store.Save())

	persistedContent, readError := os.ReadFile(document.Path())
	require.NoError(testInstance, readError)

	expectedContent := `{
  "work": {
    "user": {
      "name": "A",
      "email": "a@x.com"
    },
    "urls": [],
    "commit": {
      "gpgsign": false
    }
  }
}
`
	require.Equal(testInstance, expectedContent, string(persistedContent))
}

func TestLoadStoreReportsMalformedDocument(testInstance *testing.T) {
	document := newTestDocument(testInstance)
	require.NoError(testInstance, os.WriteFile(document.Path(), []byte("[1, 2"), 0o600))

	_, loadError := profiles.LoadStore(document)
	var formatError *storage.DataFormatError
	require.ErrorAs(testInstance, loadError, &formatError)
}

func TestLoadStoreRequiresDocument(testInstance *testing.T) {
	_, loadError := profiles.LoadStore(nil)
	require.ErrorIs(testInstance, loadError, profiles.ErrDocumentNotConfigured)
}
