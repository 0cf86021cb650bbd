package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gamm/cmd/cli"
	"github.com/temirov/gamm/internal/gitconfig"
	"github.com/temirov/gamm/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# settings.yaml"
	readmeSnippetFileNameConstant    = "settings.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing settings header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	unexpectedKeyMessageTemplate     = "README documents unknown key %s"
	missingKeyMessageTemplate        = "README omits key %s"
)

func readReadmeSettingsSnippet(testInstance *testing.T) string {
	testInstance.Helper()
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])
}

func flattenKeys(prefix string, document map[string]any, keys map[string]struct{}) {
	for key, value := range document {
		fullKey := key
		if len(prefix) > 0 {
			fullKey = prefix + "." + key
		}
		if nested, isMap := value.(map[string]any); isMap {
			flattenKeys(fullKey, nested, keys)
			continue
		}
		keys[fullKey] = struct{}{}
	}
}

func TestReadmeSettingsMatchEmbeddedDefaults(testInstance *testing.T) {
	snippetContent := readReadmeSettingsSnippet(testInstance)
	embeddedContent, _ := cli.EmbeddedDefaultConfiguration()

	var readmeDocument map[string]any
	require.NoError(testInstance, yaml.Unmarshal([]byte(snippetContent), &readmeDocument))
	var embeddedDocument map[string]any
	require.NoError(testInstance, yaml.Unmarshal(embeddedContent, &embeddedDocument))

	readmeKeys := map[string]struct{}{}
	flattenKeys("", readmeDocument, readmeKeys)
	embeddedKeys := map[string]struct{}{}
	flattenKeys("", embeddedDocument, embeddedKeys)

	for key := range readmeKeys {
		_, known := embeddedKeys[key]
		require.Truef(testInstance, known, unexpectedKeyMessageTemplate, key)
	}
	for key := range embeddedKeys {
		_, documented := readmeKeys[key]
		require.Truef(testInstance, documented, missingKeyMessageTemplate, key)
	}
}

func TestReadmeSettingsLoad(testInstance *testing.T) {
	snippetContent := readReadmeSettingsSnippet(testInstance)
	settingsPath := filepath.Join(testInstance.TempDir(), readmeSnippetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(settingsPath, []byte(snippetContent), 0o600))

	loader := utils.NewConfigurationLoader("settings", "yaml", "GAMM_DOCS", nil)
	var configuration cli.ApplicationConfiguration
	_, loadError := loader.LoadConfiguration(settingsPath, nil, &configuration)
	require.NoError(testInstance, loadError)

	_, backendError := gitconfig.ParseBackend(configuration.Git.Backend)
	require.NoError(testInstance, backendError)
	require.Equal(testInstance, "~/.githooks", configuration.Hooks.Directory)
	require.Equal(testInstance, "config.json", configuration.Storage.ProfilesFile)
	require.Equal(testInstance, "repos.json", configuration.Storage.RepositoriesFile)
}
