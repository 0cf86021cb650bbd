package gitconfig

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	gitconfigfile "github.com/gopasspw/gitconfig"
	"go.uber.org/zap"

	"github.com/temirov/gamm/internal/profiles"
	"github.com/temirov/gamm/internal/storage"
)

const (
	configurationDirectoryPermissionsConstant    = fs.FileMode(0o755)
	configurationFilePermissionsConstant         = fs.FileMode(0o600)
	keySeparatorConstant                         = "."
	configurationFileLoadErrorTemplateConstant   = "failed to load git configuration %s: %w"
	configurationFileCreateErrorTemplateConstant = "failed to create git configuration %s: %w"
	quotedValueCharactersConstant                = "#;\"\\"
	valueQuoteConstant                           = "\""
	valueCheckKeyConstant                        = "gamm.value"
	valueCheckDocumentTemplateConstant           = "[gamm]\n\tvalue = %s\n"
	unrepresentableValueErrorTemplateConstant    = "git setting %s cannot be stored as %q in the configuration file"
)

var settingValueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// UnrepresentableValueError reports a value that would not read back unchanged from the configuration file.
type UnrepresentableValueError struct {
	Key   string
	Value string
}

// Error describes the rejected setting.
func (valueError UnrepresentableValueError) Error() string {
	return fmt.Sprintf(unrepresentableValueErrorTemplateConstant, valueError.Key, valueError.Value)
}

// ErrConfigurationFilePathNotConfigured indicates that a FileIdentityManager was created without a path.
var ErrConfigurationFilePathNotConfigured = errors.New("git configuration file path not configured")

// FileIdentityManager edits the global git configuration file in place.
type FileIdentityManager struct {
	fileSystem        storage.FileSystem
	configurationPath string
	logger            *zap.Logger
}

// NewFileIdentityManager constructs a manager editing configurationPath.
func NewFileIdentityManager(fileSystem storage.FileSystem, configurationPath string, logger *zap.Logger) (*FileIdentityManager, error) {
	trimmedPath := strings.TrimSpace(configurationPath)
	if len(trimmedPath) == 0 {
		return nil, ErrConfigurationFilePathNotConfigured
	}
	if fileSystem == nil {
		fileSystem = storage.OSFileSystem{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileIdentityManager{fileSystem: fileSystem, configurationPath: trimmedPath, logger: logger}, nil
}

// ReadIdentity returns user.name and user.email from the configuration file. A missing file reads as an empty identity.
func (manager *FileIdentityManager) ReadIdentity(executionContext context.Context) (Identity, error) {
	if _, statError := manager.fileSystem.Stat(manager.configurationPath); statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return Identity{}, nil
		}
		return Identity{}, fmt.Errorf(configurationFileLoadErrorTemplateConstant, manager.configurationPath, statError)
	}

	configuration, loadError := gitconfigfile.LoadConfig(manager.configurationPath)
	if loadError != nil {
		return Identity{}, fmt.Errorf(configurationFileLoadErrorTemplateConstant, manager.configurationPath, loadError)
	}

	userName, _ := configuration.Get(UserNameKey)
	userEmail, _ := configuration.Get(UserEmailKey)
	return Identity{Name: strings.TrimSpace(userName), Email: strings.TrimSpace(userEmail)}, nil
}

// WriteIdentity applies profile to the configuration file, creating it when missing.
func (manager *FileIdentityManager) WriteIdentity(executionContext context.Context, profile profiles.Profile) error {
	if ensureError := manager.ensureConfigurationFile(); ensureError != nil {
		return ensureError
	}

	configuration, loadError := gitconfigfile.LoadConfig(manager.configurationPath)
	if loadError != nil {
		return fmt.Errorf(configurationFileLoadErrorTemplateConstant, manager.configurationPath, loadError)
	}

	plannedSettings := PlanSettings(profile)
	encodedValues := make([]string, len(plannedSettings))
	for settingIndex, setting := range plannedSettings {
		encodedValue, encodeError := encodeSettingValue(setting)
		if encodeError != nil {
			return encodeError
		}
		encodedValues[settingIndex] = encodedValue
	}

	for settingIndex, setting := range plannedSettings {
		if setError := configuration.Set(canonicalSettingKey(setting.Key), encodedValues[settingIndex]); setError != nil {
			return fmt.Errorf(settingWriteErrorTemplateConstant, setting.Key, setError)
		}
		manager.logger.Debug(settingAppliedLogMessageConstant, zap.String(settingKeyLogFieldConstant, setting.Key))
	}
	return nil
}

func (manager *FileIdentityManager) ensureConfigurationFile() error {
	_, statError := manager.fileSystem.Stat(manager.configurationPath)
	if statError == nil {
		return nil
	}
	if !errors.Is(statError, fs.ErrNotExist) {
		return fmt.Errorf(configurationFileCreateErrorTemplateConstant, manager.configurationPath, statError)
	}
	if mkdirError := manager.fileSystem.MkdirAll(filepath.Dir(manager.configurationPath), configurationDirectoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(configurationFileCreateErrorTemplateConstant, manager.configurationPath, mkdirError)
	}
	if writeError := manager.fileSystem.WriteFile(manager.configurationPath, nil, configurationFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(configurationFileCreateErrorTemplateConstant, manager.configurationPath, writeError)
	}
	return nil
}

// encodeSettingValue quotes and escapes values the parser would otherwise cut at a comment character or
// read as a line continuation, then checks that the parser returns the original value.
func encodeSettingValue(setting Setting) (string, error) {
	encodedValue := setting.Value
	if strings.ContainsAny(encodedValue, quotedValueCharactersConstant) || strings.TrimSpace(encodedValue) != encodedValue {
		encodedValue = valueQuoteConstant + settingValueEscaper.Replace(encodedValue) + valueQuoteConstant
	}

	parsedDocument := gitconfigfile.ParseConfig(strings.NewReader(fmt.Sprintf(valueCheckDocumentTemplateConstant, encodedValue)))
	if parsedValue, found := parsedDocument.Get(valueCheckKeyConstant); !found || parsedValue != setting.Value {
		return "", UnrepresentableValueError{Key: setting.Key, Value: setting.Value}
	}
	return encodedValue, nil
}

// canonicalSettingKey lowercases the section and variable name while preserving the subsection,
// matching the key form the configuration parser indexes values under.
func canonicalSettingKey(key string) string {
	firstSeparatorIndex := strings.Index(key, keySeparatorConstant)
	lastSeparatorIndex := strings.LastIndex(key, keySeparatorConstant)
	if firstSeparatorIndex <= 0 || lastSeparatorIndex == len(key)-1 {
		return key
	}
	section := strings.ToLower(key[:firstSeparatorIndex])
	variableName := strings.ToLower(key[lastSeparatorIndex+1:])
	if firstSeparatorIndex == lastSeparatorIndex {
		return section + keySeparatorConstant + variableName
	}
	return section + key[firstSeparatorIndex:lastSeparatorIndex+1] + variableName
}
