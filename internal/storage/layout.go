package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirectoryName is the folder created under the user configuration directory.
	DefaultDirectoryName = "gamm"
	// DefaultProfilesFileName stores the profile documents.
	DefaultProfilesFileName = "config.json"
	// DefaultRepositoriesFileName stores the repository ownership documents.
	DefaultRepositoriesFileName = "repos.json"

	homeDirectorySymbolConstant          = "~"
	homeDirectoryPrefixConstant          = "~/"
	removeDirectoryErrorTemplateConstant = "failed to remove directory %s: %w"
	readDirectoryErrorTemplateConstant   = "failed to inspect directory %s: %w"
)

// HomeDirectoryProvider resolves the current user's home directory.
type HomeDirectoryProvider func() (string, error)

// ConfigurationDirectoryProvider resolves the base user configuration directory.
type ConfigurationDirectoryProvider func() (string, error)

// Layout describes where the profile and repository documents live.
type Layout struct {
	Directory            string
	ProfilesFileName     string
	RepositoriesFileName string
}

// LayoutResolver turns configured values into absolute document locations.
type LayoutResolver struct {
	HomeDirectoryProvider          HomeDirectoryProvider
	ConfigurationDirectoryProvider ConfigurationDirectoryProvider
}

// NewLayoutResolver constructs a resolver using the operating system lookups.
func NewLayoutResolver() LayoutResolver {
	return LayoutResolver{
		HomeDirectoryProvider:          os.UserHomeDir,
		ConfigurationDirectoryProvider: os.UserConfigDir,
	}
}

// Resolve fills in defaults and expands a leading tilde in the directory.
func (resolver LayoutResolver) Resolve(directory string, profilesFileName string, repositoriesFileName string) (Layout, error) {
	resolvedDirectory := strings.TrimSpace(directory)
	if len(resolvedDirectory) == 0 {
		configurationDirectoryProvider := resolver.ConfigurationDirectoryProvider
		if configurationDirectoryProvider == nil {
			configurationDirectoryProvider = os.UserConfigDir
		}
		baseDirectory, baseDirectoryError := configurationDirectoryProvider()
		if baseDirectoryError != nil || len(baseDirectory) == 0 {
			return Layout{}, errors.Join(ErrConfigurationDirectoryUnavailable, baseDirectoryError)
		}
		resolvedDirectory = filepath.Join(baseDirectory, DefaultDirectoryName)
	} else {
		resolvedDirectory = resolver.ExpandHomeDirectory(resolvedDirectory)
	}

	resolvedProfilesFileName := strings.TrimSpace(profilesFileName)
	if len(resolvedProfilesFileName) == 0 {
		resolvedProfilesFileName = DefaultProfilesFileName
	}
	resolvedRepositoriesFileName := strings.TrimSpace(repositoriesFileName)
	if len(resolvedRepositoriesFileName) == 0 {
		resolvedRepositoriesFileName = DefaultRepositoriesFileName
	}

	return Layout{
		Directory:            resolvedDirectory,
		ProfilesFileName:     resolvedProfilesFileName,
		RepositoriesFileName: resolvedRepositoriesFileName,
	}, nil
}

// ExpandHomeDirectory replaces a leading "~" with the user's home directory.
func (resolver LayoutResolver) ExpandHomeDirectory(candidatePath string) string {
	if candidatePath != homeDirectorySymbolConstant && !strings.HasPrefix(candidatePath, homeDirectoryPrefixConstant) {
		return candidatePath
	}

	homeDirectoryProvider := resolver.HomeDirectoryProvider
	if homeDirectoryProvider == nil {
		homeDirectoryProvider = os.UserHomeDir
	}
	homeDirectory, homeDirectoryError := homeDirectoryProvider()
	if homeDirectoryError != nil || len(homeDirectory) == 0 {
		return candidatePath
	}

	if candidatePath == homeDirectorySymbolConstant {
		return homeDirectory
	}
	return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, homeDirectoryPrefixConstant))
}

// ProfilesPath returns the absolute path of the profile document.
func (layout Layout) ProfilesPath() string {
	return filepath.Join(layout.Directory, layout.ProfilesFileName)
}

// RepositoriesPath returns the absolute path of the repository document.
func (layout Layout) RepositoriesPath() string {
	return filepath.Join(layout.Directory, layout.RepositoriesFileName)
}

// RemoveDirectoryIfEmpty deletes directory when it exists and has no entries. It reports whether the directory was removed.
func RemoveDirectoryIfEmpty(fileSystem FileSystem, directory string) (bool, error) {
	entries, readError := fileSystem.ReadDir(directory)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(readDirectoryErrorTemplateConstant, directory, readError)
	}
	if len(entries) > 0 {
		return false, nil
	}
	if removeError := fileSystem.Remove(directory); removeError != nil {
		return false, fmt.Errorf(removeDirectoryErrorTemplateConstant, directory, removeError)
	}
	return true, nil
}
