package gitrepo

import (
	"fmt"
	"strings"
)

const (
	schemeDelimiterConstant             = "://"
	sshUserDelimiterConstant            = "@"
	sshPathDelimiterConstant            = ":"
	pathSeparatorConstant               = "/"
	gitSuffixConstant                   = ".git"
	remoteURLParseErrorTemplateConstant = "%s: %s"
	requiredValueMessageConstant        = "value required"
	invalidRemoteURLMessageConstant     = "invalid remote url"
	missingPathMessageConstant          = "remote url has no repository path"
)

// RemoteProtocol enumerates the remote URL notations git accepts.
type RemoteProtocol string

// Supported remote notations.
const (
	RemoteProtocolSCP   RemoteProtocol = RemoteProtocol("scp")
	RemoteProtocolURL   RemoteProtocol = RemoteProtocol("url")
	RemoteProtocolLocal RemoteProtocol = RemoteProtocol("local")
)

// RemoteURL represents a structured git remote URL.
type RemoteURL struct {
	Protocol RemoteProtocol
	Scheme   string
	Host     string
	Path     string
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseRemoteURL splits a remote into host and path. It understands
// scheme URLs (https://host/a/b.git), scp-like addresses (git@host:a/b.git)
// and local paths.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	if schemeIndex := strings.Index(trimmedRemote, schemeDelimiterConstant); schemeIndex > 0 {
		scheme := trimmedRemote[:schemeIndex]
		hostAndPath := trimmedRemote[schemeIndex+len(schemeDelimiterConstant):]
		slashIndex := strings.Index(hostAndPath, pathSeparatorConstant)
		if slashIndex == -1 {
			return RemoteURL{}, RemoteURLParseError{Input: remote, Message: missingPathMessageConstant}
		}
		host := hostAndPath[:slashIndex]
		if userIndex := strings.LastIndex(host, sshUserDelimiterConstant); userIndex != -1 {
			host = host[userIndex+1:]
		}
		return buildRemoteURL(remote, RemoteURL{Protocol: RemoteProtocolURL, Scheme: scheme, Host: host, Path: hostAndPath[slashIndex+1:]})
	}

	colonIndex := strings.Index(trimmedRemote, sshPathDelimiterConstant)
	slashIndex := strings.Index(trimmedRemote, pathSeparatorConstant)
	if colonIndex > 0 && (slashIndex == -1 || colonIndex < slashIndex) {
		host := trimmedRemote[:colonIndex]
		if userIndex := strings.LastIndex(host, sshUserDelimiterConstant); userIndex != -1 {
			host = host[userIndex+1:]
		}
		if len(host) == 0 {
			return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
		}
		return buildRemoteURL(remote, RemoteURL{Protocol: RemoteProtocolSCP, Host: host, Path: trimmedRemote[colonIndex+1:]})
	}

	return buildRemoteURL(remote, RemoteURL{Protocol: RemoteProtocolLocal, Path: trimmedRemote})
}

func buildRemoteURL(input string, remote RemoteURL) (RemoteURL, error) {
	remote.Path = strings.Trim(remote.Path, pathSeparatorConstant)
	if len(remote.Path) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: input, Message: missingPathMessageConstant}
	}
	return remote, nil
}

// RepositoryName returns the last path segment without the .git suffix.
func (remote RemoteURL) RepositoryName() string {
	segments := strings.Split(remote.Path, pathSeparatorConstant)
	return strings.TrimSuffix(segments[len(segments)-1], gitSuffixConstant)
}

// DefaultRepositoryName derives the name offered for a newly registered
// repository. Unparseable remotes fall back to the text after the last slash.
func DefaultRepositoryName(remote string) string {
	parsedRemote, parseError := ParseRemoteURL(remote)
	if parseError == nil {
		if repositoryName := parsedRemote.RepositoryName(); len(repositoryName) > 0 {
			return repositoryName
		}
	}

	trimmedRemote := strings.TrimSpace(remote)
	if separatorIndex := strings.LastIndex(trimmedRemote, pathSeparatorConstant); separatorIndex != -1 {
		trimmedRemote = trimmedRemote[separatorIndex+1:]
	}
	return strings.TrimSuffix(trimmedRemote, gitSuffixConstant)
}
