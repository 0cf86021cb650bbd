package gitconfig

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/gamm/internal/profiles"
)

const (
	// UserNameKey is the git setting holding the committer name.
	UserNameKey = "user.name"
	// UserEmailKey is the git setting holding the committer email.
	UserEmailKey = "user.email"
	// CommitGPGSignKey is the git setting toggling commit signing.
	CommitGPGSignKey = "commit.gpgsign"

	urlRewriteKeyTemplateConstant      = "url.%s.insteadOf"
	unsupportedBackendTemplateConstant = "%w: %q"
	settingWriteErrorTemplateConstant  = "failed to set %s: %w"
	settingReadErrorTemplateConstant   = "failed to read %s: %w"
)

// Backend selects the IdentityManager implementation.
type Backend string

// Supported backends.
const (
	BackendCommand Backend = Backend("exec")
	BackendFile    Backend = Backend("file")
)

// ErrUnsupportedBackend indicates an unknown backend name.
var ErrUnsupportedBackend = errors.New("unsupported git backend")

// Identity is the committer identity currently configured globally. Unset values are empty.
type Identity struct {
	Name  string
	Email string
}

// Matches reports whether the identity equals the profile user exactly. Empty values never match.
func (identity Identity) Matches(user profiles.UserConfiguration) bool {
	if len(identity.Name) == 0 || len(identity.Email) == 0 {
		return false
	}
	return identity.Name == user.Name && identity.Email == user.Email
}

// IdentityManager reads the current global identity and applies profiles.
type IdentityManager interface {
	ReadIdentity(executionContext context.Context) (Identity, error)
	WriteIdentity(executionContext context.Context, profile profiles.Profile) error
}

// Setting is a single key/value pair written to the global configuration.
type Setting struct {
	Key   string
	Value string
}

// PlanSettings lists the settings applied for profile in write order: name, email, signing, then URL rewrites.
// Empty name or email values are omitted so an incomplete profile never clears an existing identity.
func PlanSettings(profile profiles.Profile) []Setting {
	plannedSettings := make([]Setting, 0, 3+len(profile.URLRewrites))
	if len(profile.User.Name) > 0 {
		plannedSettings = append(plannedSettings, Setting{Key: UserNameKey, Value: profile.User.Name})
	}
	if len(profile.User.Email) > 0 {
		plannedSettings = append(plannedSettings, Setting{Key: UserEmailKey, Value: profile.User.Email})
	}
	plannedSettings = append(plannedSettings, Setting{Key: CommitGPGSignKey, Value: strconv.FormatBool(profile.Commit.GPGSign)})
	for _, rewrite := range profile.URLRewrites {
		plannedSettings = append(plannedSettings, Setting{
			Key:   URLRewriteKey(rewrite.Pattern),
			Value: rewrite.InsteadOf,
		})
	}
	return plannedSettings
}

// URLRewriteKey builds the url.<pattern>.insteadOf key.
func URLRewriteKey(pattern string) string {
	return fmt.Sprintf(urlRewriteKeyTemplateConstant, pattern)
}

// ParseBackend validates a configured backend name.
func ParseBackend(rawBackend string) (Backend, error) {
	backend := Backend(strings.ToLower(strings.TrimSpace(rawBackend)))
	switch backend {
	case BackendCommand, BackendFile:
		return backend, nil
	case "":
		return BackendCommand, nil
	default:
		return "", fmt.Errorf(unsupportedBackendTemplateConstant, ErrUnsupportedBackend, rawBackend)
	}
}
