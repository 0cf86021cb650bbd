package profiles

import (
	"fmt"
	"strings"
)

const (
	profileSummaryTemplateConstant = "%s <%s>"
)

// UserConfiguration holds the identity applied to user.name and user.email.
type UserConfiguration struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Signoff *string `json:"signoff,omitempty"`
}

// URLRewrite maps to a url.<Pattern>.insteadOf = <InsteadOf> git setting.
type URLRewrite struct {
	Pattern   string `json:"pattern"`
	InsteadOf string `json:"instead_of"`
}

// CommitConfiguration holds commit related settings.
type CommitConfiguration struct {
	GPGSign bool `json:"gpgsign"`
}

// Profile is a named identity applied to repositories it owns.
type Profile struct {
	User        UserConfiguration   `json:"user"`
	URLRewrites []URLRewrite        `json:"urls"`
	Commit      CommitConfiguration `json:"commit"`
}

// Summary renders the identity as "name <email>".
func (profile Profile) Summary() string {
	return fmt.Sprintf(profileSummaryTemplateConstant, profile.User.Name, profile.User.Email)
}

// NamedProfile pairs a profile with its store key.
type NamedProfile struct {
	Name    string
	Profile Profile
}

// NormalizeName trims surrounding whitespace from a profile name.
func NormalizeName(rawName string) string {
	return strings.TrimSpace(rawName)
}
