package hooks

import (
	"fmt"
	"strings"
)

const (
	// MarkerStart opens the managed block.
	MarkerStart = "# >>> gamm"
	// MarkerEnd closes the managed block.
	MarkerEnd = "# <<< gamm"
	// DefaultRemoteName is the remote whose URL identifies the repository.
	DefaultRemoteName = "origin"
	// DefaultExecutable is the command invoked by the hook.
	DefaultExecutable = "gamm"
	// HookFileName is the git hook gamm manages.
	HookFileName = "pre-commit"

	blockTemplateConstant = MarkerStart + `

REMOTE_URL=$(git remote get-url %s 2>/dev/null || true)
[ -z "$REMOTE_URL" ] && exit 0

echo "gamm: checking ..."
%s pre-commit --repo "$REMOTE_URL"
` + MarkerEnd

	scriptHeaderConstant           = "#!/bin/sh\nset -e\n\n"
	shebangPrefixConstant          = "#!"
	setErrexitPrefixConstant       = "set -e"
	lineBreakConstant              = "\n"
	sectionSeparatorConstant       = "\n\n"
	trailingWhitespaceConstant     = " \t\r\n"
	shellSpecialCharactersConstant = " \t\n'\"$`\\;&|<>()*?[]#~"
	singleQuoteConstant            = "'"
	escapedSingleQuoteConstant     = `'\''`
)

// RenderBlock returns the managed block for the given remote and executable.
// Empty values fall back to DefaultRemoteName and DefaultExecutable.
func RenderBlock(remoteName string, executable string) string {
	if len(strings.TrimSpace(remoteName)) == 0 {
		remoteName = DefaultRemoteName
	}
	if len(strings.TrimSpace(executable)) == 0 {
		executable = DefaultExecutable
	}
	return fmt.Sprintf(blockTemplateConstant, quoteShellWord(remoteName), quoteShellWord(executable))
}

// NewHookScript returns the content of a hook file that only holds the block.
func NewHookScript(block string) string {
	return scriptHeaderConstant + block + lineBreakConstant
}

// AppendBlock appends the block to existing hook content after a blank line.
func AppendBlock(existingContent string, block string) string {
	return strings.TrimRight(existingContent, trailingWhitespaceConstant) + sectionSeparatorConstant + block + lineBreakConstant
}

// ContainsBlock reports whether content holds the start marker.
func ContainsBlock(content string) bool {
	return strings.Contains(content, MarkerStart)
}

// StripBlock removes every line between the markers, inclusive, and trailing whitespace.
func StripBlock(content string) string {
	var remainingLines []string
	insideBlock := false
	for _, line := range strings.Split(content, lineBreakConstant) {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == MarkerStart {
			insideBlock = true
			continue
		}
		if trimmedLine == MarkerEnd {
			insideBlock = false
			continue
		}
		if !insideBlock {
			remainingLines = append(remainingLines, line)
		}
	}
	return strings.TrimRight(strings.Join(remainingLines, lineBreakConstant), trailingWhitespaceConstant)
}

// IsBoilerplate reports whether content holds nothing beyond blank lines, a shebang, or set -e.
func IsBoilerplate(content string) bool {
	for _, line := range strings.Split(content, lineBreakConstant) {
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		if strings.HasPrefix(line, shebangPrefixConstant) || strings.HasPrefix(line, setErrexitPrefixConstant) {
			continue
		}
		return false
	}
	return true
}

func quoteShellWord(word string) string {
	if !strings.ContainsAny(word, shellSpecialCharactersConstant) {
		return word
	}
	return singleQuoteConstant + strings.ReplaceAll(word, singleQuoteConstant, escapedSingleQuoteConstant) + singleQuoteConstant
}
