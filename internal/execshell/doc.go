// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging and lifecycle
// notifications, OSCommandRunner performs the actual process execution, and
// CommandMessageFormatter renders the git config invocations gamm issues as
// short human-readable sentences.
package execshell
