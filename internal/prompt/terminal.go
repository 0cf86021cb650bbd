package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/term"
)

const (
	unixTerminalPathConstant          = "/dev/tty"
	windowsTerminalPathConstant       = "CON"
	windowsOperatingSystemConstant    = "windows"
	terminalOpenErrorTemplateConstant = "cannot open %s for interactive input: %w"
)

// ErrNoInteractiveTerminal indicates that no terminal is available for prompting.
var ErrNoInteractiveTerminal = errors.New("no interactive terminal available")

// TerminalSession is an InputProvider bound to a terminal, plus the resources to release afterwards.
type TerminalSession struct {
	InputProvider
	closer io.Closer
}

// Close releases the terminal handle when one was opened.
func (session *TerminalSession) Close() error {
	if session == nil || session.closer == nil {
		return nil
	}
	return session.closer.Close()
}

// OpenTerminal returns a provider reading from standard input when it is a terminal,
// and from the controlling terminal device otherwise. Questions are written to output.
func OpenTerminal(output io.Writer) (*TerminalSession, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return &TerminalSession{InputProvider: NewIOInputProvider(os.Stdin, output)}, nil
	}

	terminalPath := unixTerminalPathConstant
	if runtime.GOOS == windowsOperatingSystemConstant {
		terminalPath = windowsTerminalPathConstant
	}

	terminal, openError := os.Open(terminalPath)
	if openError != nil {
		return nil, fmt.Errorf(terminalOpenErrorTemplateConstant, terminalPath, errors.Join(ErrNoInteractiveTerminal, openError))
	}
	if !term.IsTerminal(int(terminal.Fd())) {
		_ = terminal.Close()
		return nil, ErrNoInteractiveTerminal
	}

	return &TerminalSession{InputProvider: NewIOInputProvider(terminal, output), closer: terminal}, nil
}

// TerminalOpener opens an interactive session.
type TerminalOpener func(output io.Writer) (*TerminalSession, error)

// DeferredTerminal opens the terminal on the first question so that runs
// which never prompt do not require one.
type DeferredTerminal struct {
	output  io.Writer
	opener  TerminalOpener
	session *TerminalSession
}

// NewDeferredTerminal constructs a DeferredTerminal. A nil opener defaults to OpenTerminal.
func NewDeferredTerminal(output io.Writer, opener TerminalOpener) *DeferredTerminal {
	if opener == nil {
		opener = OpenTerminal
	}
	return &DeferredTerminal{output: output, opener: opener}
}

// Confirm implements InputProvider.
func (deferred *DeferredTerminal) Confirm(message string, defaultValue bool) (bool, error) {
	session, openError := deferred.ensureSession()
	if openError != nil {
		return false, openError
	}
	return session.Confirm(message, defaultValue)
}

// Input implements InputProvider.
func (deferred *DeferredTerminal) Input(message string, defaultValue string) (string, error) {
	session, openError := deferred.ensureSession()
	if openError != nil {
		return "", openError
	}
	return session.Input(message, defaultValue)
}

// Select implements InputProvider.
func (deferred *DeferredTerminal) Select(message string, options []string) (int, error) {
	session, openError := deferred.ensureSession()
	if openError != nil {
		return 0, openError
	}
	return session.Select(message, options)
}

// Close releases the session if one was opened.
func (deferred *DeferredTerminal) Close() error {
	if deferred.session == nil {
		return nil
	}
	closeError := deferred.session.Close()
	deferred.session = nil
	return closeError
}

func (deferred *DeferredTerminal) ensureSession() (*TerminalSession, error) {
	if deferred.session != nil {
		return deferred.session, nil
	}
	session, openError := deferred.opener(deferred.output)
	if openError != nil {
		return nil, openError
	}
	deferred.session = session
	return session, nil
}
