package cli

import (
	"errors"

	"go.uber.org/zap"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

var errRuntimeProviderNotConfigured = errors.New("runtime provider not configured")

func resolveLogger(loggerProvider LoggerProvider) *zap.Logger {
	if loggerProvider == nil {
		return zap.NewNop()
	}
	logger := loggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// withRuntime opens a runtime, runs action, and closes the runtime afterwards.
func withRuntime(runtimeProvider RuntimeProvider, action func(*CommandRuntime) error) (actionError error) {
	if runtimeProvider == nil {
		return errRuntimeProviderNotConfigured
	}
	commandRuntime, openError := runtimeProvider()
	if openError != nil {
		return openError
	}
	defer func() {
		actionError = errors.Join(actionError, commandRuntime.Close())
	}()
	return action(commandRuntime)
}
