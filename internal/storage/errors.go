package storage

import (
	"errors"
	"fmt"
)

const (
	dataFormatErrorTemplateConstant = "malformed data in %s: %v"
)

var (
	// ErrConfigurationDirectoryUnavailable indicates that no user configuration directory could be resolved.
	ErrConfigurationDirectoryUnavailable = errors.New("could not determine the user configuration directory")
	// ErrFileSystemNotConfigured indicates that a document was created without a filesystem.
	ErrFileSystemNotConfigured = errors.New("storage document requires a filesystem")
	// ErrDocumentPathNotConfigured indicates that a document was created without a path.
	ErrDocumentPathNotConfigured = errors.New("storage document requires a path")
)

// DataFormatError reports persisted content that cannot be decoded.
type DataFormatError struct {
	Path  string
	Cause error
}

// Error describes the malformed document.
func (formatError *DataFormatError) Error() string {
	return fmt.Sprintf(dataFormatErrorTemplateConstant, formatError.Path, formatError.Cause)
}

// Unwrap exposes the decoding failure.
func (formatError *DataFormatError) Unwrap() error {
	return formatError.Cause
}
