package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

const (
	documentIndentConstant                 = "  "
	documentPrefixConstant                 = ""
	documentTrailingNewlineConstant        = '\n'
	documentDirectoryPermissionsConstant   = fs.FileMode(0o755)
	documentFilePermissionsConstant        = fs.FileMode(0o644)
	documentReadErrorTemplateConstant      = "failed to read %s: %w"
	documentEncodeErrorTemplateConstant    = "failed to encode %s: %w"
	documentDirectoryErrorTemplateConstant = "failed to create directory %s: %w"
	documentWriteErrorTemplateConstant     = "failed to write %s: %w"
	documentRemoveErrorTemplateConstant    = "failed to remove %s: %w"
)

// Document reads and writes one JSON file.
type Document struct {
	fileSystem FileSystem
	path       string
}

// NewDocument constructs a Document bound to a path.
func NewDocument(fileSystem FileSystem, path string) (*Document, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if len(path) == 0 {
		return nil, ErrDocumentPathNotConfigured
	}
	return &Document{fileSystem: fileSystem, path: path}, nil
}

// Path returns the location of the document.
func (document *Document) Path() string {
	return document.path
}

// Load decodes the document into target. A missing file leaves target untouched and reports false.
func (document *Document) Load(target any) (bool, error) {
	contents, readError := document.fileSystem.ReadFile(document.path)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(documentReadErrorTemplateConstant, document.path, readError)
	}

	if decodeError := json.Unmarshal(contents, target); decodeError != nil {
		return false, &DataFormatError{Path: document.path, Cause: decodeError}
	}
	return true, nil
}

// Save overwrites the document with the pretty-printed encoding of value, creating the parent directory when needed.
func (document *Document) Save(value any) error {
	encoded, encodeError := json.MarshalIndent(value, documentPrefixConstant, documentIndentConstant)
	if encodeError != nil {
		return fmt.Errorf(documentEncodeErrorTemplateConstant, document.path, encodeError)
	}
	encoded = append(encoded, documentTrailingNewlineConstant)

	parentDirectory := filepath.Dir(document.path)
	if mkdirError := document.fileSystem.MkdirAll(parentDirectory, documentDirectoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(documentDirectoryErrorTemplateConstant, parentDirectory, mkdirError)
	}

	if writeError := document.fileSystem.WriteFile(document.path, encoded, documentFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(documentWriteErrorTemplateConstant, document.path, writeError)
	}
	return nil
}

// Remove deletes the document. It reports false when the file did not exist.
func (document *Document) Remove() (bool, error) {
	removeError := document.fileSystem.Remove(document.path)
	if removeError == nil {
		return true, nil
	}
	if errors.Is(removeError, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf(documentRemoveErrorTemplateConstant, document.path, removeError)
}
