package hooks

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/gamm/internal/storage"
	"github.com/temirov/gamm/internal/ui"
)

const (
	hookDirectoryPermissionsConstant      = fs.FileMode(0o755)
	hookFilePermissionsConstant           = fs.FileMode(0o755)
	createdDirectoryTemplateConstant      = "Created directory: %s\n"
	alreadyInstalledTemplateConstant      = "gamm hook already installed in: %s\n"
	installedHookTemplateConstant         = "Installed pre-commit hook: %s\n"
	enableHookMessageConstant             = "To enable the hook globally, run:"
	enableHookCommandTemplateConstant     = "git config --global core.hooksPath %s"
	enableHookLineTemplateConstant        = "  %s\n"
	storeLocationTemplateConstant         = "Config storage: %s\n"
	hookNotFoundTemplateConstant          = "No pre-commit hook found at: %s\n"
	blockNotFoundTemplateConstant         = "No gamm config found in: %s\n"
	removedHookTemplateConstant           = "Removed pre-commit hook: %s\n"
	removedEmptyDirectoryTemplateConstant = "Removed empty directory: %s\n"
	removedBlockTemplateConstant          = "Removed gamm config from: %s\n"
	removedDocumentTemplateConstant       = "Removed %s: %s\n"
	profilesDocumentLabelConstant         = "config"
	repositoriesDocumentLabelConstant     = "repos"
	createDirectoryErrorTemplateConstant  = "failed to create hook directory %s: %w"
	readHookErrorTemplateConstant         = "failed to read hook %s: %w"
	writeHookErrorTemplateConstant        = "failed to write hook %s: %w"
	removeHookErrorTemplateConstant       = "failed to remove hook %s: %w"
	hookInstalledLogMessageConstant       = "Installed pre-commit hook"
	hookUninstalledLogMessageConstant     = "Removed gamm block from pre-commit hook"
	hookPathLogFieldConstant              = "hook_path"
)

var (
	// ErrFileSystemNotConfigured indicates a Manager without a file system.
	ErrFileSystemNotConfigured = errors.New("hook manager requires a file system")
	// ErrHookDirectoryNotConfigured indicates a Manager without a hook directory.
	ErrHookDirectoryNotConfigured = errors.New("hook directory not configured")
)

// Dependencies configures a Manager.
type Dependencies struct {
	FileSystem    storage.FileSystem
	HookDirectory string
	RemoteName    string
	Executable    string
	StoreLayout   storage.Layout
	Console       *ui.Console
	Logger        *zap.Logger
}

// InstallResult reports what Install changed.
type InstallResult struct {
	HookPath         string
	CreatedDirectory bool
	CreatedFile      bool
	AlreadyInstalled bool
}

// UninstallResult reports what Uninstall changed.
type UninstallResult struct {
	HookPath              string
	HookFound             bool
	BlockFound            bool
	RemovedHookFile       bool
	RemovedHookDirectory  bool
	RemovedDocuments      []string
	RemovedStoreDirectory bool
}

// Manager installs and removes the gamm block in the shared pre-commit hook.
type Manager struct {
	fileSystem    storage.FileSystem
	hookDirectory string
	block         string
	storeLayout   storage.Layout
	console       *ui.Console
	logger        *zap.Logger
}

// NewManager validates dependencies and constructs a Manager.
func NewManager(dependencies Dependencies) (*Manager, error) {
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if len(dependencies.HookDirectory) == 0 {
		return nil, ErrHookDirectoryNotConfigured
	}

	console := dependencies.Console
	if console == nil {
		console = ui.NewConsole(nil, nil)
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		fileSystem:    dependencies.FileSystem,
		hookDirectory: dependencies.HookDirectory,
		block:         RenderBlock(dependencies.RemoteName, dependencies.Executable),
		storeLayout:   dependencies.StoreLayout,
		console:       console,
		logger:        logger,
	}, nil
}

// HookPath returns the location of the managed hook file.
func (manager *Manager) HookPath() string {
	return filepath.Join(manager.hookDirectory, HookFileName)
}

// Install adds the block to the hook, creating the directory and file when needed.
func (manager *Manager) Install() (InstallResult, error) {
	hookPath := manager.HookPath()
	result := InstallResult{HookPath: hookPath}

	if _, statError := manager.fileSystem.Stat(manager.hookDirectory); statError != nil {
		if !errors.Is(statError, fs.ErrNotExist) {
			return result, fmt.Errorf(createDirectoryErrorTemplateConstant, manager.hookDirectory, statError)
		}
		if mkdirError := manager.fileSystem.MkdirAll(manager.hookDirectory, hookDirectoryPermissionsConstant); mkdirError != nil {
			return result, fmt.Errorf(createDirectoryErrorTemplateConstant, manager.hookDirectory, mkdirError)
		}
		result.CreatedDirectory = true
		manager.console.Printf(createdDirectoryTemplateConstant, ui.Path.Sprint(manager.hookDirectory))
	}

	existingContent, exists, readError := manager.readHook(hookPath)
	if readError != nil {
		return result, readError
	}

	var hookContent string
	if exists {
		if ContainsBlock(existingContent) {
			result.AlreadyInstalled = true
			manager.console.Printf(alreadyInstalledTemplateConstant, ui.Path.Sprint(hookPath))
			return result, nil
		}
		hookContent = AppendBlock(existingContent, manager.block)
	} else {
		hookContent = NewHookScript(manager.block)
		result.CreatedFile = true
	}

	if writeError := manager.fileSystem.WriteFile(hookPath, []byte(hookContent), hookFilePermissionsConstant); writeError != nil {
		return result, fmt.Errorf(writeHookErrorTemplateConstant, hookPath, writeError)
	}
	if chmodError := manager.fileSystem.Chmod(hookPath, hookFilePermissionsConstant); chmodError != nil {
		return result, fmt.Errorf(writeHookErrorTemplateConstant, hookPath, chmodError)
	}
	manager.logger.Info(hookInstalledLogMessageConstant, zap.String(hookPathLogFieldConstant, hookPath))

	manager.console.Printf(installedHookTemplateConstant, ui.Path.Sprint(hookPath))
	manager.console.BlankLine()
	manager.console.Println(enableHookMessageConstant)
	manager.console.Printf(enableHookLineTemplateConstant, ui.Code.Sprintf(enableHookCommandTemplateConstant, manager.hookDirectory))
	if len(manager.storeLayout.Directory) > 0 {
		manager.console.BlankLine()
		manager.console.Printf(storeLocationTemplateConstant, ui.Path.Sprint(manager.storeLayout.Directory))
	}
	return result, nil
}

// Uninstall removes the block from the hook and deletes the stores.
// Nothing is removed when the hook or the block is absent.
func (manager *Manager) Uninstall() (UninstallResult, error) {
	hookPath := manager.HookPath()
	result := UninstallResult{HookPath: hookPath}

	existingContent, exists, readError := manager.readHook(hookPath)
	if readError != nil {
		return result, readError
	}
	if !exists {
		manager.console.Printf(hookNotFoundTemplateConstant, ui.Path.Sprint(hookPath))
		return result, nil
	}
	result.HookFound = true

	if !ContainsBlock(existingContent) {
		manager.console.Printf(blockNotFoundTemplateConstant, ui.Path.Sprint(hookPath))
		return result, nil
	}
	result.BlockFound = true

	remainingContent := StripBlock(existingContent)
	if IsBoilerplate(remainingContent) {
		if removeError := manager.fileSystem.Remove(hookPath); removeError != nil {
			return result, fmt.Errorf(removeHookErrorTemplateConstant, hookPath, removeError)
		}
		result.RemovedHookFile = true
		manager.console.Printf(removedHookTemplateConstant, ui.Path.Sprint(hookPath))

		removedDirectory, directoryError := storage.RemoveDirectoryIfEmpty(manager.fileSystem, manager.hookDirectory)
		if directoryError != nil {
			return result, directoryError
		}
		if removedDirectory {
			result.RemovedHookDirectory = true
			manager.console.Printf(removedEmptyDirectoryTemplateConstant, ui.Path.Sprint(manager.hookDirectory))
		}
	} else {
		if writeError := manager.fileSystem.WriteFile(hookPath, []byte(remainingContent+lineBreakConstant), hookFilePermissionsConstant); writeError != nil {
			return result, fmt.Errorf(writeHookErrorTemplateConstant, hookPath, writeError)
		}
		manager.console.Printf(removedBlockTemplateConstant, ui.Path.Sprint(hookPath))
	}
	manager.logger.Info(hookUninstalledLogMessageConstant, zap.String(hookPathLogFieldConstant, hookPath))

	if removeError := manager.removeStores(&result); removeError != nil {
		return result, removeError
	}
	return result, nil
}

func (manager *Manager) removeStores(result *UninstallResult) error {
	if len(manager.storeLayout.Directory) == 0 {
		return nil
	}

	documentPaths := []struct {
		label string
		path  string
	}{
		{label: profilesDocumentLabelConstant, path: manager.storeLayout.ProfilesPath()},
		{label: repositoriesDocumentLabelConstant, path: manager.storeLayout.RepositoriesPath()},
	}

	for _, documentPath := range documentPaths {
		document, documentError := storage.NewDocument(manager.fileSystem, documentPath.path)
		if documentError != nil {
			return documentError
		}
		removed, removeError := document.Remove()
		if removeError != nil {
			return removeError
		}
		if removed {
			result.RemovedDocuments = append(result.RemovedDocuments, documentPath.path)
			manager.console.Printf(removedDocumentTemplateConstant, documentPath.label, ui.Path.Sprint(documentPath.path))
		}
	}

	removedDirectory, directoryError := storage.RemoveDirectoryIfEmpty(manager.fileSystem, manager.storeLayout.Directory)
	if directoryError != nil {
		return directoryError
	}
	if removedDirectory {
		result.RemovedStoreDirectory = true
		manager.console.Printf(removedEmptyDirectoryTemplateConstant, ui.Path.Sprint(manager.storeLayout.Directory))
	}
	return nil
}

func (manager *Manager) readHook(hookPath string) (string, bool, error) {
	content, readError := manager.fileSystem.ReadFile(hookPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf(readHookErrorTemplateConstant, hookPath, readError)
	}
	return string(content), true, nil
}
