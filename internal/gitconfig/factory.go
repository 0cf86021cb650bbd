package gitconfig

import (
	"go.uber.org/zap"

	"github.com/temirov/gamm/internal/storage"
)

// ManagerDependencies carries the collaborators needed to build any backend.
type ManagerDependencies struct {
	Executor          GitExecutor
	FileSystem        storage.FileSystem
	ConfigurationPath string
	Logger            *zap.Logger
}

// NewIdentityManager builds the IdentityManager selected by backend.
func NewIdentityManager(backend Backend, dependencies ManagerDependencies) (IdentityManager, error) {
	switch backend {
	case BackendFile:
		fileManager, creationError := NewFileIdentityManager(dependencies.FileSystem, dependencies.ConfigurationPath, dependencies.Logger)
		if creationError != nil {
			return nil, creationError
		}
		return fileManager, nil
	case BackendCommand, "":
		commandManager, creationError := NewCommandIdentityManager(dependencies.Executor, dependencies.Logger)
		if creationError != nil {
			return nil, creationError
		}
		return commandManager, nil
	default:
		return nil, ErrUnsupportedBackend
	}
}
