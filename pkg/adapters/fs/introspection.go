package fs

import (
	"github.com/aretw0/introspection"
)

// DocumentState exposes internal state for observability.
type DocumentState struct {
	Path          string `json:"path"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *DocumentStore) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return DocumentState{
		Path:          s.Path,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *DocumentStore) ComponentType() string {
	return "document-store"
}

var _ introspection.Introspectable = (*DocumentStore)(nil)
var _ introspection.Component = (*DocumentStore)(nil)

// BackupState exposes internal state for observability.
type BackupState struct {
	Dir      string `json:"dir"`
	Basename string `json:"basename"`
}

// State implements introspection.Introspectable.
func (s *BackupStore) State() any {
	return BackupState{
		Dir:      s.Dir,
		Basename: s.config.Basename,
	}
}

// ComponentType implements introspection.Component.
func (s *BackupStore) ComponentType() string {
	return "backup-store"
}

var _ introspection.Introspectable = (*BackupStore)(nil)
var _ introspection.Component = (*BackupStore)(nil)
