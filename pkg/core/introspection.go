package core

import (
	"github.com/aretw0/introspection"
)

// EditorState exposes internal state for observability.
type EditorState struct {
	ActivityEvents int    `json:"activity_events"`
	DocumentStore  string `json:"document_store"`
	BackupStore    string `json:"backup_store"`
}

// State implements introspection.Introspectable.
func (e *Editor) State() any {
	docType := "store"
	if comp, ok := e.doc.(introspection.Component); ok {
		docType = comp.ComponentType()
	}
	bakType := "store"
	if comp, ok := e.backups.(introspection.Component); ok {
		bakType = comp.ComponentType()
	}

	return EditorState{
		ActivityEvents: e.activity.Len(),
		DocumentStore:  docType,
		BackupStore:    bakType,
	}
}

// ComponentType implements introspection.Component.
func (e *Editor) ComponentType() string {
	return "editor"
}

var _ introspection.Introspectable = (*Editor)(nil)
var _ introspection.Component = (*Editor)(nil)
