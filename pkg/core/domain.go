// Document is the central entity of the domain.
package core

import "time"

// Document represents the single managed YAML file.
// It carries the raw on-disk bytes, never a decoded structure: the editor
// compares and stores content byte-for-byte.
type Document struct {
	Path    string
	Content []byte
	ModTime time.Time
}

// DocumentInfo describes the live document without loading its content.
type DocumentInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// BackupEntry is an immutable snapshot of the document's prior content.
// Name doubles as the entry's identifier; it is always a bare filename
// inside the backup directory, never a path.
type BackupEntry struct {
	Name      string    `json:"filename"`
	Timestamp time.Time `json:"modified"`
	Size      int64     `json:"size"`
}

// Status classifies the outcome of a save or restore request.
type Status string

const (
	// StatusSaved means the document was replaced on disk and a backup of
	// the prior content exists (unless there was no prior content).
	StatusSaved Status = "saved"
	// StatusUnchanged means the submitted content was byte-identical to
	// the live document. Nothing was written, no backup was created.
	StatusUnchanged Status = "unchanged"
	// StatusRejected means validation failed before any mutation.
	StatusRejected Status = "rejected"
	// StatusFailed means an IO error aborted the pipeline.
	StatusFailed Status = "failed"
)

// Outcome is the structured result of a save or restore request.
// Err is populated for StatusRejected and StatusFailed. Backup holds the
// name of the snapshot taken for StatusSaved; it is empty when the document
// did not exist before the write.
type Outcome struct {
	Status  Status
	Backup  string
	Message string
	Err     error
}

// Health reports the cheap liveness probes the boundary layer exposes.
type Health struct {
	DocumentReachable bool `json:"document_reachable"`
	BackupDirWritable bool `json:"backup_dir_writable"`
}

// ValidationResult is the transient product of one validation call.
type ValidationResult struct {
	Valid   bool
	Detail  string // parser diagnostic, verbatim, with line/column when the parser provides it
	Warning string // non-fatal note (e.g. empty document)
}

// EventType represents the type of an out-of-band document change.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventRemove EventType = "REMOVE"
)

// Event represents a change to the live document made outside the editor.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return string(e.Type) + " " + e.Path
}
