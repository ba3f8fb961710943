package core

import "context"

// DocumentStore defines the contract for the live document file.
// Adhering to this interface keeps the editor independent of the underlying
// storage mechanism (filesystem today, anything byte-addressable tomorrow).
type DocumentStore interface {
	// Read returns the current raw content. It reports fs.ErrNotExist
	// (wrapped) when the document has never been written.
	Read(ctx context.Context) ([]byte, error)

	// Stat describes the document without loading it.
	Stat(ctx context.Context) (DocumentInfo, error)

	// Replace swaps the document content atomically. A crash mid-write
	// must never leave a truncated file behind.
	Replace(ctx context.Context, content []byte) error

	// Initialize ensures the underlying storage is ready (directories
	// exist, seed content written when configured).
	Initialize(ctx context.Context) error
}

// BackupStore defines the contract for timestamped snapshots of the
// document's prior content.
type BackupStore interface {
	// Snapshot persists content as a new immutable entry and returns it.
	Snapshot(ctx context.Context, content []byte) (BackupEntry, error)

	// List returns all recognizable entries, newest first. Files in the
	// backup directory that do not match the naming scheme are ignored.
	List(ctx context.Context) ([]BackupEntry, error)

	// Read returns the raw content of the named entry. The name is
	// resolved only against entries actually present, never against
	// arbitrary paths. Returns ErrBackupNotFound when the entry is gone.
	Read(ctx context.Context, name string) ([]byte, error)

	// Probe checks that the backup directory is writable.
	Probe(ctx context.Context) error

	// Initialize ensures the backup directory is ready.
	Initialize(ctx context.Context) error
}

// Validator classifies submitted text as valid or invalid YAML.
// Implementations must be pure: no side effects, no state.
type Validator interface {
	Check(content string) ValidationResult
}

// Watchable defines an interface for document stores that can report
// out-of-band changes to the live file.
type Watchable interface {
	// Watch emits an Event whenever the document changes on disk.
	Watch(ctx context.Context) (<-chan Event, error)
}
