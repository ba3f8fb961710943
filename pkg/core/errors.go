package core

import "errors"

// Common errors.
var (
	// ErrInvalidYAML marks content rejected by the validator.
	ErrInvalidYAML = errors.New("invalid yaml")

	// ErrBackupFailed marks a snapshot failure. The live document is never
	// touched when this is returned.
	ErrBackupFailed = errors.New("backup failed")

	// ErrWriteFailed marks a failed replace of the live document. The
	// snapshot taken beforehand remains valid, so the save is retryable.
	ErrWriteFailed = errors.New("write failed")

	// ErrBackupNotFound is returned when a restore names a snapshot that
	// no longer exists.
	ErrBackupNotFound = errors.New("backup not found")
)
