package core

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
)

// Editor handles the business logic for the managed document: the
// validate -> compare -> snapshot -> replace pipeline, restore, and the
// activity log. All mutating operations serialize through a single lock so
// a snapshot always corresponds to the actual prior live content.
type Editor struct {
	doc       DocumentStore
	backups   BackupStore
	validator Validator
	activity  *ActivityLog
	logger    *slog.Logger

	mu sync.Mutex
	// Digest of the last content committed through this editor. Used to
	// tell our own writes apart from out-of-band ones in Watch.
	lastCommitted [sha256.Size]byte
	hasCommitted  bool
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithActivityCapacity overrides the bounded activity log size.
func WithActivityCapacity(n int) EditorOption {
	return func(e *Editor) {
		e.activity = NewActivityLog(n)
	}
}

// NewEditor creates an Editor over the given stores and validator.
// The logger may be nil.
func NewEditor(doc DocumentStore, backups BackupStore, validator Validator, logger *slog.Logger, opts ...EditorOption) *Editor {
	e := &Editor{
		doc:       doc,
		backups:   backups,
		validator: validator,
		activity:  NewActivityLog(DefaultActivityCapacity),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Save runs the full save pipeline for submitted content.
//
// Workflow:
//  1. Validate. Invalid YAML is rejected before anything is touched.
//  2. Read current content and compare byte-for-byte. Comparison is
//     deliberately not semantic: whitespace-only or comment-only edits
//     still count as changes, so reformatting never silently loses data.
//  3. Identical content is a no-op (StatusUnchanged), no backup created.
//  4. Different content: snapshot the current content first. The live
//     file is never modified unless its backup succeeded.
//  5. Replace the live file atomically.
func (e *Editor) Save(ctx context.Context, content string) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := e.validator.Check(content)
	if !res.Valid {
		e.activity.Record(CategoryError, "save rejected: "+res.Detail)
		return Outcome{
			Status:  StatusRejected,
			Message: "YAML syntax error: " + res.Detail,
			Err:     fmt.Errorf("%w: %s", ErrInvalidYAML, res.Detail),
		}
	}
	if res.Warning != "" && e.logger != nil {
		e.logger.Warn("validator warning", "warning", res.Warning)
	}

	return e.commit(ctx, []byte(content))
}

// Restore re-applies the content of a named backup.
// It re-enters the save pipeline after validation: the backup content was
// validated when it was saved, and restoring snapshots whatever is live
// now, so a restore is itself undoable.
func (e *Editor) Restore(ctx context.Context, name string) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	content, err := e.backups.Read(ctx, name)
	if err != nil {
		e.activity.Record(CategoryError, fmt.Sprintf("restore of %s failed: %v", name, err))
		return Outcome{
			Status:  StatusFailed,
			Message: fmt.Sprintf("cannot restore %s: %v", name, err),
			Err:     err,
		}
	}

	out := e.commit(ctx, content)
	if out.Status == StatusSaved {
		msg := "restored from backup " + name
		if out.Backup != "" {
			msg += ", previous content backed up as " + out.Backup
		}
		e.activity.Record(CategorySuccess, msg)
		out.Message = msg
	}
	return out
}

// commit performs steps 2-6 of the pipeline. Caller must hold e.mu and
// must have validated newContent already (or be replaying a backup).
func (e *Editor) commit(ctx context.Context, newContent []byte) Outcome {
	current, err := e.doc.Read(ctx)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		e.activity.Record(CategoryError, fmt.Sprintf("cannot read document: %v", err))
		return Outcome{
			Status:  StatusFailed,
			Message: fmt.Sprintf("cannot read document: %v", err),
			Err:     err,
		}
	}

	if exists && bytes.Equal(current, newContent) {
		e.activity.Record(CategoryInfo, "no changes detected, skipping save and backup")
		return Outcome{
			Status:  StatusUnchanged,
			Message: "no changes detected - file already up to date",
		}
	}

	// A backup is created iff the write changes existing content.
	var backupName string
	if exists {
		entry, err := e.backups.Snapshot(ctx, current)
		if err != nil {
			e.activity.Record(CategoryError, fmt.Sprintf("backup failed, save aborted: %v", err))
			return Outcome{
				Status:  StatusFailed,
				Message: fmt.Sprintf("backup failed, document untouched: %v", err),
				Err:     fmt.Errorf("%w: %v", ErrBackupFailed, err),
			}
		}
		backupName = entry.Name
		if e.logger != nil {
			e.logger.Debug("snapshot created", "name", entry.Name, "size", entry.Size)
		}
	}

	if err := e.doc.Replace(ctx, newContent); err != nil {
		// The snapshot already taken remains valid; retry is safe.
		e.activity.Record(CategoryError, fmt.Sprintf("write failed after backup %s: %v", backupName, err))
		return Outcome{
			Status:  StatusFailed,
			Message: fmt.Sprintf("error saving file: %v", err),
			Err:     fmt.Errorf("%w: %v", ErrWriteFailed, err),
		}
	}

	e.lastCommitted = sha256.Sum256(newContent)
	e.hasCommitted = true

	msg := "file saved successfully"
	if backupName != "" {
		msg += ", backup created: " + backupName
	}
	e.activity.Record(CategorySuccess, msg)
	if e.logger != nil {
		e.logger.Info("document saved", "bytes", len(newContent), "backup", backupName)
	}

	return Outcome{Status: StatusSaved, Backup: backupName, Message: msg}
}

// Validate checks content without mutating anything.
func (e *Editor) Validate(content string) ValidationResult {
	return e.validator.Check(content)
}

// Current returns the live document. Reads take no lock: the atomic
// replace guarantees a reader sees either the old or the new committed
// content, never a partial write.
func (e *Editor) Current(ctx context.Context) (Document, error) {
	content, err := e.doc.Read(ctx)
	if err != nil {
		return Document{}, err
	}
	info, err := e.doc.Stat(ctx)
	if err != nil {
		return Document{}, err
	}
	return Document{Path: info.Path, Content: content, ModTime: info.ModTime}, nil
}

// Backups lists available snapshots, newest first.
func (e *Editor) Backups(ctx context.Context) ([]BackupEntry, error) {
	return e.backups.List(ctx)
}

// Activity returns up to limit recent events, newest first.
func (e *Editor) Activity(limit int) []ActivityEvent {
	return e.activity.Recent(limit)
}

// Health probes the document and the backup directory.
func (e *Editor) Health(ctx context.Context) Health {
	var h Health
	if _, err := e.doc.Stat(ctx); err == nil {
		h.DocumentReachable = true
	}
	if err := e.backups.Probe(ctx); err == nil {
		h.BackupDirWritable = true
	}
	return h
}

// Watch observes out-of-band changes to the live document if the store
// supports it. Events caused by the editor's own writes are filtered by
// comparing the on-disk content against the last committed digest.
func (e *Editor) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := e.doc.(Watchable)
	if !ok {
		return nil, errors.New("document store does not support watching")
	}

	raw, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-raw:
				if !ok {
					return
				}
				if e.isOwnWrite(ctx, ev) {
					continue
				}
				e.activity.Record(CategoryInfo, "document changed on disk outside the editor")
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (e *Editor) isOwnWrite(ctx context.Context, ev Event) bool {
	if ev.Type != EventModify {
		return false
	}
	e.mu.Lock()
	committed := e.lastCommitted
	has := e.hasCommitted
	e.mu.Unlock()
	if !has {
		return false
	}
	content, err := e.doc.Read(ctx)
	if err != nil {
		return false
	}
	return sha256.Sum256(content) == committed
}
