package core_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/svcedit/svcedit/pkg/core"
	"github.com/svcedit/svcedit/pkg/validate"
)

// MockDocumentStore implements core.DocumentStore in memory.
// Failure injection on Replace lets tests cut the pipeline between the
// backup write and the live-file swap.
type MockDocumentStore struct {
	content    []byte
	exists     bool
	replaceErr error
	readErr    error
}

func (m *MockDocumentStore) Read(ctx context.Context) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if !m.exists {
		return nil, fmt.Errorf("missing: %w", fs.ErrNotExist)
	}
	return append([]byte(nil), m.content...), nil
}

func (m *MockDocumentStore) Stat(ctx context.Context) (core.DocumentInfo, error) {
	if !m.exists {
		return core.DocumentInfo{}, fs.ErrNotExist
	}
	return core.DocumentInfo{Path: "mem", Size: int64(len(m.content)), ModTime: time.Now()}, nil
}

func (m *MockDocumentStore) Replace(ctx context.Context, content []byte) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.content = append([]byte(nil), content...)
	m.exists = true
	return nil
}

func (m *MockDocumentStore) Initialize(ctx context.Context) error { return nil }

// MockBackupStore implements core.BackupStore in memory.
type MockBackupStore struct {
	snaps   map[string][]byte
	order   []string
	snapErr error
}

func NewMockBackupStore() *MockBackupStore {
	return &MockBackupStore{snaps: make(map[string][]byte)}
}

func (m *MockBackupStore) Snapshot(ctx context.Context, content []byte) (core.BackupEntry, error) {
	if m.snapErr != nil {
		return core.BackupEntry{}, m.snapErr
	}
	name := fmt.Sprintf("snap-%03d", len(m.order))
	m.snaps[name] = append([]byte(nil), content...)
	m.order = append(m.order, name)
	return core.BackupEntry{Name: name, Timestamp: time.Now(), Size: int64(len(content))}, nil
}

func (m *MockBackupStore) List(ctx context.Context) ([]core.BackupEntry, error) {
	var entries []core.BackupEntry
	for i := len(m.order) - 1; i >= 0; i-- {
		name := m.order[i]
		entries = append(entries, core.BackupEntry{Name: name, Size: int64(len(m.snaps[name]))})
	}
	return entries, nil
}

func (m *MockBackupStore) Read(ctx context.Context, name string) ([]byte, error) {
	content, ok := m.snaps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrBackupNotFound, name)
	}
	return append([]byte(nil), content...), nil
}

func (m *MockBackupStore) Probe(ctx context.Context) error { return nil }

func (m *MockBackupStore) Initialize(ctx context.Context) error { return nil }

func newEditor(doc *MockDocumentStore, backups *MockBackupStore) *core.Editor {
	return core.NewEditor(doc, backups, validate.Checker{}, nil)
}

func TestSave_DuplicateIsNoop(t *testing.T) {
	doc := &MockDocumentStore{content: []byte("a: 1\n"), exists: true}
	backups := NewMockBackupStore()
	editor := newEditor(doc, backups)
	ctx := context.TODO()

	out := editor.Save(ctx, "a: 1\n")
	if out.Status != core.StatusUnchanged {
		t.Fatalf("expected StatusUnchanged, got %s (%v)", out.Status, out.Err)
	}
	if len(backups.order) != 0 {
		t.Errorf("duplicate save must not create a backup, got %d", len(backups.order))
	}

	// Saving twice in a row: the second identical save creates zero backups.
	out = editor.Save(ctx, "a: 2\n")
	if out.Status != core.StatusSaved {
		t.Fatalf("expected StatusSaved, got %s (%v)", out.Status, out.Err)
	}
	out = editor.Save(ctx, "a: 2\n")
	if out.Status != core.StatusUnchanged {
		t.Fatalf("expected StatusUnchanged on repeat, got %s", out.Status)
	}
	if len(backups.order) != 1 {
		t.Errorf("expected exactly 1 backup, got %d", len(backups.order))
	}
}

func TestSave_BackupBeforeWrite(t *testing.T) {
	doc := &MockDocumentStore{content: []byte("a: 1\n"), exists: true}
	backups := NewMockBackupStore()
	editor := newEditor(doc, backups)

	out := editor.Save(context.TODO(), "a: 2\n")
	if out.Status != core.StatusSaved {
		t.Fatalf("expected StatusSaved, got %s (%v)", out.Status, out.Err)
	}
	if out.Backup == "" {
		t.Fatal("expected a backup name in the outcome")
	}

	// The backup must reflect the pre-save content and be readable now.
	got, err := backups.Read(context.TODO(), out.Backup)
	if err != nil {
		t.Fatalf("backup not readable after save: %v", err)
	}
	if string(got) != "a: 1\n" {
		t.Errorf("backup content = %q, want %q", got, "a: 1\n")
	}
	if string(doc.content) != "a: 2\n" {
		t.Errorf("live content = %q, want %q", doc.content, "a: 2\n")
	}
}

func TestSave_ValidationGate(t *testing.T) {
	doc := &MockDocumentStore{content: []byte("a: 2\n"), exists: true}
	backups := NewMockBackupStore()
	editor := newEditor(doc, backups)

	out := editor.Save(context.TODO(), "a: [\n")
	if out.Status != core.StatusRejected {
		t.Fatalf("expected StatusRejected, got %s", out.Status)
	}
	if !errors.Is(out.Err, core.ErrInvalidYAML) {
		t.Errorf("expected ErrInvalidYAML, got %v", out.Err)
	}
	if out.Message == "" || out.Err == nil {
		t.Error("rejection must carry the parser diagnostic")
	}
	if len(backups.order) != 0 {
		t.Error("rejected save must not create a backup")
	}
	if string(doc.content) != "a: 2\n" {
		t.Errorf("live content modified by rejected save: %q", doc.content)
	}
}

func TestSave_WriteFailureAfterBackup(t *testing.T) {
	doc := &MockDocumentStore{content: []byte("a: 1\n"), exists: true}
	doc.replaceErr = errors.New("disk full")
	backups := NewMockBackupStore()
	editor := newEditor(doc, backups)

	// Failure injected between backup-write and live-file swap: the live
	// file stays byte-identical to its pre-save content.
	out := editor.Save(context.TODO(), "a: 2\n")
	if out.Status != core.StatusFailed {
		t.Fatalf("expected StatusFailed, got %s", out.Status)
	}
	if !errors.Is(out.Err, core.ErrWriteFailed) {
		t.Errorf("expected ErrWriteFailed, got %v", out.Err)
	}
	if string(doc.content) != "a: 1\n" {
		t.Errorf("live content = %q, want pre-save %q", doc.content, "a: 1\n")
	}
	// The snapshot taken beforehand remains valid, making a retry safe.
	if len(backups.order) != 1 {
		t.Fatalf("expected the pre-write backup to remain, got %d", len(backups.order))
	}
	if string(backups.snaps[backups.order[0]]) != "a: 1\n" {
		t.Error("backup does not reflect pre-save content")
	}

	doc.replaceErr = nil
	out = editor.Save(context.TODO(), "a: 2\n")
	if out.Status != core.StatusSaved {
		t.Fatalf("retry after write failure should succeed, got %s (%v)", out.Status, out.Err)
	}
}

func TestSave_BackupFailureAbortsSave(t *testing.T) {
	doc := &MockDocumentStore{content: []byte("a: 1\n"), exists: true}
	backups := NewMockBackupStore()
	backups.snapErr = errors.New("backup dir read-only")
	editor := newEditor(doc, backups)

	out := editor.Save(context.TODO(), "a: 2\n")
	if out.Status != core.StatusFailed {
		t.Fatalf("expected StatusFailed, got %s", out.Status)
	}
	if !errors.Is(out.Err, core.ErrBackupFailed) {
		t.Errorf("expected ErrBackupFailed, got %v", out.Err)
	}
	if string(doc.content) != "a: 1\n" {
		t.Error("live file must never be modified when its backup failed")
	}
}

func TestSave_NewDocumentCreatesNoBackup(t *testing.T) {
	doc := &MockDocumentStore{}
	backups := NewMockBackupStore()
	editor := newEditor(doc, backups)

	out := editor.Save(context.TODO(), "a: 1\n")
	if out.Status != core.StatusSaved {
		t.Fatalf("expected StatusSaved, got %s (%v)", out.Status, out.Err)
	}
	if out.Backup != "" {
		t.Error("no prior content, so no backup should be created")
	}
	if len(backups.order) != 0 {
		t.Errorf("expected 0 backups, got %d", len(backups.order))
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	doc := &MockDocumentStore{content: []byte("v1\n"), exists: true}
	backups := NewMockBackupStore()
	editor := newEditor(doc, backups)
	ctx := context.TODO()

	// v1 -> v2 creates a backup B holding v1.
	out := editor.Save(ctx, "v2\n")
	if out.Status != core.StatusSaved {
		t.Fatalf("save failed: %v", out.Err)
	}
	backupB := out.Backup

	// Restoring B snapshots v2 and brings v1 back.
	out = editor.Restore(ctx, backupB)
	if out.Status != core.StatusSaved {
		t.Fatalf("restore failed: %s (%v)", out.Status, out.Err)
	}
	if string(doc.content) != "v1\n" {
		t.Errorf("after restore, live = %q, want %q", doc.content, "v1\n")
	}

	// Restoring the backup created by that restore reproduces v2.
	out = editor.Restore(ctx, out.Backup)
	if out.Status != core.StatusSaved {
		t.Fatalf("second restore failed: %s (%v)", out.Status, out.Err)
	}
	if string(doc.content) != "v2\n" {
		t.Errorf("restore round-trip: live = %q, want %q", doc.content, "v2\n")
	}
}

func TestRestore_SameContentIsNoop(t *testing.T) {
	doc := &MockDocumentStore{content: []byte("v1\n"), exists: true}
	backups := NewMockBackupStore()
	editor := newEditor(doc, backups)
	ctx := context.TODO()

	entry, err := backups.Snapshot(ctx, []byte("v1\n"))
	if err != nil {
		t.Fatal(err)
	}

	out := editor.Restore(ctx, entry.Name)
	if out.Status != core.StatusUnchanged {
		t.Fatalf("restoring identical content should be a no-op, got %s", out.Status)
	}
}

func TestRestore_MissingBackup(t *testing.T) {
	doc := &MockDocumentStore{content: []byte("v1\n"), exists: true}
	backups := NewMockBackupStore()
	editor := newEditor(doc, backups)

	out := editor.Restore(context.TODO(), "snap-999")
	if out.Status != core.StatusFailed {
		t.Fatalf("expected StatusFailed, got %s", out.Status)
	}
	if !errors.Is(out.Err, core.ErrBackupNotFound) {
		t.Errorf("expected ErrBackupNotFound, got %v", out.Err)
	}
	if string(doc.content) != "v1\n" {
		t.Error("failed restore must not mutate the document")
	}
}

// TestSave_Scenario walks the concrete sequence from the design notes:
// duplicate, change, invalid.
func TestSave_Scenario(t *testing.T) {
	doc := &MockDocumentStore{content: []byte("a: 1\n"), exists: true}
	backups := NewMockBackupStore()
	editor := newEditor(doc, backups)
	ctx := context.TODO()

	if out := editor.Save(ctx, "a: 1\n"); out.Status != core.StatusUnchanged {
		t.Fatalf("step 1: expected StatusUnchanged, got %s", out.Status)
	}
	if len(backups.order) != 0 {
		t.Fatalf("step 1: expected 0 backups, got %d", len(backups.order))
	}

	if out := editor.Save(ctx, "a: 2\n"); out.Status != core.StatusSaved {
		t.Fatalf("step 2: expected StatusSaved, got %s", out.Status)
	}
	if len(backups.order) != 1 || string(backups.snaps[backups.order[0]]) != "a: 1\n" {
		t.Fatal("step 2: expected 1 backup containing the prior content")
	}

	if out := editor.Save(ctx, "a: [\n"); out.Status != core.StatusRejected {
		t.Fatalf("step 3: expected StatusRejected, got %s", out.Status)
	}
	if string(doc.content) != "a: 2\n" {
		t.Errorf("step 3: live content = %q, want %q", doc.content, "a: 2\n")
	}
	if len(backups.order) != 1 {
		t.Errorf("step 3: expected still 1 backup, got %d", len(backups.order))
	}
}

func TestHealth(t *testing.T) {
	doc := &MockDocumentStore{content: []byte("a: 1\n"), exists: true}
	editor := newEditor(doc, NewMockBackupStore())

	h := editor.Health(context.TODO())
	if !h.DocumentReachable || !h.BackupDirWritable {
		t.Errorf("expected healthy probes, got %+v", h)
	}

	doc.exists = false
	h = editor.Health(context.TODO())
	if h.DocumentReachable {
		t.Error("expected document unreachable after removal")
	}
}

func TestActivity_RecordsPipelineEvents(t *testing.T) {
	doc := &MockDocumentStore{content: []byte("a: 1\n"), exists: true}
	editor := newEditor(doc, NewMockBackupStore())
	ctx := context.TODO()

	editor.Save(ctx, "a: 2\n")
	editor.Save(ctx, "a: 2\n")
	editor.Save(ctx, "a: [\n")

	events := editor.Activity(0)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	// Newest first.
	if events[0].Category != core.CategoryError {
		t.Errorf("events[0] = %s, want error", events[0].Category)
	}
	if events[1].Category != core.CategoryInfo {
		t.Errorf("events[1] = %s, want info", events[1].Category)
	}
	if events[2].Category != core.CategorySuccess {
		t.Errorf("events[2] = %s, want success", events[2].Category)
	}
}
