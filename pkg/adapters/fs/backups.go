package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/svcedit/svcedit/pkg/core"
)

// stampLayout encodes the snapshot time with second precision.
// Fixed width, so lexical filename order equals chronological order.
const stampLayout = "20060102-150405"

// backupExt marks snapshot files in the backup directory.
const backupExt = ".bak"

// BackupConfig holds the configuration for a BackupStore.
type BackupConfig struct {
	Dir string
	// Basename of the document being backed up (e.g. "services.yaml").
	// Snapshots are named <Basename>.<stamp>.bak so operators can tell
	// what a snapshot belongs to at a glance.
	Basename string
	AutoInit bool // create the directory when missing instead of failing
	Logger   *slog.Logger
}

// BackupStore implements core.BackupStore in a single directory.
// All reads and writes are confined to that directory; entry names are
// only ever resolved against filenames matching the snapshot scheme.
type BackupStore struct {
	Dir    string
	config BackupConfig

	// now is swapped in tests to pin the snapshot stamp.
	now func() time.Time
}

// NewBackupStore creates a store over config.Dir.
func NewBackupStore(config BackupConfig) *BackupStore {
	return &BackupStore{
		Dir:    config.Dir,
		config: config,
		now:    time.Now,
	}
}

// Initialize verifies the backup directory is usable.
// A missing directory is a startup error by default (operator visibility
// beats silent creation); AutoInit opts into creating it.
func (s *BackupStore) Initialize(ctx context.Context) error {
	info, err := os.Stat(s.Dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("backup path is not a directory: %s", s.Dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot stat backup directory: %w", err)
	}

	if !s.config.AutoInit {
		return fmt.Errorf("backup directory does not exist: %s", s.Dir)
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	return nil
}

// Snapshot writes content as a new immutable entry.
// The stamp has second precision; when two snapshots land within the same
// second the stamp is advanced until the name is free, so ordering and
// uniqueness hold without sub-second noise in the filenames.
func (s *BackupStore) Snapshot(ctx context.Context, content []byte) (core.BackupEntry, error) {
	stamp := s.now().Truncate(time.Second)

	var name, path string
	for {
		name = s.entryName(stamp)
		path = filepath.Join(s.Dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		} else if err != nil {
			return core.BackupEntry{}, fmt.Errorf("cannot stat snapshot target: %w", err)
		}
		stamp = stamp.Add(time.Second)
	}

	if err := writeFileAtomic(path, content, 0644); err != nil {
		return core.BackupEntry{}, fmt.Errorf("failed to write snapshot: %w", err)
	}

	if s.config.Logger != nil {
		s.config.Logger.Info("backup created", "name", name, "bytes", len(content))
	}

	return core.BackupEntry{
		Name:      name,
		Timestamp: stamp,
		Size:      int64(len(content)),
	}, nil
}

// List returns all recognizable snapshots, newest first.
// Foreign files in the directory (editor temp files, operator notes,
// future formats) are skipped rather than reported as errors.
func (s *BackupStore) List(ctx context.Context) ([]core.BackupEntry, error) {
	dirents, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var entries []core.BackupEntry
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		stamp, ok := s.parseEntryName(d.Name())
		if !ok {
			continue
		}
		info, err := d.Info()
		if err != nil {
			// Removed between ReadDir and Info; treat like a foreign file.
			continue
		}
		entries = append(entries, core.BackupEntry{
			Name:      d.Name(),
			Timestamp: stamp,
			Size:      info.Size(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name > entries[j].Name
	})
	return entries, nil
}

// Read returns the raw content of the named snapshot.
// Names that do not match the snapshot scheme are rejected outright, so a
// caller can never reach outside the backup directory.
func (s *BackupStore) Read(ctx context.Context, name string) ([]byte, error) {
	if _, ok := s.parseEntryName(name); !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrBackupNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrBackupNotFound, name)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

// Probe checks that the backup directory is writable by creating and
// removing a scratch file.
func (s *BackupStore) Probe(ctx context.Context) error {
	f, err := os.CreateTemp(s.Dir, TempFilePrefix+"probe-*")
	if err != nil {
		return fmt.Errorf("backup directory not writable: %w", err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func (s *BackupStore) entryName(stamp time.Time) string {
	return s.config.Basename + "." + stamp.Format(stampLayout) + backupExt
}

// parseEntryName reports whether name follows the snapshot scheme and
// extracts its timestamp. The glob match is a fast shape check (it also
// rejects anything containing a path separator); the strict time parse
// weeds out look-alikes.
func (s *BackupStore) parseEntryName(name string) (time.Time, bool) {
	pattern := s.config.Basename + ".*" + backupExt
	if ok, err := doublestar.Match(pattern, name); err != nil || !ok {
		return time.Time{}, false
	}

	stampStr := strings.TrimSuffix(strings.TrimPrefix(name, s.config.Basename+"."), backupExt)
	stamp, err := time.ParseInLocation(stampLayout, stampStr, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return stamp, true
}
