// Package fs implements the document and backup stores on the local
// filesystem.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/svcedit/svcedit/pkg/core"
)

// DocumentConfig holds the configuration for a DocumentStore.
type DocumentConfig struct {
	Path     string
	AutoInit bool   // create parent directory and seed the file when missing
	Seed     []byte // initial content written by Initialize under AutoInit
	Logger   *slog.Logger
}

// DocumentStore implements core.DocumentStore over a single file.
// Replace goes through a temp-file-then-rename swap so readers never
// observe a partially written document.
type DocumentStore struct {
	Path   string
	config DocumentConfig

	mu            sync.RWMutex
	watcherActive bool
}

// NewDocumentStore creates a store for the file at config.Path.
func NewDocumentStore(config DocumentConfig) *DocumentStore {
	return &DocumentStore{
		Path:   config.Path,
		config: config,
	}
}

// Initialize verifies the document is usable.
// Without AutoInit a missing file is a startup error so the operator sees
// a misconfigured path immediately. With AutoInit the parent directory is
// created and the seed content (if any) is written.
func (s *DocumentStore) Initialize(ctx context.Context) error {
	info, err := os.Stat(s.Path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("document path is a directory: %s", s.Path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot stat document: %w", err)
	}

	if !s.config.AutoInit {
		return fmt.Errorf("document does not exist: %s", s.Path)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create document directory: %w", err)
	}
	if err := writeFileAtomic(s.Path, s.config.Seed, 0644); err != nil {
		return fmt.Errorf("failed to seed document: %w", err)
	}

	if s.config.Logger != nil {
		s.config.Logger.Info("created document with seed content", "path", s.Path, "bytes", len(s.config.Seed))
	}
	return nil
}

// Read returns the raw document content.
// The error wraps fs.ErrNotExist when the file is missing, which the
// editor treats as "no prior content" rather than a failure.
func (s *DocumentStore) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

// Stat describes the document without loading it.
func (s *DocumentStore) Stat(ctx context.Context) (core.DocumentInfo, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return core.DocumentInfo{}, fmt.Errorf("failed to stat document: %w", err)
	}
	return core.DocumentInfo{
		Path:    s.Path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Replace swaps the document content atomically.
func (s *DocumentStore) Replace(ctx context.Context, content []byte) error {
	if s.config.Logger != nil {
		s.config.Logger.Debug("replacing document", "path", s.Path, "bytes", len(content))
	}
	if err := writeFileAtomic(s.Path, content, 0644); err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}
	return nil
}

func (s *DocumentStore) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
