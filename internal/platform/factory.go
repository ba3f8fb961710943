package platform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/svcedit/svcedit/pkg/adapters/fs"
	"github.com/svcedit/svcedit/pkg/core"
	"github.com/svcedit/svcedit/pkg/validate"
)

// New wires the stores, validator and editor from the given configuration
// and runs their initialization. It is the composition root: nothing else
// in the repo constructs the concrete adapters.
func New(cfg Config) (*core.Editor, error) {
	if cfg.DocumentPath == "" {
		return nil, fmt.Errorf("document path is required")
	}
	if cfg.BackupDir == "" {
		return nil, fmt.Errorf("backup directory is required")
	}

	doc := fs.NewDocumentStore(fs.DocumentConfig{
		Path:     cfg.DocumentPath,
		AutoInit: cfg.AutoInit,
		Seed:     []byte(DefaultSeed),
		Logger:   cfg.Logger,
	})
	backups := fs.NewBackupStore(fs.BackupConfig{
		Dir:      cfg.BackupDir,
		Basename: filepath.Base(cfg.DocumentPath),
		AutoInit: cfg.AutoInit,
		Logger:   cfg.Logger,
	})

	ctx := context.Background()
	if err := doc.Initialize(ctx); err != nil {
		return nil, err
	}
	if err := backups.Initialize(ctx); err != nil {
		return nil, err
	}

	var opts []core.EditorOption
	if cfg.ActivityCap > 0 {
		opts = append(opts, core.WithActivityCapacity(cfg.ActivityCap))
	}

	editor := core.NewEditor(doc, backups, validate.Checker{}, cfg.Logger, opts...)
	return editor, nil
}
