// Package svcedit is the Composition Root for the svcedit application.
//
// It connects the core save pipeline (Domain Layer) with the filesystem
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// svcedit manages exactly one YAML configuration document. Every mutation
// runs through the same pipeline: validate, compare byte-for-byte, snapshot
// the prior content, replace atomically. The pipeline guarantees that a
// backup exists for every change and that the live file is never observable
// in a partially written state.
//
// Features:
//
//   - **Validated saves**: YAML syntax is checked before anything is touched.
//   - **Duplicate suppression**: byte-identical saves are no-ops and create no backup.
//   - **Backup before write**: the live file is only replaced after its snapshot succeeded.
//   - **Atomic replace**: temp-file-then-rename, no partial state ever visible.
//   - **Undoable restore**: restoring a backup re-enters the save pipeline.
//   - **Bounded activity log**: recent saves, rejections and restores, in memory only.
//
// Usage:
//
//	editor, err := svcedit.New(svcedit.Config{
//		DocumentPath: "/data/services.yaml",
//		BackupDir:    "/data/backups",
//	})
//
//	outcome := editor.Save(ctx, content)
package svcedit
