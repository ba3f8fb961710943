package platform

import (
	"log/slog"
	"os"
)

// Defaults match the original container layout.
const (
	DefaultDocumentPath = "/data/services.yaml"
	DefaultBackupDir    = "/data/backups"
	DefaultAddr         = ":8080"
)

// Environment variables understood by svcedit. Flags override these.
const (
	EnvDocumentPath = "SVCEDIT_FILE"
	EnvBackupDir    = "SVCEDIT_BACKUP_DIR"
	EnvAddr         = "SVCEDIT_ADDR"
)

// Config is the resolved runtime configuration.
type Config struct {
	DocumentPath string
	BackupDir    string
	Addr         string
	AutoInit     bool
	ActivityCap  int
	Logger       *slog.Logger
}

// ConfigFromEnv builds a Config from the environment, falling back to the
// container defaults.
func ConfigFromEnv() Config {
	return Config{
		DocumentPath: envOr(EnvDocumentPath, DefaultDocumentPath),
		BackupDir:    envOr(EnvBackupDir, DefaultBackupDir),
		Addr:         envOr(EnvAddr, DefaultAddr),
	}
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
