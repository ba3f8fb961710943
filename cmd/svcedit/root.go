package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/svcedit/svcedit/internal/platform"
)

var (
	verbose   bool
	filePath  string
	backupDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "svcedit",
	Short: "A web editor for a Homepage services.yaml with validated saves and rollback",
	Long: `svcedit manages a single YAML configuration document through a browser.
Every save is validated, duplicate saves are suppressed, and changed content
is snapshotted to a timestamped backup before the live file is replaced.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig resolves environment configuration with flag overrides.
func loadConfig() platform.Config {
	cfg := platform.ConfigFromEnv()
	if filePath != "" {
		cfg.DocumentPath = filePath
	}
	if backupDir != "" {
		cfg.BackupDir = backupDir
	}
	cfg.Logger = slog.Default()
	return cfg
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "", "Path to the managed YAML document (overrides "+platform.EnvDocumentPath+")")
	rootCmd.PersistentFlags().StringVarP(&backupDir, "backup-dir", "b", "", "Backup directory (overrides "+platform.EnvBackupDir+")")
}
