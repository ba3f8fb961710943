package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/svcedit/svcedit/internal/httpapi"
	"github.com/svcedit/svcedit/internal/platform"
	lcadapter "github.com/svcedit/svcedit/pkg/adapters/lifecycle"
)

var (
	serveAddr     string
	serveAutoInit bool
	serveNoWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web editor",
	Long: `Start the HTTP server exposing the editor UI and JSON API.
With --auto-init the document and backup directory are created when missing;
by default a missing path is a startup error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		cfg.AutoInit = serveAutoInit
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		editor, err := platform.New(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if !serveNoWatch {
			events, err := editor.Watch(ctx)
			if err != nil {
				slog.Warn("document watching disabled", "error", err)
			} else {
				// Route change events through the supervised lifecycle bridge
				// so the consumer goroutine is tracked and panic-safe.
				src := lcadapter.NewSource(events)
				if err := src.Start(ctx); err != nil {
					slog.Warn("document watching disabled", "error", err)
				} else {
					go func() {
						for ev := range src.Events() {
							slog.Info("document changed on disk", "event", ev.String())
						}
					}()
				}
			}
		}

		server := &http.Server{
			Addr:              cfg.Addr,
			Handler:           httpapi.NewServer(editor, slog.Default()).Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("serving editor", "addr", cfg.Addr, "file", cfg.DocumentPath, "backups", cfg.BackupDir)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides "+platform.EnvAddr+")")
	serveCmd.Flags().BoolVar(&serveAutoInit, "auto-init", false, "Create missing document and backup directory at startup")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Disable out-of-band change detection")
}
