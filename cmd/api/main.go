package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mateuus/Applio/internal/api"
	"github.com/Mateuus/Applio/internal/config"
	"github.com/Mateuus/Applio/internal/engine"
	"github.com/Mateuus/Applio/internal/voices"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	var host string
	var port int

	rootCmd := &cobra.Command{
		Use:          "applio-api",
		Short:        "HTTP API for TTS inference with voice conversion (RVC)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}
	rootCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to bind")
	rootCmd.Flags().IntVar(&port, "port", 8000, "port to bind")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return err
	}

	eng := engine.NewApplioEngine(engine.Config{
		PythonBin: cfg.Engine.PythonBin,
		Script:    cfg.Engine.Script,
		WorkDir:   cfg.Engine.WorkDir,
	})

	// Warm the catalog before serving, like the original's startup hook.
	catalog := voices.NewCatalog(cfg.Paths.VoicesFile)
	if all, err := catalog.All(); err != nil {
		slog.Warn("voice catalog unavailable, voice validation will fail", "error", err)
	} else {
		slog.Info("voice catalog loaded", "voices", len(all))
	}

	router := api.NewRouter(cfg, eng, catalog)
	handler := router.Setup()

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: handler,
		// Synthesis is a long blocking call; the write timeout is the only
		// caller-facing ceiling on it.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting API server", "addr", cfg.Addr(), "api_key", cfg.HasAPIKey())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
	return nil
}
