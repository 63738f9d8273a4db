package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Clay-Ferguson/quanta-docs/internal/logger"
	"github.com/Clay-Ferguson/quanta-docs/pkg/api"
	"github.com/Clay-Ferguson/quanta-docs/pkg/config"
	"github.com/Clay-Ferguson/quanta-docs/pkg/docs"
	"github.com/Clay-Ferguson/quanta-docs/pkg/metrics"
	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs/store"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Quanta Docs server",
	Long: `Start the Quanta Docs HTTP server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/quanta-docs/config.yaml.

Examples:
  # Start with default config location
  quanta start

  # Start with custom config file
  quanta start --config /etc/quanta/config.yaml

  # Start with environment variable overrides
  QUANTA_LOGGING_LEVEL=DEBUG quanta start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))
	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		logger.Info("Metrics enabled", "path", cfg.Metrics.Path)
	} else {
		logger.Info("Metrics collection disabled")
	}

	engine, err := store.New(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() { _ = engine.Close() }()

	service := docs.NewService(engine)

	apiServer, err := api.NewServer(cfg, service)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	if cfg.DesktopMode {
		logger.Info("Running in desktop mode, authentication disabled")
	} else {
		logger.Info("Running in multi-user mode", "users", len(cfg.Users))
	}
	for _, root := range cfg.DocRoots {
		logger.Info("Document root configured", logger.KeyDocRoot, root.Key, "name", root.Name)
	}

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- apiServer.Start(ctx, cfg.ShutdownTimeout)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", logger.KeyError, err)
			return err
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", logger.KeyError, err)
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}
