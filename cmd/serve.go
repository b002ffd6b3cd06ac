package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/config"
	"github.com/rocketdigital/taskpilot/internal/server"
	"github.com/rocketdigital/taskpilot/internal/suggest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API used by the task form",
	Long: `Start the JSON HTTP API:

  POST /api/ai/suggest           AI suggestion for a task description
  GET  /api/clickup/workspace    configured ClickUp workspace
  GET  /api/clickup/spaces       ?workspaceId=
  GET  /api/clickup/sprints      ?workspaceId=
  GET  /api/clickup/members      ?workspaceId=
  GET  /api/clickup/epics        ?spaceId=
  GET  /api/clickup/statuses     ?spaceId=
  POST /api/clickup/create-task  {spaceId, taskData}

Missing credentials do not prevent startup; the routes that need them
answer 500 with a setup instruction.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default :3000)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()

	tel := newTelemetry(cfg)
	defer func() { _ = tel.Close() }()

	engine := &lazy[*suggest.Engine]{build: func(ctx context.Context) (*suggest.Engine, error) {
		return newEngine(ctx, cfg)
	}}
	cu := &lazy[*clickup.Service]{build: func(context.Context) (*clickup.Service, error) {
		return newClickUpService(cfg, tel)
	}}
	warnMissingCredentials(cfg, logger)

	srv := server.New(server.Options{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Suggester: func(ctx context.Context) (server.Suggester, error) {
			e, err := engine.get(ctx)
			if err != nil {
				return nil, err
			}
			return e, nil
		},
		ClickUp: func(ctx context.Context) (server.ClickUp, error) {
			s, err := cu.get(ctx)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		Telemetry: tel,
		Logger:    logger,
		Version:   version,
	})

	var wg sync.WaitGroup
	errChan := make(chan error, 1)
	srv.Start(&wg, errChan)

	fmt.Fprintf(cmd.OutOrStdout(), "taskpilot API listening on %s (Ctrl+C to stop)\n", cfg.Server.Addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case sig := <-sigChan:
		logger.Info("shutting down", "signal", sig.String())
	case runErr = <-errChan:
		logger.Error("server stopped", "error", runErr)
	case <-cmd.Context().Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown error", "error", err)
	}
	wg.Wait()
	return runErr
}

// warnMissingCredentials logs, at startup, what the first request would
// otherwise be the one to report.
func warnMissingCredentials(cfg *config.AppConfig, logger *slog.Logger) {
	if err := cfg.RequireAIKey(); err != nil {
		logger.Warn("AI suggestions unavailable until configured", "error", err)
	}
	if err := cfg.RequireClickUpToken(); err != nil {
		logger.Warn("ClickUp routes unavailable until configured", "error", err)
	}
}
