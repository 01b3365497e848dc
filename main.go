package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"todo-web/config"
	"todo-web/storage"
	"todo-web/store"
	"todo-web/web"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra already prints the error
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, envErr := config.FromEnv()

	cmd := &cobra.Command{
		Use:          "todo-web",
		Short:        "Serve the to-do list on the given port",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Port, "port", cfg.Port, "port to listen on")
	flags.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage backend: sqlite, redis or memory")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database file")
	flags.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis connection URL")
	flags.StringVar(&cfg.SlotKey, "slot", cfg.SlotKey, "storage key holding the task list")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger := log.New()
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slot, err := config.OpenSlot(ctx, cfg)
	if err != nil {
		return err
	}
	defer slot.Close()

	tasks, err := store.New(ctx, storage.NewTaskSlot(slot, cfg.SlotKey, logger), store.WithLogger(logger))
	if err != nil {
		return err
	}
	srv, err := web.NewServer(tasks, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(log.Fields{"addr": httpServer.Addr, "storage": cfg.Storage}).Infof("Server running at http://localhost:%d", cfg.Port)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
