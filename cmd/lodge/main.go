// Command lodge serves the member notification inbox and the translation
// endpoints of the lodge web app.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/lodgekit/pkg/httpserver"
	"github.com/dmitrymomot/lodgekit/pkg/logger"
	"github.com/dmitrymomot/lodgekit/pkg/maintenance"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	logger.SetAsDefault(log)

	a, err := newApp(ctx, cfg, log)
	defer a.Close()
	if err != nil {
		return err
	}

	sweeper := maintenance.NewSweeper(a.registry,
		maintenance.WithSchedule(cfg.SweepSchedule),
		maintenance.WithIdle(cfg.SessionIdle),
		maintenance.WithLogger(log),
	)
	if err := sweeper.Start(); err != nil {
		return fmt.Errorf("start session sweeper: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sweeper.Stop(stopCtx); err != nil {
			log.Warn("Session sweeper did not stop in time", logger.Error(err))
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		if a.relay == nil {
			return
		}
		if err := a.relay.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.LogAttrs(runCtx, slog.LevelError, "Toast relay stopped",
				logger.Component("notifications"),
				logger.Error(err),
			)
		}
	}()

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	serveErr := srv.Run(runCtx, a.routes())

	cancel()
	<-relayDone

	return serveErr
}
