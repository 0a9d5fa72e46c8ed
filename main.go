package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"authflow/internal/client"
	"authflow/internal/configuration"
	"authflow/internal/core"
	"authflow/internal/notifier"
	"authflow/internal/router"
	"authflow/internal/session"

	"go.uber.org/zap"
)

func main() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))

	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <email>\n", configuration.AppName)
		os.Exit(2)
	}

	os.Exit(run(os.Args[1]))
}

func run(email string) int {
	config := configuration.Read()
	core.NewLogger(config.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdownTracing, err := core.NewTracerProvider(ctx, config.Telemetry)
	if err != nil {
		zap.L().Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			zap.L().Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	persister := core.NewSessionPersister(config.Session)
	if persister != nil {
		defer func() { _ = persister.Close() }()
	}

	attempts := core.NewActivityLogger(config.Activity)
	if attempts != nil {
		defer func() { _ = attempts.Close() }()
	}

	logger := zap.L()
	terminal := &core.Terminal{
		Client:    client.NewAuthClient(config.API, logger).WithActivity(attempts),
		Store:     session.NewStore(),
		Persister: persister,
		Notifier:  notifier.NewConsoleNotifier(os.Stdout, logger),
		History:   router.NewHistory(logger),
		Activity:  attempts,
		In:        os.Stdin,
		Out:       os.Stdout,
		Logger:    logger,
	}

	if err = terminal.Run(ctx, email); err != nil {
		if !errors.Is(err, core.ErrInputClosed) {
			zap.L().Error("Authentication flow failed", zap.Error(err))
		}
		return 1
	}
	return 0
}
