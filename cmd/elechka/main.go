package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/elechka/internal/application"
	"github.com/eugenenazirov/elechka/internal/config"
	"github.com/eugenenazirov/elechka/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	args := os.Args[1:]
	resolver := config.New(args, config.DefaultPaths())

	settings, err := config.LoadSettings(resolver)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	if settings.Token == "" {
		settings.Token = firstPositional(args)
	}
	if settings.Token == "" {
		fmt.Fprintf(os.Stderr, "usage: %s <token> | --token=<token>\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}

	logger, err := logging.New(settings.LogLevel, settings.LogFormat)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	logSources(logger, resolver)

	app, err := application.New(settings, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	if err := shutdown(cancel, done, settings.ShutdownGracePeriod, logger); err != nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}
}

// logSources reports which env files fed the resolver. The resolver is built
// before the logger exists, so its own ingestion diagnostics are not seen.
func logSources(logger *zap.Logger, resolver *config.Resolver) {
	for _, path := range resolver.Paths() {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		switch {
		case err != nil:
			logger.Debug("env file not loaded", zap.String("path", path), zap.Error(err))
		case info.IsDir():
			logger.Debug("env file not loaded", zap.String("path", path), zap.String("reason", "is a directory"))
		default:
			logger.Info("env file loaded", zap.String("path", path))
		}
	}
	logger.Debug("configuration resolved", zap.Strings("keys", resolver.Keys()))
}

// firstPositional returns the first argument that is not a flag; the bot
// historically took its token as the sole positional argument.
func firstPositional(args []string) string {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			return strings.TrimSpace(arg)
		}
	}
	return ""
}

// shutdown blocks until the bot exits on its own or a termination signal
// arrives, then cancels the run and waits at most timeout for it to finish.
func shutdown(cancel context.CancelFunc, done <-chan error, timeout time.Duration, logger *zap.Logger) error {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-done:
		cancel()
		return err
	case <-quit:
	}

	logger.Info("shutting down bot")
	cancel()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		logger.Warn("graceful shutdown timed out", zap.Duration("timeout", timeout))
		return nil
	}
}
