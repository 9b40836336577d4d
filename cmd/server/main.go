package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"
	flag "github.com/spf13/pflag"

	"github.com/reshetovitsme/mobile-portal/internal/di"
	"github.com/reshetovitsme/mobile-portal/internal/importer"
	"github.com/reshetovitsme/mobile-portal/internal/seed"
	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
	httpServer "github.com/reshetovitsme/mobile-portal/internal/transport/http"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.StringP("config", "c", "", "path to a yaml, json or toml config file")
	seedPath := flag.String("seed", "", "seed file to load before serving (overrides seed_file)")
	importOnce := flag.Bool("import-once", false, "run the importer once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger, *seedPath, *importOnce); err != nil {
		logger.Error("Portal stopped with error", "error", err)
		os.Exit(1)
	}
}

// newLogger sends text logs to stdout at the configured level and errors as
// JSON to stderr.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(slogmulti.Fanout(textHandler, jsonHandler))
}

func run(cfg *config.Config, logger *slog.Logger, seedPath string, importOnce bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	injector := di.Setup(cfg, logger)
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := di.Shutdown(shutdownCtx, injector); err != nil {
			logger.Error("Error during shutdown", "error", err)
		}
	}()

	if seedPath == "" {
		seedPath = cfg.SeedFile
	}
	if seedPath != "" {
		f, err := seed.Parse(seedPath)
		if err != nil {
			return err
		}
		loader, err := do.Invoke[*seed.Loader](injector)
		if err != nil {
			return err
		}
		if err := loader.Load(ctx, f); err != nil {
			return err
		}
		logger.Info("Seed loaded", "path", seedPath)
	}

	imp, err := do.Invoke[*importer.Importer](injector)
	if err != nil {
		return err
	}
	if importOnce {
		imp.RunOnce(ctx)
		return nil
	}

	server, err := do.Invoke[*httpServer.Server](injector)
	if err != nil {
		return err
	}

	if cfg.Importer.Enabled {
		imp.Start(ctx)
	}

	if b, err := do.Invoke[*bot.Bot](injector); err == nil {
		go b.Start(ctx)
		logger.Info("Telegram bot started")
	} else {
		logger.Info("Telegram bot disabled", "reason", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("Application started", "port", cfg.HTTP.Port, "env", cfg.AppEnv)

	select {
	case <-ctx.Done():
		logger.Info("Shutting down...")
		return nil
	case err := <-errCh:
		return err
	}
}
