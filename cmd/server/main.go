package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"openconference/internal/adapters/discord"
	httpadapter "openconference/internal/adapters/http"
	"openconference/internal/application"
	"openconference/internal/auth"
	"openconference/internal/config"
	"openconference/internal/infrastructure/database"
	"openconference/internal/infrastructure/i18n"
	"openconference/internal/infrastructure/memory"
	"openconference/internal/logging"
	"openconference/internal/ports/output"
)

func main() {
	flagSet := pflag.NewFlagSet("openconference", pflag.ContinueOnError)
	envFile := flagSet.String("env-file", ".env", "optional dotenv file read before the environment")
	httpAddr := flagSet.String("http-addr", "", "HTTP listen address (overrides HTTP_ADDR)")
	storage := flagSet.String("storage", "", "storage backend: postgres or memory (overrides STORAGE)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *storage != "" {
		cfg.Storage = *storage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []application.Option{
		application.WithLogger(logger),
		application.WithTestSupport(cfg.TestingEnabled),
		application.WithFanout(cfg.ProjectorFanout),
	}
	identity := application.NewIdentityService(store, opts...)
	projector := application.NewProjector(store, identity, opts...)
	conferences := application.NewConferenceService(store, identity, projector, opts...)
	meetings := application.NewMeetingService(store, identity, projector, opts...)
	translator := i18n.NewTranslator(cfg.DefaultLocale, logger)

	if cfg.TestingEnabled {
		logger.Warn("test support enabled; DELETE /testing/users is reachable")
	}

	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpadapter.NewRouter(httpadapter.RouterConfig{
			Identity:       identity,
			Conferences:    conferences,
			Meetings:       meetings,
			Verifier:       auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience),
			Translator:     translator,
			Logger:         logger,
			CORSOrigins:    cfg.CORSOrigins,
			TestingEnabled: cfg.TestingEnabled,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http api listening", "addr", server.Addr, "storage", cfg.Storage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.DiscordEnabled() {
		handler := discord.NewHandler(identity, conferences, meetings, translator, logger.With("adapter", "discord"))
		bot, err := discord.NewBot(cfg.DiscordToken, cfg.DiscordGuildID, handler, logger.With("adapter", "discord"))
		if err != nil {
			return err
		}
		g.Go(func() error { return bot.Start(gctx) })
	}

	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (output.Store, func(), error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage; for development and tests only, data is lost on restart")
		return memory.New(), func() {}, nil
	}

	if cfg.Migrations {
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, nil, err
		}
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	return database.NewStore(pool), pool.Close, nil
}
