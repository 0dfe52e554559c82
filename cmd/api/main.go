package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authhosted "clinic-frontdesk/internal/adapters/auth/hosted"
	"clinic-frontdesk/internal/adapters/catalogfile"
	rtredis "clinic-frontdesk/internal/adapters/realtime/redis"
	"clinic-frontdesk/internal/adapters/storage/hosted"
	pg "clinic-frontdesk/internal/adapters/storage/postgres"
	"clinic-frontdesk/internal/config"
	"clinic-frontdesk/internal/platform/logger"
	"clinic-frontdesk/internal/platform/metrics"
	"clinic-frontdesk/internal/router"
)

// @title Clinic Front Desk API
// @version 1.0
// @description Registro de autos, pagos y dashboard en vivo para jornadas de vacunación.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Logger:             log,
		Metrics:            metrics.New(cfg.MetricsNamespace),
		Location:           cfg.Location,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Context:            ctx,
	}

	if cfg.DatabaseURL != "" {
		db, err := pg.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err})
			os.Exit(1)
		}
		defer db.Close()

		if cfg.MigrateOnStart {
			v, err := pg.Migrate(db)
			if err != nil {
				log.Error("migrations failed", map[string]any{"error": err})
				os.Exit(1)
			}
			log.Info("migrations applied", map[string]any{"version": v})
		}
		opts.DB = db
	}

	if cfg.BackendURL != "" {
		backend, err := hosted.NewClient(hosted.Config{BaseURL: cfg.BackendURL, APIKey: cfg.BackendAPIKey})
		if err != nil {
			log.Error("backend client failed", map[string]any{"error": err})
			os.Exit(1)
		}
		if opts.DB == nil {
			opts.Backend = backend
		}
		if cfg.AuthMode == config.AuthModeBackend {
			opts.AuthVerifier = authhosted.NewVerifier(backend)
		}
	}

	if cfg.ItemsFile != "" {
		opts.Items = catalogfile.NewRepo(cfg.ItemsFile)
	}

	if cfg.RedisURL != "" {
		client, err := rtredis.Open(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("redis connect failed", map[string]any{"error": err})
			os.Exit(1)
		}
		defer client.Close()
		opts.Realtime = rtredis.New(client, cfg.RealtimeChannelPrefix, log)
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{
		"addr":      srv.Addr,
		"env":       cfg.AppEnv,
		"auth_mode": string(cfg.AuthMode),
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}
