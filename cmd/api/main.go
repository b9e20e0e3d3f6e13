package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pettabl/internal/adapters/auth/jwtverify"
	"pettabl/internal/adapters/auth/supabase"
	objsupabase "pettabl/internal/adapters/objectstore/supabase"
	pg "pettabl/internal/adapters/storage/postgres"
	"pettabl/internal/adapters/waitlist/formrelay"
	"pettabl/internal/config"
	"pettabl/internal/platform/logger"
	"pettabl/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Sync() }()

	opts := router.Options{
		Logger:              log,
		Location:            cfg.Timezone,
		PublicBaseURL:       cfg.PublicBaseURL,
		WaitlistRate:        cfg.WaitlistRatePerSec,
		WaitlistBurst:       cfg.WaitlistBurst,
		AgentSearchCacheTTL: cfg.AgentSearchCacheTTL,
		MaxUploadBytes:      cfg.MaxUploadBytes,
		EnableDocs:          cfg.DocsEnabled(),
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		if cfg.DBAutoMigrate {
			if err := pg.Migrate(cfg.DBDSN); err != nil {
				log.Error("migrate", map[string]any{"err": err})
				os.Exit(1)
			}
			log.Info("migrations applied", nil)
		}

		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("db open", map[string]any{"err": err})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	// Verifier: secreto JWT local > GoTrue /user > modo dev (X-Debug-User-ID)
	var gotrue *supabase.Client
	if cfg.SupabaseURL != "" && cfg.SupabaseAnonKey != "" {
		gotrue, err = supabase.NewClient(supabase.Config{URL: cfg.SupabaseURL, AnonKey: cfg.SupabaseAnonKey})
		if err != nil {
			log.Error("supabase auth", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.Identity = gotrue
	}

	switch {
	case cfg.SupabaseJWTSecret != "":
		v, err := jwtverify.New(cfg.SupabaseJWTSecret)
		if err != nil {
			log.Error("jwt verifier", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.AuthVerifier = v
	case gotrue != nil:
		opts.AuthVerifier = gotrue
	default:
		if cfg.AppEnv == "production" {
			log.Error("no auth verifier configured in production", nil)
			os.Exit(1)
		}
		log.Warn("auth disabled: using X-Debug-User-ID headers", nil)
	}

	if cfg.SupabaseServiceKey != "" {
		store, err := objsupabase.New(objsupabase.Config{URL: cfg.SupabaseURL, ServiceKey: cfg.SupabaseServiceKey})
		if err != nil {
			log.Error("supabase storage", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.Objects = store
	}

	if cfg.WaitlistRelayURL != "" {
		relay, err := formrelay.New(cfg.WaitlistRelayURL, 0)
		if err != nil {
			log.Error("waitlist relay", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.WaitlistSink = relay
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.AppEnv})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", map[string]any{"err": err})
	}
	log.Info("server stopped", nil)
}
