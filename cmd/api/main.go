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

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"absa_dashboard/internal/absa"
	server "absa_dashboard/internal/adapters/http_server"
	"absa_dashboard/internal/adapters/observability"
	redisad "absa_dashboard/internal/adapters/redis"
	"absa_dashboard/internal/adapters/render"
	"absa_dashboard/internal/app"
	"absa_dashboard/internal/domain"
	"absa_dashboard/internal/shared"
	mysqlrepo "absa_dashboard/internal/storage/mysql"
	"absa_dashboard/internal/storage/sheet"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// record source
	var src domain.RecordSource
	switch cfg.DataSource {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		src = mysqlrepo.New(db)
	default:
		src = sheet.New(cfg.DataFile, cfg.DataSheet)
		log.Info().Str("file", cfg.DataFile).Msg("reading review sentences from file")
	}

	// image cache is optional
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, images served uncached until it recovers")
		}
		cancel()
		cache = rc
	}

	svc := app.NewDashboardService(src, render.New(), cache, app.Options{
		SourceName: cfg.DataSource,
		Catalogue:  cfg.Catalogue(),
		Stopwords:  absa.StopwordSet(cfg.Dashboard.Stopwords...),
		Cloud:      cfg.CloudOptions(),
		CacheTTL:   cfg.CacheTTL,
	})

	// http
	srv := server.New(server.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		TrustProxy:     cfg.TrustProxy,
	})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(server.NewHandlers(svc))

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
