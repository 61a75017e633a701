package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"absa_dashboard/internal/adapters/observability"
	"absa_dashboard/internal/app"
	"absa_dashboard/internal/domain"
	"absa_dashboard/internal/shared"
	mysqlrepo "absa_dashboard/internal/storage/mysql"
	"absa_dashboard/internal/storage/sheet"
)

// ingestor copies review spreadsheets into MySQL:
//
//	ingestor [file ...]   (defaults to DATA_FILE)
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	files := os.Args[1:]
	if len(files) == 0 {
		files = []string{cfg.DataFile}
	}
	log.Info().Strs("files", files).Int("workers", cfg.IngestWorkers).Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	imp := app.NewImportService(func(path string) domain.RecordSource {
		return sheet.New(path, cfg.DataSheet)
	}, mysqlrepo.New(db))

	sem := semaphore.NewWeighted(int64(cfg.IngestWorkers))
	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for _, f := range files {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Error().Err(err).Msg("ingestion interrupted")
			failed.Add(1)
			break
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(1)

			n, err := imp.ImportFile(ctx, path)
			if err != nil {
				failed.Add(1)
				log.Warn().Str("file", path).Err(err).Msg("import failed")
				return
			}
			log.Info().Str("file", path).Int("rows", n).Msg("import ok")
		}(f)
	}

	wg.Wait()
	if n := failed.Load(); n > 0 {
		log.Error().Int32("failed", n).Int("files", len(files)).Msg("ingestion finished with failures")
		stop()
		db.Close()
		os.Exit(1)
	}
	log.Info().Int("files", len(files)).Msg("ingestion completed")
}
