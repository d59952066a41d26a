package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"

	"github.com/stashops/depotd/internal/config"
	"github.com/stashops/depotd/internal/domain/containers"
	"github.com/stashops/depotd/internal/domain/deposits"
	"github.com/stashops/depotd/internal/domain/ledger"
	"github.com/stashops/depotd/internal/domain/products"
	"github.com/stashops/depotd/internal/domain/sequence"
	"github.com/stashops/depotd/internal/domain/weekly"
	"github.com/stashops/depotd/internal/infra/db"
	"github.com/stashops/depotd/internal/infra/httpapi"
	"github.com/stashops/depotd/internal/infra/logger"
	"github.com/stashops/depotd/internal/infra/notify"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfgPath := flag.String("config", "config/example.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	var notifier deposits.Notifier = notify.Nop{}
	if cfg.Telegram.Enabled {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AdminChatID, log)
		if err != nil {
			log.Error("telegram init failed", "err", err)
			return
		}
		notifier = tg
	}

	ledgerSvc := ledger.NewService(ledger.NewRepo(pool), log)
	alloc := sequence.NewAllocator(sequence.NewRepo(pool), log, cfg.Deposits.MaxSeqRetries)
	depositsSvc := deposits.NewService(deposits.NewRepo(pool), alloc, notifier, log,
		cfg.Deposits.Folder, cfg.Deposits.ContainerID)

	h := httpapi.NewHandler(log,
		products.NewRepo(pool), containers.NewRepo(pool),
		ledgerSvc, depositsSvc, weekly.NewRepo(pool))

	srv := httpapi.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, cfg.HTTP.AllowedOrigins, h)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
