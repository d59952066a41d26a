package main

import (
	"context"
	"flag"
	"os"

	"github.com/subosito/gotenv"

	"github.com/stashops/depotd/internal/config"
	"github.com/stashops/depotd/internal/domain/ledger"
	"github.com/stashops/depotd/internal/infra/db"
	"github.com/stashops/depotd/internal/infra/logger"
)

// transfer-audit scans the ledger for one-sided transfers. A transfer is
// written as an atomic pair, so any hit here means store-level damage that
// needs an operator: either append the missing side or an offsetting
// movement. Exits non-zero when anything is found.
func main() {
	_ = gotenv.Load()

	cfgPath := flag.String("config", "config/example.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.App.Env)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := ledger.NewRepo(pool)
	orphans, err := repo.UnpairedTransfers(ctx)
	if err != nil {
		log.Error("audit query failed", "err", err)
		os.Exit(1)
	}

	if len(orphans) == 0 {
		log.Info("ledger clean, every transfer is paired")
		return
	}

	for _, m := range orphans {
		log.Warn("one-sided transfer",
			"movement", m.ID, "type", m.Type, "qty", m.Qty,
			"product", m.ProductID, "created_at", m.CreatedAt, "note", m.Note)
	}
	log.Error("partial transfers detected", "count", len(orphans), "err", ledger.ErrPartialTransfer)
	os.Exit(1)
}
