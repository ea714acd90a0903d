package main

import (
	"context"
	"log"

	"github.com/sngm3741/secucheck/api/internal/config"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/idgen"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/storage"
	"github.com/sngm3741/secucheck/api/internal/server"
)

func main() {
	cfg := config.Load()

	store, err := storage.Open(context.Background(), cfg)
	if err != nil {
		cfg.ServerLog.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}

	ids, err := idgen.New(cfg.IDStrategy, cfg.SnowflakeNode)
	if err != nil {
		cfg.ServerLog.Fatalf("failed to build id generator: %v", err)
	}

	app := server.New(cfg, server.Dependencies{
		Repository: store.Repository,
		Pinger:     store.Repository,
		IDs:        ids,
		Close:      store.Close,
	})
	if err := app.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
