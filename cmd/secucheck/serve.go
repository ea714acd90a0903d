package main

import (
	"github.com/sngm3741/secucheck/api/internal/infrastructure/idgen"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/storage"
	"github.com/sngm3741/secucheck/api/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		store, err := storage.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		ids, err := idgen.New(cfg.IDStrategy, cfg.SnowflakeNode)
		if err != nil {
			return err
		}

		return server.New(cfg, server.Dependencies{
			Repository: store.Repository,
			Pinger:     store.Repository,
			IDs:        ids,
			Close:      store.Close,
		}).Run()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides HTTP_ADDR)")
}
