package main

import (
	"context"
	"os"
	"strings"

	"github.com/sngm3741/secucheck/api/internal/config"
	evalapp "github.com/sngm3741/secucheck/api/internal/evaluation/application"
	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/idgen"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/observability"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/storage"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "secucheck",
	Short:        "Personal digital security self-assessment",
	Long:         "secucheck scores five security habits from 0 to 100, suggests improvements and keeps a history of past evaluations.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("store", "", "Store driver: file, memory, sqlite, postgres or mongo (overrides STORE_DRIVER)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory of the file store (overrides DATA_DIR)")
	rootCmd.PersistentFlags().String("id-strategy", "", "Id generator for commands that write: snowflake or uuid (overrides ID_STRATEGY, default uuid)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(seedCmd)
}

// loadConfig applies persistent flag overrides on top of the environment.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if driver, _ := cmd.Flags().GetString("store"); driver != "" {
		cfg.StoreDriver = driver
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	return cfg
}

type services struct {
	commands evalapp.EvaluationCommandService
	queries  evalapp.EvaluationQueryService
	close    func(context.Context) error
}

// openServices opens the configured store and builds both services on it.
func openServices(cmd *cobra.Command) (*services, error) {
	cfg := loadConfig(cmd)

	store, err := storage.Open(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	flagStrategy, _ := cmd.Flags().GetString("id-strategy")
	ids, err := idgen.New(cliIDStrategy(flagStrategy, os.Getenv("ID_STRATEGY")), cfg.SnowflakeNode)
	if err != nil {
		_ = store.Close(context.Background())
		return nil, err
	}

	recorder := observability.NewLogRecorder(cfg.ServerLog)
	policy := domain.ScoringPolicy{InvertPublicWifi: cfg.InvertPublicWifi}
	return &services{
		commands: evalapp.NewEvaluationCommandService(store.Repository, ids, recorder, evalapp.WithScoringPolicy(policy)),
		queries:  evalapp.NewEvaluationQueryService(store.Repository, recorder),
		close:    store.Close,
	}, nil
}

// cliIDStrategy picks the generator for one-shot commands. They share stores
// with a running server whose snowflake node id is usually the default, so
// they use random UUIDs unless a strategy is asked for explicitly.
func cliIDStrategy(flagValue, envValue string) string {
	if v := strings.ToLower(strings.TrimSpace(flagValue)); v != "" {
		return v
	}
	if v := strings.ToLower(strings.TrimSpace(envValue)); v != "" {
		return v
	}
	return "uuid"
}
