package storage

import (
	"context"
	"fmt"

	evalapp "github.com/sngm3741/secucheck/api/internal/evaluation/application"
	"github.com/sngm3741/secucheck/api/internal/config"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/file"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/memory"
	mongodoc "github.com/sngm3741/secucheck/api/internal/infrastructure/mongo"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/sqlstore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository is what every backend offers.
type Repository interface {
	evalapp.EvaluationRepository
	evalapp.Pinger
}

// Store is an opened backend plus the hook that releases it.
type Store struct {
	Driver     string
	Repository Repository
	Close      func(context.Context) error
}

func noopClose(context.Context) error { return nil }

// Open selects the backend named by cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()

	switch cfg.StoreDriver {
	case "", "file":
		repo, err := file.NewEvaluationRepository(cfg.DataDir, cfg.ServerLog)
		if err != nil {
			return nil, err
		}
		return &Store{Driver: "file", Repository: repo, Close: noopClose}, nil

	case "memory":
		return &Store{Driver: "memory", Repository: memory.NewEvaluationRepository(), Close: noopClose}, nil

	case string(sqlstore.DriverSQLite), string(sqlstore.DriverPostgres):
		driver := sqlstore.Driver(cfg.StoreDriver)
		db, err := sqlstore.Open(ctx, driver, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", driver, err)
		}
		return &Store{
			Driver:     cfg.StoreDriver,
			Repository: sqlstore.NewEvaluationRepository(db, driver, cfg.ServerLog),
			Close:      func(context.Context) error { return db.Close() },
		}, nil

	case "mongo":
		clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
		client, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		repo := mongodoc.NewEvaluationRepository(client.Database(cfg.MongoDatabase), cfg.EvaluationCollection, cfg.ServerLog)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &Store{Driver: "mongo", Repository: repo, Close: client.Disconnect}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}
}
