package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventory-tracker/pkg/config"
)

// store repositorios y runner del backend elegido por DB_DRIVER.
type store struct {
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
	txRunner    inventory.TxRunner
	close       func()
}

type storeOpener func(ctx context.Context, cfg config.DBConfig) (*store, error)

func openStore(ctx context.Context, cfg config.DBConfig) (*store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &store{
			productRepo: postgres.NewProductRepository(pool),
			logRepo:     postgres.NewInventoryLogRepository(pool),
			txRunner:    postgres.NewTxRunner(pool),
			close:       pool.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("conexión a SQLite: %w", err)
		}
		return &store{
			productRepo: sqlite.NewProductRepository(db),
			logRepo:     sqlite.NewInventoryLogRepository(db),
			txRunner:    sqlite.NewTxRunner(db),
			close:       func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.Driver)
	}
}
