// File: cmd/factory.go
package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xkilldash9x/graphgen/api/schemas"
	"github.com/xkilldash9x/graphgen/internal/config"
	"github.com/xkilldash9x/graphgen/internal/dataset"
	"github.com/xkilldash9x/graphgen/internal/knowledgegraph"
	"go.uber.org/zap"
)

// Components holds the sinks a run writes to and the connections behind them.
type Components struct {
	// Sinks run in order; the CSV writer is always first.
	Sinks []schemas.DatasetSink

	DBPool *pgxpool.Pool
	Bolt   *knowledgegraph.BoltRunner

	logger *zap.Logger
}

// Shutdown releases every connection the factory opened. Safe on partially built components.
func (c *Components) Shutdown(ctx context.Context) {
	logger := c.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if c.Bolt != nil {
		if err := c.Bolt.Close(ctx); err != nil {
			logger.Warn("Error closing Memgraph driver.", zap.Error(err))
		} else {
			logger.Debug("Memgraph driver closed.")
		}
	}

	if c.DBPool != nil {
		c.DBPool.Close()
		logger.Debug("Database connection pool closed.")
	}
}

// ComponentFactory creates the set of sinks a generation run needs.
type ComponentFactory interface {
	Create(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error)
}

type concreteFactory struct{}

// NewComponentFactory creates the production factory.
func NewComponentFactory() ComponentFactory {
	return &concreteFactory{}
}

func (f *concreteFactory) Create(ctx context.Context, cfg *config.Config, logger *zap.Logger) (components *Components, err error) {
	components = &Components{logger: logger}

	defer func() {
		if err != nil {
			logger.Warn("Initialization failed, shutting down partially created components.", zap.Error(err))
			components.Shutdown(context.WithoutCancel(ctx))
			components = nil
		}
	}()

	// 1. CSV files
	writer := dataset.NewCSVWriter(cfg.Output.Dir, logger).WithWorkers(cfg.Output.Workers)
	if cfg.Output.Manifest {
		writer = writer.WithManifest(cfg.Generator.Seed)
	}
	components.Sinks = append(components.Sinks, writer)

	// 2. Postgres knowledge graph tables
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return components, fmt.Errorf("failed to create database connection pool: %w", err)
		}
		components.DBPool = pool

		if err := pool.Ping(ctx); err != nil {
			return components, fmt.Errorf("failed to ping database: %w", err)
		}
		components.Sinks = append(components.Sinks, knowledgegraph.NewPostgresKG(pool, logger))
		logger.Debug("Postgres loader initialized.")
	}

	// 3. Memgraph over Bolt
	if cfg.Memgraph.URI != "" {
		runner, err := knowledgegraph.NewBoltRunner(ctx, cfg.Memgraph.URI, cfg.Memgraph.Username, cfg.Memgraph.Password, cfg.Memgraph.Database)
		if err != nil {
			return components, err
		}
		components.Bolt = runner

		sourcePath, err := filepath.Abs(writer.Dir())
		if err != nil {
			return components, fmt.Errorf("failed to resolve output directory: %w", err)
		}
		components.Sinks = append(components.Sinks, knowledgegraph.NewMemgraphKG(runner, cfg.Memgraph.BatchSize, sourcePath, logger))
		logger.Debug("Memgraph loader initialized.", zap.String("source_path", sourcePath))
	}

	return components, nil
}
