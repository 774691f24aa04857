// internal/knowledgegraph/postgres_kg.go

package knowledgegraph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xkilldash9x/graphgen/api/schemas"
	"go.uber.org/zap"
)

// DBPool abstracts the pgxpool.Pool methods the loader needs so tests can use pgxmock.
type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ DBPool = (*pgxpool.Pool)(nil)

var (
	nodeColumns = []string{"id", "type", "label", "status", "properties", "created_at", "last_seen"}
	edgeColumns = []string{"id", "from_node", "to_node", "type", "label", "properties", "created_at", "last_seen"}
)

const (
	createNodesTable = `
		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			label TEXT,
			status TEXT,
			properties JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			last_seen TIMESTAMPTZ NOT NULL
		);`
	createEdgesTable = `
		CREATE TABLE IF NOT EXISTS edges (
			id TEXT PRIMARY KEY,
			from_node TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
			to_node TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			label TEXT,
			properties JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			last_seen TIMESTAMPTZ NOT NULL
		);`
	deleteEdges = `DELETE FROM edges WHERE type = ANY($1);`
	deleteNodes = `DELETE FROM nodes WHERE type = ANY($1) AND status = $2;`
)

// PostgresKG loads a dataset into the knowledge graph's nodes and edges tables. Every
// load replaces the rows of the previous one in a single transaction.
type PostgresKG struct {
	pool DBPool
	log  *zap.Logger
	now  func() time.Time
}

var _ schemas.DatasetSink = (*PostgresKG)(nil)

// NewPostgresKG wraps a pool; a real pgxpool or a mock.
func NewPostgresKG(pool DBPool, logger *zap.Logger) *PostgresKG {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresKG{pool: pool, log: logger.Named("postgres_kg"), now: time.Now}
}

func (p *PostgresKG) Name() string { return "postgres" }

// Write replaces previously loaded generated rows with ds.
func (p *PostgresKG) Write(ctx context.Context, ds *schemas.Dataset) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := p.load(ctx, tx, ds); err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			p.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (p *PostgresKG) load(ctx context.Context, tx pgx.Tx, ds *schemas.Dataset) error {
	for _, ddl := range []string{createNodesTable, createEdgesTable} {
		if _, err := tx.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	nodes, edges := nodeTables(ds), edgeTables(ds)
	var nodeTypes, relTypes []string
	for _, t := range nodes {
		nodeTypes = append(nodeTypes, string(t.Type))
	}
	for _, t := range edges {
		relTypes = append(relTypes, string(t.Spec.Relationship))
	}

	if _, err := tx.Exec(ctx, deleteEdges, relTypes); err != nil {
		return fmt.Errorf("failed to clear previous edges: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteNodes, nodeTypes, StatusGenerated); err != nil {
		return fmt.Errorf("failed to clear previous nodes: %w", err)
	}

	now := p.now()
	nodeRows, err := p.nodeRows(nodes, now)
	if err != nil {
		return err
	}
	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"nodes"}, nodeColumns, pgx.CopyFromRows(nodeRows))
	if err != nil {
		return fmt.Errorf("failed to copy nodes: %w", err)
	}
	p.log.Debug("Nodes copied", zap.Int64("rows", copied))

	edgeRows, err := p.edgeRows(edges, now)
	if err != nil {
		return err
	}
	copied, err = tx.CopyFrom(ctx, pgx.Identifier{"edges"}, edgeColumns, pgx.CopyFromRows(edgeRows))
	if err != nil {
		return fmt.Errorf("failed to copy edges: %w", err)
	}
	p.log.Info("Dataset loaded into Postgres", zap.Int("nodes", len(nodeRows)), zap.Int64("edges", copied))
	return nil
}

func (p *PostgresKG) nodeRows(tables []nodeTable, now time.Time) ([][]any, error) {
	var rows [][]any
	for _, t := range tables {
		for _, n := range t.Records {
			props, err := json.Marshal(n.Properties)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal node properties: %w", err)
			}
			rows = append(rows, []any{n.ID, string(n.Type), n.Label, StatusGenerated, props, now, now})
		}
	}
	return rows, nil
}

func (p *PostgresKG) edgeRows(tables []edgeTable, now time.Time) ([][]any, error) {
	var rows [][]any
	for _, t := range tables {
		for _, e := range t.records() {
			props, err := json.Marshal(e.Properties)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal edge properties: %w", err)
			}
			rows = append(rows, []any{e.ID, e.From, e.To, string(e.Type), string(e.Type), props, now, now})
		}
	}
	return rows, nil
}
