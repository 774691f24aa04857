package knowledgegraph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/xkilldash9x/graphgen/api/schemas"
	"go.uber.org/zap"
)

// CypherRunner executes parameterized Cypher statements. Memgraph rejects index
// changes inside explicit transactions, so schema and cleanup statements go through
// RunAutoCommit while data batches use Run.
type CypherRunner interface {
	// Run executes cypher in a managed write transaction.
	Run(ctx context.Context, cypher string, params map[string]any) error
	// RunAutoCommit executes cypher as an implicit, auto-committed transaction.
	RunAutoCommit(ctx context.Context, cypher string, params map[string]any) error
}

// BoltRunner runs Cypher against Memgraph (or Neo4j) through the Bolt driver.
type BoltRunner struct {
	driver   neo4j.DriverWithContext
	database string
}

var _ CypherRunner = (*BoltRunner)(nil)

// NewBoltRunner connects to uri and verifies the server is reachable.
func NewBoltRunner(ctx context.Context, uri, username, password, database string) (*BoltRunner, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create bolt driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to %s: %w", uri, err)
	}
	return &BoltRunner{driver: driver, database: database}, nil
}

func (r *BoltRunner) Run(ctx context.Context, cypher string, params map[string]any) error {
	var opts []neo4j.ExecuteQueryConfigurationOption
	if r.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(r.database))
	}
	_, err := neo4j.ExecuteQuery(ctx, r.driver, cypher, params, neo4j.EagerResultTransformer, opts...)
	return err
}

func (r *BoltRunner) RunAutoCommit(ctx context.Context, cypher string, params map[string]any) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: r.database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}

func (r *BoltRunner) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

// MemgraphKG loads a dataset as labeled nodes and typed relationships. Nodes are tagged
// with source_path so a reload replaces exactly the graph that came from the same output.
type MemgraphKG struct {
	runner     CypherRunner
	batchSize  int
	sourcePath string
	log        *zap.Logger
}

var _ schemas.DatasetSink = (*MemgraphKG)(nil)

func NewMemgraphKG(runner CypherRunner, batchSize int, sourcePath string, logger *zap.Logger) *MemgraphKG {
	if logger == nil {
		logger = zap.NewNop()
	}
	if batchSize < 1 {
		batchSize = 1000
	}
	return &MemgraphKG{
		runner:     runner,
		batchSize:  batchSize,
		sourcePath: sourcePath,
		log:        logger.Named("memgraph_kg"),
	}
}

func (m *MemgraphKG) Name() string { return "memgraph" }

func (m *MemgraphKG) Write(ctx context.Context, ds *schemas.Dataset) error {
	nodes := nodeTables(ds)

	for _, t := range nodes {
		if err := m.runner.RunAutoCommit(ctx, fmt.Sprintf("CREATE INDEX ON :%s(id);", t.Type), nil); err != nil {
			return fmt.Errorf("failed to index %s: %w", t.Type, err)
		}
		purge := fmt.Sprintf("MATCH (n:%s) WHERE n.source_path = $source_path DETACH DELETE n;", t.Type)
		if err := m.runner.RunAutoCommit(ctx, purge, map[string]any{"source_path": m.sourcePath}); err != nil {
			return fmt.Errorf("failed to clear %s: %w", t.Type, err)
		}
	}

	for _, t := range nodes {
		rows := make([]any, len(t.Records))
		for i, n := range t.Records {
			row := make(map[string]any, len(n.Properties)+1)
			for k, v := range n.Properties {
				row[k] = v
			}
			row["source_path"] = m.sourcePath
			rows[i] = row
		}
		cypher := fmt.Sprintf("UNWIND $rows AS row MERGE (n:%s {id: row.id, source_path: row.source_path}) SET n += row;", t.Type)
		if err := m.runBatches(ctx, cypher, rows); err != nil {
			return fmt.Errorf("failed to load %s nodes: %w", t.Type, err)
		}
	}

	total := 0
	for _, t := range edgeTables(ds) {
		rows := make([]any, len(t.Edges))
		for i, e := range t.records() {
			rows[i] = map[string]any{"from": t.Edges[i].From, "to": t.Edges[i].To, "props": e.Properties}
		}
		cypher := fmt.Sprintf(
			"UNWIND $rows AS row MATCH (a:%s {id: row.from, source_path: $source_path}), (b:%s {id: row.to, source_path: $source_path}) "+
				"CREATE (a)-[e:%s]->(b) SET e = row.props, e.source_path = $source_path;",
			t.Spec.From, t.Spec.To, t.Spec.Relationship)
		if err := m.runBatches(ctx, cypher, rows); err != nil {
			return fmt.Errorf("failed to load %s edges: %w", t.Spec.Relationship, err)
		}
		total += len(rows)
	}

	m.log.Info("Dataset loaded into Memgraph", zap.String("source_path", m.sourcePath), zap.Int("edges", total))
	return nil
}

// runBatches runs cypher once per batch of at most batchSize rows.
func (m *MemgraphKG) runBatches(ctx context.Context, cypher string, rows []any) error {
	for start := 0; start < len(rows); start += m.batchSize {
		end := min(start+m.batchSize, len(rows))
		params := map[string]any{"rows": rows[start:end], "source_path": m.sourcePath}
		if err := m.runner.Run(ctx, cypher, params); err != nil {
			return err
		}
	}
	return nil
}
