package knowledgegraph

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	allNodeTypes = []string{"Person", "Company", "City", "Workspace", "Amenity", "Provider"}
	allRelTypes  = []string{"WORKS_FOR", "LIVES_IN", "GOES_TO", "PROVIDES", "HAS", "IS_IN"}
)

func expectSchemaAndCleanup(mockPool pgxmock.PgxPoolIface) {
	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS nodes")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mockPool.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS edges")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mockPool.ExpectExec(regexp.QuoteMeta("DELETE FROM edges")).
		WithArgs(allRelTypes).
		WillReturnResult(pgxmock.NewResult("DELETE", 12))
	mockPool.ExpectExec(regexp.QuoteMeta("DELETE FROM nodes")).
		WithArgs(allNodeTypes, StatusGenerated).
		WillReturnResult(pgxmock.NewResult("DELETE", 40))
}

func TestPostgresKGWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("should load nodes and edges in one transaction", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		ds := testDataset(t, 40)
		nodeCount := int64(len(ds.Persons) + len(ds.Companies) + len(ds.Cities) + len(ds.Workspaces) + len(ds.Amenities) + len(ds.Providers))
		edgeCount := int64(len(ds.WorksFor) + len(ds.LivesIn) + len(ds.GoesTo) + len(ds.Provides) + len(ds.Has) + len(ds.IsIn))

		expectSchemaAndCleanup(mockPool)
		mockPool.ExpectCopyFrom(pgx.Identifier{"nodes"}, nodeColumns).WillReturnResult(nodeCount)
		mockPool.ExpectCopyFrom(pgx.Identifier{"edges"}, edgeColumns).WillReturnResult(edgeCount)
		mockPool.ExpectCommit()

		kg := NewPostgresKG(mockPool, zaptest.NewLogger(t))
		require.NoError(t, kg.Write(ctx, ds))
		assert.NoError(t, mockPool.ExpectationsWereMet())
		assert.Equal(t, "postgres", kg.Name())
	})

	t.Run("should roll back when a copy fails", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		copyErr := errors.New("connection reset")
		expectSchemaAndCleanup(mockPool)
		mockPool.ExpectCopyFrom(pgx.Identifier{"nodes"}, nodeColumns).WillReturnResult(1)
		mockPool.ExpectCopyFrom(pgx.Identifier{"edges"}, edgeColumns).WillReturnError(copyErr)
		mockPool.ExpectRollback()

		err = NewPostgresKG(mockPool, nil).Write(ctx, testDataset(t, 40))
		require.Error(t, err)
		assert.ErrorIs(t, err, copyErr)
		assert.Contains(t, err.Error(), "failed to copy edges")
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("should surface a failure to begin", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		beginErr := errors.New("too many connections")
		mockPool.ExpectBegin().WillReturnError(beginErr)

		err = NewPostgresKG(mockPool, nil).Write(ctx, testDataset(t, 10))
		assert.ErrorIs(t, err, beginErr)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("should roll back when the schema cannot be created", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		ddlErr := errors.New("permission denied for schema public")
		mockPool.ExpectBegin()
		mockPool.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS nodes")).WillReturnError(ddlErr)
		mockPool.ExpectRollback()

		err = NewPostgresKG(mockPool, nil).Write(ctx, testDataset(t, 10))
		assert.ErrorIs(t, err, ddlErr)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresKGRows(t *testing.T) {
	t.Parallel()
	ds := testDataset(t, 20)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	kg := NewPostgresKG(nil, nil)

	nodes, err := kg.nodeRows(nodeTables(ds), now)
	require.NoError(t, err)
	require.Len(t, nodes, 20+2+20+1+10+5)

	first := nodes[0]
	require.Len(t, first, len(nodeColumns))
	assert.Equal(t, "Person:0", first[0])
	assert.Equal(t, "Person", first[1])
	assert.Equal(t, ds.Persons[0].Name, first[2])
	assert.Equal(t, StatusGenerated, first[3])
	var props map[string]any
	require.NoError(t, json.Unmarshal(first[4].([]byte), &props))
	assert.EqualValues(t, ds.Persons[0].Age, props["age"])
	assert.Equal(t, now, first[5])

	edges, err := kg.edgeRows(edgeTables(ds), now)
	require.NoError(t, err)
	require.NotEmpty(t, edges)
	assert.Equal(t, "WORKS_FOR:0", edges[0][0])
	assert.Equal(t, "Person:0", edges[0][1])
	assert.Equal(t, NodeID("Company", ds.WorksFor[0].To), edges[0][2])
	assert.Equal(t, "WORKS_FOR", edges[0][3])
}
