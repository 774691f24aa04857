package knowledgegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/graphgen/api/schemas"
	"github.com/xkilldash9x/graphgen/internal/generator"
	"github.com/xkilldash9x/graphgen/internal/random"
	"go.uber.org/zap/zaptest"
)

// testDataset generates a reproducible dataset for loader tests.
func testDataset(t *testing.T, scale int) *schemas.Dataset {
	t.Helper()
	ds, err := generator.New(random.New(8), zaptest.NewLogger(t)).Generate(scale)
	require.NoError(t, err)
	return ds
}

func TestIdentifiers(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Workspace:3", NodeID(schemas.NodeWorkspace, 3))
	assert.Equal(t, "IS_IN:0", EdgeID(schemas.RelationshipIsIn, 0))
}

func TestNodeTables(t *testing.T) {
	t.Parallel()
	ds := testDataset(t, 20)

	tables := nodeTables(ds)
	require.Len(t, tables, 6)

	byType := map[schemas.NodeType]nodeTable{}
	for _, nt := range tables {
		byType[nt.Type] = nt
		assert.Len(t, nt.Records, ds.NodeCount(nt.Type))
	}

	ws := byType[schemas.NodeWorkspace].Records[0]
	assert.Equal(t, "Workspace:0", ws.ID)
	assert.Equal(t, "Address1", ws.Label, "workspaces are labeled by address")
	assert.Equal(t, ds.Workspaces[0].UUID, ws.Properties["uuid"])

	city := byType[schemas.NodeCity].Records[19]
	assert.Equal(t, "City:19", city.ID)
	assert.Equal(t, "Portland", city.Label)
	assert.Equal(t, 19, city.Properties["id"])
}

func TestEdgeTables(t *testing.T) {
	t.Parallel()
	ds := testDataset(t, 40)

	tables := edgeTables(ds)
	require.Len(t, tables, 6)

	for _, et := range tables {
		records := et.records()
		require.Len(t, records, len(ds.Edges(et.Spec.Relationship)))
		if len(records) == 0 {
			continue
		}
		e := et.Edges[0]
		assert.Equal(t, NodeID(et.Spec.From, e.From), records[0].From)
		assert.Equal(t, NodeID(et.Spec.To, e.To), records[0].To)
		assert.Equal(t, e.From, records[0].Properties[et.Spec.Columns[0]])
		assert.Equal(t, e.To, records[0].Properties[et.Spec.Columns[1]])
	}

	// PROVIDES points from the provider to the workspace.
	provides := tables[3]
	require.Equal(t, schemas.RelationshipProvides, provides.Spec.Relationship)
	assert.Equal(t, NodeID(schemas.NodeProvider, ds.Provides[1].From), provides.records()[1].From)
	assert.Equal(t, "Workspace:1", provides.records()[1].To)
}
