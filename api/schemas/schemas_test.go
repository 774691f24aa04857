package schemas_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/graphgen/api/schemas"
)

// -- Test Helpers --

// getTestDataset returns a tiny hand-built dataset with one row in every table.
func getTestDataset(t *testing.T) *schemas.Dataset {
	t.Helper()
	return &schemas.Dataset{
		Persons:    []schemas.Person{{ID: 0, Name: "Ada Lovelace", Age: 36, Gender: "female", Role: "Engineer"}},
		Companies:  []schemas.Company{{ID: 0, Name: "Company1", Industry: "Tech", Size: 1}},
		Cities:     []schemas.City{{ID: 0, Name: "New York"}},
		Workspaces: []schemas.Workspace{{ID: 0, UUID: "7d444840-9dc0-11d1-b245-5ffdce74fad2", Address: "Address1", Capacity: 42}},
		Amenities:  []schemas.Amenity{{ID: 0, Name: "coffee machine"}},
		Providers:  []schemas.Provider{{ID: 0, Name: "WeWork"}},
		WorksFor:   []schemas.Edge{{From: 0, To: 0}},
		LivesIn:    []schemas.Edge{{From: 0, To: 0}},
		GoesTo:     []schemas.Edge{{From: 0, To: 0}},
		Provides:   []schemas.Edge{{From: 0, To: 0}},
		Has:        []schemas.Edge{{From: 0, To: 0}},
		IsIn:       []schemas.Edge{{From: 0, To: 0}},
	}
}

// -- Test Cases --

// TestConstants guards the literal values that end up in file names and graph labels.
func TestConstants(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		constant interface{}
		expected string
	}{
		{"NodePerson", schemas.NodePerson, "Person"},
		{"NodeCompany", schemas.NodeCompany, "Company"},
		{"NodeCity", schemas.NodeCity, "City"},
		{"NodeWorkspace", schemas.NodeWorkspace, "Workspace"},
		{"NodeAmenity", schemas.NodeAmenity, "Amenity"},
		{"NodeProvider", schemas.NodeProvider, "Provider"},
		{"RelationshipWorksFor", schemas.RelationshipWorksFor, "WORKS_FOR"},
		{"RelationshipLivesIn", schemas.RelationshipLivesIn, "LIVES_IN"},
		{"RelationshipGoesTo", schemas.RelationshipGoesTo, "GOES_TO"},
		{"RelationshipProvides", schemas.RelationshipProvides, "PROVIDES"},
		{"RelationshipHas", schemas.RelationshipHas, "HAS"},
		{"RelationshipIsIn", schemas.RelationshipIsIn, "IS_IN"},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, fmt.Sprintf("%v", tt.constant))
		})
	}
}

func TestTableSpecs(t *testing.T) {
	t.Parallel()

	type table struct {
		File    string
		Columns []string
	}
	expected := []table{
		{"NODES_Person.csv", []string{"id", "name", "age", "gender", "role"}},
		{"NODES_Company.csv", []string{"id", "name", "industry", "size"}},
		{"NODES_City.csv", []string{"id", "name"}},
		{"NODES_Workspace.csv", []string{"id", "uuid", "address", "capacity"}},
		{"NODES_Amenity.csv", []string{"id", "name"}},
		{"NODES_Provider.csv", []string{"id", "name"}},
		{"EDGES_WORKS_FOR.csv", []string{"person_id", "company_id"}},
		{"EDGES_LIVES_IN.csv", []string{"person_id", "city_id"}},
		{"EDGES_GOES_TO.csv", []string{"person_id", "workspace_id"}},
		{"EDGES_PROVIDES.csv", []string{"provider_id", "workspace_id"}},
		{"EDGES_HAS.csv", []string{"workspace_id", "amenity_id"}},
		{"EDGES_IS_IN.csv", []string{"workspace_id", "city_id"}},
	}

	specs := schemas.TableSpecs()
	var got []table
	for _, spec := range specs {
		got = append(got, table{File: spec.FileName(), Columns: spec.Columns})
		if spec.Kind == schemas.KindEdge {
			assert.NotEmpty(t, spec.From, spec.FileName())
			assert.NotEmpty(t, spec.To, spec.FileName())
		}
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("TableSpecs() mismatch (-want +got):\n%s", diff)
	}

	t.Run("should return a fresh slice on every call", func(t *testing.T) {
		t.Parallel()
		a := schemas.TableSpecs()
		a[0].Columns[0] = "mutated"
		b := schemas.TableSpecs()
		assert.Equal(t, "id", b[0].Columns[0])
	})
}

func TestDatasetTables(t *testing.T) {
	t.Parallel()
	ds := getTestDataset(t)

	tables := ds.Tables()
	require.Len(t, tables, 12)

	for _, table := range tables {
		require.Len(t, table.Rows, 1, table.FileName())
		assert.Len(t, table.Rows[0], len(table.Columns), "row width must match header for %s", table.FileName())
	}

	// Person rows keep typed cells in column order.
	assert.Equal(t, []any{0, "Ada Lovelace", 36, "female", "Engineer"}, tables[0].Rows[0])
	assert.Equal(t, []any{0, "7d444840-9dc0-11d1-b245-5ffdce74fad2", "Address1", 42}, tables[3].Rows[0])
	assert.Equal(t, []any{0, 0}, tables[6].Rows[0])
}

func TestDatasetAccessors(t *testing.T) {
	t.Parallel()
	ds := getTestDataset(t)

	for _, spec := range schemas.TableSpecs() {
		if spec.Kind == schemas.KindNode {
			assert.Equal(t, 1, ds.NodeCount(spec.Node), spec.Name())
			continue
		}
		assert.Len(t, ds.Edges(spec.Relationship), 1, spec.Name())
	}

	assert.Zero(t, ds.NodeCount("Unknown"))
	assert.Nil(t, ds.Edges("UNKNOWN"))
}

// TestStructJSONTags verifies the json tags used when node properties are serialized
// for the graph database loaders.
func TestStructJSONTags(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name         string
		structRef    interface{}
		expectedTags map[string]string
	}{
		{"Person", schemas.Person{}, map[string]string{"ID": "id", "Name": "name", "Age": "age", "Gender": "gender", "Role": "role"}},
		{"Company", schemas.Company{}, map[string]string{"ID": "id", "Name": "name", "Industry": "industry", "Size": "size"}},
		{"Workspace", schemas.Workspace{}, map[string]string{"ID": "id", "UUID": "uuid", "Address": "address", "Capacity": "capacity"}},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			typ := reflect.TypeOf(tt.structRef)
			for field, tag := range tt.expectedTags {
				f, ok := typ.FieldByName(field)
				require.True(t, ok, "field %s missing", field)
				assert.Equal(t, tag, f.Tag.Get("json"))
			}
		})
	}
}
