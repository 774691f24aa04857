package schemas

import "fmt"

// TableKind separates node tables from edge tables. The value doubles as the
// file name prefix.
type TableKind string

const (
	KindNode TableKind = "NODES"
	KindEdge TableKind = "EDGES"
)

// TableSpec describes the shape of one output table.
type TableSpec struct {
	Kind         TableKind
	Node         NodeType         // set for node tables
	Relationship RelationshipType // set for edge tables
	From         NodeType         // edge source table
	To           NodeType         // edge target table
	Columns      []string
}

// Name returns the node type or relationship type the table holds.
func (s TableSpec) Name() string {
	if s.Kind == KindEdge {
		return string(s.Relationship)
	}
	return string(s.Node)
}

// FileName returns the on-disk name, e.g. NODES_Person.csv or EDGES_WORKS_FOR.csv.
func (s TableSpec) FileName() string {
	return fmt.Sprintf("%s_%s.csv", s.Kind, s.Name())
}

// Table is a materialized table: its spec plus rows of int or string cells in column order.
type Table struct {
	TableSpec
	Rows [][]any
}

func nodeSpec(n NodeType, cols ...string) TableSpec {
	return TableSpec{Kind: KindNode, Node: n, Columns: cols}
}

func edgeSpec(r RelationshipType, from, to NodeType, cols ...string) TableSpec {
	return TableSpec{Kind: KindEdge, Relationship: r, From: from, To: to, Columns: cols}
}

// TableSpecs returns the twelve output tables in write order. A fresh slice is
// returned on every call.
func TableSpecs() []TableSpec {
	return []TableSpec{
		nodeSpec(NodePerson, "id", "name", "age", "gender", "role"),
		nodeSpec(NodeCompany, "id", "name", "industry", "size"),
		nodeSpec(NodeCity, "id", "name"),
		nodeSpec(NodeWorkspace, "id", "uuid", "address", "capacity"),
		nodeSpec(NodeAmenity, "id", "name"),
		nodeSpec(NodeProvider, "id", "name"),
		edgeSpec(RelationshipWorksFor, NodePerson, NodeCompany, "person_id", "company_id"),
		edgeSpec(RelationshipLivesIn, NodePerson, NodeCity, "person_id", "city_id"),
		edgeSpec(RelationshipGoesTo, NodePerson, NodeWorkspace, "person_id", "workspace_id"),
		edgeSpec(RelationshipProvides, NodeProvider, NodeWorkspace, "provider_id", "workspace_id"),
		edgeSpec(RelationshipHas, NodeWorkspace, NodeAmenity, "workspace_id", "amenity_id"),
		edgeSpec(RelationshipIsIn, NodeWorkspace, NodeCity, "workspace_id", "city_id"),
	}
}

// Dataset is one complete generated graph held in memory.
type Dataset struct {
	Persons    []Person
	Companies  []Company
	Cities     []City
	Workspaces []Workspace
	Amenities  []Amenity
	Providers  []Provider

	WorksFor []Edge // person -> company
	LivesIn  []Edge // person -> city
	GoesTo   []Edge // person -> workspace
	Provides []Edge // provider -> workspace
	Has      []Edge // workspace -> amenity
	IsIn     []Edge // workspace -> city
}

// NodeCount returns the number of rows in the node table of type n.
func (d *Dataset) NodeCount(n NodeType) int {
	switch n {
	case NodePerson:
		return len(d.Persons)
	case NodeCompany:
		return len(d.Companies)
	case NodeCity:
		return len(d.Cities)
	case NodeWorkspace:
		return len(d.Workspaces)
	case NodeAmenity:
		return len(d.Amenities)
	case NodeProvider:
		return len(d.Providers)
	}
	return 0
}

// Edges returns the edge rows for relationship r, or nil for an unknown type.
func (d *Dataset) Edges(r RelationshipType) []Edge {
	switch r {
	case RelationshipWorksFor:
		return d.WorksFor
	case RelationshipLivesIn:
		return d.LivesIn
	case RelationshipGoesTo:
		return d.GoesTo
	case RelationshipProvides:
		return d.Provides
	case RelationshipHas:
		return d.Has
	case RelationshipIsIn:
		return d.IsIn
	}
	return nil
}

// Tables flattens the dataset into its twelve tables, in TableSpecs order.
func (d *Dataset) Tables() []Table {
	specs := TableSpecs()
	tables := make([]Table, 0, len(specs))
	for _, spec := range specs {
		tables = append(tables, Table{TableSpec: spec, Rows: d.rows(spec)})
	}
	return tables
}

func (d *Dataset) rows(spec TableSpec) [][]any {
	if spec.Kind == KindEdge {
		edges := d.Edges(spec.Relationship)
		rows := make([][]any, len(edges))
		for i, e := range edges {
			rows[i] = []any{e.From, e.To}
		}
		return rows
	}

	var rows [][]any
	switch spec.Node {
	case NodePerson:
		for _, p := range d.Persons {
			rows = append(rows, []any{p.ID, p.Name, p.Age, p.Gender, p.Role})
		}
	case NodeCompany:
		for _, c := range d.Companies {
			rows = append(rows, []any{c.ID, c.Name, c.Industry, c.Size})
		}
	case NodeCity:
		for _, c := range d.Cities {
			rows = append(rows, []any{c.ID, c.Name})
		}
	case NodeWorkspace:
		for _, w := range d.Workspaces {
			rows = append(rows, []any{w.ID, w.UUID, w.Address, w.Capacity})
		}
	case NodeAmenity:
		for _, a := range d.Amenities {
			rows = append(rows, []any{a.ID, a.Name})
		}
	case NodeProvider:
		for _, p := range d.Providers {
			rows = append(rows, []any{p.ID, p.Name})
		}
	}
	return rows
}
