package knowledgegraph

import (
	"fmt"

	"github.com/xkilldash9x/graphgen/api/schemas"
)

// StatusGenerated marks rows the loaders write, as opposed to rows curated by hand.
const StatusGenerated = "generated"

// NodeID returns the graph-wide identifier of a node, e.g. "Person:12". Table ids are
// only unique per type, so the type is part of the key.
func NodeID(t schemas.NodeType, id int) string {
	return fmt.Sprintf("%s:%d", t, id)
}

// EdgeID returns the identifier of the row-th edge of relationship r.
func EdgeID(r schemas.RelationshipType, row int) string {
	return fmt.Sprintf("%s:%d", r, row)
}

type nodeRecord struct {
	ID         string
	Type       schemas.NodeType
	Label      string
	Properties map[string]any
}

type edgeRecord struct {
	ID         string
	From       string
	To         string
	Type       schemas.RelationshipType
	Properties map[string]any
}

// nodeTable groups the records of one node type.
type nodeTable struct {
	Type    schemas.NodeType
	Records []nodeRecord
}

// edgeTable groups the records of one relationship type with its endpoint types.
type edgeTable struct {
	Spec  schemas.TableSpec
	Edges []schemas.Edge
}

func nodeTables(ds *schemas.Dataset) []nodeTable {
	var out []nodeTable
	for _, t := range ds.Tables() {
		if t.Kind != schemas.KindNode {
			continue
		}
		nt := nodeTable{Type: t.Node, Records: make([]nodeRecord, 0, len(t.Rows))}
		for _, row := range t.Rows {
			props := make(map[string]any, len(t.Columns))
			for i, col := range t.Columns {
				props[col] = row[i]
			}
			nt.Records = append(nt.Records, nodeRecord{
				ID:         NodeID(t.Node, row[0].(int)),
				Type:       t.Node,
				Label:      displayLabel(props),
				Properties: props,
			})
		}
		out = append(out, nt)
	}
	return out
}

func edgeTables(ds *schemas.Dataset) []edgeTable {
	var out []edgeTable
	for _, spec := range schemas.TableSpecs() {
		if spec.Kind == schemas.KindEdge {
			out = append(out, edgeTable{Spec: spec, Edges: ds.Edges(spec.Relationship)})
		}
	}
	return out
}

func (t edgeTable) records() []edgeRecord {
	out := make([]edgeRecord, len(t.Edges))
	for i, e := range t.Edges {
		out[i] = edgeRecord{
			ID:   EdgeID(t.Spec.Relationship, i),
			From: NodeID(t.Spec.From, e.From),
			To:   NodeID(t.Spec.To, e.To),
			Type: t.Spec.Relationship,
			Properties: map[string]any{
				t.Spec.Columns[0]: e.From,
				t.Spec.Columns[1]: e.To,
			},
		}
	}
	return out
}

// displayLabel picks the human readable value of a node: its name, or a workspace's address.
func displayLabel(props map[string]any) string {
	for _, key := range []string{"name", "address"} {
		if v, ok := props[key].(string); ok {
			return v
		}
	}
	return ""
}
