package schemas

// NodeType defines the categories of entities in the generated graph.
type NodeType string

// RelationshipType defines the nature of the connection between nodes.
type RelationshipType string

// Constants for Node Types (Entities)
const (
	NodePerson    NodeType = "Person"
	NodeCompany   NodeType = "Company"
	NodeCity      NodeType = "City"
	NodeWorkspace NodeType = "Workspace"
	NodeAmenity   NodeType = "Amenity"
	NodeProvider  NodeType = "Provider"
)

// Constants for Relationship Types (Edges)
const (
	RelationshipWorksFor RelationshipType = "WORKS_FOR"
	RelationshipLivesIn  RelationshipType = "LIVES_IN"
	RelationshipGoesTo   RelationshipType = "GOES_TO"
	RelationshipProvides RelationshipType = "PROVIDES"
	RelationshipHas      RelationshipType = "HAS"
	RelationshipIsIn     RelationshipType = "IS_IN"
)

// -- Node Models --
// Every node is identified by a zero-based integer id that equals its position in its table.

type Person struct {
	ID     int    `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Age    int    `json:"age" yaml:"age"`
	Gender string `json:"gender" yaml:"gender"`
	Role   string `json:"role" yaml:"role"`
}

// Company.Size is derived from WORKS_FOR edges once they exist.
type Company struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Industry string `json:"industry" yaml:"industry"`
	Size     int    `json:"size" yaml:"size"`
}

type City struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type Workspace struct {
	ID       int    `json:"id" yaml:"id"`
	UUID     string `json:"uuid" yaml:"uuid"`
	Address  string `json:"address" yaml:"address"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

type Amenity struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type Provider struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Edge is a single relationship row: a pair of foreign keys. Which tables the keys
// point into is fixed by the edge table the row belongs to.
type Edge struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}
