package generator

import (
	"fmt"

	"github.com/xkilldash9x/graphgen/api/schemas"
)

// Violation describes one broken dataset property.
type Violation struct {
	Table   string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Table, v.Message)
}

// Verify checks every structural property a generated dataset guarantees: table
// sizes derived from the person count, dense ids, foreign key ranges, per-row
// cardinalities, company sizes and same-city commutes. All violations are returned.
func Verify(ds *schemas.Dataset) []Violation {
	v := &verifier{ds: ds}

	sizes, err := SizesFor(len(ds.Persons))
	if err != nil {
		v.add("Person", err.Error())
		return v.out
	}
	v.checkCounts(sizes)
	v.checkIDs()
	v.checkReferences()
	v.checkCardinality()
	v.checkCompanySizes()
	v.checkCommutes()
	return v.out
}

type verifier struct {
	ds  *schemas.Dataset
	out []Violation
}

func (v *verifier) add(table, format string, args ...any) {
	v.out = append(v.out, Violation{Table: table, Message: fmt.Sprintf(format, args...)})
}

func (v *verifier) checkCounts(sizes Sizes) {
	want := map[schemas.NodeType]int{
		schemas.NodePerson:    sizes.People,
		schemas.NodeCompany:   sizes.Companies,
		schemas.NodeWorkspace: sizes.Workspaces,
		schemas.NodeCity:      sizes.Cities,
		schemas.NodeAmenity:   sizes.Amenities,
		schemas.NodeProvider:  sizes.Providers,
	}
	for _, spec := range schemas.TableSpecs() {
		if spec.Kind != schemas.KindNode {
			continue
		}
		if got, n := v.ds.NodeCount(spec.Node), want[spec.Node]; got != n {
			v.add(spec.Name(), "expected %d rows, found %d", n, got)
		}
	}

	catalogs := []struct {
		table string
		want  []string
		got   func(i int) string
		n     int
	}{
		{"City", Cities(), func(i int) string { return v.ds.Cities[i].Name }, len(v.ds.Cities)},
		{"Amenity", Amenities(), func(i int) string { return v.ds.Amenities[i].Name }, len(v.ds.Amenities)},
		{"Provider", Providers(), func(i int) string { return v.ds.Providers[i].Name }, len(v.ds.Providers)},
	}
	for _, c := range catalogs {
		for i := 0; i < c.n && i < len(c.want); i++ {
			if c.got(i) != c.want[i] {
				v.add(c.table, "row %d is %q, expected %q", i, c.got(i), c.want[i])
			}
		}
	}
}

func (v *verifier) checkIDs() {
	for _, table := range v.ds.Tables() {
		if table.Kind != schemas.KindNode {
			continue
		}
		for i, row := range table.Rows {
			if id, _ := row[0].(int); id != i {
				v.add(table.Name(), "row %d has id %v", i, row[0])
				break
			}
		}
	}
}

func (v *verifier) checkReferences() {
	for _, spec := range schemas.TableSpecs() {
		if spec.Kind != schemas.KindEdge {
			continue
		}
		fromN, toN := v.ds.NodeCount(spec.From), v.ds.NodeCount(spec.To)
		for i, e := range v.ds.Edges(spec.Relationship) {
			if e.From < 0 || e.From >= fromN {
				v.add(spec.Name(), "row %d: %s %d out of range [0,%d)", i, spec.Columns[0], e.From, fromN)
			}
			if e.To < 0 || e.To >= toN {
				v.add(spec.Name(), "row %d: %s %d out of range [0,%d)", i, spec.Columns[1], e.To, toN)
			}
		}
	}
}

func (v *verifier) checkCardinality() {
	onePer := []struct {
		rel       schemas.RelationshipType
		n         int
		bySource  bool
		ownerName string
	}{
		{schemas.RelationshipWorksFor, len(v.ds.Persons), true, "person"},
		{schemas.RelationshipLivesIn, len(v.ds.Persons), true, "person"},
		{schemas.RelationshipGoesTo, len(v.ds.Persons), true, "person"},
		{schemas.RelationshipIsIn, len(v.ds.Workspaces), true, "workspace"},
		{schemas.RelationshipProvides, len(v.ds.Workspaces), false, "workspace"},
	}
	for _, c := range onePer {
		counts := make([]int, c.n)
		for _, e := range v.ds.Edges(c.rel) {
			owner := e.To
			if c.bySource {
				owner = e.From
			}
			if owner >= 0 && owner < c.n {
				counts[owner]++
			}
		}
		for id, n := range counts {
			if n != 1 {
				v.add(string(c.rel), "%s %d has %d rows, expected exactly 1", c.ownerName, id, n)
			}
		}
	}

	perWorkspace := make(map[int]map[int]int, len(v.ds.Workspaces))
	for _, e := range v.ds.Has {
		if perWorkspace[e.From] == nil {
			perWorkspace[e.From] = map[int]int{}
		}
		perWorkspace[e.From][e.To]++
	}
	for w := range v.ds.Workspaces {
		amenities := perWorkspace[w]
		total := 0
		for a, n := range amenities {
			total += n
			if n > 1 {
				v.add("HAS", "workspace %d lists amenity %d %d times", w, a, n)
			}
		}
		if total < minAmenities || total > maxAmenities {
			v.add("HAS", "workspace %d has %d amenities, expected %d to %d", w, total, minAmenities, maxAmenities)
		}
	}
}

func (v *verifier) checkCompanySizes() {
	counts := map[int]int{}
	for _, e := range v.ds.WorksFor {
		counts[e.To]++
	}
	sum := 0
	for _, c := range v.ds.Companies {
		sum += c.Size
		if c.Size != counts[c.ID] {
			v.add("Company", "company %d has size %d but %d employees", c.ID, c.Size, counts[c.ID])
		}
	}
	if sum != len(v.ds.Persons) {
		v.add("Company", "sizes sum to %d, expected %d persons", sum, len(v.ds.Persons))
	}
}

func (v *verifier) checkCommutes() {
	cityOf := make(map[int]int, len(v.ds.IsIn))
	for _, e := range v.ds.IsIn {
		cityOf[e.From] = e.To
	}
	hasWorkspace := map[int]bool{}
	for _, city := range cityOf {
		hasWorkspace[city] = true
	}
	home := make(map[int]int, len(v.ds.LivesIn))
	for _, e := range v.ds.LivesIn {
		home[e.From] = e.To
	}

	for _, e := range v.ds.GoesTo {
		city, ok := home[e.From]
		if !ok || !hasWorkspace[city] {
			continue
		}
		if cityOf[e.To] != city {
			v.add("GOES_TO", "person %d lives in city %d but goes to workspace %d in city %d", e.From, city, e.To, cityOf[e.To])
		}
	}
}
