// Package generator synthesizes the remote-work graph: people, companies, cities,
// workspaces, amenities, providers and the six relationships between them.
package generator

import (
	"fmt"

	"github.com/xkilldash9x/graphgen/api/schemas"
	"github.com/xkilldash9x/graphgen/internal/random"
	"go.uber.org/zap"
)

const (
	minCapacity    = 10
	maxCapacity    = 100
	minAge         = 18
	maxAge         = 65
	minAmenities   = 3
	maxAmenities   = 5
	peoplePerFirm  = 10
	peoplePerSpace = 20
)

// Sizes holds the row count of every node table for one run.
type Sizes struct {
	People     int
	Companies  int
	Workspaces int
	Cities     int
	Amenities  int
	Providers  int
}

// SizesFor derives table sizes from the scale parameter. Scale zero is accepted and
// still yields one company and one workspace; negative scale is rejected.
func SizesFor(scale int) (Sizes, error) {
	if scale < 0 {
		return Sizes{}, fmt.Errorf("%w: scale must not be negative, got %d", ErrInvalidArgument, scale)
	}
	return Sizes{
		People:     scale,
		Companies:  max(1, scale/peoplePerFirm),
		Workspaces: max(1, scale/peoplePerSpace),
		Cities:     len(cityCatalog),
		Amenities:  len(amenityCatalog),
		Providers:  len(providerCatalog),
	}, nil
}

// Generator builds datasets from an injected random source.
type Generator struct {
	src random.Source
	log *zap.Logger
}

// New creates a generator. A nil logger is replaced with a no-op logger.
func New(src random.Source, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{src: src, log: logger.Named("generator")}
}

// Generate runs one full generation pass for the given scale.
func (g *Generator) Generate(scale int) (*schemas.Dataset, error) {
	sizes, err := SizesFor(scale)
	if err != nil {
		return nil, err
	}
	g.log.Debug("Derived table sizes",
		zap.Int("people", sizes.People),
		zap.Int("companies", sizes.Companies),
		zap.Int("workspaces", sizes.Workspaces))

	ds := &schemas.Dataset{}

	// Reference tables, then sampled nodes.
	ds.Amenities = g.amenities()
	ds.Providers = g.providers()
	ds.Cities = g.cities()
	ds.Companies = g.companies(sizes.Companies)
	ds.Workspaces = g.workspaces(sizes.Workspaces)
	ds.Persons = g.persons(sizes.People)

	// Workspace edges.
	ds.IsIn = g.pickPerRow(sizes.Workspaces, sizes.Cities, false)
	ds.Provides = g.pickPerRow(sizes.Workspaces, sizes.Providers, true)
	ds.Has = g.amenitiesPerWorkspace(sizes.Workspaces, sizes.Amenities)

	// Person edges. GOES_TO reads LIVES_IN and IS_IN.
	ds.LivesIn = g.pickPerRow(sizes.People, sizes.Cities, false)
	ds.GoesTo = g.commutes(ds.LivesIn, ds.IsIn, sizes.Workspaces)
	ds.WorksFor = g.pickPerRow(sizes.People, sizes.Companies, false)

	applyCompanySizes(ds.Companies, ds.WorksFor)

	g.log.Info("Dataset generated",
		zap.Int("scale", scale),
		zap.Int("persons", len(ds.Persons)),
		zap.Int("companies", len(ds.Companies)),
		zap.Int("workspaces", len(ds.Workspaces)),
		zap.Int("has_edges", len(ds.Has)))
	return ds, nil
}

func (g *Generator) amenities() []schemas.Amenity {
	names := Amenities()
	out := make([]schemas.Amenity, len(names))
	for i, name := range names {
		out[i] = schemas.Amenity{ID: i, Name: name}
	}
	return out
}

func (g *Generator) providers() []schemas.Provider {
	names := Providers()
	out := make([]schemas.Provider, len(names))
	for i, name := range names {
		out[i] = schemas.Provider{ID: i, Name: name}
	}
	return out
}

func (g *Generator) cities() []schemas.City {
	names := Cities()
	out := make([]schemas.City, len(names))
	for i, name := range names {
		out[i] = schemas.City{ID: i, Name: name}
	}
	return out
}

// companies creates company rows with a placeholder size of zero.
func (g *Generator) companies(n int) []schemas.Company {
	industries := Industries()
	out := make([]schemas.Company, n)
	for i := range out {
		out[i] = schemas.Company{
			ID:       i,
			Name:     fmt.Sprintf("Company%d", i+1),
			Industry: g.choose(industries),
		}
	}
	return out
}

func (g *Generator) workspaces(n int) []schemas.Workspace {
	out := make([]schemas.Workspace, n)
	for i := range out {
		out[i] = schemas.Workspace{
			ID:       i,
			UUID:     g.src.UUID(),
			Address:  fmt.Sprintf("Address%d", i+1),
			Capacity: g.src.IntRange(minCapacity, maxCapacity),
		}
	}
	return out
}

func (g *Generator) persons(n int) []schemas.Person {
	genders, roles := Genders(), Roles()
	out := make([]schemas.Person, n)
	for i := range out {
		out[i] = schemas.Person{
			ID:     i,
			Name:   g.src.FullName(),
			Age:    g.src.IntRange(minAge, maxAge),
			Gender: g.choose(genders),
			Role:   g.choose(roles),
		}
	}
	return out
}

// pickPerRow emits one edge per row id in [0, rows), each pointing at a uniform target
// in [0, targets). With reversed set, the sampled target is the edge source.
func (g *Generator) pickPerRow(rows, targets int, reversed bool) []schemas.Edge {
	out := make([]schemas.Edge, rows)
	for i := range out {
		target := g.src.IntRange(0, targets-1)
		if reversed {
			out[i] = schemas.Edge{From: target, To: i}
		} else {
			out[i] = schemas.Edge{From: i, To: target}
		}
	}
	return out
}

func (g *Generator) amenitiesPerWorkspace(workspaces, amenities int) []schemas.Edge {
	out := make([]schemas.Edge, 0, workspaces*maxAmenities)
	for w := 0; w < workspaces; w++ {
		count := g.src.IntRange(minAmenities, maxAmenities)
		for _, a := range g.src.Sample(amenities, count) {
			out = append(out, schemas.Edge{From: w, To: a})
		}
	}
	return out
}

// commutes assigns every person a workspace in the city they live in. When their city
// has no workspace the person falls back to any workspace, so the same-city rule only
// holds where it can.
func (g *Generator) commutes(livesIn, isIn []schemas.Edge, workspaces int) []schemas.Edge {
	byCity := workspacesByCity(isIn)

	out := make([]schemas.Edge, len(livesIn))
	for i, home := range livesIn {
		var workspace int
		if local := byCity[home.To]; len(local) > 0 {
			workspace = local[g.src.IntRange(0, len(local)-1)]
		} else {
			workspace = g.src.IntRange(0, workspaces-1)
		}
		out[i] = schemas.Edge{From: home.From, To: workspace}
	}
	return out
}

func (g *Generator) choose(options []string) string {
	return options[g.src.IntRange(0, len(options)-1)]
}

// workspacesByCity indexes IS_IN edges as city id -> workspace ids, in edge order.
func workspacesByCity(isIn []schemas.Edge) map[int][]int {
	byCity := make(map[int][]int)
	for _, e := range isIn {
		byCity[e.To] = append(byCity[e.To], e.From)
	}
	return byCity
}

// applyCompanySizes overwrites every company's size with its WORKS_FOR count.
func applyCompanySizes(companies []schemas.Company, worksFor []schemas.Edge) {
	counts := make(map[int]int, len(companies))
	for _, e := range worksFor {
		counts[e.To]++
	}
	for i := range companies {
		companies[i].Size = counts[companies[i].ID]
	}
}
