package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/xkilldash9x/graphgen/api/schemas"
)

// Read loads the twelve tables from dir back into a dataset.
func Read(dir string) (*schemas.Dataset, error) {
	ds := &schemas.Dataset{}
	for _, spec := range schemas.TableSpecs() {
		records, err := readTable(dir, spec)
		if err != nil {
			return nil, err
		}
		if err := decode(ds, spec, records); err != nil {
			return nil, fmt.Errorf("%s: %w", spec.FileName(), err)
		}
	}
	return ds, nil
}

// readTable returns the data records of one file after checking its header.
func readTable(dir string, spec schemas.TableSpec) ([][]string, error) {
	path := filepath.Join(dir, spec.FileName())
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(spec.Columns)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, spec.FileName(), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header", ErrMalformed, spec.FileName())
	}
	if !slices.Equal(records[0], spec.Columns) {
		return nil, fmt.Errorf("%w: %s: header %v, expected %v", ErrMalformed, spec.FileName(), records[0], spec.Columns)
	}
	return records[1:], nil
}

// cells parses typed values out of one record, remembering the first failure.
type cells struct {
	record []string
	line   int
	err    error
}

func (c *cells) num(i int) int {
	if c.err != nil {
		return 0
	}
	v, err := strconv.Atoi(c.record[i])
	if err != nil {
		c.err = fmt.Errorf("%w: line %d column %d: %q is not an integer", ErrMalformed, c.line, i+1, c.record[i])
	}
	return v
}

func (c *cells) str(i int) string { return c.record[i] }

func decode(ds *schemas.Dataset, spec schemas.TableSpec, records [][]string) error {
	for n, record := range records {
		c := &cells{record: record, line: n + 2}
		if spec.Kind == schemas.KindEdge {
			e := schemas.Edge{From: c.num(0), To: c.num(1)}
			if c.err != nil {
				return c.err
			}
			appendEdge(ds, spec.Relationship, e)
			continue
		}

		switch spec.Node {
		case schemas.NodePerson:
			ds.Persons = append(ds.Persons, schemas.Person{ID: c.num(0), Name: c.str(1), Age: c.num(2), Gender: c.str(3), Role: c.str(4)})
		case schemas.NodeCompany:
			ds.Companies = append(ds.Companies, schemas.Company{ID: c.num(0), Name: c.str(1), Industry: c.str(2), Size: c.num(3)})
		case schemas.NodeCity:
			ds.Cities = append(ds.Cities, schemas.City{ID: c.num(0), Name: c.str(1)})
		case schemas.NodeWorkspace:
			ds.Workspaces = append(ds.Workspaces, schemas.Workspace{ID: c.num(0), UUID: c.str(1), Address: c.str(2), Capacity: c.num(3)})
		case schemas.NodeAmenity:
			ds.Amenities = append(ds.Amenities, schemas.Amenity{ID: c.num(0), Name: c.str(1)})
		case schemas.NodeProvider:
			ds.Providers = append(ds.Providers, schemas.Provider{ID: c.num(0), Name: c.str(1)})
		}
		if c.err != nil {
			return c.err
		}
	}
	return nil
}

func appendEdge(ds *schemas.Dataset, r schemas.RelationshipType, e schemas.Edge) {
	switch r {
	case schemas.RelationshipWorksFor:
		ds.WorksFor = append(ds.WorksFor, e)
	case schemas.RelationshipLivesIn:
		ds.LivesIn = append(ds.LivesIn, e)
	case schemas.RelationshipGoesTo:
		ds.GoesTo = append(ds.GoesTo, e)
	case schemas.RelationshipProvides:
		ds.Provides = append(ds.Provides, e)
	case schemas.RelationshipHas:
		ds.Has = append(ds.Has, e)
	case schemas.RelationshipIsIn:
		ds.IsIn = append(ds.IsIn, e)
	}
}
