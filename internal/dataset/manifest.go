package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/xkilldash9x/graphgen/api/schemas"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the optional manifest written next to the tables.
const ManifestFile = "graphgen.yaml"

// Manifest records how a dataset directory was produced.
type Manifest struct {
	Scale       int             `yaml:"scale"`
	Seed        int64           `yaml:"seed,omitempty"`
	GeneratedAt time.Time       `yaml:"generated_at"`
	Tables      []ManifestTable `yaml:"tables"`
}

// ManifestTable describes one written file.
type ManifestTable struct {
	File    string   `yaml:"file"`
	Kind    string   `yaml:"kind"`
	Name    string   `yaml:"name"`
	From    string   `yaml:"from,omitempty"`
	To      string   `yaml:"to,omitempty"`
	Columns []string `yaml:"columns"`
	Rows    int      `yaml:"rows"`
}

// NewManifest summarizes ds. The scale is the person count.
func NewManifest(ds *schemas.Dataset, seed int64, generatedAt time.Time) Manifest {
	m := Manifest{
		Scale:       len(ds.Persons),
		Seed:        seed,
		GeneratedAt: generatedAt.UTC(),
	}
	for _, t := range ds.Tables() {
		m.Tables = append(m.Tables, ManifestTable{
			File:    t.FileName(),
			Kind:    string(t.Kind),
			Name:    t.Name(),
			From:    string(t.From),
			To:      string(t.To),
			Columns: t.Columns,
			Rows:    len(t.Rows),
		})
	}
	return m
}

func WriteManifest(dir string, m Manifest) error {
	path := filepath.Join(dir, ManifestFile)
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// ReadManifest loads the manifest in dir. The boolean is false when none exists.
func ReadManifest(dir string) (Manifest, bool, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Manifest{}, false, nil
	}
	if err != nil {
		return Manifest{}, false, &FileError{Op: "read", Path: path, Err: err}
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, false, err
	}
	return m, true, nil
}
