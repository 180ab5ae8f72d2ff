package basis

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the on-disk form of a catalog: the raw tables, nothing more.
//
//	representation: spherical
//	atm: [[8, 20, 1, 23, 0, 0], ...]
//	bas: [[0, 0, 6, 1, 0, 32, 38, 0], ...]
//	ecp: [[0, -1, 2, 2, 0, 104, 106, 0]]   # optional auxiliary block
//	env: [0, 0, ..., 5484.67, ...]
type document struct {
	Representation string    `yaml:"representation"`
	Atoms          [][]int32 `yaml:"atm"`
	Shells         [][]int32 `yaml:"bas"`
	Aux            [][]int32 `yaml:"ecp,omitempty"`
	Env            []float64 `yaml:"env"`
}

// LoadYAML reads a catalog from its YAML table form.
func LoadYAML(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode basis tables: %w", err)
	}

	rep, err := ParseRepresentation(doc.Representation)
	if err != nil {
		return nil, err
	}

	atoms := make([]AtomRecord, len(doc.Atoms))
	for i, row := range doc.Atoms {
		if len(row) != AtomSlots {
			return nil, catalogError("atm row %d has %d slots, want %d", i, len(row), AtomSlots)
		}
		copy(atoms[i][:], row)
	}
	shells, err := shellRows("bas", doc.Shells)
	if err != nil {
		return nil, err
	}
	aux, err := shellRows("ecp", doc.Aux)
	if err != nil {
		return nil, err
	}

	c, err := NewCatalog(atoms, shells, doc.Env, rep)
	if err != nil {
		return nil, err
	}
	if len(aux) > 0 {
		return c.WithAux(aux)
	}
	return c, nil
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	//nolint:gosec // G304: basis files are user supplied by design
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open basis file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return LoadYAML(f)
}

func shellRows(table string, rows [][]int32) ([]ShellRecord, error) {
	out := make([]ShellRecord, len(rows))
	for i, row := range rows {
		if len(row) != ShellSlots {
			return nil, catalogError("%s row %d has %d slots, want %d", table, i, len(row), ShellSlots)
		}
		copy(out[i][:], row)
	}
	return out, nil
}
