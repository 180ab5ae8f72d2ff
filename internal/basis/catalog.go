// Package basis describes the shells of a molecule in the flat atm/bas/env table layout
// consumed by integral kernels, and derives the basis-function offsets of every shell.
//
// Shell index is the only addressing key: tensor axes are built from half-open shell
// ranges (Slice) and each shell contributes BasisFunctionCount consecutive rows.
package basis

import "fmt"

// Record widths.
const (
	AtomSlots  = 6
	ShellSlots = 8
)

// Atom record slots.
const (
	ChargeOf      = 0
	PtrCoord      = 1
	NucModOf      = 2
	PtrZeta       = 3
	PtrFracCharge = 4
)

// Shell record slots.
const (
	AtomOf   = 0
	AngOf    = 1
	NPrimOf  = 2
	NCtrOf   = 3
	KappaOf  = 4
	PtrExp   = 5
	PtrCoeff = 6
)

// Reserved parameter slots.
const (
	EnvAuxOffset = 18 // Shell index at which the auxiliary block starts
	EnvAuxCount  = 19 // Number of auxiliary shells
	PtrEnvStart  = 20 // First free slot for coordinates and exponents
)

// Representation selects how a shell expands into basis functions.
type Representation int

// Supported representations.
const (
	Spherical Representation = iota
	Cartesian
	Spinor
)

// String returns a human-readable name.
func (r Representation) String() string {
	switch r {
	case Spherical:
		return "spherical"
	case Cartesian:
		return "cartesian"
	case Spinor:
		return "spinor"
	default:
		return "unknown"
	}
}

// ParseRepresentation parses "spherical"/"sph", "cartesian"/"cart" or "spinor".
func ParseRepresentation(s string) (Representation, error) {
	switch s {
	case "spherical", "sph", "":
		return Spherical, nil
	case "cartesian", "cart":
		return Cartesian, nil
	case "spinor":
		return Spinor, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRepresentation, s)
	}
}

// AtomRecord is one row of the atm table.
type AtomRecord [AtomSlots]int32

// ShellRecord is one row of the bas table.
type ShellRecord [ShellSlots]int32

// Angular returns the angular momentum of the shell.
func (s ShellRecord) Angular() int { return int(s[AngOf]) }

// Contractions returns the number of contracted functions.
func (s ShellRecord) Contractions() int { return int(s[NCtrOf]) }

// Kappa returns the spinor kappa flag.
func (s ShellRecord) Kappa() int { return int(s[KappaOf]) }

// Count returns the number of basis functions the shell expands to under rep.
func (s ShellRecord) Count(rep Representation) int {
	l := s.Angular()
	nctr := s.Contractions()
	switch rep {
	case Cartesian:
		return nctr * (l + 1) * (l + 2) / 2
	case Spinor:
		switch k := s.Kappa(); {
		case k == 0:
			return nctr * (4*l + 2)
		case k < 0:
			return nctr * (2*l + 2)
		default:
			return nctr * 2 * l
		}
	default:
		return nctr * (2*l + 1)
	}
}

// Tables is the flat view of a catalog handed to kernels.
// Kernels must treat every field as read-only.
type Tables struct {
	Atm  []int32
	Bas  []int32
	Env  []float64
	NAtm int
	NBas int
	Rep  Representation
}

// Catalog owns the atom, shell and parameter tables of one molecule.
// It is immutable after construction and safe for concurrent use.
type Catalog struct {
	atoms   []AtomRecord
	shells  []ShellRecord
	aux     []ShellRecord
	env     []float64
	rep     Representation
	offsets []int

	tables    *Tables // ordinary shells only
	auxTables *Tables // ordinary shells followed by the auxiliary block
}

// NewCatalog validates the tables and builds a catalog.
// The tables are copied; later changes to the arguments have no effect.
func NewCatalog(atoms []AtomRecord, shells []ShellRecord, env []float64, rep Representation) (*Catalog, error) {
	if rep < Spherical || rep > Spinor {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRepresentation, rep)
	}
	if len(env) < PtrEnvStart {
		return nil, catalogError("parameter array has %d slots, need at least %d", len(env), PtrEnvStart)
	}
	for i, a := range atoms {
		if p := int(a[PtrCoord]); p < 0 || p+3 > len(env) {
			return nil, catalogError("atom %d: coordinate pointer %d outside parameter array", i, p)
		}
	}
	for i, s := range shells {
		if err := checkShell(s, len(atoms), len(env), false); err != nil {
			return nil, fmt.Errorf("shell %d: %w", i, err)
		}
	}

	c := &Catalog{
		atoms:  append([]AtomRecord(nil), atoms...),
		shells: append([]ShellRecord(nil), shells...),
		env:    append([]float64(nil), env...),
		rep:    rep,
	}
	c.build()
	return c, nil
}

// checkShell validates the pointers of one shell record.
// Auxiliary shells may carry angular momentum -1 (local potential part).
func checkShell(s ShellRecord, natm, nenv int, aux bool) error {
	minAng := 0
	if aux {
		minAng = -1
	}
	switch {
	case int(s[AtomOf]) < 0 || int(s[AtomOf]) >= natm:
		return catalogError("atom index %d outside [0, %d)", s[AtomOf], natm)
	case s.Angular() < minAng:
		return catalogError("negative angular momentum %d", s.Angular())
	case s[NPrimOf] <= 0 || s[NCtrOf] <= 0:
		return catalogError("primitive/contraction counts must be positive, got %d/%d", s[NPrimOf], s[NCtrOf])
	case int(s[PtrExp]) < 0 || int(s[PtrExp])+int(s[NPrimOf]) > nenv:
		return catalogError("exponent pointer %d outside parameter array", s[PtrExp])
	case int(s[PtrCoeff]) < 0 || int(s[PtrCoeff])+int(s[NPrimOf])*int(s[NCtrOf]) > nenv:
		return catalogError("coefficient pointer %d outside parameter array", s[PtrCoeff])
	}
	return nil
}

// WithAux returns a copy of the catalog with an auxiliary shell block appended
// (e.g. effective-core-potential shells). Auxiliary shells never form tensor axes;
// they are visible only to kernels that ask for them.
func (c *Catalog) WithAux(aux []ShellRecord) (*Catalog, error) {
	for i, s := range aux {
		if err := checkShell(s, len(c.atoms), len(c.env), true); err != nil {
			return nil, fmt.Errorf("auxiliary shell %d: %w", i, err)
		}
	}
	out := &Catalog{
		atoms:  c.atoms,
		shells: c.shells,
		aux:    append([]ShellRecord(nil), aux...),
		env:    append([]float64(nil), c.env...),
		rep:    c.rep,
	}
	out.build()
	return out, nil
}

// WithRepresentation returns a catalog sharing the same tables under another representation.
func (c *Catalog) WithRepresentation(rep Representation) (*Catalog, error) {
	if rep < Spherical || rep > Spinor {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRepresentation, rep)
	}
	out := &Catalog{atoms: c.atoms, shells: c.shells, aux: c.aux, env: c.env, rep: rep}
	out.build()
	return out, nil
}

// build derives offsets and flat tables.
func (c *Catalog) build() {
	c.offsets = make([]int, len(c.shells)+1)
	for i, s := range c.shells {
		c.offsets[i+1] = c.offsets[i] + s.Count(c.rep)
	}

	atm := make([]int32, 0, len(c.atoms)*AtomSlots)
	for _, a := range c.atoms {
		atm = append(atm, a[:]...)
	}
	bas := make([]int32, 0, (len(c.shells)+len(c.aux))*ShellSlots)
	for _, s := range c.shells {
		bas = append(bas, s[:]...)
	}
	c.tables = &Tables{Atm: atm, Bas: bas, Env: c.env, NAtm: len(c.atoms), NBas: len(c.shells), Rep: c.rep}
	if len(c.aux) == 0 {
		c.auxTables = c.tables
		return
	}

	for _, s := range c.aux {
		bas = append(bas, s[:]...)
	}
	env := append([]float64(nil), c.env...)
	env[EnvAuxOffset] = float64(len(c.shells))
	env[EnvAuxCount] = float64(len(c.aux))
	c.auxTables = &Tables{
		Atm:  atm,
		Bas:  bas,
		Env:  env,
		NAtm: len(c.atoms),
		NBas: len(c.shells) + len(c.aux),
		Rep:  c.rep,
	}
}

// NAtoms returns the number of atoms.
func (c *Catalog) NAtoms() int { return len(c.atoms) }

// NShells returns the number of ordinary shells.
func (c *Catalog) NShells() int { return len(c.shells) }

// NAux returns the number of auxiliary shells.
func (c *Catalog) NAux() int { return len(c.aux) }

// Representation returns the representation used for counting.
func (c *Catalog) Representation() Representation { return c.rep }

// Shell returns the record of an ordinary shell.
func (c *Catalog) Shell(i int) ShellRecord { return c.shells[i] }

// Tables returns the flat kernel tables. With withAux the auxiliary block is appended
// to the shell table and recorded in the reserved parameter slots.
func (c *Catalog) Tables(withAux bool) *Tables {
	if withAux {
		return c.auxTables
	}
	return c.tables
}

// BasisFunctionCount returns the number of basis functions of shell i.
func (c *Catalog) BasisFunctionCount(i int) int {
	return c.offsets[i+1] - c.offsets[i]
}

// NBasisFunctions returns the total number of basis functions of the ordinary shells.
func (c *Catalog) NBasisFunctions() int {
	return c.offsets[len(c.shells)]
}

// Offsets returns the cumulative basis-function offsets, len NShells()+1, starting at 0.
func (c *Catalog) Offsets() []int {
	return append([]int(nil), c.offsets...)
}

// OffsetsForSlice returns offsets[s.Start ..= s.Stop].
func (c *Catalog) OffsetsForSlice(s Slice) []int {
	return append([]int(nil), c.offsets[s.Start:s.Stop+1]...)
}

// RelativeOffsets returns OffsetsForSlice shifted so that the first entry is 0.
// Entry k is the position of shell s.Start+k inside a slice-local axis.
func (c *Catalog) RelativeOffsets(s Slice) []int {
	loc := c.OffsetsForSlice(s)
	base := loc[0]
	for i := range loc {
		loc[i] -= base
	}
	return loc
}

// Extent returns the number of basis functions covered by s.
func (c *Catalog) Extent(s Slice) int {
	return c.offsets[s.Stop] - c.offsets[s.Start]
}

// MaxCount returns the largest basis-function count of any shell in s, 0 for an empty slice.
func (c *Catalog) MaxCount(s Slice) int {
	m := 0
	for i := s.Start; i < s.Stop; i++ {
		m = max(m, c.BasisFunctionCount(i))
	}
	return m
}
