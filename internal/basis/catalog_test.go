package basis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCatalog builds a one-atom catalog with one single-primitive shell per angular momentum.
func newTestCatalog(t *testing.T, rep Representation, angs ...int) *Catalog {
	t.Helper()
	env := make([]float64, PtrEnvStart+3)
	atoms := []AtomRecord{{1, PtrEnvStart, 1, 0, 0, 0}}
	shells := make([]ShellRecord, len(angs))
	for i, l := range angs {
		ptr := int32(len(env))
		env = append(env, 1.0+float64(i), GTONorm(l, 1.0+float64(i)))
		shells[i] = ShellRecord{0, int32(l), 1, 1, 0, ptr, ptr + 1, 0}
	}
	c, err := NewCatalog(atoms, shells, env, rep)
	require.NoError(t, err)
	return c
}

func TestCatalog_SphericalCountsAndOffsets(t *testing.T) {
	c := newTestCatalog(t, Spherical, 0, 0, 1)

	counts := []int{c.BasisFunctionCount(0), c.BasisFunctionCount(1), c.BasisFunctionCount(2)}
	if diff := cmp.Diff([]int{1, 1, 3}, counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 5}, c.Offsets()); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 5, c.NBasisFunctions())
	assert.Equal(t, 4, c.Extent(Slice{1, 3}))
	assert.Equal(t, []int{1, 2, 5}, c.OffsetsForSlice(Slice{1, 3}))
	assert.Equal(t, []int{0, 1, 4}, c.RelativeOffsets(Slice{1, 3}))
	assert.Equal(t, 3, c.MaxCount(Slice{0, 3}))
	assert.Equal(t, 0, c.MaxCount(Slice{2, 2}))
}

func TestShellRecord_Count(t *testing.T) {
	tests := []struct {
		name  string
		shell ShellRecord
		rep   Representation
		want  int
	}{
		{"s spherical", ShellRecord{AngOf: 0, NCtrOf: 1}, Spherical, 1},
		{"d spherical two contractions", ShellRecord{AngOf: 2, NCtrOf: 2}, Spherical, 10},
		{"d cartesian", ShellRecord{AngOf: 2, NCtrOf: 1}, Cartesian, 6},
		{"f cartesian", ShellRecord{AngOf: 3, NCtrOf: 1}, Cartesian, 10},
		{"p spinor kappa 0", ShellRecord{AngOf: 1, NCtrOf: 1}, Spinor, 6},
		{"p spinor kappa<0", ShellRecord{AngOf: 1, NCtrOf: 1, KappaOf: -2}, Spinor, 4},
		{"p spinor kappa>0", ShellRecord{AngOf: 1, NCtrOf: 1, KappaOf: 1}, Spinor, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shell.Count(tt.rep))
		})
	}
}

func TestCatalog_WithRepresentation(t *testing.T) {
	c := newTestCatalog(t, Spherical, 0, 2)
	cart, err := c.WithRepresentation(Cartesian)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 6}, c.Offsets())
	assert.Equal(t, []int{0, 1, 7}, cart.Offsets())
	assert.Equal(t, Cartesian, cart.Tables(false).Rep)

	_, err = c.WithRepresentation(Representation(9))
	assert.ErrorIs(t, err, ErrUnknownRepresentation)
}

func TestCatalog_InvalidTables(t *testing.T) {
	env := make([]float64, PtrEnvStart+5)
	atoms := []AtomRecord{{1, PtrEnvStart, 0, 0, 0, 0}}

	tests := []struct {
		name   string
		shells []ShellRecord
		env    []float64
	}{
		{"short env", nil, make([]float64, 5)},
		{"atom out of range", []ShellRecord{{3, 0, 1, 1, 0, 23, 24, 0}}, env},
		{"negative angular", []ShellRecord{{0, -1, 1, 1, 0, 23, 24, 0}}, env},
		{"zero primitives", []ShellRecord{{0, 0, 0, 1, 0, 23, 24, 0}}, env},
		{"exponent pointer", []ShellRecord{{0, 0, 1, 1, 0, 40, 24, 0}}, env},
		{"coefficient pointer", []ShellRecord{{0, 0, 1, 3, 0, 23, 24, 0}}, env},
		{"exponent pointer wraps int32", []ShellRecord{{0, 0, 1, 1, 0, math.MaxInt32, 23, 0}}, env},
		{"coefficient pointer wraps int32", []ShellRecord{{0, 0, 2, 1, 0, 23, math.MaxInt32 - 1, 0}}, env},
		{"coefficient count wraps int32", []ShellRecord{{0, 0, 2, math.MaxInt32, 0, 23, 24, 0}}, env},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(atoms, tt.shells, tt.env, Spherical)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestCatalog_WithAux(t *testing.T) {
	c := newTestCatalog(t, Spherical, 0, 1)
	aux := []ShellRecord{{0, -1, 1, 1, 0, 23, 24, 0}}

	withAux, err := c.WithAux(aux)
	require.NoError(t, err)

	// Auxiliary shells never change the tensor axes.
	assert.Equal(t, c.Offsets(), withAux.Offsets())
	assert.Equal(t, 2, withAux.NShells())
	assert.Equal(t, 1, withAux.NAux())

	plain := withAux.Tables(false)
	assert.Equal(t, 2, plain.NBas)
	assert.Len(t, plain.Bas, 2*ShellSlots)
	assert.Zero(t, plain.Env[EnvAuxOffset])

	full := withAux.Tables(true)
	assert.Equal(t, 3, full.NBas)
	assert.Len(t, full.Bas, 3*ShellSlots)
	assert.Equal(t, 2.0, full.Env[EnvAuxOffset])
	assert.Equal(t, 1.0, full.Env[EnvAuxCount])

	// Without an auxiliary block both views coincide.
	assert.Same(t, c.Tables(false), c.Tables(true))

	_, err = c.WithAux([]ShellRecord{{0, -2, 1, 1, 0, 23, 24, 0}})
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestValidateSlices(t *testing.T) {
	tests := []struct {
		name    string
		slices  []Slice
		centers int
		wantErr error
	}{
		{"valid", []Slice{{0, 3}, {1, 2}}, 2, nil},
		{"empty range", []Slice{{2, 2}, {0, 3}}, 2, nil},
		{"count", []Slice{{0, 3}}, 2, ErrInvalidSliceCount},
		{"descending", []Slice{{0, 3}, {2, 1}}, 2, ErrDescendingRange},
		{"out of bounds", []Slice{{0, 4}, {0, 3}}, 2, ErrOutOfBounds},
		{"negative", []Slice{{-1, 2}, {0, 3}}, 2, ErrNegativeIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlices(tt.slices, tt.centers, 3)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			var se *SliceError
			require.True(t, errors.As(err, &se))
		})
	}
}

func TestSliceError_Context(t *testing.T) {
	err := ValidateSlices([]Slice{{0, 3}, {0, 7}}, 2, 3)
	var se *SliceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Axis)
	assert.Equal(t, Slice{0, 7}, se.Slice)
	assert.Equal(t, 3, se.Bound)
	assert.Contains(t, err.Error(), "[0, 7)")

	err = ValidateSlices(nil, 4, 3)
	assert.Contains(t, err.Error(), "expected 4, got 0")
}

func TestParseSlices(t *testing.T) {
	got, err := ParseSlices(" 0:3, 1:2 ")
	require.NoError(t, err)
	assert.Equal(t, []Slice{{0, 3}, {1, 2}}, got)

	got, err = ParseSlices("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseSlices("0-3")
	assert.Error(t, err)
	_, err = ParseSlices("a:3")
	assert.Error(t, err)
}

func TestParseRepresentation(t *testing.T) {
	for in, want := range map[string]Representation{"sph": Spherical, "cartesian": Cartesian, "spinor": Spinor, "": Spherical} {
		got, err := ParseRepresentation(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseRepresentation("polar")
	assert.ErrorIs(t, err, ErrUnknownRepresentation)
}

func TestLoadYAML(t *testing.T) {
	doc := `
representation: cart
atm:
  - [1, 20, 1, 23, 0, 0]
  - [1, 24, 1, 27, 0, 0]
bas:
  - [0, 0, 1, 1, 0, 28, 29, 0]
  - [1, 1, 1, 1, 0, 30, 31, 0]
ecp:
  - [0, -1, 1, 1, 0, 28, 29, 0]
env: [0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
      0, 0, -0.7, 0, 0, 0, 0.7, 0, 1.2, 0.8, 0.9, 1.1]
`
	c, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, Cartesian, c.Representation())
	assert.Equal(t, 2, c.NAtoms())
	assert.Equal(t, []int{0, 1, 4}, c.Offsets())
	assert.Equal(t, 1, c.NAux())

	_, err = LoadYAML(strings.NewReader("atm: [[1, 2]]\nenv: []\n"))
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = LoadYAML(strings.NewReader("unknown_field: 1\n"))
	assert.Error(t, err)
}

func TestGTONorm(t *testing.T) {
	assert.InDelta(t, 2.526475110984, GTONorm(0, 1.0), 1e-9)
	assert.Greater(t, GTONorm(1, 1.0), GTONorm(0, 1.0))
}
