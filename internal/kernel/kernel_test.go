package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/kernel"
	"github.com/born-ml/intor/internal/kernel/kerneltest"
)

func TestDescriptor_Validate(t *testing.T) {
	c := kerneltest.NewCatalog(t, basis.Spherical, 0, 1)
	fake := kerneltest.New(c, 2, 1)

	valid := fake.Descriptor("ovlp", false)
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(d *kernel.Descriptor)
	}{
		{"empty name", func(d *kernel.Descriptor) { d.Name = "" }},
		{"one center", func(d *kernel.Descriptor) { d.Centers = 1 }},
		{"five centers", func(d *kernel.Descriptor) { d.Centers = 5 }},
		{"no components", func(d *kernel.Descriptor) { d.Components = 0 }},
		{"no kernel", func(d *kernel.Descriptor) { d.Spherical, d.Cartesian, d.Spinor = nil, nil, nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := *valid
			tt.mutate(&d)
			assert.ErrorIs(t, d.Validate(), kernel.ErrInvalidDescriptor)
		})
	}
}

func TestKernelFor(t *testing.T) {
	c := kerneltest.NewCatalog(t, basis.Spherical, 0)
	d := kerneltest.New(c, 2, 1).Descriptor("ovlp", false)

	_, err := kernel.KernelFor[float64](d, basis.Spherical)
	require.NoError(t, err)
	_, err = kernel.KernelFor[complex128](d, basis.Spinor)
	require.NoError(t, err)

	_, err = kernel.KernelFor[complex128](d, basis.Cartesian)
	assert.ErrorIs(t, err, kernel.ErrElementType)
	_, err = kernel.KernelFor[float64](d, basis.Spinor)
	assert.ErrorIs(t, err, kernel.ErrElementType)

	d.Cartesian = nil
	_, err = kernel.KernelFor[float64](d, basis.Cartesian)
	assert.ErrorIs(t, err, kernel.ErrUnsupportedRepresentation)
	assert.Equal(t, []basis.Representation{basis.Spherical, basis.Spinor}, d.Representations())
}

func TestDescriptor_Tables(t *testing.T) {
	c := kerneltest.WithAux(t, kerneltest.NewCatalog(t, basis.Spherical, 0, 1), 2)
	fake := kerneltest.New(c, 2, 1)

	assert.Equal(t, 2, fake.Descriptor("nuc", false).Tables(c).NBas)
	assert.Equal(t, 4, fake.Descriptor("ecp", true).Tables(c).NBas)
}

func TestFunc_ProbePassesNilOutput(t *testing.T) {
	var gotOut []float64
	called := false
	f := kernel.Func[float64](func(out []float64, _, _ []int32, _ *basis.Tables, _ kernel.Optimizer, _ []float64) int {
		called = true
		gotOut = out
		return 42
	})

	assert.Equal(t, 42, f.Probe([]int32{0, 0}, &basis.Tables{}))
	assert.True(t, called)
	assert.Nil(t, gotOut)
}

func TestRegistry(t *testing.T) {
	c := kerneltest.NewCatalog(t, basis.Spherical, 0)
	fake := kerneltest.New(c, 2, 1)

	r, err := kernel.NewRegistry(fake.Descriptor("kin", false), fake.Descriptor("ovlp", false))
	require.NoError(t, err)

	d, err := r.Lookup("ovlp")
	require.NoError(t, err)
	assert.Equal(t, "ovlp", d.Name)

	_, err = r.Lookup("missing")
	assert.ErrorIs(t, err, kernel.ErrUnknownKind)

	err = r.Register(fake.Descriptor("kin", false))
	assert.ErrorIs(t, err, kernel.ErrDuplicateKind)

	err = r.Register(&kernel.Descriptor{Name: "bad", Centers: 7})
	assert.ErrorIs(t, err, kernel.ErrInvalidDescriptor)

	assert.Equal(t, []string{"kin", "ovlp"}, r.Names())
	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "kin", all[0].Name)

	var zero kernel.Registry
	require.NoError(t, zero.Register(fake.Descriptor("ovlp", false)))
}
