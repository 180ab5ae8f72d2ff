package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/kernel"
	"github.com/born-ml/intor/internal/kernel/kerneltest"
	"github.com/born-ml/intor/internal/serialization"
)

// One atom with shells of angular momentum 0, 0 and 1: counts 1, 1, 3.
const basisYAML = `representation: spherical
atm: [[1, 20, 1, 0, 0, 0]]
bas:
  - [0, 0, 1, 1, 0, 23, 24, 0]
  - [0, 0, 1, 1, 0, 25, 26, 0]
  - [0, 1, 1, 1, 0, 27, 28, 0]
env: [0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
      0, 0, 0, 0.5, 1.0, 1.5, 1.0, 2.5, 1.0]
`

// setup writes the basis file and installs a registry holding a fake overlap kind.
func setup(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "basis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(basisYAML), 0o600))

	c, err := basis.LoadFile(path)
	require.NoError(t, err)
	fake := kerneltest.New(c, 2, 1)

	saved := registry
	registry = func() (*kernel.Registry, error) {
		return kernel.NewRegistry(fake.Descriptor("int1e_ovlp", false))
	}
	t.Cleanup(func() { registry = saved })
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := execute(context.Background(), cmd)
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "intor "+version)
}

func TestKindsCmd(t *testing.T) {
	setup(t)

	out, err := run(t, "kinds")
	require.NoError(t, err)
	assert.Contains(t, out, "int1e_ovlp")
	assert.Contains(t, out, "spherical,cartesian,spinor")
	assert.NotContains(t, out, "int2e ")

	out, err = run(t, "kinds", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "int2e_ip1")
	assert.Contains(t, out, "(not linked)")
	assert.Equal(t, 1, strings.Count(out, "int1e_ovlp "))
}

func TestShapeCmd(t *testing.T) {
	path := setup(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"shape", "int1e_ovlp", "--basis", path}, "[5 5]"},
		{[]string{"shape", "int1e_ovlp", "-b", path, "--slices", "1:3,1:3"}, "[4 4]"},
		{[]string{"shape", "int1e_ovlp", "-b", path, "-c", "s2ij"}, "[15]"},
	}
	for _, tt := range tests {
		out, err := run(t, tt.args...)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, strings.TrimSpace(out), tt.args)
	}
}

func TestShapeCmd_Errors(t *testing.T) {
	path := setup(t)

	_, err := run(t, "shape", "int9e", "-b", path)
	assert.ErrorIs(t, err, kernel.ErrUnknownKind)

	_, err = run(t, "shape", "int1e_ovlp", "-b", path, "--slices", "0:4,0:3")
	assert.ErrorIs(t, err, basis.ErrOutOfBounds)

	_, err = run(t, "shape", "int1e_ovlp", "-b", path, "-c", "s4")
	assert.Error(t, err)

	_, err = run(t, "shape", "int1e_ovlp")
	assert.Error(t, err, "--basis is required")
}

func TestAssembleCmd(t *testing.T) {
	path := setup(t)
	output := filepath.Join(t.TempDir(), "ovlp.safetensors")

	out, err := run(t, "assemble", "int1e_ovlp", "-b", path, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "-> "+output)

	f, err := serialization.OpenFile(output)
	require.NoError(t, err)
	assert.Equal(t, "int1e_ovlp", f.Metadata["kind"])
	assert.Equal(t, "s1", f.Metadata["convention"])
	assert.Equal(t, "spherical", f.Metadata["representation"])

	ovlp, err := serialization.Load[float64](f, "int1e_ovlp")
	require.NoError(t, err)
	require.Equal(t, []int{5, 5}, []int(ovlp.Shape()))
	for j := 0; j < 5; j++ {
		for i := 0; i < 5; i++ {
			v, err := ovlp.At(i, j)
			require.NoError(t, err)
			assert.Equal(t, kerneltest.Value([]int{i, j}, 0), v, "(%d, %d)", i, j)
		}
	}
}

func TestAssembleCmd_Triangular(t *testing.T) {
	path := setup(t)
	output := filepath.Join(t.TempDir(), "ovlp.safetensors")

	_, err := run(t, "assemble", "int1e_ovlp", "-b", path, "-c", "s2ij", "-o", output)
	require.NoError(t, err)

	f, err := serialization.OpenFile(output)
	require.NoError(t, err)
	packed, err := serialization.Load[float64](f, "int1e_ovlp")
	require.NoError(t, err)
	assert.Equal(t, []int{15}, []int(packed.Shape()))
	// Packed element (1, 2) sits at 1 + 2*3/2.
	assert.Equal(t, kerneltest.Value([]int{1, 2}, 0), packed.Data()[4])
}

func TestEnvCmd(t *testing.T) {
	t.Setenv("INTOR_NUM_THREADS", "3")
	out, err := run(t, "env")
	require.NoError(t, err)
	assert.Contains(t, out, "INTOR_NUM_THREADS=3")
	assert.Contains(t, out, "INTOR_PARALLEL=")
}

func TestEnvCmd_InvalidValueWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	saved := newLogger
	newLogger = func(zapcore.Level) (*zap.Logger, error) { return zap.New(core), nil }
	t.Cleanup(func() { newLogger = saved })

	t.Setenv("INTOR_NUM_THREADS", "many")
	_, err := run(t, "env")
	require.NoError(t, err)

	warned := logs.FilterMessage("invalid environment variable, using default").FilterField(zap.String("key", "INTOR_NUM_THREADS"))
	assert.Positive(t, warned.Len())

	// The global logger is restored once the command returns.
	assert.False(t, zap.L().Core().Enabled(zapcore.WarnLevel))
}
