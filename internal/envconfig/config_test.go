package envconfig

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNumThreads(t *testing.T) {
	cases := map[string]int{
		"":     runtime.NumCPU(),
		"4":    4,
		"'2'":  2,
		"0":    runtime.NumCPU(),
		"-3":   runtime.NumCPU(),
		"many": runtime.NumCPU(),
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("INTOR_NUM_THREADS", k)
			assert.Equal(t, v, NumThreads())
		})
	}
}

func TestParallel(t *testing.T) {
	t.Setenv("INTOR_PARALLEL", "false")
	assert.False(t, Parallel())

	t.Setenv("INTOR_PARALLEL", "1")
	assert.True(t, Parallel())

	t.Setenv("INTOR_PARALLEL", "")
	assert.Equal(t, runtime.NumCPU() > 1, Parallel())

	t.Setenv("INTOR_PARALLEL", "maybe")
	assert.Equal(t, runtime.NumCPU() > 1, Parallel())
}

func TestLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"false": zapcore.InfoLevel,
		"0":     zapcore.InfoLevel,
		"1":     zapcore.DebugLevel,
		"true":  zapcore.DebugLevel,
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("INTOR_DEBUG", k)
			assert.Equal(t, v, LogLevel())
		})
	}
}

func TestValues(t *testing.T) {
	t.Setenv("INTOR_MIN_CHUNK", "7")
	vals := Values()
	assert.Equal(t, "7", vals["INTOR_MIN_CHUNK"])
	assert.Len(t, vals, len(AsMap()))
}

func TestInvalidValueWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	t.Cleanup(zap.ReplaceGlobals(zap.New(core)))

	t.Setenv("INTOR_MIN_CHUNK", "-2")
	t.Setenv("INTOR_PARALLEL", "maybe")
	assert.Equal(t, 1, MinChunk())
	Parallel()

	entries := logs.FilterMessage("invalid environment variable, using default").All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "INTOR_MIN_CHUNK", entries[0].ContextMap()["key"])
		assert.Equal(t, "maybe", entries[1].ContextMap()["value"])
	}
}
