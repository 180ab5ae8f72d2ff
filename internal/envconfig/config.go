// Package envconfig reads the INTOR_* environment variables.
//
// Every getter re-reads the environment on each call, so tests can use t.Setenv.
// Malformed values are reported through the global zap logger and replaced by the default.
package envconfig

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Var returns an environment variable with surrounding quotes and spaces removed.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// BoolWithDefault returns a getter for a boolean variable.
func BoolWithDefault(key string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(key); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				zap.L().Warn("invalid environment variable, using default",
					zap.String("key", key), zap.String("value", s), zap.Bool("default", defaultValue))
				return defaultValue
			}
			return b
		}
		return defaultValue
	}
}

// Int returns a getter for a positive integer variable.
func Int(key string, defaultValue func() int) func() int {
	return func() int {
		if s := Var(key); s != "" {
			n, err := strconv.Atoi(s)
			if err == nil && n > 0 {
				return n
			}
			zap.L().Warn("invalid environment variable, using default",
				zap.String("key", key), zap.String("value", s), zap.Int("default", defaultValue()))
		}
		return defaultValue()
	}
}

var (
	// NumThreads is the number of assembly workers. Configurable via INTOR_NUM_THREADS.
	NumThreads = Int("INTOR_NUM_THREADS", runtime.NumCPU)
	// MinChunk is the minimum number of tasks per worker. Configurable via INTOR_MIN_CHUNK.
	MinChunk = Int("INTOR_MIN_CHUNK", func() int { return 1 })
)

// Parallel reports whether assembly may use more than one worker.
// Configurable via INTOR_PARALLEL, default true on multi-core machines.
func Parallel() bool {
	return BoolWithDefault("INTOR_PARALLEL")(runtime.NumCPU() > 1)
}

// LogLevel returns the log level. Configurable via INTOR_DEBUG:
// unset or false is Info, true or 1 is Debug.
func LogLevel() zapcore.Level {
	if s := Var("INTOR_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			return zapcore.DebugLevel
		}
	}
	return zapcore.InfoLevel
}

// EnvVar describes one configuration variable and its effective value.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every variable with its effective value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"INTOR_DEBUG":       {"INTOR_DEBUG", LogLevel(), "Show additional debug information (e.g. INTOR_DEBUG=1)"},
		"INTOR_NUM_THREADS": {"INTOR_NUM_THREADS", NumThreads(), "Number of assembly workers (default: number of CPUs)"},
		"INTOR_MIN_CHUNK":   {"INTOR_MIN_CHUNK", MinChunk(), "Minimum number of block tasks per worker (default: 1)"},
		"INTOR_PARALLEL":    {"INTOR_PARALLEL", Parallel(), "Assemble blocks concurrently (default: true)"},
	}
}

// Values returns every variable formatted as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
