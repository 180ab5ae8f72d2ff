package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func noState() struct{} { return struct{}{} }

func TestRun(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	var counter int64
	seen := make([]int32, 1000)
	err := Run(context.Background(), len(seen), cfg, noState, func(_ context.Context, _ struct{}, i int) error {
		atomic.AddInt64(&counter, 1)
		atomic.AddInt32(&seen[i], 1)
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if counter != int64(len(seen)) {
		t.Errorf("Expected %d, got %d", len(seen), counter)
	}
	for i, v := range seen {
		if v != 1 {
			t.Errorf("Item %d visited %d times", i, v)
		}
	}
}

func TestRun_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var order []int
	err := Run(context.Background(), 100, cfg, noState, func(_ context.Context, _ struct{}, i int) error {
		order = append(order, i)
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("Expected item %d at position %d, got %d", i, i, v)
		}
	}
	if len(order) != 100 {
		t.Errorf("Expected 100 items, got %d", len(order))
	}
}

// workerState flags concurrent use of the same state value.
type workerState struct {
	busy atomic.Bool
}

func TestRun_StatePerWorker(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 1}

	var built, shared int64
	newState := func() *workerState {
		atomic.AddInt64(&built, 1)
		return &workerState{}
	}
	err := Run(context.Background(), 500, cfg, newState, func(_ context.Context, s *workerState, _ int) error {
		if !s.busy.CompareAndSwap(false, true) {
			atomic.AddInt64(&shared, 1)
		}
		defer s.busy.Store(false)
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if shared != 0 {
		t.Errorf("State used by two goroutines at once %d times", shared)
	}
	if built < 1 || built > 8 {
		t.Errorf("Expected between 1 and 8 states, got %d", built)
	}
}

func TestRun_FirstErrorStops(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}
	boom := errors.New("boom")

	var calls int64
	err := Run(context.Background(), 10000, cfg, noState, func(_ context.Context, _ struct{}, i int) error {
		atomic.AddInt64(&calls, 1)
		if i == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
	if calls == 10000 {
		t.Errorf("Expected remaining items to be skipped after the error")
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := Run(ctx, 10, DefaultConfig(), noState, func(_ context.Context, _ struct{}, _ int) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if called {
		t.Errorf("Expected no item to run on a canceled context")
	}
}

func TestRun_Empty(t *testing.T) {
	err := Run(context.Background(), 0, DefaultConfig(), func() int {
		t.Fatal("state built for empty run")
		return 0
	}, func(_ context.Context, _ int, _ int) error {
		return nil
	})
	if err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
}

func TestConfig_Workers(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		n    int
		want int
	}{
		{"disabled", Config{Enabled: false, NumWorkers: 8}, 100, 1},
		{"single item", Config{Enabled: true, NumWorkers: 8, MinChunkSize: 1}, 1, 1},
		{"bounded by items", Config{Enabled: true, NumWorkers: 8, MinChunkSize: 1}, 3, 3},
		{"bounded by workers", Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}, 100, 4},
		{"chunked", Config{Enabled: true, NumWorkers: 8, MinChunkSize: 10}, 25, 3},
		{"zero chunk", Config{Enabled: true, NumWorkers: 2, MinChunkSize: 0}, 10, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Workers(tt.n); got != tt.want {
				t.Errorf("Workers(%d) = %d, want %d", tt.n, got, tt.want)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("INTOR_PARALLEL", "false")
	t.Setenv("INTOR_NUM_THREADS", "3")
	t.Setenv("INTOR_MIN_CHUNK", "5")

	cfg := ConfigFromEnv()
	if cfg.Enabled || cfg.NumWorkers != 3 || cfg.MinChunkSize != 5 {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func BenchmarkRun(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			_ = Run(context.Background(), n, cfg, noState, func(_ context.Context, _ struct{}, i int) error {
				atomic.AddInt64(&sum, int64(i))
				return nil
			})
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			var sum int64
			_ = Run(context.Background(), n, cfgSeq, noState, func(_ context.Context, _ struct{}, i int) error {
				atomic.AddInt64(&sum, int64(i))
				return nil
			})
		}
	})
}
