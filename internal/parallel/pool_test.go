package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// LinePool Creation Tests
// =============================================================================

func TestLinePool_Create(t *testing.T) {
	pool := NewLinePool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestLinePool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewLinePool(n)
		want := runtime.GOMAXPROCS(0)
		if pool.Workers() != want {
			t.Errorf("NewLinePool(%d).Workers() = %d, want %d", n, pool.Workers(), want)
		}
		pool.Close()
	}
}

// =============================================================================
// Run Tests
// =============================================================================

func TestLinePool_Run(t *testing.T) {
	pool := NewLinePool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	pool.Run(work)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestLinePool_RunAllIndices(t *testing.T) {
	pool := NewLinePool(3)
	defer pool.Close()

	var mu sync.Mutex
	seen := make(map[int]bool)

	work := make([]func(), 25)
	for i := range work {
		work[i] = func() {
			mu.Lock()
			seen[i] = true
			mu.Unlock()
		}
	}
	pool.Run(work)

	for i := range work {
		if !seen[i] {
			t.Errorf("work item %d did not run", i)
		}
	}
}

func TestLinePool_RunEmpty(t *testing.T) {
	pool := NewLinePool(4)
	defer pool.Close()

	// Should not panic or block
	pool.Run(nil)
	pool.Run([]func(){})
}

func TestLinePool_RunUnevenWork(t *testing.T) {
	pool := NewLinePool(4)
	defer pool.Close()

	var slow, fast atomic.Int64
	work := make([]func(), 40)
	for i := range work {
		if i%10 == 0 {
			work[i] = func() {
				time.Sleep(5 * time.Millisecond)
				slow.Add(1)
			}
		} else {
			work[i] = func() { fast.Add(1) }
		}
	}

	pool.Run(work)

	if slow.Load() != 4 || fast.Load() != 36 {
		t.Errorf("slow = %d, fast = %d, want 4, 36", slow.Load(), fast.Load())
	}
}

func TestLinePool_RunConcurrentCallers(t *testing.T) {
	pool := NewLinePool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := make([]func(), 30)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.Run(work)
		}()
	}
	wg.Wait()

	if counter.Load() != 240 {
		t.Errorf("counter = %d, want 240", counter.Load())
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestLinePool_CloseIdempotent(t *testing.T) {
	pool := NewLinePool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after close")
	}
}

func TestLinePool_RunAfterClose(t *testing.T) {
	pool := NewLinePool(2)
	pool.Close()

	var executed atomic.Bool
	pool.Run([]func(){func() { executed.Store(true) }})
	pool.ForEachBand(10, func(Band) { executed.Store(true) })

	if executed.Load() {
		t.Error("work executed on closed pool")
	}
}

func TestLinePool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewLinePool(4)
		pool.ForEachBand(100, func(Band) {})
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

// =============================================================================
// Band Tests
// =============================================================================

func TestSplitBands(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		parts int
		want  []Band
	}{
		{"empty", 0, 4, nil},
		{"negative", -3, 4, nil},
		{"fewer lines than parts", 3, 8, []Band{{0, 1}, {1, 2}, {2, 3}}},
		{"even", 8, 4, []Band{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"uneven", 10, 4, []Band{{0, 3}, {3, 6}, {6, 8}, {8, 10}}},
		{"zero parts", 5, 0, []Band{{0, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitBands(tt.n, tt.parts)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitBands(%d, %d) = %v, want %v", tt.n, tt.parts, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("band %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitBandsCoverage(t *testing.T) {
	for n := 1; n < 200; n += 7 {
		for parts := 1; parts < 20; parts++ {
			bands := SplitBands(n, parts)
			next := 0
			for _, b := range bands {
				if b.Start != next || b.Len() <= 0 {
					t.Fatalf("SplitBands(%d, %d): bad band %v after %d", n, parts, b, next)
				}
				next = b.End
			}
			if next != n {
				t.Fatalf("SplitBands(%d, %d) covers %d lines", n, parts, next)
			}
		}
	}
}

func TestLinePool_ForEachBand(t *testing.T) {
	pool := NewLinePool(3)
	defer pool.Close()

	const n = 97
	var hits [n]atomic.Int32
	pool.ForEachBand(n, func(b Band) {
		for i := b.Start; i < b.End; i++ {
			hits[i].Add(1)
		}
	})

	for i := range hits {
		if got := hits[i].Load(); got != 1 {
			t.Errorf("line %d visited %d times, want 1", i, got)
		}
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkLinePool_Run(b *testing.B) {
	pool := NewLinePool(runtime.GOMAXPROCS(0))
	defer pool.Close()

	work := make([]func(), 100)
	for i := range work {
		work[i] = func() {}
	}

	b.ReportAllocs()
	for b.Loop() {
		pool.Run(work)
	}
}

func BenchmarkLinePool_ForEachBand(b *testing.B) {
	pool := NewLinePool(runtime.GOMAXPROCS(0))
	defer pool.Close()

	b.ReportAllocs()
	for b.Loop() {
		pool.ForEachBand(1080, func(Band) {})
	}
}
