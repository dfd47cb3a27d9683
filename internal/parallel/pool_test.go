package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if want := runtime.GOMAXPROCS(0); pool.Workers() != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, pool.Workers(), want)
		}
		pool.Close()
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_ExecuteAllUneven(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 20)
	for i := range work {
		work[i] = func() {
			if i%5 == 0 {
				time.Sleep(2 * time.Millisecond)
			}
			counter.Add(1)
		}
	}
	pool.ExecuteAll(work)

	if counter.Load() != 20 {
		t.Errorf("counter = %d, want 20", counter.Load())
	}
}

func TestWorkerPool_ExecuteAllAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	ran := 0
	pool.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("closed pool ran %d items, want 2 inline", ran)
	}
}

func TestWorkerPool_CloseTwice(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()
	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}
}

func TestWorkerPool_ConcurrentExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := make([]func(), 25)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(work)
		}()
	}
	wg.Wait()

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

// =============================================================================
// Bands
// =============================================================================

func TestSplitRows(t *testing.T) {
	tests := []struct {
		name                string
		height, rows, align int
		want                []Band
	}{
		{"empty", 0, 8, 1, nil},
		{"single", 5, 8, 1, []Band{{0, 5}}},
		{"exact", 16, 8, 1, []Band{{0, 8}, {8, 16}}},
		{"short tail", 10, 4, 1, []Band{{0, 4}, {4, 8}, {8, 10}}},
		{"aligned up", 20, 6, 4, []Band{{0, 8}, {8, 16}, {16, 20}}},
		{"zero rows", 3, 0, 0, []Band{{0, 1}, {1, 2}, {2, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRows(tt.height, tt.rows, tt.align)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitRows = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("band %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitRowsCoversEveryRow(t *testing.T) {
	for _, h := range []int{1, 7, 64, 101} {
		bands := SplitRows(h, 9, 4)
		next := 0
		for _, b := range bands {
			if b.Y0 != next || b.Height() <= 0 {
				t.Fatalf("height %d: band %v does not continue at %d", h, b, next)
			}
			if b.Y0%4 != 0 {
				t.Errorf("height %d: band %v not aligned to 4", h, b)
			}
			next = b.Y1
		}
		if next != h {
			t.Errorf("height %d: bands end at %d", h, next)
		}
	}
}

func TestForEachBand(t *testing.T) {
	bands := SplitRows(100, 10, 1)
	rows := make([]int32, 100)

	pool := NewWorkerPool(4)
	defer pool.Close()

	ForEachBand(pool, bands, func(b Band) {
		for y := b.Y0; y < b.Y1; y++ {
			atomic.AddInt32(&rows[y], 1)
		}
	})
	for y, n := range rows {
		if n != 1 {
			t.Fatalf("row %d visited %d times", y, n)
		}
	}
}

func TestForEachBandSerial(t *testing.T) {
	bands := SplitRows(30, 10, 1)
	var order []int
	ForEachBand(nil, bands, func(b Band) {
		order = append(order, b.Y0)
	})
	want := []int{0, 10, 20}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("serial order = %v, want %v", order, want)
		}
	}
}

func BenchmarkForEachBand(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()
	bands := SplitRows(512, 16, 4)
	var sink atomic.Int64

	b.ResetTimer()
	for b.Loop() {
		ForEachBand(pool, bands, func(band Band) {
			sink.Add(int64(band.Height()))
		})
	}
}
