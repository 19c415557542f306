package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.MinChunkSize = 8

	var counter int64
	n := 1000

	ForRange(n, func(start, end int) {
		atomic.AddInt64(&counter, int64(end-start))
	}, cfg)

	assert.Equal(t, int64(n), counter)
}

func TestForRange_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	calls := 0
	ForRange(100, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 100, end)
	}, cfg)

	assert.Equal(t, 1, calls)
}

func TestForRange_SmallChunk(t *testing.T) {
	// Small work units fall back to one sequential call.
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.NumWorkers = 4

	var calls int64
	ForRange(2*cfg.MinChunkSize-1, func(_, _ int) {
		atomic.AddInt64(&calls, 1)
	}, cfg)

	assert.Equal(t, int64(1), calls)
}

func TestForRange_DisjointCover(t *testing.T) {
	tests := []struct {
		name string
		n    int
		cfg  Config
	}{
		{"sequential", 50, Sequential()},
		{"four workers", 103, Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}},
		{"more workers than items", 3, Config{Enabled: true, NumWorkers: 16, MinChunkSize: 1}},
		{"zero workers", 20, Config{Enabled: true, NumWorkers: 0, MinChunkSize: 1}},
		{"min chunk dominates", 100, Config{Enabled: true, NumWorkers: 8, MinChunkSize: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := make([]int32, tt.n)
			var mu sync.Mutex
			var chunks [][2]int

			ForRange(tt.n, func(start, end int) {
				mu.Lock()
				chunks = append(chunks, [2]int{start, end})
				mu.Unlock()
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			}, tt.cfg)

			for i, h := range hits {
				require.Equal(t, int32(1), h, "index %d visited %d times", i, h)
			}
			for _, c := range chunks {
				assert.Less(t, c[0], c[1])
			}
		})
	}
}

func TestForRange_Empty(t *testing.T) {
	called := false
	ForRange(0, func(_, _ int) { called = true }, DefaultConfig())
	assert.False(t, called)
}

func TestPerItem(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 4096}

	assert.Equal(t, 128, cfg.PerItem(32).MinChunkSize)
	assert.Equal(t, 1, cfg.PerItem(10000).MinChunkSize)
	assert.Equal(t, 4096, cfg.PerItem(0).MinChunkSize)
	assert.Equal(t, 4096, cfg.MinChunkSize, "receiver is not modified")
}

func BenchmarkForRange(b *testing.B) {
	cfg := DefaultConfig()
	n := 100000

	sum := func(start, end int) {
		var local int64
		for i := start; i < end; i++ {
			local += int64(i)
		}
		_ = local
	}

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ForRange(n, sum, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ForRange(n, sum, Sequential())
		}
	})
}
