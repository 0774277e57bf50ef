package cache_test

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	bcache "github.com/bool64/cache"
	"github.com/dgraph-io/ristretto"
	pca "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	cache "github.com/vearutop/biascache"
)

const cardinality = 10000

func Benchmark_Map(b *testing.B) {
	c, err := cache.NewMap[string, int](cache.Config{Expire: 5 * time.Minute, Bias: time.Minute})
	require.NoError(b, err)

	defer c.Close()

	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		k := "oneone" + strconv.Itoa(i%cardinality)
		// nolint
		if i < cardinality {
			_ = c.Write(ctx, k, 123)
		}
		// nolint
		_, _ = c.Read(ctx, k)
	}
}

func Benchmark_Sharded(b *testing.B) {
	c, err := cache.NewSharded[int](cache.Config{Expire: 5 * time.Minute, Bias: time.Minute})
	require.NoError(b, err)

	defer c.Close()

	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		k := "oneone" + strconv.Itoa(i%cardinality)
		// nolint
		if i < cardinality {
			_ = c.Write(ctx, k, 123)
		}
		// nolint
		_, _ = c.Read(ctx, k)
	}
}

// Benchmark_Patrickmn is a reference, github.com/patrickmn/go-cache has exact TTL with full scan janitor.
func Benchmark_Patrickmn(b *testing.B) {
	c := pca.New(5*time.Minute, time.Minute)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		k := "oneone" + strconv.Itoa(i%cardinality)

		if i < cardinality {
			c.Set(k, 123, pca.DefaultExpiration)
		}

		_, _ = c.Get(k)
	}
}

// Benchmark_Bool64ShardedMap is a reference, github.com/bool64/cache serves stale values with per entry TTL.
func Benchmark_Bool64ShardedMap(b *testing.B) {
	c := bcache.NewShardedMap()
	ctx := context.Background()
	buf := make([]byte, 0, 16)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		buf = append(buf[:0], "oneone"...)
		buf = append(buf, strconv.Itoa(i%cardinality)...)
		// nolint
		if i < cardinality {
			_ = c.Write(ctx, buf, 123)
		}
		// nolint
		_, _ = c.Read(ctx, buf)
	}
}

type readWriter interface {
	Write(ctx context.Context, k string, v int) error
	Read(ctx context.Context, k string) (int, error)
}

func benchmarkConcurrent(b *testing.B, c readWriter) {
	b.Helper()

	ctx := context.Background()

	for i := 0; i < cardinality; i++ {
		require.NoError(b, c.Write(ctx, "oneone"+strconv.Itoa(i), 123))
	}

	b.ReportAllocs()
	b.ResetTimer()

	numRoutines := 50
	wg := sync.WaitGroup{}
	wg.Add(numRoutines)

	for r := 0; r < numRoutines; r++ {
		cnt := b.N / numRoutines
		if r == 0 {
			cnt = b.N - cnt*(numRoutines-1)
		}

		go func() {
			defer wg.Done()

			for i := 0; i < cnt; i++ {
				k := "oneone" + strconv.Itoa((i^12345)%cardinality)

				if i%10 == 0 {
					_ = c.Write(ctx, k, i) // nolint
				}

				_, _ = c.Read(ctx, k) // nolint
			}
		}()
	}

	wg.Wait()
}

func Benchmark_Map_concurrent(b *testing.B) {
	c, err := cache.NewMap[string, int](cache.Config{Expire: 5 * time.Minute, Bias: time.Minute})
	require.NoError(b, err)

	defer c.Close()

	benchmarkConcurrent(b, c)
}

func Benchmark_Sharded_concurrent(b *testing.B) {
	c, err := cache.NewSharded[int](cache.Config{Expire: 5 * time.Minute, Bias: time.Minute})
	require.NoError(b, err)

	defer c.Close()

	benchmarkConcurrent(b, c)
}

// Benchmark_Ristretto_concurrent is a reference, github.com/dgraph-io/ristretto is cost-bounded, not time-bounded.
func Benchmark_Ristretto_concurrent(b *testing.B) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(10 * cardinality),
		MaxCost:     int64(10 * cardinality),
		BufferItems: 64,
	})
	require.NoError(b, err)

	for i := 0; i < cardinality; i++ {
		c.Set("oneone"+strconv.Itoa(i), 123, 1)
	}

	b.ReportAllocs()
	b.ResetTimer()

	numRoutines := 50
	wg := sync.WaitGroup{}
	wg.Add(numRoutines)

	for r := 0; r < numRoutines; r++ {
		cnt := b.N / numRoutines
		if r == 0 {
			cnt = b.N - cnt*(numRoutines-1)
		}

		go func() {
			defer wg.Done()

			for i := 0; i < cnt; i++ {
				k := "oneone" + strconv.Itoa((i^12345)%cardinality)

				if i%10 == 0 {
					c.Set(k, i, 1)
				}

				_, _ = c.Get(k)
			}
		}()
	}

	wg.Wait()
}
