// Command bench drives synthetic workloads against any of the module's
// eviction policies and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polycache/polycache/cache"
	pmet "github.com/polycache/polycache/metrics/prom"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// ---- Flags ----
	var (
		capacity = flag.Int("cap", 100_000, "cache capacity (entries)")
		shards   = flag.Int("shards", 0, "number of shards (0=auto); ignored by unsharded policies")
		pol      = flag.String("policy", "lru", "eviction policy: lru | shardedlru | lruk | lfu | shardedlfu | arc | shardedarc | 2q | shardedtwoq")
		lrukK    = flag.Int("lruk_k", 2, "k for the lruk policy (references before admission)")
		lfuDecay = flag.Int("lfu_decay", 0, "lfu max-average-frequency aging trigger (0=disabled)")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		workload = flag.String("workload", "zipf", "key generator: zipf | hotspot | cyclic | phaseshift")
		keys     = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS    = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV    = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload  = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "polycache", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Build cache ----
	c, err := buildCache(*pol, *capacity, *shards, *lrukK, *lfuDecay, metrics)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = c.Close() }()

	// ---- Preload half capacity to get a realistic hit-rate ----
	pl := *preload
	if pl == 0 {
		pl = *capacity / 2
	}
	for i := 0; i < pl; i++ {
		k := "k:" + strconv.Itoa(i)
		c.Set(k, "v"+strconv.Itoa(i))
	}

	// ---- Snapshot flags for goroutines ----
	readPctVal := *readPct
	seedBase := *seed
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	gen, err := newKeyGen(*workload, *keys, *zipfS, *zipfV)
	if err != nil {
		log.Fatal(err)
	}

	// ---- Load generation ----
	var reads, writes, hits, misses, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			nextKey := gen.forWorker(id, localR)

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddUint64(&total, 1)
				if int(localR.Int31n(100)) < readPctVal {
					atomic.AddUint64(&reads, 1)
					if _, ok := c.Get(nextKey()); ok {
						atomic.AddUint64(&hits, 1)
					} else {
						atomic.AddUint64(&misses, 1)
					}
				} else {
					atomic.AddUint64(&writes, 1)
					k := nextKey()
					c.Set(k, "v"+strconv.Itoa(localR.Int()))
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	writesN := atomic.LoadUint64(&writes)
	hitsN := atomic.LoadUint64(&hits)
	missesN := atomic.LoadUint64(&misses)

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	fmt.Printf("policy=%s workload=%s cap=%d shards=%d workers=%d keys=%d dur=%v seed=%d\n",
		*pol, *workload, *capacity, *shards, workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, writesN)
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%\n", hitsN, missesN, hitRate)
	fmt.Printf("Len()=%d\n", c.Len())
}

// buildCache selects one of the seven constructors (plus the bonus 2Q pair)
// by name, wiring the shared Prometheus adapter into each.
func buildCache(name string, capacity, shards, k, lfuDecay int, m *pmet.Adapter) (cache.Cache[string, string], error) {
	wm := cache.WithMetrics[string, string](m)
	switch name {
	case "lru":
		return cache.NewLRU[string, string](capacity, wm), nil
	case "shardedlru":
		return cache.NewShardedLRU[string, string](capacity, shards, wm), nil
	case "lruk":
		return cache.NewLRUK[string, string](capacity, 0, k, wm), nil
	case "lfu":
		return cache.NewLFU[string, string](capacity, lfuDecay, wm), nil
	case "shardedlfu":
		return cache.NewShardedLFU[string, string](capacity, shards, lfuDecay, wm), nil
	case "arc":
		return cache.NewARC[string, string](capacity, wm), nil
	case "shardedarc":
		return cache.NewShardedARC[string, string](capacity, shards, wm), nil
	case "2q":
		return cache.NewTwoQ[string, string](capacity, wm), nil
	case "shardedtwoq":
		return cache.NewShardedTwoQ[string, string](capacity, shards, wm), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}
