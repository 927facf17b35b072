package main

import (
	"fmt"
	"math/rand"
	"strconv"
)

// keyGen builds a per-worker key-generation closure. Each worker gets its
// own *rand.Rand (never shared — rand.Rand isn't goroutine-safe) seeded off
// the shared base seed, so a run is reproducible given the same -seed.
type keyGen interface {
	forWorker(id int, r *rand.Rand) func() string
}

func newKeyGen(name string, keys int, zipfS, zipfV float64) (keyGen, error) {
	if keys < 1 {
		keys = 1
	}
	switch name {
	case "zipf":
		return zipfGen{keys: keys, s: zipfS, v: zipfV}, nil
	case "hotspot":
		return hotspotGen{keys: keys}, nil
	case "cyclic":
		return cyclicGen{keys: keys}, nil
	case "phaseshift":
		return phaseshiftGen{keys: keys}, nil
	default:
		return nil, fmt.Errorf("unknown workload %q", name)
	}
}

func keyOf(i uint64) string { return "k:" + strconv.FormatUint(i, 10) }

// zipfGen is the classic skewed-popularity workload: a small set of keys
// absorbs most references, same distribution the teacher's own benchmark
// used.
type zipfGen struct {
	keys int
	s, v float64
}

func (g zipfGen) forWorker(_ int, r *rand.Rand) func() string {
	z := rand.NewZipf(r, g.s, g.v, uint64(g.keys-1))
	return func() string { return keyOf(z.Uint64()) }
}

// hotspotGen keeps a fixed 1% of the keyspace "hot": 90% of references hit
// that hot set uniformly, the remaining 10% scatter across the full
// keyspace. Unlike zipf's smooth power-law decay, this is a sharp
// two-tier split — useful for checking a policy doesn't let the cold tail
// evict hot entries.
type hotspotGen struct {
	keys int
}

func (g hotspotGen) forWorker(_ int, r *rand.Rand) func() string {
	hot := g.keys / 100
	if hot < 1 {
		hot = 1
	}
	return func() string {
		if r.Int31n(100) < 90 {
			return keyOf(uint64(r.Int31n(int32(hot))))
		}
		return keyOf(uint64(r.Int31n(int32(g.keys))))
	}
}

// cyclicGen sweeps sequentially through the keyspace and wraps around —
// the classic scan that defeats plain LRU (every key is evicted long
// before its next reference) but that 2Q's and ARC's ghost lists are
// built to resist.
type cyclicGen struct {
	keys int
}

func (g cyclicGen) forWorker(id int, _ *rand.Rand) func() string {
	cursor := uint64(id)
	stride := uint64(1)
	return func() string {
		k := cursor % uint64(g.keys)
		cursor += stride
		return keyOf(k)
	}
}

// phaseshiftGen divides the keyspace into fixed-size regions and moves the
// entire working set to the next region every phaseLen references,
// simulating a workload whose hot set relocates wholesale (e.g. a batch
// job moving between partitions) — the case ARC's adaptive p is meant to
// track.
type phaseshiftGen struct {
	keys int
}

func (g phaseshiftGen) forWorker(_ int, r *rand.Rand) func() string {
	const (
		regionSize = 1000
		phaseLen   = 20_000
	)
	regions := g.keys / regionSize
	if regions < 1 {
		regions = 1
	}
	var ops uint64
	return func() string {
		phase := (ops / phaseLen) % uint64(regions)
		ops++
		base := phase * regionSize
		offset := uint64(r.Int31n(regionSize))
		return keyOf(base + offset)
	}
}
