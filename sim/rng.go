package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the seed of a generated process set.
// Regenerating with the same key and parameters yields the same processes.
type SimulationKey int64

// NewSimulationKey wraps a seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Random streams used by the process generator.
const (
	SubsystemArrival = "arrival" // inter-arrival gaps; seeded with the key itself
	SubsystemBurst   = "burst"   // burst lengths; seeded with key ^ fnv1a64("burst")
)

// PartitionedRNG hands out one seeded stream per named subsystem, so drawing
// bursts differently never shifts the arrival sequence. Use from one goroutine.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.streams[name]; ok {
		return r
	}
	r := rand.New(rand.NewSource(p.seedFor(name)))
	p.streams[name] = r
	return r
}

func (p *PartitionedRNG) seedFor(name string) int64 {
	if name == SubsystemArrival {
		return int64(p.key)
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(p.key) ^ int64(h.Sum64())
}
