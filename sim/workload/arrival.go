package workload

import (
	"math/rand"
)

// ArrivalSampler generates inter-arrival times between consecutive processes.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in ticks.
	// Always returns a non-negative value; 0 means a simultaneous arrival.
	SampleIAT(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed inter-arrival times (CV=1).
type PoissonSampler struct {
	mean float64 // mean ticks between arrivals
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	return int64(rng.ExpFloat64() * s.mean)
}

// ConstantSampler spaces arrivals evenly.
type ConstantSampler struct {
	iat int64
}

func (s *ConstantSampler) SampleIAT(_ *rand.Rand) int64 {
	return s.iat
}

// UniformSampler draws inter-arrival times uniformly from [0, 2*mean].
type UniformSampler struct {
	max int64
}

func (s *UniformSampler) SampleIAT(rng *rand.Rand) int64 {
	if s.max <= 0 {
		return 0
	}
	return rng.Int63n(s.max + 1)
}

// NewArrivalSampler creates an ArrivalSampler from a validated spec.
// Panics on an unknown process name; call GeneratorSpec.Validate first.
func NewArrivalSampler(spec ArrivalSpec) ArrivalSampler {
	switch spec.Process {
	case "poisson":
		return &PoissonSampler{mean: spec.MeanInterarrival}
	case "constant":
		return &ConstantSampler{iat: int64(spec.MeanInterarrival)}
	case "uniform":
		return &UniformSampler{max: int64(2 * spec.MeanInterarrival)}
	default:
		panic("unhandled arrival process " + spec.Process)
	}
}
