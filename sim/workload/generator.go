package workload

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusched/sim"
)

// Generate creates a process set from a GeneratorSpec.
// Deterministic given the same spec and seed.
// Returns processes in arrival order with sequential IDs P1..Pn; the first arrives at 0.
func Generate(spec *GeneratorSpec) ([]sim.Process, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrival)
	burstRNG := rng.ForSubsystem(sim.SubsystemBurst)
	sampler := NewArrivalSampler(spec.Arrival)

	procs := make([]sim.Process, 0, spec.Count)
	var clock int64
	for i := 0; i < spec.Count; i++ {
		if i > 0 {
			clock += sampler.SampleIAT(arrivalRNG)
		}
		burst := spec.Burst.Min + burstRNG.Int63n(spec.Burst.Max-spec.Burst.Min+1)
		procs = append(procs, sim.NewProcess(fmt.Sprintf("P%d", i+1), clock, burst))
	}

	logrus.Debugf("generated %d processes (seed=%d, arrival=%s, last arrival=%d)",
		len(procs), spec.Seed, spec.Arrival.Process, clock)
	return procs, nil
}
