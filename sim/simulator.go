package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusched/sim/trace"
)

// SimulationConfig selects the strategy and its parameters for one run.
type SimulationConfig struct {
	Algorithm Algorithm        `json:"algorithm"`
	Quantum   int64            `json:"quantum,omitempty"` // Round Robin only
	Trace     trace.TraceLevel `json:"-"`
}

// Validate checks the configuration independent of any process set.
func (c SimulationConfig) Validate() error {
	switch c.Algorithm {
	case AlgorithmFCFS, AlgorithmSJF:
	case AlgorithmRoundRobin:
		if err := ValidateQuantum(c.Quantum); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unhandled algorithm %v", c.Algorithm)
	}
	if !trace.IsValidTraceLevel(string(c.Trace)) {
		return fmt.Errorf("unknown trace level %q", c.Trace)
	}
	return nil
}

// Result is the outcome of one simulation: the completed schedule, its metrics,
// and (when tracing is enabled) the execution timeline with its summary.
type Result struct {
	Algorithm Algorithm              `json:"algorithm"`
	Quantum   int64                  `json:"quantum,omitempty"`
	Schedule  []Process              `json:"schedule"` // completion order
	Metrics   *Metrics               `json:"metrics"`
	Trace     *trace.SimulationTrace `json:"trace,omitempty"`
	Summary   *trace.TraceSummary    `json:"summary,omitempty"`
}

// Simulate validates procs and cfg, dispatches to the selected scheduler and computes metrics.
// procs is not modified, so the same canonical list can be simulated repeatedly
// with different algorithms or quanta.
func Simulate(cfg SimulationConfig, procs []Process) (*Result, error) {
	if err := ValidateProcesses(procs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sched, err := NewScheduler(cfg.Algorithm, cfg.Quantum)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Starting %s simulation with %d processes (quantum=%d)", cfg.Algorithm, len(procs), cfg.Quantum)
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: cfg.Trace})
	completed, err := sched.Schedule(procs, tr)
	if err != nil {
		return nil, err
	}
	metrics, err := ComputeMetrics(completed)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Algorithm: cfg.Algorithm,
		Schedule:  completed,
		Metrics:   metrics,
		Trace:     tr,
	}
	if cfg.Algorithm.Preemptive() {
		result.Quantum = cfg.Quantum
	}
	if tr != nil {
		result.Summary = trace.Summarize(tr)
	}
	logrus.Infof("Simulation complete: avg waiting=%.2f, avg turnaround=%.2f", metrics.AvgWaiting, metrics.AvgTurnaround)
	return result, nil
}

// CompareAll runs every algorithm over the same process set.
// quantum is used for Round Robin only.
func CompareAll(procs []Process, quantum int64, level trace.TraceLevel) ([]*Result, error) {
	results := make([]*Result, 0, len(Algorithms))
	for _, alg := range Algorithms {
		r, err := Simulate(SimulationConfig{Algorithm: alg, Quantum: quantum, Trace: level}, procs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", alg, err)
		}
		results = append(results, r)
	}
	return results, nil
}
