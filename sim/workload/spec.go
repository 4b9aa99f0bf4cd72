package workload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cpusched/sim"
	"github.com/inference-sim/cpusched/sim/trace"
)

// ProcessSetSpec is the top-level process-set file.
// Loaded from YAML via LoadProcessSet(path). Either Processes or Generate is set, not both.
type ProcessSetSpec struct {
	Version   string         `yaml:"version"`
	Algorithm string         `yaml:"algorithm,omitempty"`
	Quantum   int64          `yaml:"quantum,omitempty"` // Round Robin only
	Trace     string         `yaml:"trace,omitempty"`
	Processes []ProcessSpec  `yaml:"processes,omitempty"`
	Generate  *GeneratorSpec `yaml:"generate,omitempty"`
}

// ProcessSpec is one process entry in a process-set file.
type ProcessSpec struct {
	ID      string `yaml:"id"`
	Arrival int64  `yaml:"arrival"`
	Burst   int64  `yaml:"burst"`
}

// GeneratorSpec parameterizes a seeded random process set.
type GeneratorSpec struct {
	Seed    int64       `yaml:"seed"`
	Count   int         `yaml:"count"`
	Arrival ArrivalSpec `yaml:"arrival"`
	Burst   BurstSpec   `yaml:"burst"`
}

// ArrivalSpec configures the inter-arrival process.
type ArrivalSpec struct {
	Process          string  `yaml:"process"`           // poisson, constant, uniform
	MeanInterarrival float64 `yaml:"mean_interarrival"` // ticks between consecutive arrivals
}

// BurstSpec bounds generated burst lengths (inclusive).
type BurstSpec struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// Valid value registries.
var (
	validVersions = map[string]bool{
		"": true, "1": true,
	}
	validArrivalProcesses = map[string]bool{
		"poisson": true, "constant": true, "uniform": true,
	}
)

// LoadProcessSet reads and parses a YAML process-set file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadProcessSet(path string) (*ProcessSetSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading process set: %w", err)
	}
	return ParseProcessSet(data)
}

// ParseProcessSet parses YAML process-set bytes with strict field checking.
func ParseProcessSet(data []byte) (*ProcessSetSpec, error) {
	var spec ProcessSetSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing process set: %w", err)
	}
	if spec.Version == "" {
		logrus.Debug("process set has no version; assuming \"1\"")
		spec.Version = "1"
	}
	return &spec, nil
}

// SaveProcessSet writes spec to path as YAML.
func SaveProcessSet(path string, spec *ProcessSetSpec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("encoding process set: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing process set: %w", err)
	}
	return nil
}

// NewProcessSetSpec wraps a concrete process list in a version-1 spec.
func NewProcessSetSpec(procs []sim.Process) *ProcessSetSpec {
	spec := &ProcessSetSpec{Version: "1", Processes: make([]ProcessSpec, len(procs))}
	for i, p := range procs {
		spec.Processes[i] = ProcessSpec{ID: p.ID, Arrival: p.Arrival, Burst: p.Burst}
	}
	return spec
}

// Validate checks the file-level settings and every process entry.
// Process errors wrap sim.ErrInvalidInput; quantum errors wrap sim.ErrInvalidQuantum.
func (s *ProcessSetSpec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unsupported process set version %q; valid: 1", s.Version)
	}
	alg, err := sim.ParseAlgorithm(s.Algorithm)
	if err != nil {
		return err
	}
	if alg == sim.AlgorithmRoundRobin {
		if err := sim.ValidateQuantum(s.Quantum); err != nil {
			return err
		}
	}
	if !trace.IsValidTraceLevel(s.Trace) {
		return fmt.Errorf("unknown trace level %q; valid: none, timeline", s.Trace)
	}
	switch {
	case s.Generate != nil && len(s.Processes) > 0:
		return fmt.Errorf("processes and generate are mutually exclusive")
	case s.Generate != nil:
		return s.Generate.Validate()
	case len(s.Processes) == 0:
		return sim.ErrEmptyProcessSet
	}
	for i, p := range s.Processes {
		if err := sim.ValidateProcess(sim.NewProcess(p.ID, p.Arrival, p.Burst)); err != nil {
			return fmt.Errorf("processes[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks generator parameters.
func (g *GeneratorSpec) Validate() error {
	if g.Count <= 0 {
		return fmt.Errorf("%w: generate.count must be positive, got %d", sim.ErrEmptyProcessSet, g.Count)
	}
	if !validArrivalProcesses[g.Arrival.Process] {
		return fmt.Errorf("unknown arrival process %q; valid: poisson, constant, uniform", g.Arrival.Process)
	}
	if g.Arrival.MeanInterarrival < 0 {
		return fmt.Errorf("mean_interarrival must be non-negative, got %f", g.Arrival.MeanInterarrival)
	}
	if g.Burst.Min <= 0 {
		return fmt.Errorf("%w: burst.min must be positive, got %d", sim.ErrInvalidInput, g.Burst.Min)
	}
	if g.Burst.Max < g.Burst.Min {
		return fmt.Errorf("burst.max (%d) must be >= burst.min (%d)", g.Burst.Max, g.Burst.Min)
	}
	return nil
}

// Resolve validates the process set and returns the concrete process list,
// generating it when the file carries a generate block.
func (s *ProcessSetSpec) Resolve() ([]sim.Process, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Generate != nil {
		return Generate(s.Generate)
	}
	procs := make([]sim.Process, len(s.Processes))
	for i, p := range s.Processes {
		procs[i] = sim.NewProcess(p.ID, p.Arrival, p.Burst)
	}
	return procs, nil
}

// SimulationConfig returns the run settings carried by the file.
func (s *ProcessSetSpec) SimulationConfig() (sim.SimulationConfig, error) {
	alg, err := sim.ParseAlgorithm(s.Algorithm)
	if err != nil {
		return sim.SimulationConfig{}, err
	}
	return sim.SimulationConfig{Algorithm: alg, Quantum: s.Quantum, Trace: trace.TraceLevel(s.Trace)}, nil
}
