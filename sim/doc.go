// Package sim provides the CPU scheduling simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - process.go: Process record, input validation and working copies
//   - scheduler.go: the FCFS, SJF and Round Robin strategies
//   - metrics.go: turnaround, waiting time and their averages
//   - simulator.go: Simulate, which validates, dispatches and computes metrics
//
// # Model
//
// Time is discrete (integer ticks), execution is CPU-bound on a single core,
// and every run is a pure function of its inputs: schedulers copy the process
// set before writing Remaining or Completion, so the canonical list can be
// re-simulated with a different algorithm or quantum.
//
// Sub-packages:
//   - sim/trace/: execution timeline (Gantt slices and idle gaps) and its summary
//   - sim/workload/: YAML process-set files and seeded random generation
//
// # Key Interfaces
//
//   - Scheduler: run one strategy over a process set, optionally recording a trace
//   - Algorithm: enum selecting the strategy, parsed from CLI/API names
package sim
