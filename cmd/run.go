package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inference-sim/cpusched/report"
	"github.com/inference-sim/cpusched/sim"
	"github.com/inference-sim/cpusched/sim/trace"
	"github.com/inference-sim/cpusched/sim/workload"
)

var (
	algorithmName string // Scheduling algorithm: fcfs, sjf, rr
	quantumText   string // Round Robin time quantum, parsed by sim.ParseQuantum
	processFile   string // Process-set YAML; the stored list is used when empty
	outputFormat  string // table or json
	showGantt     bool   // Record and print the execution timeline
	compareAll    bool   // Run every algorithm over the same process set
)

var validFormats = map[string]bool{"table": true, "json": true}

// runOptions is the fully resolved input of one run.
type runOptions struct {
	Processes []sim.Process
	Config    sim.SimulationConfig
	Format    string
	Compare   bool
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scheduling simulation",
	Long: "Run a scheduling simulation over a process-set file (--file) or, without one, " +
		"over the process list stored with `add`.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveRunOptions(cmd.Context(), cmd.Flags())
		if err != nil {
			return err
		}
		return runSimulation(cmd.OutOrStdout(), opts)
	},
}

// resolveRunOptions loads the process set and applies precedence for the run settings:
// explicit flags, then the process file (algorithm, quantum, trace), then the config file,
// then flag defaults.
func resolveRunOptions(ctx context.Context, flags *pflag.FlagSet) (runOptions, error) {
	if !validFormats[outputFormat] {
		return runOptions{}, fmt.Errorf("unknown format %q; valid: table, json", outputFormat)
	}

	cfg := sim.SimulationConfig{Trace: trace.TraceLevelNone}
	alg, err := sim.ParseAlgorithm(algorithmName)
	if err != nil {
		return runOptions{}, err
	}
	cfg.Algorithm = alg
	if quantumText != "" {
		if cfg.Quantum, err = sim.ParseQuantum(quantumText); err != nil {
			return runOptions{}, err
		}
	}
	if showGantt {
		cfg.Trace = trace.TraceLevelTimeline
	}

	var procs []sim.Process
	if processFile != "" {
		spec, err := workload.LoadProcessSet(processFile)
		if err != nil {
			return runOptions{}, err
		}
		if procs, err = spec.Resolve(); err != nil {
			return runOptions{}, fmt.Errorf("%s: %w", processFile, err)
		}
		fileCfg, err := spec.SimulationConfig()
		if err != nil {
			return runOptions{}, fmt.Errorf("%s: %w", processFile, err)
		}
		if !flags.Changed("algorithm") && spec.Algorithm != "" {
			cfg.Algorithm = fileCfg.Algorithm
		}
		if !flags.Changed("quantum") && spec.Quantum != 0 {
			cfg.Quantum = fileCfg.Quantum
		}
		if !flags.Changed("gantt") && spec.Trace != "" {
			cfg.Trace = fileCfg.Trace
		}
		logrus.Infof("Loaded %d processes from %s", len(procs), processFile)
	} else {
		st, err := openStore(ctx)
		if err != nil {
			return runOptions{}, err
		}
		defer st.Close()
		if procs, err = st.ListProcesses(ctx); err != nil {
			return runOptions{}, err
		}
		logrus.Infof("Loaded %d stored processes from %s", len(procs), dbPath)
	}

	return runOptions{
		Processes: procs,
		Config:    cfg,
		Format:    outputFormat,
		Compare:   compareAll,
	}, nil
}

// runSimulation simulates opts and writes the report to out.
func runSimulation(out io.Writer, opts runOptions) error {
	if opts.Compare {
		results, err := sim.CompareAll(opts.Processes, opts.Config.Quantum, opts.Config.Trace)
		if err != nil {
			return err
		}
		if opts.Format == "json" {
			return report.WriteJSON(out, results)
		}
		for _, r := range results {
			writeResult(out, r)
		}
		report.WriteComparison(out, results)
		return nil
	}

	result, err := sim.Simulate(opts.Config, opts.Processes)
	if err != nil {
		return err
	}
	if opts.Format == "json" {
		return report.WriteJSON(out, result)
	}
	writeResult(out, result)
	return nil
}

func writeResult(out io.Writer, r *sim.Result) {
	report.WriteTable(out, r)
	if r.Trace != nil {
		report.WriteGantt(out, r.Trace)
		report.WriteSummary(out, r.Summary)
	}
	_, _ = fmt.Fprintln(out)
}

func init() {
	runCmd.Flags().StringVar(&algorithmName, "algorithm", "fcfs", "Scheduling algorithm (fcfs, sjf, rr)")
	runCmd.Flags().StringVar(&quantumText, "quantum", "", "Round Robin time quantum in ticks (required for rr)")
	runCmd.Flags().StringVar(&processFile, "file", "", "Process-set YAML file; defaults to the stored process list")
	runCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format (table, json)")
	runCmd.Flags().BoolVar(&showGantt, "gantt", false, "Record and print the execution timeline")
	runCmd.Flags().BoolVar(&compareAll, "compare", false, "Run every algorithm over the same process set")
}
