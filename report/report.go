// Package report renders simulation results for terminals and machine consumers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/inference-sim/cpusched/sim"
	"github.com/inference-sim/cpusched/sim/trace"
)

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

// WriteTable renders the per-process metrics with the averages in the footer.
func WriteTable(w io.Writer, result *sim.Result) {
	title := strings.ToUpper(result.Algorithm.String())
	if result.Algorithm.Preemptive() {
		title += fmt.Sprintf(" (quantum=%d)", result.Quantum)
	}
	_, _ = fmt.Fprintf(w, "%s schedule\n", title)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "Burst", "Completion", "Turnaround", "Waiting"})
	for _, pm := range result.Metrics.Processes {
		table.Append([]string{
			pm.ID,
			itoa(pm.Arrival),
			itoa(pm.Burst),
			itoa(pm.Completion),
			itoa(pm.Turnaround),
			itoa(pm.Waiting),
		})
	}
	table.SetFooter([]string{"", "", "", "Average",
		fmt.Sprintf("%.2f", result.Metrics.AvgTurnaround),
		fmt.Sprintf("%.2f", result.Metrics.AvgWaiting)})
	table.Render()
}

// WriteProcesses renders an unscheduled process list.
func WriteProcesses(w io.Writer, procs []sim.Process) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "PID", "Arrival", "Burst"})
	for i, p := range procs {
		table.Append([]string{strconv.Itoa(i + 1), p.ID, itoa(p.Arrival), itoa(p.Burst)})
	}
	table.Render()
}

// WriteGantt renders the execution timeline, idle gaps included, in time order.
func WriteGantt(w io.Writer, tr *trace.SimulationTrace) {
	if tr == nil {
		return
	}
	_, _ = fmt.Fprintln(w, "Gantt chart")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Process", "Start", "End", "Ticks"})

	slices, idles := tr.Slices, tr.Idles
	for len(slices) > 0 || len(idles) > 0 {
		if len(idles) > 0 && (len(slices) == 0 || idles[0].Start < slices[0].Start) {
			table.Append([]string{"idle", itoa(idles[0].Start), itoa(idles[0].End), itoa(idles[0].Duration())})
			idles = idles[1:]
			continue
		}
		s := slices[0]
		label := s.ProcessID
		if s.Finished {
			label += " *"
		}
		table.Append([]string{label, itoa(s.Start), itoa(s.End), itoa(s.Duration())})
		slices = slices[1:]
	}
	table.Render()
}

// WriteSummary prints the trace summary as aligned key/value lines.
func WriteSummary(w io.Writer, s *trace.TraceSummary) {
	if s == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "Makespan         : %d ticks\n", s.Makespan)
	_, _ = fmt.Fprintf(w, "Busy / Idle      : %d / %d ticks\n", s.BusyTime, s.IdleTime)
	_, _ = fmt.Fprintf(w, "CPU Utilization  : %.2f%%\n", s.Utilization*100)
	_, _ = fmt.Fprintf(w, "Throughput       : %.4f processes/tick\n", s.Throughput)
	_, _ = fmt.Fprintf(w, "Context Switches : %d\n", s.ContextSwitches)
}

// WriteComparison renders one row of averages per algorithm.
func WriteComparison(w io.Writer, results []*sim.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Avg Waiting", "Avg Turnaround"})
	for _, r := range results {
		name := r.Algorithm.String()
		if r.Algorithm.Preemptive() {
			name += fmt.Sprintf(" (q=%d)", r.Quantum)
		}
		table.Append([]string{name,
			fmt.Sprintf("%.2f", r.Metrics.AvgWaiting),
			fmt.Sprintf("%.2f", r.Metrics.AvgTurnaround)})
	}
	table.Render()
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
