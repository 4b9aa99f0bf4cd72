package trace

// TraceSummary aggregates statistics from a SimulationTrace.
// SlicesPerProcess is keyed by process label: processes sharing an ID share one count,
// while ContextSwitches still tells them apart by Seq.
type TraceSummary struct {
	Makespan         int64          `json:"makespan"`           // end of the last slice
	BusyTime         int64          `json:"busy_time"`          // ticks spent executing
	IdleTime         int64          `json:"idle_time"`          // ticks with nothing runnable
	Utilization      float64        `json:"utilization"`        // BusyTime / Makespan
	Throughput       float64        `json:"throughput"`         // finished processes per tick
	ContextSwitches  int            `json:"context_switches"`   // slice boundaries that change process
	Finished         int            `json:"finished"`           // slices that ended a process
	SlicesPerProcess map[string]int `json:"slices_per_process"` // label → slice count
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		SlicesPerProcess: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	for i, s := range st.Slices {
		summary.BusyTime += s.Duration()
		summary.SlicesPerProcess[s.ProcessID]++
		if s.End > summary.Makespan {
			summary.Makespan = s.End
		}
		if s.Finished {
			summary.Finished++
		}
		if i > 0 && st.Slices[i-1].Seq != s.Seq {
			summary.ContextSwitches++
		}
	}
	for _, idle := range st.Idles {
		summary.IdleTime += idle.Duration()
	}

	if summary.Makespan > 0 {
		summary.Utilization = float64(summary.BusyTime) / float64(summary.Makespan)
		summary.Throughput = float64(summary.Finished) / float64(summary.Makespan)
	}
	return summary
}
