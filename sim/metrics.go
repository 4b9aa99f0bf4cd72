// Derives per-process and aggregate statistics from a completed schedule:
// turnaround (completion - arrival), waiting (turnaround - burst) and their averages.

package sim

import (
	"fmt"
	"math"
)

// ProcessMetrics holds the derived times for one completed process.
type ProcessMetrics struct {
	ID         string `json:"id"`
	Arrival    int64  `json:"arrival"`
	Burst      int64  `json:"burst"`
	Completion int64  `json:"completion"`
	Turnaround int64  `json:"turnaround"`
	Waiting    int64  `json:"waiting"`
}

// Metrics aggregates statistics about a completed schedule
// for final reporting.
type Metrics struct {
	Processes       []ProcessMetrics `json:"processes"` // in schedule order
	TotalWaiting    int64            `json:"total_waiting"`
	TotalTurnaround int64            `json:"total_turnaround"`
	AvgWaiting      float64          `json:"avg_waiting"`    // rounded to 2 decimals
	AvgTurnaround   float64          `json:"avg_turnaround"` // rounded to 2 decimals
}

// ComputeMetrics derives per-process and average metrics from completed records.
// An empty list fails with ErrEmptyProcessSet rather than producing NaN averages.
// A record with no completion, or one that finished before arrival + burst,
// fails with ErrScheduleDefect.
func ComputeMetrics(completed []Process) (*Metrics, error) {
	if len(completed) == 0 {
		return nil, ErrEmptyProcessSet
	}

	m := &Metrics{Processes: make([]ProcessMetrics, 0, len(completed))}
	for i, p := range completed {
		if !p.Completed {
			return nil, fmt.Errorf("%w: process[%d] %q has no completion time", ErrScheduleDefect, i, p.ID)
		}
		turnaround := p.Completion - p.Arrival
		waiting := turnaround - p.Burst
		// Completion before arrival means the clock wrapped.
		if p.Completion < p.Arrival || turnaround < p.Burst || waiting < 0 {
			return nil, fmt.Errorf("%w: process[%d] %q completed at %d, before arrival %d + burst %d",
				ErrScheduleDefect, i, p.ID, p.Completion, p.Arrival, p.Burst)
		}
		m.Processes = append(m.Processes, ProcessMetrics{
			ID:         p.ID,
			Arrival:    p.Arrival,
			Burst:      p.Burst,
			Completion: p.Completion,
			Turnaround: turnaround,
			Waiting:    waiting,
		})
		m.TotalWaiting += waiting
		m.TotalTurnaround += turnaround
	}

	n := float64(len(completed))
	m.AvgWaiting = RoundTo2(float64(m.TotalWaiting) / n)
	m.AvgTurnaround = RoundTo2(float64(m.TotalTurnaround) / n)
	return m, nil
}

// RoundTo2 rounds v to two decimal places, half away from zero.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
