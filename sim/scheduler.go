package sim

import (
	"fmt"
	"slices"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusched/sim/trace"
)

// Scheduler runs one scheduling strategy over a process set.
// Implementations work on copies: the input slice is never modified, and the
// returned slice holds the completed records in completion order.
// tr may be nil, in which case no timeline is recorded.
type Scheduler interface {
	Schedule(procs []Process, tr *trace.SimulationTrace) ([]Process, error)
	Algorithm() Algorithm
}

// FCFSScheduler runs processes to completion in arrival order.
type FCFSScheduler struct{}

func (f *FCFSScheduler) Algorithm() Algorithm { return AlgorithmFCFS }

func (f *FCFSScheduler) Schedule(procs []Process, tr *trace.SimulationTrace) ([]Process, error) {
	work, err := workingCopies(procs)
	if err != nil {
		return nil, err
	}
	// Stable: equal arrivals keep input order.
	sort.SliceStable(work, func(i, j int) bool {
		return work[i].Arrival < work[j].Arrival
	})

	var clock int64
	for i := range work {
		p := &work[i]
		if p.Arrival > clock {
			tr.RecordIdle(trace.IdleRecord{Start: clock, End: p.Arrival})
			clock = p.Arrival
		}
		start := clock
		clock += p.Burst
		p.complete(clock)
		tr.RecordSlice(trace.SliceRecord{ProcessID: p.ID, Seq: p.seq, Start: start, End: clock, Finished: true})
		logrus.Debugf("[fcfs] t=%d: %s ran %d-%d", start, p.ID, start, clock)
	}
	return work, nil
}

// SJFScheduler is non-preemptive Shortest-Job-First.
// At each decision point the arrived process with the smallest burst runs to completion;
// equal bursts go to whichever appears first in the input.
// Warning: SJF can starve long processes under a sustained stream of short ones.
type SJFScheduler struct{}

func (s *SJFScheduler) Algorithm() Algorithm { return AlgorithmSJF }

func (s *SJFScheduler) Schedule(procs []Process, tr *trace.SimulationTrace) ([]Process, error) {
	pending, err := workingCopies(procs)
	if err != nil {
		return nil, err
	}
	completed := make([]Process, 0, len(pending))

	var clock int64
	for len(pending) > 0 {
		best := -1
		for i := range pending {
			if pending[i].Arrival > clock {
				continue
			}
			if best < 0 || pending[i].Burst < pending[best].Burst {
				best = i
			}
		}
		if best < 0 {
			// Nothing has arrived: skip the idle ticks up to the next arrival.
			next := earliestArrival(pending)
			tr.RecordIdle(trace.IdleRecord{Start: clock, End: next})
			logrus.Debugf("[sjf] t=%d: idle until %d", clock, next)
			clock = next
			continue
		}

		job := pending[best]
		start := clock
		clock += job.Burst
		job.complete(clock)
		tr.RecordSlice(trace.SliceRecord{ProcessID: job.ID, Seq: job.seq, Start: start, End: clock, Finished: true})
		logrus.Debugf("[sjf] t=%d: selected %s (burst=%d)", start, job.ID, job.Burst)

		completed = append(completed, job)
		pending = slices.Delete(pending, best, best+1)
	}
	return completed, nil
}

// RoundRobinScheduler time-slices the CPU in fixed quanta over a FIFO ready queue.
// Processes that arrive during (or exactly at the end of) a slice are queued ahead
// of the process that was just preempted.
type RoundRobinScheduler struct {
	Quantum int64
}

func (r *RoundRobinScheduler) Algorithm() Algorithm { return AlgorithmRoundRobin }

func (r *RoundRobinScheduler) Schedule(procs []Process, tr *trace.SimulationTrace) ([]Process, error) {
	if err := ValidateQuantum(r.Quantum); err != nil {
		return nil, err
	}
	pending, err := workingCopies(procs)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Arrival < pending[j].Arrival
	})

	ready := &ReadyQueue{}
	completed := make([]Process, 0, len(pending))
	next := 0 // pending[next:] have not arrived yet
	var clock int64

	admit := func() {
		for next < len(pending) && pending[next].Arrival <= clock {
			ready.Enqueue(&pending[next])
			next++
		}
	}

	for next < len(pending) || ready.Len() > 0 {
		admit()
		if ready.Len() == 0 {
			arrival := pending[next].Arrival
			tr.RecordIdle(trace.IdleRecord{Start: clock, End: arrival})
			logrus.Debugf("[rr] t=%d: idle until %d", clock, arrival)
			clock = arrival
			continue
		}

		p := ready.Dequeue()
		exec := min(r.Quantum, p.Remaining)
		start := clock
		p.Remaining -= exec
		clock += exec

		// New arrivals go in before the preempted process is re-queued.
		admit()

		finished := p.Remaining == 0
		tr.RecordSlice(trace.SliceRecord{ProcessID: p.ID, Seq: p.seq, Start: start, End: clock, Finished: finished})
		if finished {
			p.complete(clock)
			completed = append(completed, *p)
			logrus.Debugf("[rr] t=%d: %s completed", clock, p.ID)
		} else {
			ready.Enqueue(p)
			logrus.Debugf("[rr] t=%d: %s preempted (remaining=%d), ready=%v", clock, p.ID, p.Remaining, ready.IDs())
		}
	}
	return completed, nil
}

func earliestArrival(procs []Process) int64 {
	earliest := procs[0].Arrival
	for _, p := range procs[1:] {
		earliest = min(earliest, p.Arrival)
	}
	return earliest
}

// NewScheduler creates a Scheduler for alg.
// quantum is only used (and validated) for AlgorithmRoundRobin.
func NewScheduler(alg Algorithm, quantum int64) (Scheduler, error) {
	switch alg {
	case AlgorithmFCFS:
		return &FCFSScheduler{}, nil
	case AlgorithmSJF:
		return &SJFScheduler{}, nil
	case AlgorithmRoundRobin:
		if err := ValidateQuantum(quantum); err != nil {
			return nil, err
		}
		return &RoundRobinScheduler{Quantum: quantum}, nil
	default:
		return nil, fmt.Errorf("unhandled algorithm %v", alg)
	}
}

// RunFCFS schedules procs first-come-first-served and returns the completed records.
func RunFCFS(procs []Process) ([]Process, error) {
	return (&FCFSScheduler{}).Schedule(procs, nil)
}

// RunSJF schedules procs shortest-job-first (non-preemptive) and returns the completed records.
func RunSJF(procs []Process) ([]Process, error) {
	return (&SJFScheduler{}).Schedule(procs, nil)
}

// RunRoundRobin schedules procs round-robin with the given quantum.
// Fails with ErrInvalidQuantum if quantum <= 0.
func RunRoundRobin(procs []Process, quantum int64) ([]Process, error) {
	return (&RoundRobinScheduler{Quantum: quantum}).Schedule(procs, nil)
}
