// Defines the Process struct that models a single CPU-bound job in the simulation.
// Tracks arrival, burst, remaining time for preemptive runs, and completion time.

package sim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Process models a single process record.
// ID, Arrival and Burst are the user-supplied input; Remaining and Completion are
// simulation outputs written only on the working copies a scheduler makes.
type Process struct {
	ID      string `json:"id" yaml:"id"`           // User label; duplicates are distinct entries
	Arrival int64  `json:"arrival" yaml:"arrival"` // Tick at which the process becomes eligible to run
	Burst   int64  `json:"burst" yaml:"burst"`     // Total CPU ticks required

	Remaining  int64 `json:"-" yaml:"-"`                    // CPU ticks still owed (Round Robin only)
	Completion int64 `json:"completion,omitempty" yaml:"-"` // Tick at which the process finished
	Completed  bool  `json:"-" yaml:"-"`                    // Whether Completion has been set

	seq int // position in the caller's input, distinguishes duplicate IDs
}

// NewProcess creates an unscheduled process record.
func NewProcess(id string, arrival, burst int64) Process {
	return Process{ID: id, Arrival: arrival, Burst: burst}
}

func (p Process) String() string {
	if p.Completed {
		return fmt.Sprintf("%s(arrival=%d, burst=%d, completion=%d)", p.ID, p.Arrival, p.Burst, p.Completion)
	}
	return fmt.Sprintf("%s(arrival=%d, burst=%d)", p.ID, p.Arrival, p.Burst)
}

// Seq returns the process's position in the input slice it was scheduled from.
func (p Process) Seq() int {
	return p.seq
}

// complete marks the working copy as finished at clock.
// Completion is write-once; a second call is a scheduler bug.
func (p *Process) complete(clock int64) {
	if p.Completed {
		panic(fmt.Sprintf("process %s completed twice (at %d and %d)", p.ID, p.Completion, clock))
	}
	p.Completion = clock
	p.Completed = true
	p.Remaining = 0
}

// ParseProcess coerces raw text fields (CLI arguments, form values) into a validated Process.
// Non-numeric arrival or burst is reported as ErrInvalidInput.
func ParseProcess(id, arrival, burst string) (Process, error) {
	a, err := strconv.ParseInt(strings.TrimSpace(arrival), 10, 64)
	if err != nil {
		return Process{}, fmt.Errorf("%w: process %q: arrival %q is not an integer", ErrInvalidInput, id, arrival)
	}
	b, err := strconv.ParseInt(strings.TrimSpace(burst), 10, 64)
	if err != nil {
		return Process{}, fmt.Errorf("%w: process %q: burst %q is not an integer", ErrInvalidInput, id, burst)
	}
	p := NewProcess(strings.TrimSpace(id), a, b)
	if err := ValidateProcess(p); err != nil {
		return Process{}, err
	}
	return p, nil
}

// ValidateProcess checks a single record: non-empty ID, arrival >= 0, burst > 0.
func ValidateProcess(p Process) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: missing process id", ErrInvalidInput)
	}
	if p.Arrival < 0 {
		return fmt.Errorf("%w: process %q: arrival must be non-negative, got %d", ErrInvalidInput, p.ID, p.Arrival)
	}
	if p.Burst <= 0 {
		return fmt.Errorf("%w: process %q: burst must be positive, got %d", ErrInvalidInput, p.ID, p.Burst)
	}
	return nil
}

// ValidateProcesses checks a whole process set before any scheduler runs.
// An empty set is ErrEmptyProcessSet; the first bad record is reported with its index.
// A set whose schedule could run past math.MaxInt64 ticks is ErrInvalidInput.
func ValidateProcesses(procs []Process) error {
	if len(procs) == 0 {
		return ErrEmptyProcessSet
	}
	var horizon int64
	for i, p := range procs {
		if err := ValidateProcess(p); err != nil {
			return fmt.Errorf("process[%d]: %w", i, err)
		}
		horizon = max(horizon, p.Arrival)
	}
	// No scheduler clock can pass the last arrival plus every burst.
	for i, p := range procs {
		if p.Burst > math.MaxInt64-horizon {
			return fmt.Errorf("%w: process[%d] %q: last arrival plus total burst exceeds %d ticks",
				ErrInvalidInput, i, p.ID, int64(math.MaxInt64))
		}
		horizon += p.Burst
	}
	return nil
}

// workingCopies validates procs and returns fresh copies with simulation state reset.
// The caller's slice is never written.
func workingCopies(procs []Process) ([]Process, error) {
	if err := ValidateProcesses(procs); err != nil {
		return nil, err
	}
	work := make([]Process, len(procs))
	for i, p := range procs {
		work[i] = Process{ID: p.ID, Arrival: p.Arrival, Burst: p.Burst, Remaining: p.Burst, seq: i}
	}
	return work, nil
}
