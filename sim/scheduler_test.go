package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cpusched/sim/trace"
)

func processIDs(procs []Process) []string {
	ids := make([]string, len(procs))
	for i, p := range procs {
		ids[i] = p.ID
	}
	return ids
}

func completionTimes(procs []Process) []int64 {
	times := make([]int64, len(procs))
	for i, p := range procs {
		times[i] = p.Completion
	}
	return times
}

func textbookProcesses() []Process {
	return []Process{
		NewProcess("P1", 0, 5),
		NewProcess("P2", 1, 3),
		NewProcess("P3", 2, 8),
	}
}

// randomProcesses draws a reproducible process set from the partitioned RNG.
func randomProcesses(seed int64, n int) []Process {
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	arrivals := rng.ForSubsystem(SubsystemArrival)
	bursts := rng.ForSubsystem(SubsystemBurst)
	procs := make([]Process, n)
	for i := range procs {
		procs[i] = NewProcess(string(rune('A'+i%26)), arrivals.Int63n(30), 1+bursts.Int63n(9))
	}
	return procs
}

// assertScheduleInvariants checks properties that hold for every correct schedule.
func assertScheduleInvariants(t *testing.T, input, completed []Process) {
	t.Helper()
	require.Len(t, completed, len(input), "every process must complete exactly once")
	seen := make(map[int]bool, len(completed))
	var prev int64
	for _, p := range completed {
		assert.True(t, p.Completed, "%s has no completion", p.ID)
		assert.GreaterOrEqual(t, p.Completion, p.Arrival+p.Burst, "%s finished before arrival+burst", p.ID)
		assert.GreaterOrEqual(t, p.Completion, prev, "output must be in completion order")
		assert.False(t, seen[p.Seq()], "process seq %d completed twice", p.Seq())
		seen[p.Seq()] = true
		prev = p.Completion
	}
}

func schedulers() []Scheduler {
	return []Scheduler{&FCFSScheduler{}, &SJFScheduler{}, &RoundRobinScheduler{Quantum: 3}}
}

func TestRunFCFS_TextbookScenario(t *testing.T) {
	got, err := RunFCFS(textbookProcesses())
	require.NoError(t, err)
	assert.Equal(t, []string{"P1", "P2", "P3"}, processIDs(got))
	assert.Equal(t, []int64{5, 8, 16}, completionTimes(got))
}

func TestRunFCFS_EqualArrivals_KeepInputOrder(t *testing.T) {
	procs := []Process{
		NewProcess("late", 4, 1),
		NewProcess("b", 0, 2),
		NewProcess("a", 0, 2),
	}
	got, err := RunFCFS(procs)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "late"}, processIDs(got))
	assert.Equal(t, []int64{2, 4, 5}, completionTimes(got))
}

func TestRunFCFS_Idempotent(t *testing.T) {
	procs := randomProcesses(7, 12)
	first, err := RunFCFS(procs)
	require.NoError(t, err)
	second, err := RunFCFS(procs)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunSJF_TextbookScenario_MatchesFCFS(t *testing.T) {
	// Only one process has arrived at each decision point, so SJF reduces to arrival order.
	got, err := RunSJF(textbookProcesses())
	require.NoError(t, err)
	assert.Equal(t, []string{"P1", "P2", "P3"}, processIDs(got))
	assert.Equal(t, []int64{5, 8, 16}, completionTimes(got))
}

func TestRunSJF_EqualArrivalAndBurst_CompleteInInputOrder(t *testing.T) {
	procs := []Process{
		NewProcess("first", 0, 4),
		NewProcess("second", 0, 4),
		NewProcess("third", 0, 4),
	}
	got, err := RunSJF(procs)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, processIDs(got))
}

func TestRunSJF_IdleCPU_JumpsToNextArrival(t *testing.T) {
	// GIVEN nothing arrives until t=3
	procs := []Process{NewProcess("late", 10, 2), NewProcess("early", 3, 4)}

	got, err := RunSJF(procs)
	require.NoError(t, err)

	// THEN the first job starts at its arrival
	assert.Equal(t, []string{"early", "late"}, processIDs(got))
	assert.Equal(t, []int64{7, 12}, completionTimes(got))
}

func TestRunRoundRobin_Quantum2_HandTraced(t *testing.T) {
	// t=0 [P1]; P1 0-2 → P2,P3 arrive → [P2 P3 P1]
	// P2 2-4, P3 4-6, P1 6-8, P2 8-9 done, P3 9-10 done, P1 10-11 done
	procs := []Process{
		NewProcess("P1", 0, 5),
		NewProcess("P2", 1, 3),
		NewProcess("P3", 2, 3),
	}
	got, err := RunRoundRobin(procs, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"P2", "P3", "P1"}, processIDs(got))
	assert.Equal(t, []int64{9, 10, 11}, completionTimes(got))
}

func TestRunRoundRobin_ArrivalAtSliceEnd_QueuedBeforePreempted(t *testing.T) {
	// P2 arrives exactly when P1's first slice ends; it must run before P1 resumes.
	procs := []Process{NewProcess("P1", 0, 4), NewProcess("P2", 2, 2)}
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelTimeline})

	got, err := (&RoundRobinScheduler{Quantum: 2}).Schedule(procs, tr)
	require.NoError(t, err)

	assert.Equal(t, []string{"P2", "P1"}, processIDs(got))
	require.Len(t, tr.Slices, 3)
	assert.Equal(t, "P2", tr.Slices[1].ProcessID)
	assert.Equal(t, int64(2), tr.Slices[1].Start)
}

func TestRunRoundRobin_InvalidQuantum_RejectedBeforeRun(t *testing.T) {
	for _, q := range []int64{0, -1} {
		_, err := RunRoundRobin(textbookProcesses(), q)
		assert.ErrorIs(t, err, ErrInvalidQuantum, "quantum %d", q)
	}
}

func TestRunRoundRobin_QuantumAtLeastMaxBurst_MatchesFCFS(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		procs := randomProcesses(seed, 10)
		fcfs, err := RunFCFS(procs)
		require.NoError(t, err)
		rr, err := RunRoundRobin(procs, 9) // bursts are drawn from [1, 9]
		require.NoError(t, err)
		assert.Equal(t, completionTimes(fcfs), completionTimes(rr), "seed %d", seed)
		assert.Equal(t, processIDs(fcfs), processIDs(rr), "seed %d", seed)
	}
}

func TestRunRoundRobin_RemainingNeverIncreases(t *testing.T) {
	procs := randomProcesses(3, 8)
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelTimeline})
	_, err := (&RoundRobinScheduler{Quantum: 2}).Schedule(procs, tr)
	require.NoError(t, err)

	// Executed time per process never exceeds its burst, and every slice is at most one quantum.
	executed := make(map[int]int64)
	for _, s := range tr.Slices {
		assert.LessOrEqual(t, s.Duration(), int64(2))
		executed[s.Seq] += s.Duration()
		assert.LessOrEqual(t, executed[s.Seq], procs[s.Seq].Burst)
	}
	for i, p := range procs {
		assert.Equal(t, p.Burst, executed[i], "process %d", i)
	}
}

func TestSchedulers_Invariants_RandomInputs(t *testing.T) {
	for _, sched := range schedulers() {
		t.Run(sched.Algorithm().String(), func(t *testing.T) {
			for seed := int64(1); seed <= 25; seed++ {
				procs := randomProcesses(seed, 15)
				got, err := sched.Schedule(procs, nil)
				require.NoError(t, err)
				assertScheduleInvariants(t, procs, got)
			}
		})
	}
}

func TestSchedulers_DoNotMutateInput(t *testing.T) {
	for _, sched := range schedulers() {
		t.Run(sched.Algorithm().String(), func(t *testing.T) {
			procs := textbookProcesses()
			snapshot := append([]Process(nil), procs...)
			_, err := sched.Schedule(procs, nil)
			require.NoError(t, err)
			assert.Equal(t, snapshot, procs)
		})
	}
}

func TestSchedulers_DuplicateIDs_TreatedAsDistinct(t *testing.T) {
	procs := []Process{NewProcess("dup", 0, 2), NewProcess("dup", 0, 3)}
	for _, sched := range schedulers() {
		t.Run(sched.Algorithm().String(), func(t *testing.T) {
			got, err := sched.Schedule(procs, nil)
			require.NoError(t, err)
			assertScheduleInvariants(t, procs, got)
		})
	}
}

func TestSchedulers_EmptyAndInvalidInput(t *testing.T) {
	for _, sched := range schedulers() {
		t.Run(sched.Algorithm().String(), func(t *testing.T) {
			_, err := sched.Schedule(nil, nil)
			assert.ErrorIs(t, err, ErrEmptyProcessSet)

			_, err = sched.Schedule([]Process{NewProcess("P1", 0, 0)}, nil)
			assert.ErrorIs(t, err, ErrInvalidInput)

			// Completion would wrap past math.MaxInt64.
			got, err := sched.Schedule([]Process{NewProcess("P1", math.MaxInt64-2, 5)}, nil)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, got)

			_, err = sched.Schedule([]Process{NewProcess("P1", 0, math.MaxInt64), NewProcess("P2", 0, 5)}, nil)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSchedulers_TraceAccountsForEveryTick(t *testing.T) {
	procs := []Process{NewProcess("P1", 2, 3), NewProcess("P2", 9, 2)}
	for _, sched := range schedulers() {
		t.Run(sched.Algorithm().String(), func(t *testing.T) {
			tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelTimeline})
			got, err := sched.Schedule(procs, tr)
			require.NoError(t, err)

			summary := trace.Summarize(tr)
			assert.Equal(t, got[len(got)-1].Completion, summary.Makespan)
			assert.Equal(t, int64(5), summary.BusyTime)
			assert.Equal(t, summary.Makespan, summary.BusyTime+summary.IdleTime)
			assert.Equal(t, 2, summary.Finished)
		})
	}
}

func TestNewScheduler_Dispatch(t *testing.T) {
	tests := []struct {
		alg     Algorithm
		quantum int64
		want    Scheduler
	}{
		{AlgorithmFCFS, 0, &FCFSScheduler{}},
		{AlgorithmSJF, 0, &SJFScheduler{}},
		{AlgorithmRoundRobin, 4, &RoundRobinScheduler{Quantum: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			got, err := NewScheduler(tt.alg, tt.quantum)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.alg, got.Algorithm())
		})
	}
}

func TestNewScheduler_RoundRobinInvalidQuantum(t *testing.T) {
	_, err := NewScheduler(AlgorithmRoundRobin, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantum)
}

func TestNewScheduler_UnknownAlgorithm(t *testing.T) {
	_, err := NewScheduler(Algorithm(42), 1)
	assert.Error(t, err)
}
